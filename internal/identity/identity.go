// Package identity handles the nickname a user enters before editing.
package identity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/example/smilecam/internal/logging"
)

const (
	// FilePrefix starts every exported file name.
	FilePrefix = "SmileCam_"
	// FallbackName is used when no nickname was captured.
	FallbackName = "User"
	// DefaultTimeout bounds a single submission.
	DefaultTimeout = 10 * time.Second
)

// ErrEmptyNickname is returned when the nickname is blank after trimming.
var ErrEmptyNickname = errors.New("nickname is empty")

// Normalize trims surrounding whitespace and rejects blank nicknames.
func Normalize(nick string) (string, error) {
	nick = strings.TrimSpace(nick)
	if nick == "" {
		return "", ErrEmptyNickname
	}
	return nick, nil
}

// Filename returns the download name for nick, for example
// "SmileCam_alice.png". Path separators, characters Windows forbids in file
// names and control characters are replaced with underscores. The prefix keeps
// the result clear of reserved device names such as CON.
func Filename(nick string) string {
	nick = strings.TrimSpace(nick)
	clean := strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		case unicode.IsControl(r):
			return '_'
		}
		return r
	}, nick)
	if strings.Trim(clean, "._") == "" {
		clean = FallbackName
	}
	return FilePrefix + clean + ".png"
}

// Submitter forwards nicknames to a form endpoint. Failures are never
// reported to the caller and nothing is retried.
type Submitter struct {
	Endpoint string
	Client   *http.Client
	Timeout  time.Duration
}

// NewSubmitter returns a submitter posting to endpoint. An empty endpoint
// disables submission.
func NewSubmitter(endpoint string) *Submitter {
	return &Submitter{Endpoint: endpoint, Client: http.DefaultClient, Timeout: DefaultTimeout}
}

// Enabled reports whether an endpoint is configured.
func (s *Submitter) Enabled() bool {
	return s != nil && s.Endpoint != ""
}

// Submit posts nick in the background. The returned channel is closed once
// the attempt finishes; callers are free to ignore it.
func (s *Submitter) Submit(ctx context.Context, nick string) <-chan struct{} {
	done := make(chan struct{})
	if !s.Enabled() {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		if err := s.Send(ctx, nick); err != nil {
			logging.FromContext(ctx).Debug("nickname submission failed", "err", err)
		}
	}()
	return done
}

// Send posts nick as the multipart field "nickname" and waits for the reply.
func (s *Submitter) Send(ctx context.Context, nick string) error {
	if !s.Enabled() {
		return nil
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("nickname", nick); err != nil {
		return fmt.Errorf("write nickname field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post nickname: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("post nickname: unexpected status %s", resp.Status)
	}
	return nil
}
