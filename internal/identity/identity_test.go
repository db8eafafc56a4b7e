package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize("  alice \n")
	if err != nil || got != "alice" {
		t.Fatalf("Normalize = %q, %v", got, err)
	}
	if _, err := Normalize("   "); !errors.Is(err, ErrEmptyNickname) {
		t.Fatalf("expected ErrEmptyNickname, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"alice":     "SmileCam_alice.png",
		"":          "SmileCam_User.png",
		"  ":        "SmileCam_User.png",
		"../etc":    "SmileCam_.._etc.png",
		"a/b\\c":    "SmileCam_a_b_c.png",
		"tab\there": "SmileCam_tab_here.png",
		"..":        "SmileCam_User.png",
		"Zoë":       "SmileCam_Zoë.png",
		"a*b?":      "SmileCam_a_b_.png",
		"x<y>|\"z":  "SmileCam_x_y___z.png",
		"CON":       "SmileCam_CON.png",
	}
	for in, want := range cases {
		if got := Filename(in); got != want {
			t.Errorf("Filename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSendPostsMultipartField(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		got.Store(r.FormValue("nickname"))
	}))
	defer srv.Close()

	s := NewSubmitter(srv.URL)
	if err := s.Send(context.Background(), "bob"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.Load() != "bob" {
		t.Fatalf("server saw %v", got.Load())
	}
}

func TestSubmitSwallowsErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSubmitter(srv.URL)
	select {
	case <-s.Submit(context.Background(), "carol"):
	case <-time.After(5 * time.Second):
		t.Fatal("submission did not finish")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls.Load())
	}
}

func TestSubmitTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	s := NewSubmitter(srv.URL)
	s.Timeout = 50 * time.Millisecond
	if err := s.Send(context.Background(), "dave"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestDisabledSubmitter(t *testing.T) {
	s := NewSubmitter("")
	if s.Enabled() {
		t.Fatal("empty endpoint should disable submission")
	}
	select {
	case <-s.Submit(context.Background(), "erin"):
	default:
		t.Fatal("disabled submit should finish immediately")
	}
}
