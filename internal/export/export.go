// Package export writes finished composites to disk and the clipboard.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/example/smilecam/internal/clipboard"
	"github.com/example/smilecam/internal/identity"
	"github.com/example/smilecam/internal/notify"
)

// ErrNilImage is returned when there is nothing to export.
var ErrNilImage = errors.New("nothing to export")

// EncodePNG writes img as a lossless PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return ErrNilImage
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Save writes img into dir using the download name derived from nick and
// returns the written path. An existing file with the same name is replaced.
func Save(dir, nick string, img image.Image) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return WriteFile(filepath.Join(dir, identity.Filename(nick)), img)
}

// WriteFile encodes img to path through a temporary file in the same
// directory so a partial PNG is never left behind.
func WriteFile(path string, img image.Image) (string, error) {
	if img == nil {
		return "", ErrNilImage
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".smilecam-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := EncodePNG(tmp, img); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("rename to %s: %w", path, err)
	}
	return path, nil
}

// CopyToClipboard publishes img as PNG on the system clipboard.
func CopyToClipboard(img image.Image) error {
	if img == nil {
		return ErrNilImage
	}
	if err := clipboard.WriteImage(img); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// Exporter bundles the output directory with the notifier told about each
// successful export.
type Exporter struct {
	Dir      string
	Notifier *notify.Notifier
}

// Save writes img and notifies on success.
func (e *Exporter) Save(nick string, img image.Image) (string, error) {
	path, err := Save(e.Dir, nick, img)
	if err != nil {
		return "", err
	}
	e.Notifier.Exported(path)
	return path, nil
}

// Copy places img on the clipboard and notifies on success.
func (e *Exporter) Copy(nick string, img image.Image) error {
	if err := CopyToClipboard(img); err != nil {
		return err
	}
	e.Notifier.Copied(identity.Filename(nick))
	return nil
}
