// Package asset decodes the user's photo and the frame overlay.
package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension is the largest edge kept after ingestion.
	MaxDimension = 1200
	// JPEGQuality is used when a downscaled photo is re-encoded.
	JPEGQuality = 92
)

// DecodeError reports a photo or frame that could not be decoded.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("decode image: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrEmptyImage is returned for images without pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Options controls ingestion of uploaded photos.
type Options struct {
	MaxDimension int
	JPEGQuality  int
}

// DefaultOptions returns the ingestion settings used by the editor.
func DefaultOptions() Options {
	return Options{MaxDimension: MaxDimension, JPEGQuality: JPEGQuality}
}

func (o Options) normalized() Options {
	if o.MaxDimension <= 0 {
		o.MaxDimension = MaxDimension
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = JPEGQuality
	}
	return o
}

// DecodePhoto decodes an uploaded photo, honouring EXIF orientation, and
// passes it through Prepare.
func DecodePhoto(r io.Reader, opts Options) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Source: "photo", Err: err}
	}
	return Prepare(img, opts)
}

// Prepare readies an already decoded image for editing. Images larger than
// opts.MaxDimension on either edge are shrunk to fit with their aspect ratio
// kept, then re-encoded as JPEG so the editor works on the same pixels a
// browser upload would.
func Prepare(img image.Image, opts Options) (image.Image, error) {
	opts = opts.normalized()
	if img == nil || img.Bounds().Empty() {
		return nil, &DecodeError{Source: "photo", Err: ErrEmptyImage}
	}
	b := img.Bounds()
	if max(b.Dx(), b.Dy()) <= opts.MaxDimension {
		return img, nil
	}
	fitted := imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(opts.JPEGQuality)); err != nil {
		return nil, fmt.Errorf("re-encode photo: %w", err)
	}
	out, err := imaging.Decode(&buf)
	if err != nil {
		return nil, &DecodeError{Source: "photo", Err: err}
	}
	return out, nil
}

// LoadPhoto opens and decodes the photo at path.
func LoadPhoto(path string, opts Options) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, err := DecodePhoto(f, opts)
	if err != nil {
		var derr *DecodeError
		if errors.As(err, &derr) {
			derr.Source = path
		}
		return nil, err
	}
	return img, nil
}

// LoadOverlay loads the frame drawn over every render. An empty path returns
// the built-in frame at the given size. Frames that are not size×size are
// still accepted; the compositor stretches them.
func LoadOverlay(path string, size int) (image.Image, error) {
	if path == "" {
		return DefaultFrame(size)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, &DecodeError{Source: path, Err: ErrEmptyImage}
	}
	return img, nil
}
