// Package clipboard moves composites and pasted photos through the system
// clipboard as PNG data.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"
	"sync"
)

var (
	// ErrNoDisplay is returned on X11/Wayland hosts without a display.
	ErrNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
	// ErrUnsupported is returned when the binary was built without clipboard support.
	ErrUnsupported = errors.New("clipboard is not supported by this build")
	// ErrNoImage is returned when the clipboard holds no image.
	ErrNoImage = errors.New("clipboard does not contain image data")
)

var (
	initOnce sync.Once
	initErr  error
)

func needsDisplay() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return true
	}
	return false
}

func ensureInit() error {
	initOnce.Do(func() {
		if needsDisplay() && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = ErrNoDisplay
			return
		}
		initErr = initBackend()
	})
	return initErr
}

// WriteImage encodes img as PNG and publishes it.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	return writeImage(buf.Bytes())
}

// ReadImage returns the encoded image currently on the clipboard.
func ReadImage() ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := readImage()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	return data, nil
}
