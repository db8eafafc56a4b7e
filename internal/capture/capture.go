// Package capture grabs the desktop so a screenshot can be used as the
// photo.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"
)

var (
	ErrUnsupported = errors.New("screen capture is not supported on this platform")
	errNoMonitors  = errors.New("no monitors found")
)

// Monitor describes one connected output in global screen coordinates.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

type backend interface {
	Monitors() ([]Monitor, error)
	Screen(ctx context.Context) (*image.RGBA, error)
}

var current backend = newBackend()

// Screen captures the whole desktop. A non-empty selector crops the result
// to one monitor; see FindMonitor for the accepted forms.
func Screen(ctx context.Context, selector string) (*image.RGBA, error) {
	img, err := current.Screen(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	if selector == "" {
		return img, nil
	}
	monitors, err := current.Monitors()
	if err != nil {
		return nil, fmt.Errorf("list monitors: %w", err)
	}
	mon, err := FindMonitor(monitors, selector)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, mon.Rect)
}

// Monitors lists connected outputs.
func Monitors() ([]Monitor, error) {
	return current.Monitors()
}

// FindMonitor resolves "primary", an index ("1" or "#1") or a name fragment.
func FindMonitor(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	switch sel {
	case "":
		return monitors[0], nil
	case "primary":
		for _, m := range monitors {
			if m.Primary {
				return m, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, m := range monitors {
		if strings.Contains(strings.ToLower(m.Name), sel) {
			return m, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
