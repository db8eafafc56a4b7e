package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
)

type fakeBackend struct {
	shot     *image.RGBA
	monitors []Monitor
	err      error
}

func (f fakeBackend) Screen(context.Context) (*image.RGBA, error) { return f.shot, f.err }
func (f fakeBackend) Monitors() ([]Monitor, error)               { return f.monitors, nil }

func withBackend(t *testing.T, b backend) {
	t.Helper()
	orig := current
	current = b
	t.Cleanup(func() { current = orig })
}

var twoMonitors = []Monitor{
	{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 100, 50)},
	{Index: 1, Name: "HDMI-1", Rect: image.Rect(100, 0, 200, 50), Primary: true},
}

func TestFindMonitor(t *testing.T) {
	cases := map[string]string{
		"":        "eDP-1",
		"primary": "HDMI-1",
		"1":       "HDMI-1",
		"#0":      "eDP-1",
		"hdmi":    "HDMI-1",
	}
	for sel, want := range cases {
		got, err := FindMonitor(twoMonitors, sel)
		if err != nil || got.Name != want {
			t.Errorf("FindMonitor(%q) = %v, %v; want %s", sel, got.Name, err, want)
		}
	}
	if _, err := FindMonitor(twoMonitors, "5"); err == nil {
		t.Error("expected out of range error")
	}
	if _, err := FindMonitor(nil, ""); !errors.Is(err, errNoMonitors) {
		t.Errorf("expected errNoMonitors, got %v", err)
	}
}

func TestScreenCropsToMonitor(t *testing.T) {
	shot := image.NewRGBA(image.Rect(0, 0, 200, 50))
	shot.SetRGBA(150, 10, color.RGBA{255, 0, 0, 255})
	withBackend(t, fakeBackend{shot: shot, monitors: twoMonitors})

	img, err := Screen(context.Background(), "HDMI")
	if err != nil {
		t.Fatalf("Screen: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 100, 50) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if img.RGBAAt(50, 10) != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("crop offset wrong: %v", img.RGBAAt(50, 10))
	}
}

func TestScreenWrapsBackendError(t *testing.T) {
	boom := errors.New("no display")
	withBackend(t, fakeBackend{err: boom})
	if _, err := Screen(context.Background(), ""); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestCropOutside(t *testing.T) {
	if _, err := cropToRect(image.NewRGBA(image.Rect(0, 0, 10, 10)), image.Rect(20, 20, 30, 30)); err == nil {
		t.Fatal("expected error for region outside image")
	}
}
