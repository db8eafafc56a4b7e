package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/example/smilecam/internal/editor"
	"golang.org/x/image/math/f64"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// quadrants returns a w×h photo with a distinct colour per quadrant:
// red top-left, green top-right, blue bottom-left, white bottom-right.
func quadrants(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, image.Rect(0, 0, w/2, h/2), image.NewUniform(red), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(w/2, 0, w, h/2), image.NewUniform(green), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, h/2, w/2, h), image.NewUniform(blue), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(w/2, h/2, w, h), image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

// ring returns a size×size overlay with an opaque border of the given
// thickness and a transparent window.
func ring(size, thick int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	draw.Draw(img, img.Bounds().Inset(thick), image.Transparent, image.Point{}, draw.Src)
	return img
}

func mustCompositor(t *testing.T, name string) *Compositor {
	t.Helper()
	c, err := New(name)
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	return c
}

func TestMatrixIdentityIsTranslation(t *testing.T) {
	m := Matrix(editor.Transform{OffsetX: 12, OffsetY: -7, Scale: 1}, image.Rect(0, 0, 40, 20))
	want := f64.Aff3{1, 0, 12, 0, 1, -7}
	if m != want {
		t.Fatalf("Matrix = %v, want %v", m, want)
	}
}

func TestMatrixScalesAboutCenter(t *testing.T) {
	m := Matrix(editor.Transform{Scale: 2}, image.Rect(0, 0, 10, 10))
	// The photo center (5,5) must stay put.
	x := m[0]*5 + m[1]*5 + m[2]
	y := m[3]*5 + m[4]*5 + m[5]
	if x != 5 || y != 5 {
		t.Fatalf("center moved to (%v,%v)", x, y)
	}
}

func TestRenderNilPhotoClears(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(red), image.Point{}, draw.Src)
	Default().Render(dst, nil, editor.Identity(), ring(8, 1, blue))
	for i, v := range dst.Pix {
		if v != 0 {
			t.Fatalf("pixel byte %d = %d, expected cleared surface", i, v)
		}
	}
}

func TestRenderWithoutOverlay(t *testing.T) {
	c := mustCompositor(t, "nearest")
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	photo := image.NewUniform(green)
	src := image.NewRGBA(image.Rect(0, 0, 20, 20))
	draw.Draw(src, src.Bounds(), photo, image.Point{}, draw.Src)
	c.Render(dst, src, editor.Transform{Scale: 1}, nil)
	if got := dst.RGBAAt(0, 0); got != green {
		t.Fatalf("corner = %v, want %v", got, green)
	}
}

func TestRenderOverlayOnTop(t *testing.T) {
	c := mustCompositor(t, "nearest")
	photo := image.NewRGBA(image.Rect(0, 0, 100, 100))
	draw.Draw(photo, photo.Bounds(), image.NewUniform(green), image.Point{}, draw.Src)
	out := c.RenderToExport(photo, editor.Transform{Scale: 1}, ring(100, 10, red), 100)
	if got := out.RGBAAt(2, 2); got != red {
		t.Fatalf("border pixel = %v, want overlay %v", got, red)
	}
	if got := out.RGBAAt(50, 50); got != green {
		t.Fatalf("window pixel = %v, want photo %v", got, green)
	}
}

func TestRenderStretchesSmallOverlay(t *testing.T) {
	c := mustCompositor(t, "nearest")
	overlay := image.NewRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(overlay, overlay.Bounds(), image.NewUniform(blue), image.Point{}, draw.Src)
	photo := image.NewRGBA(image.Rect(0, 0, 1, 1))
	out := c.RenderToExport(photo, editor.Transform{Scale: 1}, overlay, 50)
	if got := out.RGBAAt(49, 49); got != blue {
		t.Fatalf("far corner = %v, want stretched overlay", got)
	}
}

func TestRenderExportEquivalence(t *testing.T) {
	c := Default()
	photo := quadrants(300, 200)
	overlay := ring(editor.CanvasSize, 40, color.RGBA{10, 20, 30, 200})
	tr := editor.Transform{OffsetX: 333.5, OffsetY: 120.25, Scale: 1.37, Rotation: 90}

	live := image.NewRGBA(image.Rect(0, 0, editor.CanvasSize, editor.CanvasSize))
	c.Render(live, photo, tr, overlay)
	exported := c.RenderToExport(photo, tr, overlay, editor.CanvasSize)
	if !bytes.Equal(live.Pix, exported.Pix) {
		t.Fatal("live canvas and export differ")
	}
}

func TestRotationPeriodicity(t *testing.T) {
	c := Default()
	photo := quadrants(64, 32)
	base := editor.Transform{OffsetX: 10, OffsetY: 20, Scale: 1.25}
	for _, theta := range []float64{0, 90, 180, 270, 33} {
		a := base
		a.Rotation = theta
		b := base
		b.Rotation = theta + 360*3
		pa := c.RenderToExport(photo, a, nil, 128)
		pb := c.RenderToExport(photo, b, nil, 128)
		if !bytes.Equal(pa.Pix, pb.Pix) {
			t.Fatalf("rotation %v and %v render differently", a.Rotation, b.Rotation)
		}
	}
}

func TestRenderOffCanvasIsSafe(t *testing.T) {
	out := Default().RenderToExport(quadrants(10, 10), editor.Transform{OffsetX: -5000, OffsetY: 9000, Scale: 1}, nil, 32)
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("byte %d = %d, photo should be fully off frame", i, v)
		}
	}
}

func TestRenderRejectsNonPositiveScale(t *testing.T) {
	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		tr := editor.Transform{OffsetX: 3, OffsetY: 3, Scale: scale}
		out := Default().RenderToExport(quadrants(10, 10), tr, nil, 16)
		if out.Bounds() != image.Rect(0, 0, 16, 16) {
			t.Fatalf("scale %v: unexpected bounds %v", scale, out.Bounds())
		}
		for i, v := range out.Pix {
			if v != 0 {
				t.Fatalf("scale %v: byte %d = %d, photo layer should be absent", scale, i, v)
			}
		}

		framed := Default().RenderToExport(quadrants(10, 10), tr, ring(16, 2, blue), 16)
		if got := framed.RGBAAt(0, 0); got != blue {
			t.Fatalf("scale %v: overlay missing, got %v", scale, got)
		}
		if got := framed.RGBAAt(8, 8); got != (color.RGBA{}) {
			t.Fatalf("scale %v: window pixel %v, want transparent", scale, got)
		}
	}
}

func TestUnknownInterpolation(t *testing.T) {
	if _, err := New("sinc"); err == nil {
		t.Fatal("expected error for unknown kernel")
	}
}

// TestScenario follows an upload of a 2000×1000 photo that was downscaled to
// 1200×600, dragged, zoomed and rotated once.
func TestScenario(t *testing.T) {
	s := editor.New()
	s.Load(quadrants(1200, 600))
	if tr := s.Transform(); tr.OffsetX != -100 || tr.OffsetY != 200 {
		t.Fatalf("centered at (%v,%v)", tr.OffsetX, tr.OffsetY)
	}
	s.BeginDrag(500, 500)
	s.UpdateDrag(600, 550)
	s.EndDrag()
	if tr := s.Transform(); tr.OffsetX != 0 || tr.OffsetY != 250 {
		t.Fatalf("dragged to (%v,%v)", tr.OffsetX, tr.OffsetY)
	}
	s.SetScale(1.5)
	s.RotateStep()

	frame := ring(editor.CanvasSize, 20, blue)
	photo, tr, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	out := mustCompositor(t, "nearest").RenderToExport(photo, tr, frame, editor.CanvasSize)
	if !out.Bounds().Eq(image.Rect(0, 0, 1000, 1000)) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	// Photo center sits at (600,550). A clockwise quarter turn moves the
	// source top-left quadrant to the top-right of the center.
	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{700, 450, red},
		{700, 650, green},
		{500, 650, white},
		{500, 450, blue},
		{5, 5, blue},
		{995, 500, blue},
	}
	for _, c := range checks {
		if got := out.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}
