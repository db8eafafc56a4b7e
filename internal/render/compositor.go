// Package render composites the user's photo and the frame overlay onto the
// square output canvas.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"

	"github.com/example/smilecam/internal/editor"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DefaultInterpolation is the resampling kernel used when none is configured.
const DefaultInterpolation = "bilinear"

var interpolators = map[string]xdraw.Interpolator{
	"nearest":        xdraw.NearestNeighbor,
	"approxbilinear": xdraw.ApproxBiLinear,
	"bilinear":       xdraw.BiLinear,
	"catmullrom":     xdraw.CatmullRom,
}

// Interpolations lists the accepted kernel names.
func Interpolations() []string {
	return []string{"nearest", "approxbilinear", "bilinear", "catmullrom"}
}

// Compositor draws a transformed photo with an overlay on top. The same
// Compositor must be used for the live canvas and the export so both produce
// identical pixels.
type Compositor struct {
	Kernel xdraw.Interpolator
	name   string
}

// New returns a Compositor using the named interpolation kernel.
func New(interpolation string) (*Compositor, error) {
	name := strings.ToLower(strings.TrimSpace(interpolation))
	if name == "" {
		name = DefaultInterpolation
	}
	k, ok := interpolators[name]
	if !ok {
		return nil, fmt.Errorf("unknown interpolation %q (want one of %s)", interpolation, strings.Join(Interpolations(), ", "))
	}
	return &Compositor{Kernel: k, name: name}, nil
}

// Default returns a Compositor using DefaultInterpolation.
func Default() *Compositor {
	c, _ := New(DefaultInterpolation)
	return c
}

// Name reports the kernel name.
func (c *Compositor) Name() string { return c.name }

// Render clears dst and draws photo under t followed by overlay stretched
// over the whole surface. A nil photo leaves dst cleared and a nil overlay is
// skipped.
func (c *Compositor) Render(dst *image.RGBA, photo image.Image, t editor.Transform, overlay image.Image) {
	if dst == nil {
		return
	}
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	if photo == nil {
		return
	}
	if t.Scale > 0 && !math.IsInf(t.Scale, 0) {
		m := Matrix(t, photo.Bounds())
		// The matrix works in dst-local coordinates.
		m[2] += float64(dst.Bounds().Min.X)
		m[5] += float64(dst.Bounds().Min.Y)
		c.Kernel.Transform(dst, m, photo, photo.Bounds(), draw.Over, nil)
	}
	c.drawOverlay(dst, overlay)
}

// RenderToExport renders into a fresh size×size surface.
func (c *Compositor) RenderToExport(photo image.Image, t editor.Transform, overlay image.Image, size int) *image.RGBA {
	if size <= 0 {
		size = editor.CanvasSize
	}
	out := image.NewRGBA(image.Rect(0, 0, size, size))
	c.Render(out, photo, t, overlay)
	return out
}

func (c *Compositor) drawOverlay(dst *image.RGBA, overlay image.Image) {
	if overlay == nil {
		return
	}
	ob := overlay.Bounds()
	if ob.Empty() {
		return
	}
	db := dst.Bounds()
	if ob.Dx() == db.Dx() && ob.Dy() == db.Dy() {
		draw.Draw(dst, db, overlay, ob.Min, draw.Over)
		return
	}
	c.Kernel.Scale(dst, db, overlay, ob, draw.Over, nil)
}

// Matrix returns the affine map from source pixel coordinates to canvas
// coordinates: translate to the photo center, rotate, scale, then draw the
// photo centered on that origin.
func Matrix(t editor.Transform, src image.Rectangle) f64.Aff3 {
	w := float64(src.Dx())
	h := float64(src.Dy())
	sin, cos := quarterSincos(t.Rotation)
	a := t.Scale * cos
	b := -t.Scale * sin
	d := t.Scale * sin
	e := t.Scale * cos
	tx := t.OffsetX + w/2
	ty := t.OffsetY + h/2
	cx := float64(src.Min.X) + w/2
	cy := float64(src.Min.Y) + h/2
	return f64.Aff3{
		a, b, tx - a*cx - b*cy,
		d, e, ty - d*cx - e*cy,
	}
}

// quarterSincos reduces deg modulo 360 and returns exact values for quarter
// turns so 360k+θ and θ map to the same matrix.
func quarterSincos(deg float64) (sin, cos float64) {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	switch r {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(r * math.Pi / 180)
}
