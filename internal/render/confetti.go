package render

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"golang.org/x/image/vector"
)

// ConfettiColors is the palette pieces are drawn from.
var ConfettiColors = []color.RGBA{
	{0xff, 0xcc, 0x00, 0xff},
	{0xff, 0x6b, 0x6b, 0xff},
	{0x4e, 0xcd, 0xc4, 0xff},
	{0x55, 0x63, 0xde, 0xff},
	{0xff, 0x9a, 0x3c, 0xff},
}

// ConfettiPieces is the number of pieces in a burst.
const ConfettiPieces = 150

type piece struct {
	x        float64 // fraction of the width
	size     float64
	col      color.RGBA
	fall     float64 // fraction of the height travelled by the end
	spin     float64 // degrees at the end
	duration time.Duration
}

// Confetti is a burst of falling squares. A given seed always produces the
// same burst.
type Confetti struct {
	pieces []piece
}

// NewConfetti creates a burst.
func NewConfetti(seed uint64) *Confetti {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	c := &Confetti{pieces: make([]piece, ConfettiPieces)}
	for i := range c.pieces {
		c.pieces[i] = piece{
			x:        r.Float64(),
			size:     r.Float64()*10 + 5,
			col:      ConfettiColors[r.IntN(len(ConfettiColors))],
			fall:     1 + r.Float64()*0.5,
			spin:     r.Float64() * 360,
			duration: 2*time.Second + time.Duration(r.Float64()*float64(3*time.Second)),
		}
	}
	return c
}

// Done reports whether every piece has finished falling.
func (c *Confetti) Done(elapsed time.Duration) bool {
	for _, p := range c.pieces {
		if elapsed < p.duration {
			return false
		}
	}
	return true
}

// Draw paints the burst as it looks after elapsed time into rect of dst.
func (c *Confetti) Draw(dst *image.RGBA, rect image.Rectangle, elapsed time.Duration) {
	if rect.Empty() {
		return
	}
	w, h := float64(rect.Dx()), float64(rect.Dy())
	ras := vector.NewRasterizer(rect.Dx(), rect.Dy())
	for _, p := range c.pieces {
		if elapsed >= p.duration {
			continue
		}
		t := easeOut(float64(elapsed) / float64(p.duration))
		alpha := 1 - t
		if alpha <= 0 {
			continue
		}
		cx := p.x * w
		cy := t * p.fall * h
		sin, cos := math.Sincos(t * p.spin * math.Pi / 180)
		half := p.size / 2
		ras.Reset(rect.Dx(), rect.Dy())
		corners := [4][2]float64{{-half, -half}, {half, -half}, {half, half}, {-half, half}}
		for i, k := range corners {
			x := float32(cx + k[0]*cos - k[1]*sin)
			y := float32(cy + k[0]*sin + k[1]*cos)
			if i == 0 {
				ras.MoveTo(x, y)
			} else {
				ras.LineTo(x, y)
			}
		}
		ras.ClosePath()
		col := p.col
		col.A = uint8(alpha * 255)
		col.R = uint8(float64(col.R) * alpha)
		col.G = uint8(float64(col.G) * alpha)
		col.B = uint8(float64(col.B) * alpha)
		ras.Draw(dst, rect, image.NewUniform(col), image.Point{})
	}
}

// easeOut approximates the cubic-bezier(0.1, 0.8, 0.2, 1) curve.
func easeOut(t float64) float64 {
	t = min(max(t, 0), 1)
	return 1 - math.Pow(1-t, 3)
}
