package asset

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	frameColor  = color.RGBA{0xff, 0xcc, 0x00, 0xff}
	bannerColor = color.RGBA{0x55, 0x63, 0xde, 0xff}
	// FrameTitle is printed on the built-in frame's banner.
	FrameTitle = "SmileCam"
)

// DefaultFrame draws the built-in overlay: a border with a rounded window and
// a title banner along the bottom edge. The window is fully transparent.
func DefaultFrame(size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %d", size)
	}
	out := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float32(size)
	m := s * 0.06
	r := s * 0.08

	ras := vector.NewRasterizer(size, size)
	ras.MoveTo(0, 0)
	ras.LineTo(s, 0)
	ras.LineTo(s, s)
	ras.LineTo(0, s)
	ras.ClosePath()
	// The window winds the other way so it cancels the outer square.
	ras.MoveTo(m+r, m)
	ras.QuadTo(m, m, m, m+r)
	ras.LineTo(m, s-m-r)
	ras.QuadTo(m, s-m, m+r, s-m)
	ras.LineTo(s-m-r, s-m)
	ras.QuadTo(s-m, s-m, s-m, s-m-r)
	ras.LineTo(s-m, m+r)
	ras.QuadTo(s-m, m, s-m-r, m)
	ras.ClosePath()
	ras.Draw(out, out.Bounds(), image.NewUniform(frameColor), image.Point{})

	if err := drawBanner(out, FrameTitle, m); err != nil {
		return nil, err
	}
	return out, nil
}

func drawBanner(dst *image.RGBA, title string, margin float32) error {
	if title == "" || margin < 8 {
		return nil
	}
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fmt.Errorf("parse banner font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(margin) * 0.7, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return fmt.Errorf("banner face: %w", err)
	}
	defer face.Close()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(bannerColor), Face: face}
	width := d.MeasureString(title).Ceil()
	metrics := face.Metrics()
	size := dst.Bounds().Dx()
	baseline := size - int(margin)/2 + (metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2
	d.Dot = fixed.P((size-width)/2, baseline)
	d.DrawString(title)
	return nil
}
