package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the soft shadow drawn under the finished picture
// on the preview screen.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns the shadow used by the preview screen.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Radius: 18, Offset: image.Pt(10, 12), Opacity: 0.45}
}

// DropShadow places img on a transparent card large enough to hold a blurred
// shadow and returns the card together with the position of img inside it.
// The result always starts at the origin.
func DropShadow(img image.Image, opts ShadowOptions) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() {
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), image.Point{}
	}
	src := img.Bounds()
	radius := max(opts.Radius, 0)
	opacity := min(max(opts.Opacity, 0), 1)

	cast := src.Inset(-radius).Add(opts.Offset)
	card := src.Union(cast)
	origin := src.Min.Sub(card.Min)
	out := image.NewRGBA(card.Sub(card.Min))

	if opacity > 0 {
		alpha := image.NewAlpha(cast.Sub(cast.Min))
		for y := src.Min.Y; y < src.Max.Y; y++ {
			for x := src.Min.X; x < src.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if a == 0 {
					continue
				}
				alpha.SetAlpha(x-src.Min.X+radius, y-src.Min.Y+radius, color.Alpha{A: uint8(a >> 8)})
			}
		}
		mask := boxBlur(alpha, radius)
		shade := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
		draw.DrawMask(out, mask.Bounds().Add(cast.Min.Sub(card.Min)), shade, image.Point{}, mask, image.Point{}, draw.Over)
	}
	draw.Draw(out, src.Sub(card.Min), img, src.Min, draw.Over)
	return out, origin
}

// boxBlur runs a separable box filter over the mask using running sums.
func boxBlur(src *image.Alpha, radius int) *image.Alpha {
	b := src.Bounds()
	out := image.NewAlpha(b)
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := b.Dx(), b.Dy()
	tmp := make([]int, w*h)
	sums := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			sums[x+1] = sums[x] + int(row[x])
		}
		for x := 0; x < w; x++ {
			lo, hi := max(x-radius, 0), min(x+radius, w-1)
			tmp[y*w+x] = (sums[hi+1] - sums[lo]) / (hi - lo + 1)
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			sums[y+1] = sums[y] + tmp[y*w+x]
		}
		for y := 0; y < h; y++ {
			lo, hi := max(y-radius, 0), min(y+radius, h-1)
			out.Pix[y*out.Stride+x] = uint8((sums[hi+1] - sums[lo]) / (hi - lo + 1))
		}
	}
	return out
}

// Checkerboard fills rect with alternating squares so transparent canvas
// areas stay visible in the editor.
func Checkerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	if size <= 0 {
		size = 8
	}
	l, d := image.NewUniform(light), image.NewUniform(dark)
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y += size {
		for x := rect.Min.X; x < rect.Max.X; x += size {
			cell := image.Rect(x, y, x+size, y+size).Intersect(rect)
			src := l
			if ((x-rect.Min.X)/size+(y-rect.Min.Y)/size)%2 != 0 {
				src = d
			}
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}
