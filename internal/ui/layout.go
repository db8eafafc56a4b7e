package ui

import "image"

const (
	toolbarHeight = 72
	margin        = 16
	controlHeight = 40
	controlGap    = 12
	inputHeight   = 44
)

// Layout places the canvas and the toolbar inside the window.
type Layout struct {
	Size    image.Point
	Canvas  image.Rectangle
	Toolbar image.Rectangle
	// Scale is window pixels per canvas unit.
	Scale      float64
	canvasSize int
}

// computeLayout fits the square canvas into the area above the toolbar,
// centered horizontally.
func computeLayout(width, height, canvasSize int) Layout {
	availW := width - 2*margin
	availH := height - toolbarHeight - 2*margin
	side := min(availW, availH)
	if side < 1 {
		side = 1
	}
	x0 := (width - side) / 2
	y0 := margin + (availH-side)/2
	if availH < side {
		y0 = margin
	}
	return Layout{
		Size:       image.Pt(width, height),
		Canvas:     image.Rect(x0, y0, x0+side, y0+side),
		Toolbar:    image.Rect(0, height-toolbarHeight, width, height),
		Scale:      float64(side) / float64(canvasSize),
		canvasSize: canvasSize,
	}
}

// ToCanvas maps a window point into canvas units and reports whether it lies
// on the canvas.
func (l Layout) ToCanvas(x, y float64) (cx, cy float64, inside bool) {
	if l.Scale <= 0 {
		return 0, 0, false
	}
	cx = (x - float64(l.Canvas.Min.X)) / l.Scale
	cy = (y - float64(l.Canvas.Min.Y)) / l.Scale
	size := float64(l.canvasSize)
	inside = cx >= 0 && cy >= 0 && cx < size && cy < size
	return cx, cy, inside
}

// Input is the text field shown over the canvas on the upload and nickname
// screens.
func (l Layout) Input() image.Rectangle {
	w := min(520, l.Canvas.Dx()-40)
	if w < 80 {
		w = max(l.Canvas.Dx(), 1)
	}
	c := l.Canvas.Min.Add(l.Canvas.Size().Div(2))
	return image.Rect(c.X-w/2, c.Y-inputHeight/2, c.X+w/2, c.Y+inputHeight/2)
}

// toolbarRects lays out controls of the given widths centered in the toolbar.
func (l Layout) toolbarRects(widths []int) []image.Rectangle {
	total := 0
	for i, w := range widths {
		total += w
		if i > 0 {
			total += controlGap
		}
	}
	x := l.Toolbar.Min.X + (l.Toolbar.Dx()-total)/2
	if x < margin {
		x = margin
	}
	y := l.Toolbar.Min.Y + (l.Toolbar.Dy()-controlHeight)/2
	rects := make([]image.Rectangle, len(widths))
	for i, w := range widths {
		rects[i] = image.Rect(x, y, x+w, y+controlHeight)
		x += w + controlGap
	}
	return rects
}
