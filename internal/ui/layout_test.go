package ui

import (
	"image"
	"testing"
)

func TestComputeLayoutFitsSquareCanvas(t *testing.T) {
	l := computeLayout(760, 840, 1000)
	if l.Canvas.Dx() != l.Canvas.Dy() {
		t.Fatalf("canvas not square: %v", l.Canvas)
	}
	if l.Canvas.Dx() != 760-2*margin {
		t.Fatalf("canvas width = %d", l.Canvas.Dx())
	}
	if l.Canvas.Max.Y > l.Toolbar.Min.Y {
		t.Fatalf("canvas %v overlaps toolbar %v", l.Canvas, l.Toolbar)
	}
	if l.Toolbar != image.Rect(0, 840-toolbarHeight, 760, 840) {
		t.Fatalf("toolbar = %v", l.Toolbar)
	}
}

func TestToCanvasMapsWindowPoints(t *testing.T) {
	l := computeLayout(1000+2*margin, 1000+toolbarHeight+2*margin, 1000)
	if l.Scale != 1 {
		t.Fatalf("scale = %v, want 1", l.Scale)
	}
	x, y, inside := l.ToCanvas(float64(l.Canvas.Min.X+250), float64(l.Canvas.Min.Y+400))
	if !inside || x != 250 || y != 400 {
		t.Fatalf("ToCanvas = %v,%v,%v", x, y, inside)
	}
	if _, _, inside := l.ToCanvas(0, 0); inside {
		t.Fatal("window corner should be outside the canvas")
	}

	half := computeLayout(500+2*margin, 500+toolbarHeight+2*margin, 1000)
	x, y, _ = half.ToCanvas(float64(half.Canvas.Min.X+100), float64(half.Canvas.Min.Y+50))
	if x != 200 || y != 100 {
		t.Fatalf("scaled ToCanvas = %v,%v, want 200,100", x, y)
	}
}

func TestToolbarRectsCentered(t *testing.T) {
	l := computeLayout(800, 900, 1000)
	rects := l.toolbarRects([]int{100, 200})
	if len(rects) != 2 {
		t.Fatalf("got %d rects", len(rects))
	}
	left := rects[0].Min.X - l.Toolbar.Min.X
	right := l.Toolbar.Max.X - rects[1].Max.X
	if left != right {
		t.Fatalf("not centered: left %d right %d", left, right)
	}
	if rects[1].Min.X-rects[0].Max.X != controlGap {
		t.Fatalf("unexpected gap")
	}
}

func TestTinyWindow(t *testing.T) {
	l := computeLayout(10, 10, 1000)
	if l.Canvas.Dx() < 1 || l.Scale <= 0 {
		t.Fatalf("degenerate layout %+v", l)
	}
}
