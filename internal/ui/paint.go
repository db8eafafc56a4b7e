package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/charmbracelet/log"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/exp/shiny/screen"

	"github.com/example/smilecam/internal/editor"
	"github.com/example/smilecam/internal/flow"
	"github.com/example/smilecam/internal/render"
	"github.com/example/smilecam/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// paintState is an immutable snapshot of everything a frame needs.
type paintState struct {
	layout    Layout
	screen    flow.Screen
	theme     *theme.Theme
	comp      *render.Compositor
	photo     image.Image
	transform editor.Transform
	overlay   image.Image
	exported  *image.RGBA
	nickname  string
	savedPath string
	loading   bool

	pathInput TextInput
	nickInput TextInput
	zoom      Slider
	controls  []control
	hover     int
	pressed   int

	message    string
	messageErr bool

	confetti *render.Confetti
	elapsed  time.Duration
}

type canvasKey struct {
	photo     image.Image
	transform editor.Transform
	overlay   image.Image
}

type shadowKey struct {
	img  *image.RGBA
	size image.Point
}

// painter keeps render caches. It is owned by the paint goroutine.
type painter struct {
	logger *log.Logger
	canvas *image.RGBA
	key    canvasKey
	valid  bool

	shadow     *image.RGBA
	shadowAt   image.Point
	shadowFor  shadowKey
	backdrop   *image.RGBA
	backdropTh *theme.Theme
}

func (p *painter) composite(st paintState) *image.RGBA {
	size := st.layout.canvasSize
	if p.canvas == nil || p.canvas.Bounds().Dx() != size {
		p.canvas = image.NewRGBA(image.Rect(0, 0, size, size))
		p.valid = false
	}
	k := canvasKey{photo: st.photo, transform: st.transform, overlay: st.overlay}
	if !p.valid || p.key != k {
		st.comp.Render(p.canvas, st.photo, st.transform, st.overlay)
		p.key, p.valid = k, true
	}
	return p.canvas
}

func (p *painter) checker(st paintState) *image.RGBA {
	r := st.layout.Canvas
	if p.backdrop == nil || p.backdrop.Bounds() != r || p.backdropTh != st.theme {
		p.backdrop = image.NewRGBA(r)
		render.Checkerboard(p.backdrop, r, 12, st.theme.CheckerLight, st.theme.CheckerDark)
		p.backdropTh = st.theme
	}
	return p.backdrop
}

func (p *painter) drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(st.layout.Size)
	if err != nil {
		p.logger.Warn("new buffer", "err", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()
	th := st.theme

	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}

	switch st.screen {
	case flow.Upload:
		p.drawPrompt(dst, st, "Choose a photo", st.pathInput)
		if st.loading {
			p.drawCaption(dst, st, "Loading…")
		}
	case flow.Nickname:
		p.drawCanvas(dst, st)
		dim(dst, st.layout.Canvas, th.Background)
		p.drawPrompt(dst, st, "What's your nickname?", st.nickInput)
	case flow.Editor:
		p.drawCanvas(dst, st)
	case flow.Processing:
		p.drawCanvas(dst, st)
		dim(dst, st.layout.Canvas, th.Background)
		drawCentered(dst, st.layout.Canvas, "Processing…", titleFace, th.Foreground)
	case flow.Preview:
		p.drawPreview(dst, st)
	case flow.ThankYou:
		p.drawThanks(dst, st)
	}
	if ctx.Err() != nil {
		return
	}

	p.drawToolbar(dst, st)
	if st.message != "" {
		p.drawMessage(dst, st)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// drawCanvas shows the live composite scaled into the canvas rectangle.
func (p *painter) drawCanvas(dst *image.RGBA, st paintState) {
	r := st.layout.Canvas
	draw.Draw(dst, r, p.checker(st), r.Min, draw.Src)
	if st.photo == nil {
		return
	}
	canvas := p.composite(st)
	xdraw.ApproxBiLinear.Scale(dst, r, canvas, canvas.Bounds(), draw.Over, nil)
}

func (p *painter) drawPrompt(dst *image.RGBA, st paintState, title string, in TextInput) {
	th := st.theme
	input := st.layout.Input()
	panel := image.Rect(input.Min.X-24, input.Min.Y-72, input.Max.X+24, input.Max.Y+24).Intersect(dst.Bounds())
	draw.Draw(dst, panel, image.NewUniform(th.Panel), image.Point{}, draw.Src)
	strokeRect(dst, panel, th.PanelBorder, 1)
	drawCentered(dst, image.Rect(panel.Min.X, panel.Min.Y+8, panel.Max.X, input.Min.Y-8), title, titleFace, th.Foreground)
	drawInput(dst, input, in, th)
}

func (p *painter) drawCaption(dst *image.RGBA, st paintState, s string) {
	input := st.layout.Input()
	r := image.Rect(input.Min.X, input.Max.Y+28, input.Max.X, input.Max.Y+56)
	drawCentered(dst, r, s, smallFace, st.theme.Muted)
}

// drawPreview presents the export on a soft shadow, scaled to the canvas
// area.
func (p *painter) drawPreview(dst *image.RGBA, st paintState) {
	if st.exported == nil {
		return
	}
	opts := render.DefaultShadowOptions()
	pad := 2 * (opts.Radius + max(abs(opts.Offset.X), abs(opts.Offset.Y)))
	side := st.layout.Canvas.Dx() - pad
	if side <= 0 {
		side = st.layout.Canvas.Dx()
	}
	k := shadowKey{img: st.exported, size: image.Pt(side, side)}
	if p.shadow == nil || p.shadowFor != k {
		scaled := image.NewRGBA(image.Rect(0, 0, side, side))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), st.exported, st.exported.Bounds(), draw.Src, nil)
		p.shadow, p.shadowAt = render.DropShadow(scaled, opts)
		p.shadowFor = k
	}
	c := st.layout.Canvas
	origin := image.Pt(c.Min.X+(c.Dx()-side)/2, c.Min.Y+(c.Dy()-side)/2).Sub(p.shadowAt)
	r := p.shadow.Bounds().Add(origin)
	draw.Draw(dst, r, p.shadow, image.Point{}, draw.Over)
}

func (p *painter) drawThanks(dst *image.RGBA, st paintState) {
	th := st.theme
	c := st.layout.Canvas
	name := st.nickname
	if name == "" {
		name = "friend"
	}
	drawCentered(dst, image.Rect(c.Min.X, c.Min.Y, c.Max.X, c.Min.Y+c.Dy()/2), fmt.Sprintf("Thanks, %s!", name), titleFace, th.Foreground)
	if st.savedPath != "" {
		drawCentered(dst, image.Rect(c.Min.X, c.Min.Y+c.Dy()/2, c.Max.X, c.Min.Y+c.Dy()/2+40), "Saved to "+st.savedPath, smallFace, th.Muted)
	}
	if st.confetti != nil {
		st.confetti.Draw(dst, image.Rect(0, 0, st.layout.Size.X, st.layout.Toolbar.Min.Y), st.elapsed)
	}
}

func (p *painter) drawToolbar(dst *image.RGBA, st paintState) {
	th := st.theme
	bar := st.layout.Toolbar
	draw.Draw(dst, bar, image.NewUniform(th.Panel), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(bar.Min.X, bar.Min.Y, bar.Max.X, bar.Min.Y+1), image.NewUniform(th.PanelBorder), image.Point{}, draw.Src)
	for i, c := range st.controls {
		switch c.kind {
		case kindSlider:
			s := st.zoom
			s.rect = c.rect
			drawSlider(dst, s, th)
		default:
			state := StateDefault
			if i == st.pressed {
				state = StatePressed
			} else if i == st.hover {
				state = StateHover
			}
			drawButton(dst, c, state, th)
		}
	}
}

func (p *painter) drawMessage(dst *image.RGBA, st paintState) {
	th := st.theme
	col := th.Foreground
	if st.messageErr {
		col = th.Error
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: bodyFace}
	wmsg := d.MeasureString(st.message).Ceil()
	m := bodyFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	px := (st.layout.Size.X - wmsg) / 2
	py := st.layout.Toolbar.Min.Y - 16 - descent
	rect := image.Rect(px-12, py-ascent-8, px+wmsg+12, py+descent+8)
	draw.Draw(dst, rect, image.NewUniform(withAlpha(th.Panel, 235)), image.Point{}, draw.Over)
	strokeRect(dst, rect, col, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(st.message)
}

func dim(dst *image.RGBA, r image.Rectangle, col color.RGBA) {
	draw.Draw(dst, r, image.NewUniform(withAlpha(col, 170)), image.Point{}, draw.Over)
}

// withAlpha returns col at the given opacity, premultiplied.
func withAlpha(col color.RGBA, a uint8) color.RGBA {
	f := float64(a) / 255
	return color.RGBA{uint8(float64(col.R) * f), uint8(float64(col.G) * f), uint8(float64(col.B) * f), a}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
