package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/smilecam/internal/theme"
)

// ButtonState is the visual state of a control.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

type controlKind int

const (
	kindButton controlKind = iota
	kindSlider
)

// control is one toolbar entry for the current screen.
type control struct {
	label   string
	kind    controlKind
	primary bool
	width   int
	action  func()
	rect    image.Rectangle
}

func (c *control) Activate() {
	if c.action != nil {
		c.action()
	}
}

func buttonWidth(label string) int {
	return max(textWidth(bodyFace, label)+32, 96)
}

func drawButton(dst *image.RGBA, c control, state ButtonState, th *theme.Theme) {
	bg, fg := th.ButtonBackground, th.ButtonText
	switch {
	case c.primary:
		bg, fg = th.Accent, th.AccentText
		if state != StateDefault {
			bg = shade(bg, 0.85)
		}
	case state == StateHover:
		bg = th.ButtonBackgroundHover
	case state == StatePressed:
		bg = th.ButtonBackgroundPress
	}
	draw.Draw(dst, c.rect, image.NewUniform(bg), image.Point{}, draw.Src)
	if !c.primary {
		strokeRect(dst, c.rect, th.ButtonBorder, 1)
	}
	drawCentered(dst, c.rect, c.label, bodyFace, fg)
}

// Slider picks a value in [Min, Max] snapped to Step.
type Slider struct {
	Min, Max, Step float64
	Value          float64
	rect           image.Rectangle
	dragging       bool
}

const sliderPad = 10

func newZoomSlider() Slider {
	return Slider{Min: 0.1, Max: 5, Step: 0.01, Value: 1}
}

// valueAt converts a window x coordinate on the track into a snapped value.
func (s Slider) valueAt(x int) float64 {
	span := s.rect.Dx() - 2*sliderPad
	if span <= 0 || s.Max <= s.Min {
		return s.Min
	}
	frac := float64(x-s.rect.Min.X-sliderPad) / float64(span)
	frac = math.Max(0, math.Min(1, frac))
	return s.snap(s.Min + frac*(s.Max-s.Min))
}

func (s Slider) snap(v float64) float64 {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		v = math.Round(v*1e6) / 1e6
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

func (s Slider) knobX() int {
	span := s.rect.Dx() - 2*sliderPad
	if s.Max <= s.Min {
		return s.rect.Min.X + sliderPad
	}
	frac := (s.Value - s.Min) / (s.Max - s.Min)
	frac = math.Max(0, math.Min(1, frac))
	return s.rect.Min.X + sliderPad + int(math.Round(frac*float64(span)))
}

func (s Slider) label() string {
	return fmt.Sprintf("Zoom %.2f×", s.Value)
}

func drawSlider(dst *image.RGBA, s Slider, th *theme.Theme) {
	mid := s.rect.Min.Y + s.rect.Dy()/2
	track := image.Rect(s.rect.Min.X+sliderPad, mid-2, s.rect.Max.X-sliderPad, mid+2)
	draw.Draw(dst, track, image.NewUniform(th.SliderTrack), image.Point{}, draw.Src)
	kx := s.knobX()
	fill := image.Rect(track.Min.X, track.Min.Y, kx, track.Max.Y)
	draw.Draw(dst, fill, image.NewUniform(th.SliderFill), image.Point{}, draw.Src)
	knob := image.Rect(kx-7, mid-9, kx+7, mid+9)
	draw.Draw(dst, knob, image.NewUniform(th.SliderKnob), image.Point{}, draw.Src)
	strokeRect(dst, knob, th.ButtonBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Muted), Face: smallFace}
	d.Dot = fixed.P(s.rect.Min.X+sliderPad, s.rect.Min.Y+smallFace.Metrics().Ascent.Ceil()-4)
	d.DrawString(s.label())
}

// TextInput is a single-line editable field.
type TextInput struct {
	Value       string
	Placeholder string
	Max         int
}

// Insert appends r unless the field is full or r is not printable.
func (t *TextInput) Insert(r rune) bool {
	if r < 0x20 || r == 0x7f {
		return false
	}
	if t.Max > 0 && utf8.RuneCountInString(t.Value) >= t.Max {
		return false
	}
	t.Value += string(r)
	return true
}

// Backspace removes the last rune.
func (t *TextInput) Backspace() bool {
	if t.Value == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(t.Value)
	t.Value = t.Value[:len(t.Value)-size]
	return true
}

// Reset empties the field.
func (t *TextInput) Reset() { t.Value = "" }

func drawInput(dst *image.RGBA, rect image.Rectangle, in TextInput, th *theme.Theme) {
	draw.Draw(dst, rect, image.NewUniform(th.InputBackground), image.Point{}, draw.Src)
	strokeRect(dst, rect, th.Accent, 2)
	text, col := in.Value, th.InputText
	if text == "" {
		text, col = in.Placeholder, th.Muted
	}
	inner := rect.Inset(12)
	// show the tail of long values
	for text != "" && textWidth(bodyFace, text) > inner.Dx()-4 {
		_, size := utf8.DecodeRuneInString(text)
		text = text[size:]
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: bodyFace}
	ascent := bodyFace.Metrics().Ascent.Ceil()
	descent := bodyFace.Metrics().Descent.Ceil()
	baseline := rect.Min.Y + (rect.Dy()-ascent-descent)/2 + ascent
	d.Dot = fixed.P(inner.Min.X, baseline)
	d.DrawString(text)
	caretX := inner.Min.X
	if in.Value != "" {
		caretX = d.Dot.X.Ceil() + 1
	}
	caret := image.Rect(caretX, baseline-ascent, caretX+2, baseline+descent)
	draw.Draw(dst, caret, image.NewUniform(th.Caret), image.Point{}, draw.Src)
}

func drawCentered(dst *image.RGBA, rect image.Rectangle, s string, face font.Face, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	w := d.MeasureString(s).Ceil()
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	d.Dot = fixed.P(rect.Min.X+(rect.Dx()-w)/2, rect.Min.Y+(rect.Dy()-ascent-descent)/2+ascent)
	d.DrawString(s)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	src := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), c.A}
}
