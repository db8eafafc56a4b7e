// Package theme holds the colours used to paint the editor chrome.
package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes ships the built-in theme files.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme is the palette for every screen of the editor.
type Theme struct {
	Name string

	Background color.RGBA // window background around the canvas
	Foreground color.RGBA // body text
	Muted      color.RGBA // hints and secondary labels
	Error      color.RGBA

	Panel       color.RGBA // modal and toolbar panels
	PanelBorder color.RGBA

	Accent     color.RGBA // primary buttons
	AccentText color.RGBA

	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	SliderTrack color.RGBA
	SliderFill  color.RGBA
	SliderKnob  color.RGBA

	InputBackground color.RGBA
	InputText       color.RGBA
	Caret           color.RGBA

	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the light theme compiled into the binary. It is the base
// every parsed theme starts from.
func Default() *Theme {
	return &Theme{
		Name:                  "default",
		Background:            color.RGBA{0xf4, 0xf1, 0xea, 0xff},
		Foreground:            color.RGBA{0x22, 0x22, 0x2a, 0xff},
		Muted:                 color.RGBA{0x77, 0x77, 0x80, 0xff},
		Error:                 color.RGBA{0xc6, 0x28, 0x28, 0xff},
		Panel:                 color.RGBA{0xff, 0xff, 0xff, 0xff},
		PanelBorder:           color.RGBA{0xdd, 0xd8, 0xcc, 0xff},
		Accent:                color.RGBA{0x55, 0x63, 0xde, 0xff},
		AccentText:            color.RGBA{0xff, 0xff, 0xff, 0xff},
		ButtonBackground:      color.RGBA{0xe6, 0xe2, 0xd8, 0xff},
		ButtonBackgroundHover: color.RGBA{0xd8, 0xd3, 0xc6, 0xff},
		ButtonBackgroundPress: color.RGBA{0xc4, 0xbe, 0xae, 0xff},
		ButtonText:            color.RGBA{0x22, 0x22, 0x2a, 0xff},
		ButtonBorder:          color.RGBA{0xb0, 0xa8, 0x96, 0xff},
		SliderTrack:           color.RGBA{0xd8, 0xd3, 0xc6, 0xff},
		SliderFill:            color.RGBA{0x55, 0x63, 0xde, 0xff},
		SliderKnob:            color.RGBA{0xff, 0xcc, 0x00, 0xff},
		InputBackground:       color.RGBA{0xff, 0xff, 0xff, 0xff},
		InputText:             color.RGBA{0x22, 0x22, 0x2a, 0xff},
		Caret:                 color.RGBA{0x55, 0x63, 0xde, 0xff},
		CheckerLight:          color.RGBA{0xe8, 0xe8, 0xe8, 0xff},
		CheckerDark:           color.RGBA{0xc8, 0xc8, 0xc8, 0xff},
	}
}
