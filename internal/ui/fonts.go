package ui

import (
	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	smallFace font.Face
	bodyFace  font.Face
	titleFace font.Face
)

func init() {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal("parse font", "err", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		log.Fatal("parse font", "err", err)
	}
	smallFace = mustFace(regular, 14)
	bodyFace = mustFace(regular, 18)
	titleFace = mustFace(bold, 32)
}

func mustFace(f *opentype.Font, size float64) font.Face {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatal("font face", "size", size, "err", err)
	}
	return face
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
