package asset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y += 7 {
		for x := 0; x < w; x += 7 {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePhotoDownscalesLandscape(t *testing.T) {
	img, err := DecodePhoto(bytes.NewReader(encodePNG(t, 2000, 1000)), DefaultOptions())
	if err != nil {
		t.Fatalf("DecodePhoto: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(1200, 600) {
		t.Fatalf("size = %v, want 1200x600", got)
	}
}

func TestDecodePhotoDownscalesPortrait(t *testing.T) {
	img, err := DecodePhoto(bytes.NewReader(encodePNG(t, 300, 1500)), DefaultOptions())
	if err != nil {
		t.Fatalf("DecodePhoto: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(240, 1200) {
		t.Fatalf("size = %v, want 240x1200", got)
	}
}

func TestDecodePhotoKeepsSmallImages(t *testing.T) {
	img, err := DecodePhoto(bytes.NewReader(encodePNG(t, 640, 480)), DefaultOptions())
	if err != nil {
		t.Fatalf("DecodePhoto: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(640, 480) {
		t.Fatalf("size = %v, want 640x480", got)
	}
}

func TestDecodePhotoRejectsGarbage(t *testing.T) {
	_, err := DecodePhoto(strings.NewReader("not an image"), DefaultOptions())
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestLoadPhotoNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadPhoto(path, DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), "broken.png") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}

func TestLoadPhotoMissingFile(t *testing.T) {
	_, err := LoadPhoto(filepath.Join(t.TempDir(), "missing.png"), DefaultOptions())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadOverlayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := os.WriteFile(path, encodePNG(t, 100, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := LoadOverlay(path, 1000)
	if err != nil {
		t.Fatalf("LoadOverlay: %v", err)
	}
	if img.Bounds().Dx() != 100 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestDefaultFrame(t *testing.T) {
	frame, err := LoadOverlay("", 1000)
	if err != nil {
		t.Fatalf("LoadOverlay: %v", err)
	}
	rgba, ok := frame.(*image.RGBA)
	if !ok {
		t.Fatalf("unexpected frame type %T", frame)
	}
	if got := rgba.RGBAAt(500, 500); got.A != 0 {
		t.Fatalf("window pixel = %v, want transparent", got)
	}
	if got := rgba.RGBAAt(10, 10); got != frameColor {
		t.Fatalf("border pixel = %v, want %v", got, frameColor)
	}
	if got := rgba.RGBAAt(70, 70); got.A != 0xff {
		t.Fatalf("rounded corner pixel = %v, want opaque", got)
	}
}

func TestDefaultFrameRejectsBadSize(t *testing.T) {
	if _, err := DefaultFrame(0); err == nil {
		t.Fatal("expected error")
	}
}

func TestPrepareRejectsEmpty(t *testing.T) {
	_, err := Prepare(image.NewRGBA(image.Rect(0, 0, 0, 0)), DefaultOptions())
	if !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
}

func TestPrepareHonoursOptions(t *testing.T) {
	img, err := Prepare(image.NewRGBA(image.Rect(0, 0, 400, 200)), Options{MaxDimension: 100})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(100, 50) {
		t.Fatalf("size = %v, want 100x50", got)
	}
}
