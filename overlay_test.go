package tiltcard

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestHighlightPixels(t *testing.T) {
	img := highlightPixels(64)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("bounds = %v", b)
	}
	if a := img.NRGBAAt(10, 10).A; a != 200 {
		t.Errorf("diagonal alpha = %d, want 200", a)
	}
	if a := img.NRGBAAt(63, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
	if a := img.NRGBAAt(0, 63).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
	near, far := img.NRGBAAt(20, 10).A, img.NRGBAAt(30, 10).A
	if near < far {
		t.Errorf("alpha should fall off from the diagonal: %d < %d", near, far)
	}
}

func TestNewOverlayDefaults(t *testing.T) {
	o := NewOverlay(nil)
	n := o.Node()
	if n.Kind != NodeKindOverlay {
		t.Errorf("Kind = %d, want NodeKindOverlay", n.Kind)
	}
	if o.Alpha() != 0 {
		t.Errorf("Alpha = %v, want 0", o.Alpha())
	}
	if n.Image == nil || n.Image != defaultHighlight() {
		t.Error("nil image should select the default highlight")
	}
}

func TestOverlaySetImage(t *testing.T) {
	o := NewOverlay(nil)
	custom := NewRenderTexture(8, 8)
	defer custom.Dispose()
	o.SetImage(custom.Image())
	if o.Node().Image != custom.Image() {
		t.Error("SetImage did not replace the texture")
	}
	o.SetImage(nil)
	if o.Node().Image != defaultHighlight() {
		t.Error("SetImage(nil) should restore the default")
	}
}

func TestOverlaySync(t *testing.T) {
	o := NewOverlay(nil)
	s := EffectState{RotationX: 5, RotationY: -10, OverlayAlpha: 0.525}
	o.sync(&s, 300, 400, 10, 40)
	n := o.Node()
	if n.Alpha != 0.525 {
		t.Errorf("Alpha = %v, want 0.525", n.Alpha)
	}
	if n.Width != 300 || n.Height != 400 {
		t.Errorf("size = %vx%v, want 300x400", n.Width, n.Height)
	}
	if !approxEqual(n.X, 40, epsilon) || !approxEqual(n.Y, 20, epsilon) {
		t.Errorf("offset = (%v, %v), want (40, 20)", n.X, n.Y)
	}

	o.sync(&s, 300, 400, 10, 0)
	if n.X != 0 || n.Y != 0 {
		t.Error("zero shift should keep the overlay fixed")
	}

	s.OverlayAlpha = 1.4
	o.sync(&s, 300, 400, 10, 0)
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want clamped to 1", n.Alpha)
	}
}

func TestDecodeImagePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 6, 3))
	src.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 6x3", b)
	}
}

func TestDecodeImageGarbage(t *testing.T) {
	if _, err := DecodeImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "art.webp")
	if err := writeImage(path, testPattern(), CaptureWebP); err != nil {
		t.Fatal(err)
	}
	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 4x4", b)
	}

	if _, err := LoadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(filepath.Join(dir, "bad.png")); err == nil {
		t.Error("expected error for undecodable file")
	}
}
