package tiltcard

import (
	"image/color"
	"testing"
)

func TestColorRGBAPremultiplies(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.5}.RGBA()
	want := color.RGBA{R: 128, G: 64, B: 0, A: 128}
	if got != want {
		t.Errorf("RGBA = %v, want %v", got, want)
	}
	if got := ColorWhite.RGBA(); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("white = %v", got)
	}
	if got := (Color{R: 2, G: -1, B: 1, A: 3}).RGBA(); got != (color.RGBA{R: 255, G: 0, B: 255, A: 255}) {
		t.Errorf("out-of-range components should clamp, got %v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{110, 70, true},
		{60, 45, true},
		{9.9, 45, false},
		{60, 70.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if r.Empty() || !(Rect{Width: 0, Height: 5}).Empty() {
		t.Error("Empty mismatch")
	}
}

func TestPhaseStrings(t *testing.T) {
	if PhaseResting.String() != "resting" || PhaseTilted.String() != "tilted" {
		t.Error("Phase strings")
	}
	names := map[PointerPhase]string{
		PointerDown: "down", PointerMove: "move", PointerUp: "up",
		PointerCancel: "cancel", PointerPhase(42): "unknown",
	}
	for p, want := range names {
		if p.String() != want {
			t.Errorf("%d.String() = %q, want %q", p, p.String(), want)
		}
	}
}

func TestClamp(t *testing.T) {
	if clamp(-2, -1, 1) != -1 || clamp(2, -1, 1) != 1 || clamp(0.5, -1, 1) != 0.5 {
		t.Error("clamp")
	}
	if clamp01(-0.1) != 0 || clamp01(1.1) != 1 || clamp01(0.3) != 0.3 {
		t.Error("clamp01")
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	b := Rect{X: 5, Y: 40, Width: 50, Height: 60}
	if got := a.Union(b); got != (Rect{X: 5, Y: 20, Width: 105, Height: 80}) {
		t.Errorf("Union = %+v", got)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union with empty = %+v, want %+v", got, a)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty Union = %+v, want %+v", got, b)
	}
}
