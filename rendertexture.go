package tiltcard

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderTexture is a persistent offscreen canvas. A TiltCard composites its
// children into one before warping the result onto the screen.
type RenderTexture struct {
	image *ebiten.Image
	w, h  int
}

// NewRenderTexture creates an offscreen canvas of the given size.
// Non-positive sizes are raised to 1.
func NewRenderTexture(w, h int) *RenderTexture {
	w, h = max(w, 1), max(h, 1)
	return &RenderTexture{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (rt *RenderTexture) Image() *ebiten.Image {
	return rt.image
}

// Width returns the texture width in pixels.
func (rt *RenderTexture) Width() int {
	return rt.w
}

// Height returns the texture height in pixels.
func (rt *RenderTexture) Height() int {
	return rt.h
}

// Clear fills the texture with transparent black.
func (rt *RenderTexture) Clear() {
	rt.image.Clear()
}

// Resize replaces the backing image when the size changes. Contents are lost.
func (rt *RenderTexture) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == rt.w && height == rt.h {
		return
	}
	rt.image.Deallocate()
	rt.image = ebiten.NewImage(width, height)
	rt.w = width
	rt.h = height
}

// Dispose releases the underlying image. The RenderTexture must not be used
// after Dispose.
func (rt *RenderTexture) Dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
}
