package tiltcard

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG for LoadImage
	_ "image/png"  // register PNG for LoadImage
	"io"
	"math"
	"os"

	_ "github.com/ftrvxmtrx/tga" // register TGA for LoadImage
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/webp" // register WebP for LoadImage
)

// defaultOverlaySize is the edge length of the generated highlight texture.
// It is stretched to the card size when drawn.
const defaultOverlaySize = 256

// Overlay is the specular light layer drawn above the tilt target. Its
// opacity follows the card's OverlayAlpha; its highlight can slide against
// the tilt direction (Config.HighlightShift) so the light appears fixed while
// the card turns under it.
type Overlay struct {
	node *Node
}

// NewOverlay creates an overlay that draws img. A nil img selects the
// generated diagonal highlight.
func NewOverlay(img *ebiten.Image) *Overlay {
	if img == nil {
		img = defaultHighlight()
	}
	n := NewImage("light_overlay", img)
	n.Kind = NodeKindOverlay
	n.Alpha = 0
	return &Overlay{node: n}
}

// Node returns the node that displays the overlay.
func (o *Overlay) Node() *Node {
	return o.node
}

// Alpha returns the overlay's current opacity.
func (o *Overlay) Alpha() float64 {
	return o.node.Alpha
}

// SetImage replaces the highlight texture. A nil img restores the default.
func (o *Overlay) SetImage(img *ebiten.Image) {
	if img == nil {
		img = defaultHighlight()
	}
	o.node.Image = img
}

// sync copies the animated state onto the overlay node: opacity, size, and
// the highlight offset for the current rotation.
func (o *Overlay) sync(s *EffectState, w, h, maxAngle, shift float64) {
	o.node.Alpha = clamp01(s.OverlayAlpha)
	o.node.Width, o.node.Height = w, h
	if shift <= 0 || maxAngle <= 0 {
		o.node.X, o.node.Y = 0, 0
		return
	}
	o.node.X = -s.RotationY / maxAngle * shift
	o.node.Y = s.RotationX / maxAngle * shift
}

var highlightImage *ebiten.Image

// defaultHighlight lazily generates a soft white band running from the top
// left to the bottom right, brightest along the diagonal.
func defaultHighlight() *ebiten.Image {
	if highlightImage == nil {
		highlightImage = ebiten.NewImageFromImage(highlightPixels(defaultOverlaySize))
	}
	return highlightImage
}

// highlightPixels builds the highlight texture on the CPU. Alpha falls off
// with a smoothstep from the anti-diagonal distance.
func highlightPixels(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	inv := 1.0 / float64(size-1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// d is 0 on the line x == y and 1 at the far corners.
			d := math.Abs(float64(x)-float64(y)) * inv
			t := clamp01(1 - d/0.6)
			a := t * t * (3 - 2*t)
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a*200 + 0.5)})
		}
	}
	return img
}

// LoadImage reads an image file (PNG, JPEG, TGA or WebP) into an
// *ebiten.Image.
func LoadImage(path string) (*ebiten.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	img, err := DecodeImage(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes any registered image format from r.
func DecodeImage(r io.Reader) (*ebiten.Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("decode image: empty %s image", format)
	}
	return ebiten.NewImageFromImage(src), nil
}
