package tiltcard

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCaptureDir = "screenshots"

// CaptureFormat selects the file encoding for captures.
type CaptureFormat uint8

const (
	CapturePNG  CaptureFormat = iota // lossless PNG
	CaptureWebP                      // lossless WebP, usually smaller
)

func (f CaptureFormat) ext() string {
	if f == CaptureWebP {
		return "webp"
	}
	return "png"
}

type captureQueue struct {
	dir    string
	format CaptureFormat
	labels []string
}

// Capture queues a labeled capture of the card's screen rectangle, taken at
// the end of the next Draw. Files are written to the capture directory with a
// timestamped name.
func (c *TiltCard) Capture(label string) {
	c.captures.labels = append(c.captures.labels, label)
}

// SetCaptureDir sets the directory captures are written to
// (default "screenshots").
func (c *TiltCard) SetCaptureDir(dir string) {
	c.captures.dir = dir
}

// SetCaptureFormat sets the file encoding for captures.
func (c *TiltCard) SetCaptureFormat(f CaptureFormat) {
	c.captures.format = f
}

// flushCaptures reads back the area covered by the last draw once and
// writes one file per queued label.
func (c *TiltCard) flushCaptures(dst *ebiten.Image) {
	q := &c.captures
	if len(q.labels) == 0 {
		return
	}
	defer func() { q.labels = q.labels[:0] }()

	region := captureRegion(c.drawn, dst.Bounds())
	if region.Empty() {
		c.debugf("capture: card is off-screen, skipping %d capture(s)", len(q.labels))
		return
	}
	if err := os.MkdirAll(q.dir, 0o755); err != nil {
		warnf("capture: mkdir %s: %v", q.dir, err)
		return
	}

	img := readNRGBA(dst.SubImage(region).(*ebiten.Image))
	stamp := time.Now().Format("20060102_150405")
	for _, label := range q.labels {
		path := filepath.Join(q.dir, fmt.Sprintf("%s_%s.%s", stamp, sanitizeLabel(label), q.format.ext()))
		if err := writeImage(path, img, q.format); err != nil {
			warnf("capture: %v", err)
		}
	}
}

// captureRegion rounds the card rectangle outward to whole pixels and clips
// it to the destination image.
func captureRegion(card Rect, dst image.Rectangle) image.Rectangle {
	r := image.Rect(
		int(card.X), int(card.Y),
		int(card.X+card.Width+0.999), int(card.Y+card.Height+0.999),
	)
	return r.Intersect(dst)
}

// readNRGBA copies img's pixels and converts them from premultiplied to
// straight alpha.
func readNRGBA(img *ebiten.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 4*w*h)
	img.ReadPixels(pixels)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, bl, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			bl = uint8(min(int(bl)*255/int(a), 255))
		}
		out.Pix[i] = r
		out.Pix[i+1] = g
		out.Pix[i+2] = bl
		out.Pix[i+3] = a
	}
	return out
}

// writeImage encodes img to path in the given format.
func writeImage(path string, img image.Image, format CaptureFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	switch format {
	case CaptureWebP:
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
