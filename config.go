package tiltcard

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for Config. DefaultConfig returns a Config holding all of them.
const (
	DefaultMaxAngle           = 10.0
	DefaultDuration           = 200 * time.Millisecond
	DefaultMaxOverlayAlpha    = 0.7
	DefaultPerspectiveDamping = 1000.0
	DefaultGridSize           = 8
)

// Config controls a TiltCard's response to pointer input and how it renders.
// Zero-valued numeric fields are replaced by their defaults in Normalize.
type Config struct {
	// MaxAngle bounds the rotation on each axis, in degrees.
	MaxAngle float64 `yaml:"max_angle"`
	// Duration is the length of every transition.
	Duration time.Duration `yaml:"duration"`
	// Easing names the gween easing curve used by transitions
	// (see EasingByName). Empty selects "outQuad", a decelerating curve.
	Easing string `yaml:"easing"`
	// MaxOverlayAlpha is the overlay opacity reached at full tilt on both axes.
	MaxOverlayAlpha float64 `yaml:"max_overlay_alpha"`
	// DisableOverlay keeps the light overlay fully transparent. It is the
	// only way to turn the overlay off, since a zero MaxOverlayAlpha takes
	// the default.
	DisableOverlay bool `yaml:"disable_overlay"`
	// PerspectiveDamping divides the projective terms of the camera matrix.
	PerspectiveDamping float64 `yaml:"perspective_damping"`
	// CameraDistance is the viewer's distance from the card plane in pixels.
	CameraDistance float64 `yaml:"camera_distance"`
	// GridSize is the number of mesh cells per side used to draw the card.
	// More cells approximate the perspective warp more closely.
	GridSize int `yaml:"grid_size"`
	// HighlightShift moves the overlay highlight against the tilt direction,
	// in pixels at full tilt. Zero keeps the overlay fixed on the card.
	HighlightShift float64 `yaml:"highlight_shift"`
	// Debug enables stderr diagnostics.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the stock tilt configuration.
func DefaultConfig() Config {
	return Config{
		MaxAngle:           DefaultMaxAngle,
		Duration:           DefaultDuration,
		Easing:             "outQuad",
		MaxOverlayAlpha:    DefaultMaxOverlayAlpha,
		PerspectiveDamping: DefaultPerspectiveDamping,
		CameraDistance:     DefaultCameraDistance,
		GridSize:           DefaultGridSize,
	}
}

// Normalize fills zero-valued fields with their defaults.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.MaxAngle == 0 {
		c.MaxAngle = d.MaxAngle
	}
	if c.Duration == 0 {
		c.Duration = d.Duration
	}
	if c.Easing == "" {
		c.Easing = d.Easing
	}
	switch {
	case c.DisableOverlay:
		c.MaxOverlayAlpha = 0
	case c.MaxOverlayAlpha == 0:
		c.MaxOverlayAlpha = d.MaxOverlayAlpha
	}
	if c.PerspectiveDamping == 0 {
		c.PerspectiveDamping = d.PerspectiveDamping
	}
	if c.CameraDistance == 0 {
		c.CameraDistance = d.CameraDistance
	}
	if c.GridSize == 0 {
		c.GridSize = d.GridSize
	}
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	if c.MaxAngle <= 0 || c.MaxAngle >= 90 {
		errs = append(errs, fmt.Errorf("max_angle %v: must be in (0, 90)", c.MaxAngle))
	}
	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration %v: must be positive", c.Duration))
	}
	if c.MaxOverlayAlpha < 0 || c.MaxOverlayAlpha > 1 {
		errs = append(errs, fmt.Errorf("max_overlay_alpha %v: must be in [0, 1]", c.MaxOverlayAlpha))
	}
	if c.PerspectiveDamping <= 0 {
		errs = append(errs, fmt.Errorf("perspective_damping %v: must be positive", c.PerspectiveDamping))
	}
	if c.CameraDistance <= 0 {
		errs = append(errs, fmt.Errorf("camera_distance %v: must be positive", c.CameraDistance))
	}
	if c.GridSize < 1 || c.GridSize > 64 {
		errs = append(errs, fmt.Errorf("grid_size %d: must be in [1, 64]", c.GridSize))
	}
	if c.HighlightShift < 0 {
		errs = append(errs, fmt.Errorf("highlight_shift %v: must not be negative", c.HighlightShift))
	}
	if _, ok := EasingByName(c.Easing); !ok && c.Easing != "" {
		errs = append(errs, fmt.Errorf("easing %q: unknown curve", c.Easing))
	}
	if len(errs) > 0 {
		return fmt.Errorf("tiltcard config: %w", errors.Join(errs...))
	}
	return nil
}

// ParseConfig decodes YAML on top of DefaultConfig, so a document only needs
// to name the fields it changes. The result is validated.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse tiltcard config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read tiltcard config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
