package tiltcard

import "math"

// EffectState is the animated state of a TiltCard.
type EffectState struct {
	RotationX    float64 // degrees; positive tilts the top edge away
	RotationY    float64 // degrees; positive tilts the right edge away
	OverlayAlpha float64 // [0, 1]
	Center       Vec2    // pivot for rotation and perspective
}

// AtRest reports whether the state has no rotation.
func (s EffectState) AtRest() bool {
	return s.RotationX == 0 && s.RotationY == 0
}

// Target is the destination of a transition.
type Target struct {
	RotationX    float64
	RotationY    float64
	OverlayAlpha float64
}

// RestTarget is the untilted, unlit target.
var RestTarget = Target{}

// TargetForPointer maps a pointer position to rotation angles around center.
//
// The horizontal offset drives RotationY and the vertical offset drives
// RotationX, with Y inverted so that pressing above the centre tilts the top
// edge away. Offsets are normalised by the centre coordinates and clamped to
// [-1, 1], so neither angle ever exceeds maxAngle. A zero centre component
// produces no rotation on the matching axis.
func TargetForPointer(x, y float64, center Vec2, maxAngle, maxOverlayAlpha float64) Target {
	var nx, ny float64
	if center.X > 0 {
		nx = clamp((x-center.X)/center.X, -1, 1)
	}
	if center.Y > 0 {
		ny = clamp((center.Y-y)/center.Y, -1, 1)
	}
	t := Target{
		RotationX: ny * maxAngle,
		RotationY: nx * maxAngle,
	}
	t.OverlayAlpha = OverlayAlphaFor(t.RotationX, t.RotationY, maxAngle, maxOverlayAlpha)
	return t
}

// OverlayAlphaFor returns the overlay opacity for a rotation: the combined
// magnitude relative to the largest possible magnitude, scaled to
// maxOverlayAlpha. The result never exceeds maxOverlayAlpha.
func OverlayAlphaFor(rotX, rotY, maxAngle, maxOverlayAlpha float64) float64 {
	if maxAngle <= 0 {
		return 0
	}
	mag := (math.Abs(rotX) + math.Abs(rotY)) / (2 * maxAngle)
	return clamp01(mag) * maxOverlayAlpha
}
