package tiltcard

import (
	"strings"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition animates an EffectState's rotation and overlay alpha toward a
// Target. The three channels share one duration and easing curve and finish
// together. Call Update(dt) each tick; values are written into the state.
//
// Each channel stays between its start and target value, so curves that
// overshoot (ease.OutBack, ease.OutElastic) cannot push the state past the
// target.
//
// There is no animation manager. A TiltCard owns at most one Transition and
// replaces it whenever a new target arrives.
type Transition struct {
	tweens    [3]*gween.Tween
	state     *EffectState
	from      Target
	target    Target
	Done      bool
	cancelled bool
}

// NewTransition creates a transition from the current values in state to
// target. With a non-positive duration the first Update writes the target and
// reports done.
func NewTransition(state *EffectState, target Target, duration time.Duration, fn ease.TweenFunc) *Transition {
	if fn == nil {
		fn = ease.OutQuad
	}
	d := float32(duration.Seconds())
	return &Transition{
		state: state,
		from: Target{
			RotationX:    state.RotationX,
			RotationY:    state.RotationY,
			OverlayAlpha: state.OverlayAlpha,
		},
		target: target,
		tweens: [3]*gween.Tween{
			gween.New(float32(state.RotationX), float32(target.RotationX), d, fn),
			gween.New(float32(state.RotationY), float32(target.RotationY), d, fn),
			gween.New(float32(state.OverlayAlpha), float32(target.OverlayAlpha), d, fn),
		},
	}
}

// Target returns where the transition is heading.
func (t *Transition) Target() Target {
	return t.target
}

// Cancel stops the transition where it is. The state keeps its current
// values and later Updates do nothing.
func (t *Transition) Cancel() {
	t.cancelled = true
	t.Done = true
}

// Cancelled reports whether Cancel was called.
func (t *Transition) Cancelled() bool {
	return t.cancelled
}

// Update advances all channels by dt seconds and writes the interpolated
// values into the state. On the finishing step the exact target values are
// written so float32 tween precision never leaves a residue.
func (t *Transition) Update(dt float32) {
	if t.Done {
		return
	}
	rx, doneX := t.tweens[0].Update(dt)
	ry, doneY := t.tweens[1].Update(dt)
	a, doneA := t.tweens[2].Update(dt)

	if doneX && doneY && doneA {
		t.state.RotationX = t.target.RotationX
		t.state.RotationY = t.target.RotationY
		t.state.OverlayAlpha = t.target.OverlayAlpha
		t.Done = true
		return
	}
	t.state.RotationX = between(float64(rx), t.from.RotationX, t.target.RotationX)
	t.state.RotationY = between(float64(ry), t.from.RotationY, t.target.RotationY)
	t.state.OverlayAlpha = clamp01(between(float64(a), t.from.OverlayAlpha, t.target.OverlayAlpha))
}

// between clamps v to the segment joining a and b.
func between(v, a, b float64) float64 {
	return clamp(v, min(a, b), max(a, b))
}

var easings = map[string]ease.TweenFunc{
	"linear":    ease.Linear,
	"inquad":    ease.InQuad,
	"outquad":   ease.OutQuad,
	"inoutquad": ease.InOutQuad,
	"outcubic":  ease.OutCubic,
	"outquart":  ease.OutQuart,
	"outquint":  ease.OutQuint,
	"outsine":   ease.OutSine,
	"outexpo":   ease.OutExpo,
	"outcirc":   ease.OutCirc,
}

// EasingByName looks up a gween easing curve by its camel-case name
// ("outQuad", "linear", ...). Matching ignores case.
func EasingByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[strings.ToLower(name)]
	return fn, ok
}
