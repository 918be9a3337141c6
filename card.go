package tiltcard

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// TiltEventType identifies a kind of TiltEvent.
type TiltEventType uint8

const (
	EventTargetChanged TiltEventType = iota // pointer input started a transition toward a new target
	EventSettled                            // the active transition reached its target
	EventPhaseChanged                       // the card moved between resting and tilted
)

// TiltEvent describes a change in a TiltCard, for listeners outside the
// draw loop (game logic, ECS worlds).
type TiltEvent struct {
	Type    TiltEventType
	CardID  uint32
	Pointer PointerPhase // valid for EventTargetChanged
	X, Y    float64      // card-local pointer position, valid for EventTargetChanged
	Target  Target
	State   EffectState
	From    Phase // valid for EventPhaseChanged
	Phase   Phase
}

// EventSink receives every TiltEvent a card emits.
type EventSink interface {
	EmitTiltEvent(event TiltEvent)
}

// TiltCard applies a pointer-driven pseudo-3D tilt to a card and lights it
// with a specular overlay whose opacity follows the tilt.
//
// Children are bound once with Attach. The card picks its tilt target from
// them, stacks the overlay above it, and from then on composites every child
// into an offscreen canvas that is drawn through a perspective matrix built
// from the current rotation.
//
// All methods must be called from the Ebitengine goroutine.
type TiltCard struct {
	// X and Y place the card's top-left corner on the screen.
	X, Y float64

	id     uint32
	cfg    Config
	easing ease.TweenFunc

	width, height float64

	root     *Node
	target   *Node
	overlay  *Overlay
	attached bool

	state      EffectState
	transition *Transition
	phase      Phase
	pressed    bool

	camera *Camera
	mesh   tiltMesh
	canvas *RenderTexture
	drawn  Rect // screen area covered by the last Draw
	imgOp  ebiten.DrawImageOptions
	triOp  ebiten.DrawTrianglesOptions

	source      *PointerSource
	injectQueue []PointerEvent
	capturing   bool
	testRunner  *TestRunner

	sink          EventSink
	phaseHandlers []func(from, to Phase)

	captures captureQueue

	debug bool
}

// NewTiltCard creates an unattached card. Zero-valued config fields take
// their defaults (see Config.Normalize); out-of-range fields are an error.
func NewTiltCard(cfg Config) (*TiltCard, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fn, _ := EasingByName(cfg.Easing)
	cam := NewCamera()
	cam.Distance = cfg.CameraDistance
	c := &TiltCard{
		id:      nextNodeID(),
		cfg:     cfg,
		easing:  fn,
		root:    NewContainer("tilt_root"),
		overlay: NewOverlay(nil),
		camera:  cam,
		debug:   cfg.Debug,
	}
	c.captures.dir = defaultCaptureDir
	return c, nil
}

// ID returns the card's identifier, carried by every TiltEvent it emits.
func (c *TiltCard) ID() uint32 {
	return c.id
}

// Config returns the active configuration.
func (c *TiltCard) Config() Config {
	return c.cfg
}

// ApplyConfig swaps in a new configuration. The running transition finishes
// with the duration and curve it started with; later transitions use the new
// values.
func (c *TiltCard) ApplyConfig(cfg Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	fn, _ := EasingByName(cfg.Easing)
	c.cfg = cfg
	c.easing = fn
	c.camera.Distance = cfg.CameraDistance
	c.debug = cfg.Debug
	c.debugf("config applied: max_angle=%v duration=%v easing=%s", cfg.MaxAngle, cfg.Duration, cfg.Easing)
	return nil
}

// --- Binding ---

// Attach adds children to the card and binds the tilt target: the first
// child of kind NodeKindCard, or failing that the first child. The overlay is
// inserted directly above the target.
//
// Attach binds once. It reports whether a target is bound; later calls, and a
// call with no children, leave the card unbound and return false. An unbound
// card ignores pointer input and draws its children untransformed.
func (c *TiltCard) Attach(children ...*Node) bool {
	if c.attached {
		c.debugf("attach ignored: already attached")
		return false
	}
	c.attached = true
	for _, child := range children {
		c.root.AddChild(child)
	}
	c.target = findTarget(c.root.children)
	if c.target == nil {
		c.debugf("attach: no children, card left unbound")
		return false
	}

	idx := 0
	for i, child := range c.root.children {
		if child == c.target {
			idx = i
			break
		}
	}
	c.root.AddChildAt(c.overlay.node, idx+1)
	c.overlay.sync(&c.state, c.width, c.height, c.cfg.MaxAngle, c.cfg.HighlightShift)
	c.debugf("attach: bound target %q", c.target.Name)
	return true
}

// findTarget returns the first card-kind node, falling back to the first node.
func findTarget(children []*Node) *Node {
	for _, n := range children {
		if n.Kind == NodeKindCard {
			return n
		}
	}
	if len(children) > 0 {
		return children[0]
	}
	return nil
}

// Target returns the bound tilt target, or nil when unbound.
func (c *TiltCard) Target() *Node {
	return c.target
}

// Bound reports whether a tilt target is bound.
func (c *TiltCard) Bound() bool {
	return c.target != nil
}

// Overlay returns the card's light overlay.
func (c *TiltCard) Overlay() *Overlay {
	return c.overlay
}

// Children returns the card's top-level nodes, overlay included once bound.
// The returned slice MUST NOT be mutated by the caller.
func (c *TiltCard) Children() []*Node {
	return c.root.children
}

// --- Layout ---

// SetSize sets the card size and recomputes the rotation pivot, which is
// always the geometric centre.
func (c *TiltCard) SetSize(width, height float64) {
	c.width, c.height = width, height
	c.state.Center = Vec2{X: width / 2, Y: height / 2}
	c.overlay.sync(&c.state, width, height, c.cfg.MaxAngle, c.cfg.HighlightShift)
}

// Size returns the card size.
func (c *TiltCard) Size() (width, height float64) {
	return c.width, c.height
}

// Bounds returns the card's screen rectangle.
func (c *TiltCard) Bounds() Rect {
	return Rect{X: c.X, Y: c.Y, Width: c.width, Height: c.height}
}

// HitTest reports whether the screen point (x, y) lands on the card as it
// is currently drawn. The point is mapped back through the inverse tilt
// matrix, so the edges that a tilt pulls inward no longer register.
func (c *TiltCard) HitTest(x, y float64) bool {
	lx, ly := c.Matrix().Invert().MapPoint(x-c.X, y-c.Y)
	return lx >= 0 && lx <= c.width && ly >= 0 && ly <= c.height
}

// --- State ---

// State returns a copy of the animated state.
func (c *TiltCard) State() EffectState {
	return c.state
}

// Phase returns the card's logical state.
func (c *TiltCard) Phase() Phase {
	return c.phase
}

// Transition returns the in-flight transition, or nil when idle.
func (c *TiltCard) Transition() *Transition {
	return c.transition
}

// Matrix returns the draw-time transform for the current rotation in
// card-local coordinates: camera projection, damped perspective, and
// re-centring about the pivot.
func (c *TiltCard) Matrix() Matrix {
	return TiltMatrix(c.camera, c.state.RotationX, c.state.RotationY,
		c.cfg.PerspectiveDamping, c.state.Center)
}

// --- Pointer input ---

// HandlePointer feeds one pointer event in card-local coordinates.
//
// Down and move tilt toward the pointer; up and cancel return to rest. Every
// event replaces the in-flight transition, so the last input always wins.
// Returns false, leaving the event to the host, when no target is bound.
func (c *TiltCard) HandlePointer(ev PointerEvent) bool {
	if c.target == nil {
		return false
	}
	var target Target
	switch ev.Phase {
	case PointerDown, PointerMove:
		c.pressed = true
		target = TargetForPointer(ev.X, ev.Y, c.state.Center, c.cfg.MaxAngle, c.cfg.MaxOverlayAlpha)
		c.setPhase(PhaseTilted)
	case PointerUp, PointerCancel:
		c.pressed = false
		target = RestTarget
	default:
		return false
	}
	c.animateTo(target)
	c.emit(TiltEvent{Type: EventTargetChanged, Pointer: ev.Phase, X: ev.X, Y: ev.Y, Target: target})
	return true
}

// animateTo cancels the running transition and starts a new one from the
// current state toward target.
func (c *TiltCard) animateTo(target Target) {
	if c.transition != nil {
		c.transition.Cancel()
	}
	c.transition = NewTransition(&c.state, target, c.cfg.Duration, c.easing)
	c.debugf("transition -> rx=%.2f ry=%.2f alpha=%.2f", target.RotationX, target.RotationY, target.OverlayAlpha)
}

// SetPointerSource attaches a source polled on every Update. Pass nil to
// detach. Sources report screen coordinates; a gesture is only picked up
// when it starts on the drawn card (see HitTest), and is then followed
// outside it.
func (c *TiltCard) SetPointerSource(src *PointerSource) {
	c.source = src
}

// dispatchScreenEvent converts a screen-space event to card-local space and
// applies press capture.
func (c *TiltCard) dispatchScreenEvent(ev PointerEvent) {
	switch ev.Phase {
	case PointerDown:
		if !c.HitTest(ev.X, ev.Y) {
			return
		}
		c.capturing = true
	case PointerMove:
		if !c.capturing {
			return
		}
	case PointerUp, PointerCancel:
		if !c.capturing {
			return
		}
		c.capturing = false
	}
	ev.X -= c.X
	ev.Y -= c.Y
	c.HandlePointer(ev)
}

// --- Per-tick work ---

// Update processes scripted, injected and polled input, then advances the
// transition by one tick. Call it from ebiten.Game.Update.
func (c *TiltCard) Update() {
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	if !c.processInjectedInput() && c.source != nil {
		for _, ev := range c.source.Poll() {
			c.dispatchScreenEvent(ev)
		}
	}
	c.Advance(tickDuration(ebiten.TPS(), ebiten.ActualTPS()))
}

// tickDuration is the length of one Update in seconds. With
// ebiten.SyncWithFPS the configured TPS is negative, so the measured rate is
// used, then 60 TPS before the first measurement.
func tickDuration(tps int, actual float64) float64 {
	switch {
	case tps > 0:
		return 1 / float64(tps)
	case actual > 0:
		return 1 / actual
	default:
		return 1.0 / ebiten.DefaultTPS
	}
}

// Advance moves the transition forward by dt seconds without touching input.
func (c *TiltCard) Advance(dt float64) {
	if c.target != nil {
		defer c.overlay.sync(&c.state, c.width, c.height, c.cfg.MaxAngle, c.cfg.HighlightShift)
	}
	tr := c.transition
	if tr == nil {
		return
	}
	tr.Update(float32(dt))
	if !tr.Done {
		return
	}
	c.transition = nil
	c.emit(TiltEvent{Type: EventSettled, Target: tr.Target()})
	if !c.pressed && c.state.AtRest() {
		c.setPhase(PhaseResting)
	}
}

// Draw renders the card onto dst at (X, Y). Call it from ebiten.Game.Draw.
func (c *TiltCard) Draw(dst *ebiten.Image) {
	if c.target == nil || c.width < 1 || c.height < 1 {
		c.drawn = c.Bounds()
		c.drawPassThrough(dst)
	} else {
		c.drawTilted(dst)
	}
	c.flushCaptures(dst)
}

// Dispose releases the offscreen canvas. The card must not be drawn after.
func (c *TiltCard) Dispose() {
	if c.canvas != nil {
		c.canvas.Dispose()
		c.canvas = nil
	}
}

// --- Listeners ---

// SetEventSink forwards every TiltEvent to sink. Pass nil to stop.
func (c *TiltCard) SetEventSink(sink EventSink) {
	c.sink = sink
}

// OnPhaseChange registers fn to run whenever the card moves between resting
// and tilted.
func (c *TiltCard) OnPhaseChange(fn func(from, to Phase)) {
	c.phaseHandlers = append(c.phaseHandlers, fn)
}

func (c *TiltCard) setPhase(p Phase) {
	if c.phase == p {
		return
	}
	from := c.phase
	c.phase = p
	for _, fn := range c.phaseHandlers {
		fn(from, p)
	}
	c.emit(TiltEvent{Type: EventPhaseChanged, From: from, Phase: p})
}

func (c *TiltCard) emit(ev TiltEvent) {
	if c.sink == nil {
		return
	}
	ev.CardID = c.id
	ev.State = c.state
	if ev.Type != EventPhaseChanged {
		ev.Phase = c.phase
	}
	c.sink.EmitTiltEvent(ev)
}
