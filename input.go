package tiltcard

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// mousePointerID identifies the mouse; touches use their ebiten.TouchID + 1.
const mousePointerID = 0

// PointerEvent is a single pointer sample delivered to a TiltCard.
// X and Y are in the coordinate space of the receiver: screen space when
// coming out of a PointerSource, card-local space for HandlePointer.
type PointerEvent struct {
	Phase     PointerPhase
	X, Y      float64
	PointerID int
}

// pointerSample is one tick's worth of raw pointer state.
type pointerSample struct {
	focused   bool
	mouseDown bool
	mouseX    float64
	mouseY    float64
	touches   []touchSample
}

type touchSample struct {
	id   int
	x, y float64
}

// PointerSource turns Ebitengine's level-triggered mouse and touch state
// into down/move/up/cancel events for a single tracked pointer.
//
// Only one pointer drives the card at a time. While a gesture is active,
// other touches and the mouse are ignored. The active gesture is cancelled
// when the window loses focus.
type PointerSource struct {
	tracking  bool
	pointerID int
	lastX     float64
	lastY     float64

	touchIDs []ebiten.TouchID
	sample   pointerSample
	events   []PointerEvent
}

// NewPointerSource creates a source with no active gesture.
func NewPointerSource() *PointerSource {
	return &PointerSource{}
}

// Tracking reports whether a gesture is in progress.
func (p *PointerSource) Tracking() bool {
	return p.tracking
}

// Poll reads the current Ebitengine input state and returns the events it
// produced this tick. The returned slice is reused by the next call.
func (p *PointerSource) Poll() []PointerEvent {
	s := &p.sample
	s.focused = ebiten.IsFocused()
	mx, my := ebiten.CursorPosition()
	s.mouseX, s.mouseY = float64(mx), float64(my)
	s.mouseDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	s.touches = s.touches[:0]
	for _, tid := range p.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		s.touches = append(s.touches, touchSample{id: int(tid) + 1, x: float64(tx), y: float64(ty)})
	}
	return p.step(s)
}

// step runs the gesture state machine against one sample.
func (p *PointerSource) step(s *pointerSample) []PointerEvent {
	p.events = p.events[:0]

	if p.tracking {
		if !s.focused {
			p.emit(PointerCancel, p.lastX, p.lastY)
			p.tracking = false
			return p.events
		}
		x, y, down := p.lookup(s, p.pointerID)
		switch {
		case !down:
			p.emit(PointerUp, p.lastX, p.lastY)
			p.tracking = false
		case x != p.lastX || y != p.lastY:
			p.lastX, p.lastY = x, y
			p.emit(PointerMove, x, y)
		}
		return p.events
	}

	if !s.focused {
		return p.events
	}
	// Touch wins over the mouse: many platforms synthesise mouse input from
	// the primary touch.
	if len(s.touches) > 0 {
		t := s.touches[0]
		p.begin(t.id, t.x, t.y)
	} else if s.mouseDown {
		p.begin(mousePointerID, s.mouseX, s.mouseY)
	}
	return p.events
}

func (p *PointerSource) begin(id int, x, y float64) {
	p.tracking = true
	p.pointerID = id
	p.lastX, p.lastY = x, y
	p.emit(PointerDown, x, y)
}

// lookup returns the position of pointer id in s and whether it is still down.
func (p *PointerSource) lookup(s *pointerSample, id int) (float64, float64, bool) {
	if id == mousePointerID {
		return s.mouseX, s.mouseY, s.mouseDown
	}
	for _, t := range s.touches {
		if t.id == id {
			return t.x, t.y, true
		}
	}
	return p.lastX, p.lastY, false
}

func (p *PointerSource) emit(phase PointerPhase, x, y float64) {
	p.events = append(p.events, PointerEvent{Phase: phase, X: x, Y: y, PointerID: p.pointerID})
}
