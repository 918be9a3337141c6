package tiltcard

// Synthetic input uses screen coordinates, exactly like a PointerSource, and
// is hit-tested against the card bounds the same way. The queue is consumed
// one event per Update; while it is non-empty, real input is not polled.

// InjectPress queues a pointer press at the given screen coordinates.
func (c *TiltCard) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{Phase: PointerDown, X: x, Y: y})
}

// InjectMove queues a pointer move with the pointer held down.
func (c *TiltCard) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{Phase: PointerMove, X: x, Y: y})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (c *TiltCard) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{Phase: PointerUp, X: x, Y: y})
}

// InjectCancel queues a gesture cancellation.
func (c *TiltCard) InjectCancel() {
	c.injectQueue = append(c.injectQueue, PointerEvent{Phase: PointerCancel})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes `frames` frames. Minimum frames is
// 2 (press + release).
func (c *TiltCard) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// PendingInjections returns the number of queued synthetic events.
func (c *TiltCard) PendingInjections() int {
	return len(c.injectQueue)
}

// processInjectedInput pops one queued event and dispatches it.
// Returns true if an event was consumed (real input should be skipped).
func (c *TiltCard) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	ev := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]
	c.dispatchScreenEvent(ev)
	return true
}
