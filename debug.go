package tiltcard

import (
	"fmt"
	"os"
)

// SetDebugMode enables or disables stderr diagnostics for this card:
// binding results, transition targets, config changes and capture failures.
func (c *TiltCard) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// debugf prints a prefixed diagnostic line when debug mode is on.
func (c *TiltCard) debugf(format string, args ...any) {
	if !c.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[tiltcard %d] "+format+"\n", append([]any{c.id}, args...)...)
}

// warnf always prints; used for failures that have no error return path.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[tiltcard] "+format+"\n", args...)
}
