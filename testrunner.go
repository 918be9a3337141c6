package tiltcard

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"press": true, "move": true, "release": true, "cancel": true,
	"drag": true, "wait": true, "screenshot": true,
}

// TestRunner sequences injected pointer events and captures across frames
// for automated visual checks of a card. Attach with SetTestRunner.
//
// Script format:
//
//	{"steps": [
//	  {"action": "press", "x": 290, "y": 10},
//	  {"action": "wait", "frames": 15},
//	  {"action": "screenshot", "label": "tilted-top-right"},
//	  {"action": "release", "x": 290, "y": 10}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a card via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the card. The runner advances at
// the start of every Update.
func (c *TiltCard) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(c *TiltCard) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		c.Capture(st.Label)
	case "press":
		c.InjectPress(st.X, st.Y)
	case "move":
		c.InjectMove(st.X, st.Y)
	case "release":
		c.InjectRelease(st.X, st.Y)
	case "cancel":
		c.InjectCancel()
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 10
		}
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		r.waitCount = max(st.Frames-1, 0)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}
