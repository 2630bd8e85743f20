package marquee

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

const defaultDragFrames = 10

var knownActions = map[string]bool{
	"screenshot": true,
	"scroll":     true,
	"scrollby":   true,
	"wait":       true,
	"dispose":    true,
	"drag":       true,
}

// TestRunner sequences scrolls, waits, teardowns and screenshots across
// frames for automated visual testing. Attach to a Scene via SetTestRunner.
//
// Actions:
//
//	{"action": "scroll", "y": 1200, "duration": 0.8}  animate the camera so y is at the top
//	{"action": "scrollby", "y": 300}                  jump the camera by y
//	{"action": "drag", "y": 300, "frames": 12}        drag the page up by y pixels
//	{"action": "wait", "frames": 30}                  idle for n frames
//	{"action": "dispose", "label": "stats"}           dispose the first node with that name
//	{"action": "screenshot", "label": "after-stats"}  capture the next Draw
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
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

// SetTestRunner attaches a TestRunner to the scene. The runner advances at
// the start of every UpdateDelta.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for a scroll animation or an injected drag to land before advancing.
	if cam := s.Camera(); cam != nil && cam.Scrolling() {
		return
	}
	if len(s.injectQueue) > 0 {
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
		s.Screenshot(st.Label)
	case "scroll":
		if cam := s.Camera(); cam != nil {
			cam.ScrollToTop(st.Y, float32(st.Duration), nil)
		}
	case "scrollby":
		if cam := s.Camera(); cam != nil {
			cam.ScrollBy(st.Y)
		}
	case "drag":
		frames := st.Frames
		if frames == 0 {
			frames = defaultDragFrames
		}
		mid := s.height / 2
		s.InjectDrag(mid, mid-st.Y, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "dispose":
		if n := s.root.Find(st.Label); n != nil && n != s.root {
			n.Dispose()
		} else {
			s.logger.Warn("testrunner: dispose target not found", "label", st.Label)
		}
	}

	scrolling := len(s.injectQueue) > 0
	if cam := s.Camera(); cam != nil && cam.Scrolling() {
		scrolling = true
	}
	if r.cursor >= len(r.steps) && r.waitCount == 0 && !scrolling {
		r.done = true
	}
}
