package spinview

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a scripted session.
type scriptStep struct {
	Action  string   `json:"action"`
	Panel   int      `json:"panel,omitempty"`
	Value   float64  `json:"value,omitempty"`
	Text    string   `json:"text,omitempty"`
	Visible *bool    `json:"visible,omitempty"`
	DX      float64  `json:"dx,omitempty"`
	DY      float64  `json:"dy,omitempty"`
	Steps   float64  `json:"steps,omitempty"`
	Seconds *float64 `json:"seconds,omitempty"`
	Label   string   `json:"label,omitempty"`
	Frames  int      `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a scripted session.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// scriptViewportH is the viewport height orbit deltas are normalized against.
// Scripts are independent of the window size.
const scriptViewportH = 600

// Script sequences control edits, camera moves and screenshots across frames.
// Attach to a Scene via SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script:
//
//	{"steps": [
//	  {"action": "speed", "panel": 0, "value": 0.2},
//	  {"action": "number", "panel": 1, "text": "5"},
//	  {"action": "toggle", "panel": 2},
//	  {"action": "orbit", "dx": 40, "dy": 0},
//	  {"action": "zoom", "steps": 2},
//	  {"action": "reset", "seconds": 0.5},
//	  {"action": "wait", "frames": 30},
//	  {"action": "screenshot", "label": "after"}
//	]}
func LoadScript(jsonData []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range file.Steps {
		switch st.Action {
		case "speed", "number", "toggle":
			if st.Panel < 0 || st.Panel >= EntryCount {
				return nil, fmt.Errorf("parse script: step %d: panel %d out of range", i, st.Panel)
			}
		case "orbit", "zoom", "reset", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: file.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Scene.Update.
func (r *Script) step(s *Scene) {
	if r.done {
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
	case "speed":
		s.panels[st.Panel].SetSlider(st.Value)
	case "number":
		if !s.panels[st.Panel].EnterNumber(st.Text) {
			s.logger.Warn("script: numeric entry not committed", "panel", st.Panel, "text", st.Text)
		}
	case "toggle":
		p := s.panels[st.Panel]
		if st.Visible != nil {
			p.SetVisible(*st.Visible)
		} else {
			p.ToggleVisible()
		}
	case "orbit":
		s.camera.Orbit(st.DX, st.DY, scriptViewportH)
	case "zoom":
		s.camera.Zoom(st.Steps)
	case "reset":
		d := float32(0.5)
		if st.Seconds != nil {
			d = float32(*st.Seconds)
		}
		s.camera.Reset(d)
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
