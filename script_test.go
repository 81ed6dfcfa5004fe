package spinview

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "speed", "panel": 0, "value": 0.2},
			{"action": "number", "panel": 1, "text": "5"},
			{"action": "toggle", "panel": 2},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "after"}
		]
	}`)

	script, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(script.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(script.steps))
	}
	if script.steps[0].Action != "speed" || script.steps[0].Value != 0.2 {
		t.Error("step 0 mismatch")
	}
	if script.steps[1].Action != "number" || script.steps[1].Panel != 1 || script.steps[1].Text != "5" {
		t.Error("step 1 mismatch")
	}
	if script.steps[3].Action != "wait" || script.steps[3].Frames != 3 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
		{"panel out of range", `{"steps": [{"action": "speed", "panel": 3, "value": 1}]}`},
		{"negative panel", `{"steps": [{"action": "toggle", "panel": -1}]}`},
	}
	for _, tt := range tests {
		if _, err := LoadScript([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func mustLoadScript(t *testing.T, data string) *Script {
	t.Helper()
	script, err := LoadScript([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	return script
}

func TestScriptControlSteps(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.SetScript(mustLoadScript(t, `{"steps": [
		{"action": "speed", "panel": 0, "value": 0.2},
		{"action": "number", "panel": 1, "text": "5"},
		{"action": "toggle", "panel": 2},
		{"action": "toggle", "panel": 0, "visible": false}
	]}`))

	for i := 0; i < 4; i++ {
		s.Update()
	}

	panels := s.Panels()
	if panels[0].Value() != 0.2 {
		t.Errorf("panel 0 value = %v, want 0.2", panels[0].Value())
	}
	if panels[1].Value() != 1 {
		t.Errorf("panel 1 value = %v, want 1", panels[1].Value())
	}
	if panels[2].Visible() {
		t.Error("panel 2 should be hidden")
	}
	if panels[0].Visible() {
		t.Error("panel 0 should be hidden")
	}
	if !s.script.Done() {
		t.Error("script should be done")
	}
}

func TestScriptStepRunsBeforeTick(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.SetScript(mustLoadScript(t, `{"steps": [{"action": "speed", "panel": 0, "value": 0.5}]}`))
	s.Update()
	if got := s.Entries()[0].Orientation().X; !approxEqual(got, 0.5, epsilon) {
		t.Errorf("rotation after first frame = %v, want 0.5", got)
	}
}

func TestScriptWait(t *testing.T) {
	s := NewScene(DefaultConfig())
	script := mustLoadScript(t, `{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "speed", "panel": 2, "value": 0.7}
	]}`)
	s.SetScript(script)

	for i := 0; i < 3; i++ {
		s.Update()
		if s.Panels()[2].Value() != DefaultSpeed {
			t.Fatalf("frame %d: speed changed during wait", i)
		}
	}
	s.Update()
	if s.Panels()[2].Value() != 0.7 {
		t.Errorf("value = %v, want 0.7", s.Panels()[2].Value())
	}
	if !script.Done() {
		t.Error("script should be done")
	}
}

func TestScriptCameraSteps(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.SetScript(mustLoadScript(t, `{"steps": [
		{"action": "orbit", "dx": 100, "dy": 0},
		{"action": "zoom", "steps": 3},
		{"action": "reset", "seconds": 0}
	]}`))

	s.Update()
	if approxEqual(s.Camera().Eye().X(), 0, 1e-6) {
		t.Error("orbit step did not move the eye")
	}
	s.Update()
	s.Update()
	assertVecNear(t, s.Camera().Eye(), mgl64.Vec3{0, 3, 5}, 1e-9)
}

func TestScriptScreenshot(t *testing.T) {
	s := NewScene(DefaultConfig())
	var labels []string
	s.OnScreenshot(func(label string) { labels = append(labels, label) })
	s.SetScript(mustLoadScript(t, `{"steps": [
		{"action": "screenshot", "label": "one"},
		{"action": "screenshot", "label": "two"}
	]}`))
	s.Update()
	s.Update()
	s.Update()
	if len(labels) != 2 || labels[0] != "one" || labels[1] != "two" {
		t.Errorf("labels = %v, want [one two]", labels)
	}
}

func TestScriptBadNumberKeepsValue(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.SetScript(mustLoadScript(t, `{"steps": [{"action": "number", "panel": 0, "text": "fast"}]}`))
	s.Update()
	if s.Panels()[0].Value() != DefaultSpeed {
		t.Errorf("value = %v, want %v", s.Panels()[0].Value(), DefaultSpeed)
	}
}
