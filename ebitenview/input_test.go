package ebitenview

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/spinview"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func newTestViewer() *Viewer {
	return NewViewer(spinview.NewScene(spinview.DefaultConfig()), RunConfig{Width: 1280, Height: 720})
}

// drain feeds every queued synthetic event through the state machine.
func drain(v *Viewer) {
	for v.processInjectedInput() {
	}
}

func center(r HitRect) (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func TestClickCheckboxTogglesVisibility(t *testing.T) {
	v := newTestViewer()
	x, y := center(v.widgets[1].checkboxRect())

	v.InjectClick(x, y)
	drain(v)

	vis := v.Scene().Entries()[1].Visibility()
	if vis.Read() {
		t.Error("torus should be hidden after clicking its checkbox")
	}
	if !v.Scene().Entries()[0].Visibility().Read() || !v.Scene().Entries()[2].Visibility().Read() {
		t.Error("other entries should stay visible")
	}

	v.InjectClick(x, y)
	drain(v)
	if !vis.Read() {
		t.Error("second click should show the torus again")
	}
}

func TestCheckboxReleaseOutsideDoesNotToggle(t *testing.T) {
	v := newTestViewer()
	x, y := center(v.widgets[0].checkboxRect())
	v.InjectPress(x, y)
	v.InjectRelease(x+40, y)
	drain(v)
	if !v.Scene().Entries()[0].Visibility().Read() {
		t.Error("release outside the checkbox should not toggle")
	}
}

func TestDragSlider(t *testing.T) {
	v := newTestViewer()
	w := v.widgets[0]
	r := w.sliderRect()
	_, y := center(r)

	v.InjectPress(w.x, y)
	drain(v)
	if got := w.panel.Value(); got != 0 {
		t.Errorf("press at track start: value = %v, want 0", got)
	}

	v.InjectMove(w.x+trackW*0.375, y)
	drain(v)
	if got := w.panel.Value(); !approxEqual(got, 0.375, 1e-9) {
		t.Errorf("value = %v, want 0.375", got)
	}

	// The slider keeps the pointer captured past the track end.
	v.InjectMove(w.x+trackW*3, y+200)
	v.InjectRelease(w.x+trackW*3, y+200)
	drain(v)
	if got := w.panel.Value(); got != 1 {
		t.Errorf("value = %v, want 1", got)
	}
	if got := v.Scene().Entries()[0].Speed().Read(); got != 1 {
		t.Errorf("channel = %v, want 1", got)
	}
}

func TestDragSliderDoesNotOrbit(t *testing.T) {
	v := newTestViewer()
	eye := v.Scene().Camera().Eye()
	w := v.widgets[2]
	_, y := center(w.sliderRect())
	v.InjectDrag(w.x+10, y, w.x+150, y, 6)
	drain(v)
	if v.Scene().Camera().Eye() != eye {
		t.Error("slider drag moved the camera")
	}
}

func TestDragBackgroundOrbits(t *testing.T) {
	v := newTestViewer()
	v.InjectDrag(600, 400, 700, 400, 5)
	drain(v)
	if approxEqual(v.Scene().Camera().Eye().X(), 0, 1e-6) {
		t.Error("background drag should orbit the camera")
	}
}

func TestSmallBackgroundDragIgnored(t *testing.T) {
	v := newTestViewer()
	eye := v.Scene().Camera().Eye()
	v.InjectDrag(600, 400, 602, 401, 4)
	drain(v)
	if v.Scene().Camera().Eye() != eye {
		t.Error("drag inside the dead zone moved the camera")
	}
}

func TestNumberEntryTyping(t *testing.T) {
	v := newTestViewer()
	w := v.widgets[0]
	v.InjectClick(center(w.numberRect()))
	drain(v)
	if v.focus != w || !w.panel.Editing() {
		t.Fatal("clicking the number field should focus it")
	}

	for range "0.01" {
		v.backspace()
	}
	if w.panel.NumberText() != "" {
		t.Fatalf("draft = %q, want empty", w.panel.NumberText())
	}
	// "0.0" and "0" parse on the way down, so the last commit is zero.
	if w.panel.Value() != 0 {
		t.Errorf("value = %v, want 0", w.panel.Value())
	}

	v.typeChars([]rune("0.2x"))
	if w.panel.Value() != 0.2 {
		t.Errorf("value = %v, want 0.2", w.panel.Value())
	}
	if w.panel.NumberText() != "0.2" {
		t.Errorf("draft = %q, want %q", w.panel.NumberText(), "0.2")
	}

	v.typeChars([]rune("5"))
	if w.panel.Value() != 0.25 {
		t.Errorf("value = %v, want 0.25", w.panel.Value())
	}

	v.blur()
	if w.panel.NumberText() != "0.25" {
		t.Errorf("unfocused text = %q, want %q", w.panel.NumberText(), "0.25")
	}
}

func TestNumberEntryClampsAndShowsMax(t *testing.T) {
	v := newTestViewer()
	w := v.widgets[1]
	v.focusWidget(w)
	for range "0.01" {
		v.backspace()
	}
	v.typeChars([]rune("5"))

	if w.panel.Value() != 1 {
		t.Errorf("value = %v, want 1", w.panel.Value())
	}
	if w.panel.SliderFraction() != 1 {
		t.Errorf("slider fraction = %v, want 1", w.panel.SliderFraction())
	}
	if w.panel.NumberText() != "1" {
		t.Errorf("draft = %q, want %q", w.panel.NumberText(), "1")
	}
}

func TestClickBackgroundBlurs(t *testing.T) {
	v := newTestViewer()
	v.focusWidget(v.widgets[0])
	v.InjectClick(900, 600)
	drain(v)
	if v.focus != nil || v.widgets[0].panel.Editing() {
		t.Error("clicking the scene should drop numeric focus")
	}
}

func TestHandleKey(t *testing.T) {
	v := newTestViewer()

	v.handleKey(ebiten.KeyDigit2, 1)
	if v.active != v.widgets[1] {
		t.Fatal("2 should select the second panel")
	}
	v.handleKey(ebiten.KeyArrowRight, 1)
	if got := v.widgets[1].panel.Value(); !approxEqual(got, 0.011, 1e-9) {
		t.Errorf("value = %v, want 0.011", got)
	}
	v.handleKey(ebiten.KeyArrowLeft, shiftStepMultiplier)
	if got := v.widgets[1].panel.Value(); !approxEqual(got, 0.001, 1e-9) {
		t.Errorf("value = %v, want 0.001", got)
	}

	v.handleKey(ebiten.KeySpace, 1)
	if v.Scene().Entries()[1].Visibility().Read() {
		t.Error("space should hide the selected entry")
	}

	v.handleKey(ebiten.KeyTab, 1)
	if v.active != v.widgets[2] {
		t.Error("tab should move to the next panel")
	}
	v.handleKey(ebiten.KeyTab, 1)
	if v.active != v.widgets[0] {
		t.Error("tab should wrap to the first panel")
	}

	v.handleKey(ebiten.KeyEqual, 1)
	if v.focus != v.widgets[0] {
		t.Error("= should focus the numeric entry")
	}
	v.blur()

	v.Scene().Camera().Orbit(200, 0, 720)
	v.handleKey(ebiten.KeyR, 1)
	if !v.Scene().Camera().Resetting() {
		t.Error("R should start a camera reset")
	}

	v.handleKey(ebiten.KeyQ, 1)
	if !v.quit {
		t.Error("Q should request quit")
	}
}

func TestInjectDragMinFrames(t *testing.T) {
	v := newTestViewer()
	v.InjectDrag(0, 0, 10, 10, 1)
	if len(v.injectQueue) != 2 {
		t.Errorf("queue length = %d, want 2", len(v.injectQueue))
	}
}

func TestInjectQueueOrder(t *testing.T) {
	v := newTestViewer()
	v.InjectDrag(0, 0, 30, 0, 5)
	want := []syntheticPointerEvent{
		{0, 0, true, MouseButtonLeft},
		{7.5, 0, true, MouseButtonLeft},
		{15, 0, true, MouseButtonLeft},
		{22.5, 0, true, MouseButtonLeft},
		{30, 0, false, MouseButtonLeft},
	}
	if len(v.injectQueue) != len(want) {
		t.Fatalf("queue length = %d, want %d", len(v.injectQueue), len(want))
	}
	for i, e := range v.injectQueue {
		if e != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, e, want[i])
		}
	}
}

func TestScreenshotHookQueues(t *testing.T) {
	v := newTestViewer()
	v.Scene().Screenshot("from script")
	if len(v.screenshotQueue) != 1 || v.screenshotQueue[0] != "from script" {
		t.Errorf("queue = %v", v.screenshotQueue)
	}
}
