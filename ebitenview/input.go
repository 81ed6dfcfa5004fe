package ebitenview

import (
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	defaultDragDeadZone = 4.0 // pixels
	resetSeconds        = 0.5
	shiftStepMultiplier = 10
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// pointerState tracks one press from down to up.
type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	widget   *panelWidget // panel hit at press time
	part     widgetPart   // control hit at press time
	dragging bool
	button   MouseButton // button captured at press time
}

// --- Input processing ---

// processInput is called from Update to handle keyboard, wheel and pointer
// input before the scene ticks.
func (v *Viewer) processInput() {
	v.processKeys()

	if _, wy := ebiten.Wheel(); wy != 0 {
		v.scene.Camera().Zoom(wy)
	}

	if v.processInjectedInput() {
		return
	}
	v.processMousePointer()
}

func shiftPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyShift) ||
		ebiten.IsKeyPressed(ebiten.KeyShiftLeft) ||
		ebiten.IsKeyPressed(ebiten.KeyShiftRight)
}

// processKeys routes keys either to the focused numeric entry or to the
// viewer shortcuts.
func (v *Viewer) processKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		v.Screenshot("manual")
	}

	if v.focus != nil {
		v.chars = ebiten.AppendInputChars(v.chars[:0])
		if len(v.chars) > 0 {
			v.typeChars(v.chars)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			v.backspace()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
			inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
			inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			v.blur()
		}
		return
	}

	step := 1
	if shiftPressed() {
		step = shiftStepMultiplier
	}
	v.keys = inpututil.AppendJustPressedKeys(v.keys[:0])
	for _, key := range v.keys {
		v.handleKey(key, step)
	}
}

// handleKey applies one viewer shortcut.
func (v *Viewer) handleKey(key ebiten.Key, step int) {
	switch key {
	case ebiten.KeyR:
		v.scene.Camera().Reset(resetSeconds)
	case ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3:
		if i := int(key - ebiten.KeyDigit1); i < len(v.widgets) {
			v.active = v.widgets[i]
		}
	case ebiten.KeyTab:
		v.cycleActive()
	case ebiten.KeyArrowLeft:
		if v.active != nil {
			v.active.panel.StepSlider(-step)
		}
	case ebiten.KeyArrowRight:
		if v.active != nil {
			v.active.panel.StepSlider(step)
		}
	case ebiten.KeySpace:
		if v.active != nil {
			v.active.panel.ToggleVisible()
		}
	case ebiten.KeyEqual, ebiten.KeyEnter:
		if v.active != nil {
			v.focusWidget(v.active)
		}
	case ebiten.KeyQ:
		v.quit = true
	}
}

func (v *Viewer) cycleActive() {
	for i, w := range v.widgets {
		if w == v.active {
			v.active = v.widgets[(i+1)%len(v.widgets)]
			return
		}
	}
}

// --- Numeric entry ---

func (v *Viewer) focusWidget(w *panelWidget) {
	if v.focus == w {
		return
	}
	v.blur()
	v.focus = w
	v.active = w
	w.panel.BeginEdit()
}

func (v *Viewer) blur() {
	if v.focus == nil {
		return
	}
	v.focus.panel.EndEdit()
	v.focus = nil
}

// typeChars appends the characters a number can contain to the focused draft.
func (v *Viewer) typeChars(chars []rune) {
	if v.focus == nil {
		return
	}
	text := v.focus.panel.NumberText()
	changed := false
	for _, r := range chars {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+', r == 'e', r == 'E':
			text += string(r)
			changed = true
		}
	}
	if changed {
		v.focus.panel.EditText(text)
	}
}

func (v *Viewer) backspace() {
	if v.focus == nil {
		return
	}
	text := v.focus.panel.NumberText()
	if text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(text)
	v.focus.panel.EditText(text[:len(text)-size])
}

// --- Pointer ---

// processMousePointer feeds the real mouse through the pointer state machine.
func (v *Viewer) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	v.processPointer(float64(mx), float64(my), pressed, button)
}

// widgetAt returns the panel and control under (x, y).
func (v *Viewer) widgetAt(x, y float64) (*panelWidget, widgetPart) {
	for _, w := range v.widgets {
		if part := w.hit(x, y); part != partNone {
			return w, part
		}
	}
	return nil, partNone
}

// processPointer runs the pointer state machine. Presses on a panel control
// operate that control; presses elsewhere drive the orbit camera.
func (v *Viewer) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &v.pointer

	if pressed && !ps.down {
		// Just pressed: capture the control for the whole interaction.
		w, part := v.widgetAt(x, y)
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.widget, ps.part = w, part
		ps.dragging = false
		v.pointerDown(x)
	} else if !pressed && ps.down {
		// Just released: a press and release on the same checkbox is a click.
		if !ps.dragging && ps.part == partCheckbox && ps.widget.checkboxRect().Contains(x, y) {
			ps.widget.panel.ToggleVisible()
		}
		ps.down = false
		ps.widget = nil
		ps.part = partNone
		ps.dragging = false
	} else if pressed && ps.down {
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > v.dragDeadZone {
					ps.dragging = true
				}
			}
			v.pointerMoved(x, y, x-ps.lastX, y-ps.lastY)
		}
		ps.lastX, ps.lastY = x, y
	}
}

func (v *Viewer) pointerDown(x float64) {
	ps := &v.pointer
	if ps.widget != nil {
		v.active = ps.widget
	}
	switch ps.part {
	case partSlider:
		v.blur()
		if ps.button == MouseButtonLeft {
			ps.widget.panel.DragSlider(ps.widget.sliderFraction(x))
		}
	case partNumber:
		v.focusWidget(ps.widget)
	case partNone:
		v.blur()
	}
}

// pointerMoved handles a held pointer that moved by (dx, dy).
func (v *Viewer) pointerMoved(x, y, dx, dy float64) {
	ps := &v.pointer
	switch ps.part {
	case partSlider:
		if ps.button == MouseButtonLeft {
			ps.widget.panel.DragSlider(ps.widget.sliderFraction(x))
		}
	case partNone:
		if !ps.dragging {
			return
		}
		cam := v.scene.Camera()
		h := float64(v.height)
		if ps.button == MouseButtonLeft {
			cam.Orbit(dx, dy, h)
		} else {
			cam.Pan(dx, dy, h)
		}
	}
}
