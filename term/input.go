package term

import "github.com/gdamore/tcell/v2"

const (
	// orbitKeyStep is the fraction of a full turn orbited per h/j/k/l press.
	orbitKeyStep = 1.0 / 36
	// shiftStepMultiplier scales arrow-key slider steps when Shift is held.
	shiftStepMultiplier = 10
	resetSeconds        = 0.5
)

// HandleEvent applies one terminal event. It returns false when the session
// should end.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if a.entering {
			a.handleEntryKey(ev)
		} else {
			a.handleKey(ev)
		}
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.width, a.height = ev.Size()
		a.screen.Sync()
	}
	if a.quit {
		return false
	}
	a.Draw()
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) {
	cam := a.scene.Camera()
	panel := a.panels[a.selected].panel
	step := 1
	if ev.Modifiers()&tcell.ModShift != 0 {
		step = shiftStepMultiplier
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		a.quit = true
	case tcell.KeyTab:
		a.selected = (a.selected + 1) % len(a.panels)
	case tcell.KeyBacktab:
		a.selected = (a.selected + len(a.panels) - 1) % len(a.panels)
	case tcell.KeyLeft:
		panel.StepSlider(-step)
	case tcell.KeyRight:
		panel.StepSlider(step)
	case tcell.KeyUp:
		cam.Orbit(0, -orbitKeyStep, 1)
	case tcell.KeyDown:
		cam.Orbit(0, orbitKeyStep, 1)
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case '1', '2', '3':
			if i := int(r - '1'); i < len(a.panels) {
				a.selected = i
			}
		case ' ':
			panel.ToggleVisible()
		case '=':
			a.entering = true
			a.draft = a.draft[:0]
		case 'h':
			cam.Orbit(-orbitKeyStep, 0, 1)
		case 'l':
			cam.Orbit(orbitKeyStep, 0, 1)
		case 'k':
			cam.Orbit(0, -orbitKeyStep, 1)
		case 'j':
			cam.Orbit(0, orbitKeyStep, 1)
		case '+':
			cam.Zoom(1)
		case '-':
			cam.Zoom(-1)
		case 'r':
			cam.Reset(resetSeconds)
		case 'q':
			a.quit = true
		}
	}
}

// handleEntryKey edits the numeric draft. Enter commits it through the panel,
// which clamps; Esc drops it.
func (a *App) handleEntryKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		panel := a.panels[a.selected].panel
		if !panel.EnterNumber(string(a.draft)) {
			a.logger.Debug("numeric entry not committed", "panel", panel.Title, "text", string(a.draft))
		}
		a.entering = false
	case tcell.KeyEscape:
		a.entering = false
	case tcell.KeyBackspace:
		if n := len(a.draft); n > 0 {
			a.draft = a.draft[:n-1]
		}
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+', r == 'e', r == 'E':
			a.draft = append(a.draft, r)
		}
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	cam := a.scene.Camera()

	if buttons&tcell.WheelUp != 0 {
		cam.Zoom(1)
		return
	}
	if buttons&tcell.WheelDown != 0 {
		cam.Zoom(-1)
		return
	}

	if buttons&tcell.ButtonPrimary == 0 {
		a.dragging = false
		return
	}
	if a.dragging {
		_, _, vh := a.viewport()
		if vh > 0 {
			cam.Orbit(float64(x-a.lastX), float64(y-a.lastY)*cellAspect, float64(vh)*cellAspect)
		}
		a.lastX, a.lastY = x, y
		return
	}

	// Press.
	if y < panelRows {
		a.clickPanel(x, y)
		return
	}
	a.dragging = true
	a.lastX, a.lastY = x, y
}

// clickPanel selects the panel under (x, y) and applies the row's control.
func (a *App) clickPanel(x, y int) {
	colW := a.width / max(len(a.panels), 1)
	if colW == 0 {
		return
	}
	i := x / colW
	if i >= len(a.panels) {
		return
	}
	a.selected = i
	pv := a.panels[i]
	switch y {
	case rowSlider:
		pv.panel.DragSlider(pv.sliderFraction(x - i*colW))
	case rowNumber:
		a.entering = true
		a.draft = []rune(pv.panel.NumberText())
	case rowVisible:
		pv.panel.ToggleVisible()
	}
}
