package spinview

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// stepsPerUnit is the slider resolution: 1/SpeedStep.
const stepsPerUnit = 1000

// ControlEvent describes one committed control change.
type ControlEvent struct {
	Panel   int // index of the panel in Scene.Panels
	Title   string
	Kind    ControlKind
	Speed   float64
	Visible bool
}

// EventSink receives control events. It is the optional bridge to an ECS or
// any other observer; nil sinks are allowed.
type EventSink interface {
	EmitEvent(event ControlEvent)
}

// ControlPanel is the UI model for one scene entry: a slider and a numeric
// entry that both edit one rotation speed, and a visibility checkbox.
//
// The panel owns the committed value shown to the user. Every commit writes
// the speed channel immediately, so the next frame tick sees it. Revision
// changes whenever something the user can see changes; front-ends repaint a
// panel only when its revision moves.
type ControlPanel struct {
	Title string
	index int

	value   float64
	speed   *SpeedChannel
	visible *VisibilityState

	editing bool
	draft   string

	revision uint64
	sink     EventSink
}

// NewControlPanel creates a panel bound to speed and visible. The panel's
// committed value starts at the channel's current value.
func NewControlPanel(title string, speed *SpeedChannel, visible *VisibilityState) *ControlPanel {
	return &ControlPanel{
		Title:    title,
		value:    speed.Read(),
		speed:    speed,
		visible:  visible,
		revision: 1,
	}
}

// Value returns the committed speed.
func (p *ControlPanel) Value() float64 {
	return p.value
}

// SliderValue returns the value the slider displays. It is always the
// committed value.
func (p *ControlPanel) SliderValue() float64 {
	return p.value
}

// SliderFraction returns the knob position in [0, 1] along the track.
func (p *ControlPanel) SliderFraction() float64 {
	return (p.value - SpeedMin) / (SpeedMax - SpeedMin)
}

// NumberText returns the text the numeric entry displays.
func (p *ControlPanel) NumberText() string {
	if p.editing {
		return p.draft
	}
	return FormatSpeed(p.value)
}

// Visible returns the checkbox state.
func (p *ControlPanel) Visible() bool {
	return p.visible.Read()
}

// Editing reports whether the numeric entry has focus.
func (p *ControlPanel) Editing() bool {
	return p.editing
}

// Revision returns a counter that changes whenever the panel's displayed
// state changes.
func (p *ControlPanel) Revision() uint64 {
	return p.revision
}

// --- Slider ---

// SetSlider commits v as the slider's new value, clamped to the slider range.
func (p *ControlPanel) SetSlider(v float64) {
	p.commit(v, ControlSlider)
}

// DragSlider commits the value under a knob dragged to frac of the track.
// The value snaps to SpeedStep.
func (p *ControlPanel) DragSlider(frac float64) {
	v := SpeedMin + Clamp01(frac)*(SpeedMax-SpeedMin)
	p.commit(QuantizeSpeed(v), ControlSlider)
}

// StepSlider moves the slider by n steps, the way arrow keys do.
func (p *ControlPanel) StepSlider(n int) {
	p.commit(QuantizeSpeed(p.value+float64(n)*SpeedStep), ControlSlider)
}

// --- Numeric entry ---

// EnterNumber parses text as a complete entry and commits it, clamped.
// Unparsable or empty text commits nothing and returns false.
func (p *ControlPanel) EnterNumber(text string) bool {
	v, ok := parseSpeed(text)
	if !ok {
		return false
	}
	p.commit(v, ControlNumber)
	return true
}

// BeginEdit focuses the numeric entry with the committed value as draft.
func (p *ControlPanel) BeginEdit() {
	if p.editing {
		return
	}
	p.editing = true
	p.draft = FormatSpeed(p.value)
	p.revision++
}

// EditText replaces the draft, as one keystroke would. A parsable draft is
// committed right away. If clamping changed the number, the draft is
// replaced by the committed value so the field never shows an out-of-range
// number.
func (p *ControlPanel) EditText(text string) {
	if !p.editing {
		p.editing = true
	}
	p.draft = text
	p.revision++

	v, ok := parseSpeed(text)
	if !ok {
		return
	}
	p.commit(v, ControlNumber)
	if Clamp01(v) != v {
		p.draft = FormatSpeed(p.value)
	}
}

// EndEdit drops focus; the field shows the committed value again.
func (p *ControlPanel) EndEdit() {
	if !p.editing {
		return
	}
	p.editing = false
	p.draft = ""
	p.revision++
}

// --- Checkbox ---

// SetVisible writes the checkbox state through to the visibility cell.
func (p *ControlPanel) SetVisible(visible bool) {
	if p.visible.Read() == visible {
		return
	}
	p.visible.Write(visible)
	p.revision++
	p.emit(ControlToggle)
}

// ToggleVisible flips the checkbox.
func (p *ControlPanel) ToggleVisible() {
	p.SetVisible(!p.visible.Read())
}

func (p *ControlPanel) commit(v float64, kind ControlKind) {
	v = Clamp01(v)
	p.value = v
	p.speed.Write(v)
	p.revision++
	p.emit(kind)
}

func (p *ControlPanel) emit(kind ControlKind) {
	if p.sink == nil {
		return
	}
	p.sink.EmitEvent(ControlEvent{
		Panel:   p.index,
		Title:   p.Title,
		Kind:    kind,
		Speed:   p.value,
		Visible: p.visible.Read(),
	})
}

// --- Helpers ---

// QuantizeSpeed clamps v and snaps it to the nearest multiple of SpeedStep.
func QuantizeSpeed(v float64) float64 {
	return Clamp01(math.Round(Clamp01(v)*stepsPerUnit) / stepsPerUnit)
}

// FormatSpeed formats v with the fewest digits that round-trip.
func FormatSpeed(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseSpeed(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// ParseFloat reports overflow as ErrRange with ±Inf, which still
		// clamps to a bound.
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}
