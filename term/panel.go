package term

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/spinview"
)

// panelRows is the height of a panel in rows.
const panelRows = 4

// Panel row offsets.
const (
	rowTitle = iota
	rowSlider
	rowNumber
	rowVisible
)

// panelView renders one control panel as a column of text rows. The rows are
// rebuilt only when the panel's revision, the column width or the entry draft
// changes.
type panelView struct {
	panel *spinview.ControlPanel
	index int

	rev   uint64
	width int
	draft string
	lines [panelRows]string
}

func (pv *panelView) refresh(width int, draft string) {
	rev := pv.panel.Revision()
	if rev == pv.rev && width == pv.width && draft == pv.draft {
		return
	}
	pv.rev, pv.width, pv.draft = rev, width, draft

	p := pv.panel
	pv.lines[rowTitle] = "[" + string(rune('1'+pv.index)) + "] " + p.Title

	// Slider bar: "[####|-----]" with the knob at the committed fraction.
	barW := max(width-4, 3)
	knob := int(math.Round(p.SliderFraction() * float64(barW-1)))
	var b strings.Builder
	b.Grow(barW + 2)
	b.WriteByte('[')
	for i := range barW {
		switch {
		case i == knob:
			b.WriteByte('|')
		case i < knob:
			b.WriteByte('=')
		default:
			b.WriteByte('-')
		}
	}
	b.WriteByte(']')
	pv.lines[rowSlider] = b.String()

	text := p.NumberText()
	if draft != "" {
		text = draft
	}
	pv.lines[rowNumber] = "speed " + text

	check := "[ ]"
	if p.Visible() {
		check = "[x]"
	}
	pv.lines[rowVisible] = check + " visible"
}

// draw paints the panel at column x, row y.
func (pv *panelView) draw(screen tcell.Screen, x, y, width int, selected bool, draft string) {
	pv.refresh(width-1, draft)
	base := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	title := base.Bold(true)
	if selected {
		title = title.Reverse(true)
	}
	for row, line := range pv.lines {
		style := base
		if row == rowTitle {
			style = title
		}
		drawText(screen, x, y+row, width-1, style, line)
	}
}

// sliderFraction maps a column inside the slider row to a track fraction.
func (pv *panelView) sliderFraction(col int) float64 {
	barW := max(pv.width-4, 3)
	return spinview.Clamp01(float64(col-1) / float64(barW-1))
}
