package ebitenview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/spinview"
)

// Panel geometry in pixels. Panels sit side by side along the top-left edge
// of the window with a 15px margin around each.
const (
	panelMargin = 15
	panelWidth  = 180
	panelHeight = 112

	trackY      = 44
	trackH      = 12
	trackW      = 160
	knobW       = 6
	numberY     = 62
	numberW     = 100
	numberH     = 18
	checkLabelY = 90
	checkboxX   = 70
	checkboxY   = 90
	checkboxS   = 14
)

var (
	panelBackground = color.RGBA{0, 0, 0, 140}
	widgetLine      = color.RGBA{255, 255, 255, 255}
	trackFill       = color.RGBA{90, 90, 90, 255}
	knobFill        = color.RGBA{255, 105, 180, 255}
	focusLine       = color.RGBA{255, 105, 180, 255}
)

// HitRect is an axis-aligned rectangular hit area in screen coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// widgetPart identifies which control of a panel is under the pointer.
type widgetPart uint8

const (
	partNone widgetPart = iota
	partPanel
	partSlider
	partNumber
	partCheckbox
)

// panelWidget draws one ControlPanel and maps pointer positions to its
// controls. The panel image is cached and redrawn only when the panel's
// revision moves, so frame ticks never repaint it.
type panelWidget struct {
	panel *spinview.ControlPanel
	x, y  float64

	img      *ebiten.Image
	drawnRev uint64
}

func newPanelWidget(p *spinview.ControlPanel, index int) *panelWidget {
	return &panelWidget{
		panel: p,
		x:     float64(panelMargin + index*(panelWidth+2*panelMargin)),
		y:     panelMargin,
	}
}

func (w *panelWidget) bounds() HitRect {
	return HitRect{w.x, w.y, panelWidth, panelHeight}
}

func (w *panelWidget) sliderRect() HitRect {
	// The hit area is taller than the track so the knob is easy to grab.
	return HitRect{w.x, w.y + trackY - 4, trackW, trackH + 8}
}

func (w *panelWidget) numberRect() HitRect {
	return HitRect{w.x, w.y + numberY, numberW, numberH}
}

func (w *panelWidget) checkboxRect() HitRect {
	return HitRect{w.x + checkboxX, w.y + checkboxY, checkboxS, checkboxS}
}

// hit returns the control under (x, y).
func (w *panelWidget) hit(x, y float64) widgetPart {
	switch {
	case w.sliderRect().Contains(x, y):
		return partSlider
	case w.numberRect().Contains(x, y):
		return partNumber
	case w.checkboxRect().Contains(x, y):
		return partCheckbox
	case w.bounds().Contains(x, y):
		return partPanel
	}
	return partNone
}

// sliderFraction maps a pointer x to a position along the track.
func (w *panelWidget) sliderFraction(x float64) float64 {
	return spinview.Clamp01((x - w.x) / trackW)
}

// draw composites the cached panel image onto dst, repainting it first if the
// panel changed since the last draw.
func (w *panelWidget) draw(dst *ebiten.Image) {
	if w.img == nil {
		w.img = ebiten.NewImage(panelWidth, panelHeight)
		w.drawnRev = 0
	}
	if rev := w.panel.Revision(); rev != w.drawnRev {
		w.repaint()
		w.drawnRev = rev
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(w.x, w.y)
	dst.DrawImage(w.img, &op)
}

func (w *panelWidget) repaint() {
	img := w.img
	p := w.panel
	img.Clear()
	img.Fill(panelBackground)

	ebitenutil.DebugPrintAt(img, p.Title, 0, 0)
	ebitenutil.DebugPrintAt(img, "Animation Speed", 0, 24)

	vector.DrawFilledRect(img, 0, trackY, trackW, trackH, trackFill, false)
	knobX := float32(p.SliderFraction()*(trackW-knobW))
	vector.DrawFilledRect(img, knobX, trackY-2, knobW, trackH+4, knobFill, false)

	line := widgetLine
	text := p.NumberText()
	if p.Editing() {
		line = focusLine
		text += "_"
	}
	vector.StrokeRect(img, 0.5, numberY+0.5, numberW-1, numberH-1, 1, line, false)
	ebitenutil.DebugPrintAt(img, text, 4, numberY+1)

	ebitenutil.DebugPrintAt(img, "Visibility", 0, checkLabelY-1)
	vector.StrokeRect(img, checkboxX+0.5, checkboxY+0.5, checkboxS-1, checkboxS-1, 1, widgetLine, false)
	if p.Visible() {
		vector.DrawFilledRect(img, checkboxX+3, checkboxY+3, checkboxS-6, checkboxS-6, knobFill, false)
	}
}
