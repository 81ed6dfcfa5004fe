package ebitenview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	fpsWidth    = 100
	fpsHeight   = 32
	fpsInterval = 0.5 // seconds between refreshes
)

// fpsOverlay displays the current FPS and TPS in the top-right corner.
// It uses a private image redrawn with ebitenutil.DebugPrint about twice a
// second.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	drawn   bool
}

func newFPSOverlay() *fpsOverlay {
	return &fpsOverlay{}
}

func (f *fpsOverlay) update(dt float64) {
	f.elapsed += dt
	if f.drawn && f.elapsed < fpsInterval {
		return
	}
	f.elapsed = 0
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(fpsWidth, fpsHeight)
	}
	f.img.Clear()
	// Semi-transparent background for readability
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	f.drawn = true
}

func (f *fpsOverlay) draw(dst *ebiten.Image, screenW float64) {
	if f.img == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(screenW-fpsWidth-panelMargin, panelMargin)
	dst.DrawImage(f.img, &op)
}
