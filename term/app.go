// Package term is a terminal front-end for a spinview scene. It rasterizes
// the projected triangles into character cells with tcell and draws one
// text panel per scene entry above the viewport.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/phanxgames/spinview"
)

// Config controls the terminal session.
type Config struct {
	// FrameRate is the tick rate. Zero uses the scene's frame rate.
	FrameRate int
	// Charset is the shading ramp from dark to bright, used when Lit is set.
	Charset string
	// Lit shades faces by their angle to the light.
	Lit bool
}

// App drives one scene on a tcell screen.
type App struct {
	screen tcell.Screen
	scene  *spinview.Scene
	cfg    Config
	logger hclog.Logger

	width, height int
	raster        *raster
	panels        []*panelView
	selected      int

	// Numeric entry state. The draft is only committed on Enter.
	entering bool
	draft    []rune

	dragging bool
	lastX    int
	lastY    int
	quit     bool
}

// New creates an App for an initialized screen.
func New(screen tcell.Screen, scene *spinview.Scene, cfg Config) *App {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = scene.FrameRate()
	}
	a := &App{
		screen: screen,
		scene:  scene,
		cfg:    cfg,
		logger: scene.Logger().Named("term"),
		raster: newRaster(cfg.Charset, cfg.Lit),
	}
	for i, p := range scene.Panels() {
		a.panels = append(a.panels, &panelView{panel: p, index: i})
	}
	a.width, a.height = screen.Size()
	return a
}

// Run opens the terminal, runs the session until ctx is done or the user
// quits, and restores the terminal.
func Run(ctx context.Context, scene *spinview.Scene, cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()

	return New(screen, scene, cfg).Loop(ctx)
}

// Loop interleaves terminal events with frame ticks. It returns nil when the
// user quits or ctx is done, and the scene's error if a tick fails.
func (a *App) Loop(ctx context.Context) error {
	a.logger.Info("terminal session started", "width", a.width, "height", a.height, "fps", a.cfg.FrameRate)

	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.FrameRate))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if !a.HandleEvent(ev) {
				a.logger.Info("terminal session ended", "frames", a.scene.Frame())
				return nil
			}
		case <-ticker.C:
			if err := a.Tick(); err != nil {
				return err
			}
		}
	}
}

// Tick advances the scene one frame and redraws.
func (a *App) Tick() error {
	if err := a.scene.Update(); err != nil {
		return fmt.Errorf("frame %d: %w", a.scene.Frame(), err)
	}
	a.Draw()
	return nil
}

// Selected returns the index of the panel that keys act on.
func (a *App) Selected() int {
	return a.selected
}

// Entering reports whether numeric entry is in progress, and its draft.
func (a *App) Entering() (bool, string) {
	return a.entering, string(a.draft)
}

// viewport returns the rows used by the 3D view: everything between the
// panel block and the help line.
func (a *App) viewport() (top, w, h int) {
	top = panelRows + 1
	return top, a.width, max(a.height-top-1, 0)
}

// Draw renders the panels, the scene and the help line.
func (a *App) Draw() {
	bg := tcell.StyleDefault.Background(tcell.ColorBlack)
	a.screen.Fill(' ', bg)

	colW := a.width / max(len(a.panels), 1)
	for i, pv := range a.panels {
		draft := ""
		if a.entering && i == a.selected {
			draft = string(a.draft) + "_"
		}
		pv.draw(a.screen, i*colW, 0, colW, i == a.selected, draft)
	}

	top, vw, vh := a.viewport()
	a.raster.resize(vw, vh)
	a.raster.clear()
	if vw > 0 && vh > 0 {
		tris := a.scene.Project(spinview.RenderOptions{
			Width:  float64(vw),
			Height: float64(vh) * cellAspect,
			Lit:    a.cfg.Lit,
		})
		for i := range tris {
			a.raster.fill(&tris[i])
		}
		for y := 0; y < vh; y++ {
			for x := 0; x < vw; x++ {
				c := a.raster.at(x, y)
				if !c.set {
					continue
				}
				rgba := c.color.RGBA()
				fg := tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
				a.screen.SetContent(x, top+y, c.ch, nil, bg.Foreground(fg))
			}
		}
	}

	help := "1-3/Tab select  ←/→ speed  = type  Space show/hide  hjkl orbit  +/- zoom  r reset  q quit"
	drawText(a.screen, 0, a.height-1, a.width, tcell.StyleDefault.Foreground(tcell.ColorGray), help)
	a.screen.Show()
}

// drawText writes s at (x, y), clipped to width cells.
func drawText(screen tcell.Screen, x, y, width int, style tcell.Style, s string) int {
	n := 0
	for _, r := range s {
		if n >= width {
			break
		}
		screen.SetContent(x+n, y, r, nil, style)
		n++
	}
	return n
}
