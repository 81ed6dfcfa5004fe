package ebitenview

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/spinview"
)

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	// Lit shades faces by their angle to a fixed light. Off, every face is
	// drawn in its flat material color.
	Lit bool
	// ScreenshotDir receives PNGs captured with F12 or a script step.
	ScreenshotDir string
}

func (c *RunConfig) setDefaults() {
	if c.Title == "" {
		c.Title = "spinview"
	}
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
}

// errQuit ends RunGame without reporting a failure.
var errQuit = errors.New("quit")

// Viewer is the Ebitengine front-end for a scene: one window with the three
// solids and their control panels on top. It implements ebiten.Game; each
// Update is one frame tick of the scene.
type Viewer struct {
	scene *spinview.Scene
	cfg   RunConfig

	width, height int

	widgets []*panelWidget
	active  *panelWidget // last panel touched, target of arrow keys
	focus   *panelWidget // panel whose numeric entry has keyboard focus

	pointer      pointerState
	dragDeadZone float64
	injectQueue  []syntheticPointerEvent
	chars        []rune
	keys         []ebiten.Key

	screenshotQueue []string
	fps             *fpsOverlay

	verts []ebiten.Vertex
	inds  []uint16

	quit bool
}

// NewViewer wires a viewer to scene. The scene's screenshot hook is pointed at
// the viewer.
func NewViewer(scene *spinview.Scene, cfg RunConfig) *Viewer {
	cfg.setDefaults()
	v := &Viewer{
		scene:        scene,
		cfg:          cfg,
		width:        cfg.Width,
		height:       cfg.Height,
		dragDeadZone: defaultDragDeadZone,
	}
	for i, p := range scene.Panels() {
		v.widgets = append(v.widgets, newPanelWidget(p, i))
	}
	if len(v.widgets) > 0 {
		v.active = v.widgets[0]
	}
	if cfg.ShowFPS {
		v.fps = newFPSOverlay()
	}
	scene.OnScreenshot(v.Screenshot)
	return v
}

// Run opens a window and runs the scene until the window is closed or the
// scene's update func returns an error.
func Run(scene *spinview.Scene, cfg RunConfig) error {
	v := NewViewer(scene, cfg)
	ebiten.SetWindowTitle(v.cfg.Title)
	ebiten.SetWindowSize(v.cfg.Width, v.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(scene.FrameRate())

	scene.Logger().Info("window opened", "width", v.cfg.Width, "height", v.cfg.Height, "lit", v.cfg.Lit)
	err := ebiten.RunGame(v)
	if err == nil || errors.Is(err, errQuit) {
		return nil
	}
	return fmt.Errorf("run window: %w", err)
}

// Scene returns the viewed scene.
func (v *Viewer) Scene() *spinview.Scene {
	return v.scene
}

// Update handles input and advances the scene by one frame tick.
func (v *Viewer) Update() error {
	v.processInput()
	if err := v.scene.Update(); err != nil {
		return err
	}
	if v.fps != nil {
		v.fps.update(1.0 / float64(v.scene.FrameRate()))
	}
	if v.quit {
		return errQuit
	}
	return nil
}

// Draw renders the solids back to front, then the panels, then overlays.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.scene.ClearColor.RGBA())
	v.drawSolids(screen)
	for _, w := range v.widgets {
		w.draw(screen)
	}
	if v.fps != nil {
		v.fps.draw(screen, float64(v.width))
	}
	v.flushScreenshots(screen)
}

// Layout tracks the window size so projection follows resizes.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// drawSolids submits every projected face as one DrawTriangles call.
func (v *Viewer) drawSolids(screen *ebiten.Image) {
	tris := v.scene.Project(spinview.RenderOptions{
		Width:  float64(v.width),
		Height: float64(v.height),
		Lit:    v.cfg.Lit,
	})
	if len(tris) == 0 {
		return
	}
	v.verts, v.inds = appendTriangleVertices(v.verts[:0], v.inds[:0], tris)
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	screen.DrawTriangles(v.verts, v.inds, ensureWhitePixel(), &op)
}

// appendTriangleVertices flattens projected faces into an untextured vertex
// list sampling the white pixel.
func appendTriangleVertices(verts []ebiten.Vertex, inds []uint16, tris []spinview.Triangle) ([]ebiten.Vertex, []uint16) {
	for i := range tris {
		t := &tris[i]
		c := t.Fill()
		base := uint16(len(verts))
		for _, p := range t.P {
			verts = append(verts, ebiten.Vertex{
				DstX: float32(p.X()), DstY: float32(p.Y()),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: float32(c.A),
			})
		}
		inds = append(inds, base, base+1, base+2)
	}
	return verts, inds
}

// --- White pixel singleton (no sync.Once, the viewer is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
