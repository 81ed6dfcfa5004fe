package spinview

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hashicorp/go-hclog"
)

// EntryCount is the fixed number of solids in a scene.
const EntryCount = 3

// EntryConfig describes one solid at composition time.
type EntryConfig struct {
	Geometry GeometryKind
	Color    Color
	Offset   mgl64.Vec3
	Speed    float64
}

// Config describes a whole scene.
type Config struct {
	Entries      [EntryCount]EntryConfig
	CameraEye    mgl64.Vec3
	CameraTarget mgl64.Vec3
	FovY         float64 // degrees
	ClearColor   Color
	FrameRate    int // frame ticks per second, used to time camera animation
}

// DefaultConfig returns the standard scene: a box at the origin, a torus to
// its right and a dodecahedron to its left, all hot pink, each spinning at
// DefaultSpeed, seen from (0, 3, 5).
func DefaultConfig() Config {
	return Config{
		Entries: [EntryCount]EntryConfig{
			{Geometry: GeometryBox, Color: ColorHotPink, Offset: mgl64.Vec3{0, 0, 0}, Speed: DefaultSpeed},
			{Geometry: GeometryTorus, Color: ColorHotPink, Offset: mgl64.Vec3{2, 0, 0}, Speed: DefaultSpeed},
			{Geometry: GeometryDodecahedron, Color: ColorHotPink, Offset: mgl64.Vec3{-2, 0, 0}, Speed: DefaultSpeed},
		},
		CameraEye:    mgl64.Vec3{0, 3, 5},
		CameraTarget: mgl64.Vec3{0, 0, 0},
		FovY:         75,
		ClearColor:   ColorBlack,
		FrameRate:    60,
	}
}

// Entry is one solid of the scene. Its composition (geometry, color, offset
// and the cells it reads) is fixed at construction.
type Entry struct {
	index      int
	geometry   GeometryKind
	color      Color
	offset     mgl64.Vec3
	speed      *SpeedChannel
	visibility *VisibilityState

	group    *Node
	meshNode *Node
}

// Index returns the entry's position in the scene.
func (e *Entry) Index() int { return e.index }

// Name returns the geometry name.
func (e *Entry) Name() string { return e.geometry.String() }

// Geometry returns the kind of solid.
func (e *Entry) Geometry() GeometryKind { return e.geometry }

// Color returns the material color.
func (e *Entry) Color() Color { return e.color }

// Offset returns the entry's position in world space.
func (e *Entry) Offset() mgl64.Vec3 { return e.offset }

// Speed returns the entry's speed cell.
func (e *Entry) Speed() *SpeedChannel { return e.speed }

// Visibility returns the entry's visibility cell.
func (e *Entry) Visibility() *VisibilityState { return e.visibility }

// Node returns the group node the animator spins.
func (e *Entry) Node() *Node { return e.group }

// Orientation returns the accumulated spin.
func (e *Entry) Orientation() Orientation { return e.group.Rotation() }

// Scene composes the three entries, their panels and animators, and the
// camera. It owns the frame loop: each Update is one frame tick.
type Scene struct {
	ClearColor Color

	root      *Node
	entries   [EntryCount]*Entry
	panels    [EntryCount]*ControlPanel
	animators [EntryCount]*SpinAnimator
	camera    *Camera

	frame     uint64
	frameRate int

	updateFunc func() error
	script     *Script
	onShot     func(label string)

	sink   EventSink
	logger hclog.Logger
	debug  bool

	// Render buffers, reused across frames.
	tris     []Triangle
	viewPos  []mgl64.Vec3
	screen   []mgl64.Vec2
	rendered []int
}

// NewScene builds the scene graph for cfg. Entries, panels and animators are
// created once here and never replaced.
func NewScene(cfg Config) *Scene {
	s := &Scene{
		ClearColor: cfg.ClearColor,
		root:       NewGroup("root"),
		camera:     NewCamera(cfg.CameraEye, cfg.CameraTarget, cfg.FovY),
		frameRate:  cfg.FrameRate,
		logger:     hclog.NewNullLogger(),
	}
	if s.frameRate <= 0 {
		s.frameRate = 60
	}

	for i, ec := range cfg.Entries {
		mesh := NewGeometry(ec.Geometry)
		e := &Entry{
			index:      i,
			geometry:   ec.Geometry,
			color:      ec.Color,
			offset:     ec.Offset,
			speed:      NewSpeedChannel(ec.Speed),
			visibility: NewVisibilityState(),
		}
		e.group = NewGroup(ec.Geometry.String())
		e.group.Position = ec.Offset
		e.group.SetVisibility(e.visibility)
		e.group.UserData = e
		e.meshNode = NewMeshNode(ec.Geometry.String()+"/mesh", mesh, ec.Color)
		e.group.AddChild(e.meshNode)
		s.root.AddChild(e.group)

		p := NewControlPanel(ec.Geometry.String()+" Props", e.speed, e.visibility)
		p.index = i

		a := NewSpinAnimator(e.group, e.speed)
		a.onMissing = s.reportMissingTarget

		s.entries[i] = e
		s.panels[i] = p
		s.animators[i] = a
	}
	updateWorldTransform(s.root, mgl64.Ident4(), false)
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Entries returns the scene entries in composition order.
func (s *Scene) Entries() []*Entry {
	return s.entries[:]
}

// Panels returns one control panel per entry, in entry order.
func (s *Scene) Panels() []*ControlPanel {
	return s.panels[:]
}

// Animators returns one animator per entry, in entry order.
func (s *Scene) Animators() []*SpinAnimator {
	return s.animators[:]
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Frame returns the number of completed frame ticks.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// FrameRate returns the tick rate used to time camera animation.
func (s *Scene) FrameRate() int {
	return s.frameRate
}

// SetUpdateFunc registers a callback run at the end of every Update. A
// non-nil error is returned from Update, which ends the session in the
// front-ends.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetEventSink attaches an observer for control commits.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
	for _, p := range s.panels {
		p.sink = sink
	}
}

// SetScript attaches a scripted session. Its step runs at the start of every
// Update, before the animators.
func (s *Scene) SetScript(script *Script) {
	s.script = script
}

// OnScreenshot registers the front-end hook that captures a labeled frame.
func (s *Scene) OnScreenshot(fn func(label string)) {
	s.onShot = fn
}

// Screenshot asks the front-end to capture the next drawn frame.
func (s *Scene) Screenshot(label string) {
	if s.onShot == nil {
		s.logger.Warn("screenshot requested but front-end cannot capture", "label", label)
		return
	}
	s.onShot(label)
}

// Update runs one frame tick: the scripted step if any, every animator in
// entry order, the camera animation, and the world transform refresh.
func (s *Scene) Update() error {
	if s.script != nil {
		s.script.step(s)
	}

	for _, a := range s.animators {
		a.Tick()
	}

	s.camera.update(float32(1.0 / float64(s.frameRate)))
	updateWorldTransform(s.root, mgl64.Ident4(), false)
	s.frame++

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

func (s *Scene) reportMissingTarget(a *SpinAnimator) {
	if !s.debug {
		return
	}
	s.logger.Warn("assertion failed: spin target missing at tick",
		"frame", s.frame, "skipped", a.Skipped())
}
