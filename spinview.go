package spinview

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorHotPink is the material color shared by every solid in the default scene.
var ColorHotPink = Color{R: 1, G: 105.0 / 255.0, B: 180.0 / 255.0, A: 1}

// ColorBlack is the default clear color.
var ColorBlack = Color{0, 0, 0, 1}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(Clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(Clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(Clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(Clamp01(c.A)*255 + 0.5),
	}
}

// Scale returns c with its RGB components multiplied by k. Alpha is kept.
func (c Color) Scale(k float64) Color {
	return Color{c.R * k, c.G * k, c.B * k, c.A}
}

// Speed bounds shared by every control panel.
const (
	SpeedMin     = 0.0
	SpeedMax     = 1.0
	SpeedStep    = 0.001
	DefaultSpeed = 0.01
)

// GeometryKind selects one of the built-in solids.
type GeometryKind uint8

const (
	GeometryBox          GeometryKind = iota // unit cube
	GeometryTorus                            // ring with circular cross-section
	GeometryDodecahedron                     // twelve pentagonal faces
)

// String returns the display name used in panel titles.
func (g GeometryKind) String() string {
	switch g {
	case GeometryBox:
		return "Box"
	case GeometryTorus:
		return "Torus"
	case GeometryDodecahedron:
		return "Dodecahedron"
	default:
		return "Unknown"
	}
}

// ControlKind identifies which control committed a change.
type ControlKind uint8

const (
	ControlSlider ControlKind = iota // range input drag or step
	ControlNumber                    // typed numeric entry
	ControlToggle                    // visibility checkbox
)

// String returns a short lowercase name, used in logs.
func (k ControlKind) String() string {
	switch k {
	case ControlSlider:
		return "slider"
	case ControlNumber:
		return "number"
	case ControlToggle:
		return "toggle"
	default:
		return "unknown"
	}
}
