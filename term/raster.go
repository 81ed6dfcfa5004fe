package term

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/phanxgames/spinview"
)

// cellAspect is the height of a terminal cell in units of its width.
const cellAspect = 2.0

// defaultRamp maps shade from dark to bright.
const defaultRamp = ".:-=+*#%@"

// cell is one rasterized character.
type cell struct {
	ch    rune
	color spinview.Color
	depth float64
	set   bool
}

// raster is a character-cell framebuffer with a depth buffer. Triangles are
// given in "square pixel" coordinates where one cell is 1 wide and
// cellAspect tall.
type raster struct {
	w, h  int
	cells []cell
	ramp  []rune
	lit   bool
}

func newRaster(ramp string, lit bool) *raster {
	if ramp == "" {
		ramp = defaultRamp
	}
	return &raster{ramp: []rune(ramp), lit: lit}
}

// resize reallocates the buffer when the viewport changes size.
func (r *raster) resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.w, r.h = w, h
	if cap(r.cells) < w*h {
		r.cells = make([]cell, w*h)
	}
	r.cells = r.cells[:w*h]
}

func (r *raster) clear() {
	clear(r.cells)
}

// at returns the cell at column x, row y.
func (r *raster) at(x, y int) cell {
	return r.cells[y*r.w+x]
}

// glyph picks the character drawn for a face. Unlit faces are solid blocks so
// the flat material color reads as a silhouette.
func (r *raster) glyph(shade float64) rune {
	if !r.lit {
		return '█'
	}
	i := int(spinview.Clamp01(shade) * float64(len(r.ramp)-1))
	return r.ramp[i]
}

// fill rasterizes one triangle, sampling at cell centers. A cell keeps the
// nearest face.
func (r *raster) fill(t *spinview.Triangle) {
	a, b, c := t.P[0], t.P[1], t.P[2]
	area := edge(a, b, c)
	if area == 0 || math.IsNaN(area) {
		return
	}

	minX := int(math.Floor(min(a.X(), b.X(), c.X())))
	maxX := int(math.Ceil(max(a.X(), b.X(), c.X())))
	minY := int(math.Floor(min(a.Y(), b.Y(), c.Y()) / cellAspect))
	maxY := int(math.Ceil(max(a.Y(), b.Y(), c.Y()) / cellAspect))
	minX, maxX = max(minX, 0), min(maxX, r.w-1)
	minY, maxY = max(minY, 0), min(maxY, r.h-1)

	ch := r.glyph(t.Shade)
	col := t.Fill()
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := mgl64.Vec2{float64(x) + 0.5, (float64(y) + 0.5) * cellAspect}
			w0 := edge(b, c, p)
			w1 := edge(c, a, p)
			w2 := edge(a, b, p)
			// Accept either winding; faces are not culled.
			inside := (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0)
			if !inside {
				continue
			}
			dst := &r.cells[y*r.w+x]
			if dst.set && dst.depth <= t.Depth {
				continue
			}
			*dst = cell{ch: ch, color: col, depth: t.Depth, set: true}
		}
	}
}

// edge returns twice the signed area of triangle (a, b, p).
func edge(a, b, p mgl64.Vec2) float64 {
	return (b.X()-a.X())*(p.Y()-a.Y()) - (b.Y()-a.Y())*(p.X()-a.X())
}
