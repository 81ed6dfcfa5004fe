package spinview

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an indexed triangle list in local space.
type Mesh struct {
	Vertices []mgl64.Vec3
	Indices  []uint16 // three per triangle
}

// TriangleCount returns len(Indices)/3.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Radius returns the largest vertex distance from the local origin.
func (m *Mesh) Radius() float64 {
	var r float64
	for _, v := range m.Vertices {
		r = math.Max(r, v.Len())
	}
	return r
}

// NewGeometry builds the solid used for kind at its default size.
func NewGeometry(kind GeometryKind) *Mesh {
	switch kind {
	case GeometryTorus:
		return NewTorus(0.5, 0.1, 16, 100)
	case GeometryDodecahedron:
		return NewDodecahedron(0.5)
	default:
		return NewBox(1, 1, 1)
	}
}

// NewBox creates an axis-aligned box centered on the origin.
func NewBox(w, h, d float64) *Mesh {
	x, y, z := w/2, h/2, d/2
	verts := []mgl64.Vec3{
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
	}
	inds := []uint16{
		4, 5, 6, 4, 6, 7, // +z
		1, 0, 3, 1, 3, 2, // -z
		5, 1, 2, 5, 2, 6, // +x
		0, 4, 7, 0, 7, 3, // -x
		7, 6, 2, 7, 2, 3, // +y
		0, 1, 5, 0, 5, 4, // -y
	}
	return &Mesh{Vertices: verts, Indices: inds}
}

// NewTorus creates a ring in the XY plane. radius is the distance from the
// center to the middle of the tube; tube is the tube radius.
func NewTorus(radius, tube float64, radialSegs, tubularSegs int) *Mesh {
	if radialSegs < 3 {
		radialSegs = 3
	}
	if tubularSegs < 3 {
		tubularSegs = 3
	}

	verts := make([]mgl64.Vec3, 0, radialSegs*tubularSegs)
	for j := 0; j < radialSegs; j++ {
		v := 2 * math.Pi * float64(j) / float64(radialSegs)
		sv, cv := math.Sincos(v)
		for i := 0; i < tubularSegs; i++ {
			u := 2 * math.Pi * float64(i) / float64(tubularSegs)
			su, cu := math.Sincos(u)
			r := radius + tube*cv
			verts = append(verts, mgl64.Vec3{r * cu, r * su, tube * sv})
		}
	}

	idx := func(j, i int) uint16 {
		return uint16((j%radialSegs)*tubularSegs + i%tubularSegs)
	}

	inds := make([]uint16, 0, radialSegs*tubularSegs*6)
	for j := 0; j < radialSegs; j++ {
		for i := 0; i < tubularSegs; i++ {
			a := idx(j, i)
			b := idx(j+1, i)
			c := idx(j+1, i+1)
			d := idx(j, i+1)
			inds = append(inds, a, b, d, b, c, d)
		}
	}
	return &Mesh{Vertices: verts, Indices: inds}
}

// NewDodecahedron creates a regular dodecahedron whose vertices lie on a sphere
// of the given radius.
//
// Faces are found through the dual icosahedron: each icosahedron vertex is the
// normal of one pentagon, and the five dodecahedron vertices closest to that
// normal are the pentagon's corners.
func NewDodecahedron(radius float64) *Mesh {
	phi := (1 + math.Sqrt(5)) / 2
	ip := 1 / phi

	verts := make([]mgl64.Vec3, 0, 20)
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				verts = append(verts, mgl64.Vec3{sx, sy, sz})
			}
		}
	}
	for _, a := range []float64{-1, 1} {
		for _, b := range []float64{-1, 1} {
			verts = append(verts,
				mgl64.Vec3{0, a * ip, b * phi},
				mgl64.Vec3{a * ip, b * phi, 0},
				mgl64.Vec3{a * phi, 0, b * ip},
			)
		}
	}

	var normals []mgl64.Vec3
	for _, a := range []float64{-1, 1} {
		for _, b := range []float64{-1, 1} {
			normals = append(normals,
				mgl64.Vec3{0, a * phi, b}.Normalize(),
				mgl64.Vec3{a * phi, b, 0}.Normalize(),
				mgl64.Vec3{a, 0, b * phi}.Normalize(),
			)
		}
	}

	inds := make([]uint16, 0, 12*3*3)
	order := make([]int, len(verts))
	for _, nrm := range normals {
		for i := range order {
			order[i] = i
		}
		slices.SortFunc(order, func(a, b int) int {
			da, db := verts[a].Dot(nrm), verts[b].Dot(nrm)
			switch {
			case da > db:
				return -1
			case da < db:
				return 1
			}
			return 0
		})
		face := slices.Clone(order[:5])

		// Wind the pentagon counter-clockwise around its outward normal.
		center := mgl64.Vec3{}
		for _, i := range face {
			center = center.Add(verts[i])
		}
		center = center.Mul(1.0 / 5)
		u := verts[face[0]].Sub(center).Normalize()
		w := nrm.Cross(u)
		slices.SortFunc(face, func(a, b int) int {
			pa, pb := verts[a].Sub(center), verts[b].Sub(center)
			aa := math.Atan2(pa.Dot(w), pa.Dot(u))
			ab := math.Atan2(pb.Dot(w), pb.Dot(u))
			switch {
			case aa < ab:
				return -1
			case aa > ab:
				return 1
			}
			return 0
		})
		for k := 1; k < 4; k++ {
			inds = append(inds, uint16(face[0]), uint16(face[k]), uint16(face[k+1]))
		}
	}

	scale := radius / math.Sqrt(3)
	for i := range verts {
		verts[i] = verts[i].Mul(scale)
	}
	return &Mesh{Vertices: verts, Indices: inds}
}
