package spinview

import (
	"math"
	"testing"
)

func TestGeometryTriangleCounts(t *testing.T) {
	tests := []struct {
		kind  GeometryKind
		verts int
		tris  int
	}{
		{GeometryBox, 8, 12},
		{GeometryTorus, 16 * 100, 16 * 100 * 2},
		{GeometryDodecahedron, 20, 36},
	}
	for _, tt := range tests {
		m := NewGeometry(tt.kind)
		if len(m.Vertices) != tt.verts {
			t.Errorf("%s: %d vertices, want %d", tt.kind, len(m.Vertices), tt.verts)
		}
		if m.TriangleCount() != tt.tris {
			t.Errorf("%s: %d triangles, want %d", tt.kind, m.TriangleCount(), tt.tris)
		}
		for i, idx := range m.Indices {
			if int(idx) >= len(m.Vertices) {
				t.Fatalf("%s: index %d = %d out of range", tt.kind, i, idx)
			}
		}
	}
}

func TestBoxExtent(t *testing.T) {
	m := NewBox(1, 1, 1)
	for _, v := range m.Vertices {
		for k := 0; k < 3; k++ {
			if math.Abs(v[k]) != 0.5 {
				t.Fatalf("vertex %v not on the unit cube", v)
			}
		}
	}
}

func TestTorusRadii(t *testing.T) {
	m := NewTorus(0.5, 0.1, 16, 100)
	for _, v := range m.Vertices {
		ring := math.Hypot(v.X(), v.Y())
		d := math.Hypot(ring-0.5, v.Z())
		if !approxEqual(d, 0.1, 1e-9) {
			t.Fatalf("vertex %v is %v from the tube center, want 0.1", v, d)
		}
	}
	if !approxEqual(m.Radius(), 0.6, 1e-9) {
		t.Errorf("Radius() = %v, want 0.6", m.Radius())
	}
}

func TestTorusMinSegments(t *testing.T) {
	m := NewTorus(1, 0.2, 1, 1)
	if len(m.Vertices) != 9 {
		t.Errorf("%d vertices, want 9", len(m.Vertices))
	}
}

func TestDodecahedronOnSphere(t *testing.T) {
	m := NewDodecahedron(0.5)
	for _, v := range m.Vertices {
		if !approxEqual(v.Len(), 0.5, 1e-9) {
			t.Fatalf("vertex %v has radius %v, want 0.5", v, v.Len())
		}
	}
}

func TestDodecahedronFacesUseEveryVertexThreeTimes(t *testing.T) {
	m := NewDodecahedron(1)
	// Three fan triangles per pentagon, in face order.
	seen := make(map[uint16]map[int]bool)
	for tri := 0; tri < m.TriangleCount(); tri++ {
		face := tri / 3
		for k := 0; k < 3; k++ {
			idx := m.Indices[tri*3+k]
			if seen[idx] == nil {
				seen[idx] = make(map[int]bool)
			}
			seen[idx][face] = true
		}
	}
	if len(seen) != 20 {
		t.Fatalf("%d vertices used, want 20", len(seen))
	}
	for idx, faces := range seen {
		if len(faces) != 3 {
			t.Errorf("vertex %d on %d faces, want 3", idx, len(faces))
		}
	}
}

func TestDodecahedronFacesPlanar(t *testing.T) {
	m := NewDodecahedron(1)
	for face := 0; face < 12; face++ {
		base := face * 9
		a := m.Vertices[m.Indices[base]]
		b := m.Vertices[m.Indices[base+1]]
		c := m.Vertices[m.Indices[base+2]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		for k := 0; k < 9; k++ {
			p := m.Vertices[m.Indices[base+k]]
			if d := math.Abs(p.Sub(a).Dot(n)); d > 1e-9 {
				t.Errorf("face %d: vertex off plane by %v", face, d)
			}
		}
		// Counter-clockwise around the outward normal.
		if n.Dot(a) <= 0 {
			t.Errorf("face %d winds inward", face)
		}
	}
}
