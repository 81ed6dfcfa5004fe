package spinview

import (
	"cmp"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is one projected face, ready for a front-end to fill.
type Triangle struct {
	// P holds the corners in viewport pixels, origin top-left, Y down.
	P [3]mgl64.Vec2
	// Depth is the mean distance in front of the camera. Larger is farther.
	Depth float64
	// Shade scales Color; 1 for unlit rendering.
	Shade float64
	Color Color
	// Entry is the index of the scene entry the face belongs to.
	Entry int
}

// Fill returns the triangle's shaded color.
func (t *Triangle) Fill() Color {
	return t.Color.Scale(t.Shade)
}

// RenderOptions controls projection.
type RenderOptions struct {
	Width, Height float64
	// Lit enables Lambert face shading; otherwise faces use their flat
	// material color.
	Lit bool
}

var lightDir = mgl64.Vec3{0.4, 0.9, 0.3}.Normalize()

const (
	ambientLight = 0.25
	directLight  = 0.75
)

// Project walks the scene graph and returns every face of every visible
// entry, sorted back to front. Hidden subtrees are skipped, so the returned
// list is the frame's rendered set. The slice is reused by the next call.
func (s *Scene) Project(opts RenderOptions) []Triangle {
	s.tris = s.tris[:0]
	s.rendered = s.rendered[:0]
	if opts.Width <= 0 || opts.Height <= 0 {
		return s.tris
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	view := s.camera.View()
	proj := s.camera.Projection(opts.Width / opts.Height)
	eye := s.camera.Eye()
	s.traverse(s.root, -1, view, proj, eye, opts)

	if s.debug {
		stats.projectTime = time.Since(t0)
		t0 = time.Now()
	}

	slices.SortStableFunc(s.tris, func(a, b Triangle) int {
		return cmp.Compare(b.Depth, a.Depth)
	})

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.entries = len(s.rendered)
		stats.triangles = len(s.tris)
		s.debugLog(stats)
	}
	return s.tris
}

// Rendered returns the entry indices included by the last Project call, in
// traversal order.
func (s *Scene) Rendered() []int {
	return s.rendered
}

func (s *Scene) traverse(n *Node, entry int, view, proj mgl64.Mat4, eye mgl64.Vec3, opts RenderOptions) {
	if !n.IsVisible() {
		return
	}
	if e, ok := n.UserData.(*Entry); ok {
		entry = e.index
		s.rendered = append(s.rendered, entry)
	}
	if n.Mesh != nil && len(n.Mesh.Indices) > 0 {
		s.emitMesh(n, entry, view, proj, eye, opts)
	}
	for _, child := range n.children {
		s.traverse(child, entry, view, proj, eye, opts)
	}
}

// emitMesh projects one mesh node's faces into s.tris. Faces with a corner
// behind the near plane are dropped rather than clipped.
func (s *Scene) emitMesh(n *Node, entry int, view, proj mgl64.Mat4, eye mgl64.Vec3, opts RenderOptions) {
	m := n.Mesh
	world := n.worldTransform
	modelView := view.Mul4(world)

	need := len(m.Vertices)
	if cap(s.viewPos) < need {
		s.viewPos = make([]mgl64.Vec3, need)
		s.screen = make([]mgl64.Vec2, need)
	}
	s.viewPos = s.viewPos[:need]
	s.screen = s.screen[:need]

	for i, v := range m.Vertices {
		vp := modelView.Mul4x1(v.Vec4(1))
		s.viewPos[i] = vp.Vec3()
		clip := proj.Mul4x1(vp)
		if clip.W() <= 0 {
			s.screen[i] = mgl64.Vec2{}
			continue
		}
		ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()
		s.screen[i] = mgl64.Vec2{
			(ndcX + 1) / 2 * opts.Width,
			(1 - ndcY) / 2 * opts.Height,
		}
	}

	near := s.camera.Near
	for t := 0; t+2 < len(m.Indices); t += 3 {
		ia, ib, ic := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		za, zb, zc := -s.viewPos[ia].Z(), -s.viewPos[ib].Z(), -s.viewPos[ic].Z()
		if za < near || zb < near || zc < near {
			continue
		}

		shade := 1.0
		if opts.Lit {
			a := mgl64.TransformCoordinate(m.Vertices[ia], world)
			b := mgl64.TransformCoordinate(m.Vertices[ib], world)
			c := mgl64.TransformCoordinate(m.Vertices[ic], world)
			normal := b.Sub(a).Cross(c.Sub(a))
			if normal.Len() > 0 {
				normal = normal.Normalize()
				centroid := a.Add(b).Add(c).Mul(1.0 / 3)
				if normal.Dot(eye.Sub(centroid)) < 0 {
					normal = normal.Mul(-1)
				}
				shade = ambientLight + directLight*max(0, normal.Dot(lightDir))
			}
		}

		s.tris = append(s.tris, Triangle{
			P:     [3]mgl64.Vec2{s.screen[ia], s.screen[ib], s.screen[ic]},
			Depth: (za + zb + zc) / 3,
			Shade: shade,
			Color: n.Color,
			Entry: entry,
		})
	}
}
