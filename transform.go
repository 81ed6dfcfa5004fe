package spinview

import "github.com/go-gl/mathgl/mgl64"

// computeLocalTransform returns the node's local model matrix.
//
// Composition order matches an XYZ Euler rotation:
//
//	Translate(Position) * RotateX(rot.X) * RotateY(rot.Y) * Scale
func computeLocalTransform(n *Node) mgl64.Mat4 {
	m := mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	m = m.Mul4(mgl64.HomogRotate3DX(n.rotation.X))
	m = m.Mul4(mgl64.HomogRotate3DY(n.rotation.Y))
	if n.Scale != 1 {
		m = m.Mul4(mgl64.Scale3D(n.Scale, n.Scale, n.Scale))
	}
	return m
}

// updateWorldTransform recomputes worldTransform for n and its subtree.
// parentRecomputed forces recomputation of clean children whose parent moved.
func updateWorldTransform(n *Node, parent mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = parent.Mul4(computeLocalTransform(n))
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// LocalToWorld converts a point in the node's local space to world space using
// the last computed world transform.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.worldTransform)
}
