package spinview

import (
	"github.com/go-gl/mathgl/mgl64"
)

// nodeIDCounter is a plain counter (no atomic: spinview is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Orientation is the spin state of a node: two rotation angles in radians about
// the local X and Y axes. Angles accumulate without wrapping.
type Orientation struct {
	X, Y float64
}

// Node is one element of the 3D scene graph. Group nodes carry a position and
// an orientation; mesh nodes additionally carry geometry and a color.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Position and Scale are set at composition time;
	// rotation is private so only a SpinAnimator can advance it.
	Position mgl64.Vec3
	Scale    float64
	rotation Orientation

	// Computed during updateWorldTransform.
	worldTransform mgl64.Mat4
	transformDirty bool

	// Visibility is read once per frame. A nil state means always visible.
	visibility *VisibilityState

	// Mesh fields
	Mesh  *Mesh
	Color Color

	// Metadata
	UserData any

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = 1
	n.Color = Color{1, 1, 1, 1}
	n.worldTransform = mgl64.Ident4()
	n.transformDirty = true
}

// NewGroup creates a node with no geometry of its own.
func NewGroup(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewMeshNode creates a node that renders mesh with a flat color.
func NewMeshNode(name string, mesh *Mesh, c Color) *Node {
	n := &Node{Name: name, Mesh: mesh}
	nodeDefaults(n)
	n.Color = c
	return n
}

// Rotation returns the node's accumulated orientation.
func (n *Node) Rotation() Orientation {
	return n.rotation
}

// rotateBy advances both angles by delta and marks the subtree dirty.
func (n *Node) rotateBy(delta float64) {
	n.rotation.X += delta
	n.rotation.Y += delta
	n.transformDirty = true
}

// SetVisibility binds the node to a visibility cell. Passing nil makes the
// node unconditionally visible.
func (n *Node) SetVisibility(v *VisibilityState) {
	n.visibility = v
}

// IsVisible reports the current value of the bound visibility cell.
func (n *Node) IsVisible() bool {
	return n.visibility == nil || n.visibility.Read()
}

// SetPosition sets the local position and marks the node dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// WorldTransform returns the model matrix computed on the last update.
func (n *Node) WorldTransform() mgl64.Mat4 {
	return n.worldTransform
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("spinview: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("spinview: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("spinview: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Mesh = nil
	n.visibility = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
