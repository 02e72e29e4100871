// Package scene provides the node tree walked by the renderer: spatial
// nodes, meshes, lights, fog and the registry of current singletons.
package scene

import (
	"slices"

	"github.com/taigrr/lowpoly/pkg/math3d"
)

// Node is anything that can live in the tree. Concrete nodes embed Base.
type Node interface {
	NodeBase() *Base
}

// Processor is implemented by nodes that update once per frame.
type Processor interface {
	Process(dt float64)
}

// TreeEnterer is implemented by nodes that react to joining a scene.
type TreeEnterer interface {
	EnterTree()
}

// TreeExiter is implemented by nodes that react to leaving a scene.
type TreeExiter interface {
	ExitTree()
}

// Base holds the state shared by every node: a local transform, the
// parent/child links and the enabled flag.
type Base struct {
	Name      string
	Transform math3d.Transform3D

	parent   *Base
	children []Node
	scene    *Scene
	disabled bool
}

// NewBase returns a Base with an identity transform.
func NewBase(name string) Base {
	return Base{Name: name, Transform: math3d.IdentityTransform()}
}

// NodeBase implements Node.
func (b *Base) NodeBase() *Base { return b }

// Parent returns the parent node's Base, or nil at the top of a tree.
func (b *Base) Parent() *Base { return b.parent }

// Children returns the direct children. The slice must not be modified.
func (b *Base) Children() []Node { return b.children }

// Scene returns the scene the node is attached to, or nil.
func (b *Base) Scene() *Scene { return b.scene }

// Enabled reports the node's own flag.
func (b *Base) Enabled() bool { return !b.disabled }

// SetEnabled toggles the node. A disabled node hides its whole subtree.
func (b *Base) SetEnabled(enabled bool) {
	if b.disabled == !enabled {
		return
	}
	b.disabled = !enabled
	if b.scene != nil {
		b.scene.syncRegistry(b.node(), enabled)
		b.scene.notify(NodeToggled, b)
	}
}

// node returns the Node that embeds b, as stored by its parent.
func (b *Base) node() Node {
	if b.parent != nil {
		for _, c := range b.parent.children {
			if c.NodeBase() == b {
				return c
			}
		}
	}
	return b
}

// EnabledInTree reports whether the node and all of its ancestors are enabled.
func (b *Base) EnabledInTree() bool {
	for n := b; n != nil; n = n.parent {
		if n.disabled {
			return false
		}
	}
	return true
}

// AddChild attaches child under b, detaching it from any previous parent.
func (b *Base) AddChild(child Node) {
	cb := child.NodeBase()
	if cb == b {
		return
	}
	if cb.parent != nil {
		cb.parent.RemoveChild(child)
	}

	cb.parent = b
	b.children = append(b.children, child)

	if b.scene != nil {
		b.scene.attach(child)
	}
}

// RemoveChild detaches child. It reports whether child was found.
func (b *Base) RemoveChild(child Node) bool {
	cb := child.NodeBase()
	i := slices.IndexFunc(b.children, func(n Node) bool { return n.NodeBase() == cb })
	if i < 0 {
		return false
	}

	b.children = slices.Delete(b.children, i, i+1)
	if b.scene != nil {
		b.scene.detach(child)
	}
	cb.parent = nil
	return true
}

// GlobalTransform returns the local transform composed with every ancestor.
func (b *Base) GlobalTransform() math3d.Transform3D {
	t := b.Transform
	for p := b.parent; p != nil; p = p.parent {
		t = p.Transform.Mul(t)
	}
	return t
}

// GlobalPosition returns the node's world-space origin.
func (b *Base) GlobalPosition() math3d.Vec3 {
	return b.GlobalTransform().Position
}

// SetGlobalPosition moves the node so that its world-space origin is p.
func (b *Base) SetGlobalPosition(p math3d.Vec3) {
	if b.parent == nil {
		b.Transform.Position = p
		return
	}
	b.Transform.Position = b.parent.GlobalTransform().Inverse().Xform(p)
}

// Translate moves the node by v in its parent's space.
func (b *Base) Translate(v math3d.Vec3) {
	b.Transform.Position = b.Transform.Position.Add(v)
}

// Rotate rotates the node around axis (in its parent's space) by angle radians.
func (b *Base) Rotate(axis math3d.Vec3, angle float64) {
	b.Transform.Basis = b.Transform.Basis.Rotated(axis, angle)
}

// RotateLocal rotates the node around one of its own axes.
func (b *Base) RotateLocal(axis math3d.Vec3, angle float64) {
	b.Rotate(axis.ApplyBasis(b.Transform.Basis), angle)
}

// LookAt orients the node so its forward axis points at the world-space target.
func (b *Base) LookAt(target, up math3d.Vec3) {
	global := b.GlobalTransform()
	basis := math3d.LookAt(target.Sub(global.Position), up).Scaled(b.Transform.Basis.Scale())
	if b.parent != nil {
		basis = b.parent.GlobalTransform().Basis.Inverse().Mul(basis)
	}
	b.Transform.Basis = basis
}

// SetScale replaces the node's scale, keeping its orientation.
func (b *Base) SetScale(s math3d.Vec3) {
	b.Transform.Basis = b.Transform.Basis.Orthonormalized().Scaled(s)
}

// Walk visits n and its subtree depth-first, parents before children.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.NodeBase().children {
		Walk(c, fn)
	}
}

// EnabledDescendants collects every enabled node under root that is a T,
// in depth-first order. Disabled subtrees are skipped and root itself is
// not included.
func EnabledDescendants[T any](root Node) []T {
	var out []T
	for _, c := range root.NodeBase().children {
		Walk(c, func(n Node) bool {
			if !n.NodeBase().Enabled() {
				return false
			}
			if t, ok := n.(T); ok {
				out = append(out, t)
			}
			return true
		})
	}
	return out
}
