package scene

import "github.com/go-gl/mathgl/mgl64"

// Node is a scene-graph node. Local values are relative to the parent; a node
// without parent lives directly in world space.
type Node struct {
	name      string
	parent    *Node
	children  []*Node
	transform Transform
}

// New creates a detached node with an identity transform
func New(name string) *Node {
	return &Node{
		name:      name,
		transform: NewTransform(),
	}
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) LocalTransform() Transform {
	return n.transform
}

func (n *Node) LocalPosition() mgl64.Vec3 {
	return n.transform.Position
}

func (n *Node) SetLocalPosition(position mgl64.Vec3) {
	n.transform.Position = position
}

func (n *Node) LocalScale() mgl64.Vec3 {
	return n.transform.Scale
}

func (n *Node) SetLocalScale(scale mgl64.Vec3) {
	n.transform.Scale = scale
}

func (n *Node) LocalRotation() mgl64.Quat {
	return n.transform.Rotation
}

func (n *Node) SetLocalRotation(rotation mgl64.Quat) {
	n.transform.Rotation = rotation
}

// LocalEulerZ returns the local Z rotation in degrees, in [0, 360)
func (n *Node) LocalEulerZ() float64 {
	return EulerZ(n.transform.Rotation)
}

func (n *Node) SetLocalEulerZ(degrees float64) {
	n.transform.Rotation = RotationZ(degrees)
}

func (n *Node) LocalMatrix() mgl64.Mat4 {
	return n.transform.Matrix()
}

// WorldMatrix is the local-to-world matrix
func (n *Node) WorldMatrix() mgl64.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}

	return n.parent.WorldMatrix().Mul4(n.LocalMatrix())
}

func (n *Node) parentMatrix() mgl64.Mat4 {
	if n.parent == nil {
		return mgl64.Ident4()
	}

	return n.parent.WorldMatrix()
}

// Position returns the world position
func (n *Node) Position() mgl64.Vec3 {
	return transformPoint(n.parentMatrix(), n.transform.Position)
}

// SetPosition moves the node so that its world position becomes position
func (n *Node) SetPosition(position mgl64.Vec3) {
	n.transform.Position = transformPoint(n.parentMatrix().Inv(), position)
}

// Rotation returns the world rotation: the chain of local rotations, scale ignored
func (n *Node) Rotation() mgl64.Quat {
	if n.parent == nil {
		return n.transform.Rotation
	}

	return n.parent.Rotation().Mul(n.transform.Rotation)
}

func (n *Node) SetRotation(rotation mgl64.Quat) {
	if n.parent == nil {
		n.transform.Rotation = rotation
		return
	}

	n.transform.Rotation = n.parent.Rotation().Inverse().Mul(rotation).Normalize()
}

// TransformPoint maps a point from this node's local space to world space
func (n *Node) TransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(n.WorldMatrix(), point)
}

// InverseTransformPoint maps a world point into this node's local space
func (n *Node) InverseTransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(n.WorldMatrix().Inv(), point)
}

// SetParent attaches the node to parent, or detaches it when parent is nil.
// With worldPositionStays the current world transform is re-expressed in the
// new parent's space, otherwise the local values are kept as they are.
func (n *Node) SetParent(parent *Node, worldPositionStays bool) {
	if n.parent == parent {
		return
	}

	world := n.WorldMatrix()
	n.detach()

	if parent != nil {
		n.parent = parent
		parent.children = append(parent.children, n)
	}

	if worldPositionStays {
		n.transform = decompose(n.parentMatrix().Inv().Mul4(world))
	}
}

// AddChild is SetParent seen from the parent, local values kept
func (n *Node) AddChild(child *Node) {
	child.SetParent(n, false)
}

// Destroy detaches the node and releases its whole subtree
func (n *Node) Destroy() {
	n.detach()
	for _, child := range n.children {
		child.parent = nil
		child.Destroy()
	}
	n.children = nil
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}

	siblings := n.parent.children
	k := -1
	for i, s := range siblings {
		if s == n {
			k = i
			break
		}
	}

	if k != -1 {
		n.parent.children = append(siblings[:k], siblings[k+1:]...)
	}
	n.parent = nil
}

func transformPoint(m mgl64.Mat4, point mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(point.Vec4(1)).Vec3()
}
