package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Component is the interface for everything that can be attached to a node.
type Component interface {
	OnDestroy() // Called when component/object is destroyed

	GetEnabled() bool
	SetEnabled(bool)
	GetNode() *Node
	SetNode(*Node)
}

// BaseComponent provides default implementations for all Component methods
type BaseComponent struct {
	enabled bool
	node    *Node
}

func (c *BaseComponent) OnDestroy() {}

func (c *BaseComponent) GetEnabled() bool {
	return c.enabled
}

func (c *BaseComponent) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *BaseComponent) GetNode() *Node {
	return c.node
}

func (c *BaseComponent) SetNode(n *Node) {
	c.node = n
}

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

func (t *Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

func (t *Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
}

// Matrix returns translation * rotation * scale.
func (t *Transform) Matrix() mgl32.Mat4 {
	scaleMatrix := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	translationMatrix := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	return translationMatrix.Mul4(t.Rotation.Mat4()).Mul4(scaleMatrix)
}

// Node is an object in a scene. The scene that created it owns it.
type Node struct {
	Name       string
	Tag        string
	Active     bool
	Transform  *Transform
	Components []Component
	scene      *Scene
}

func newNode(name string, owner *Scene) *Node {
	return &Node{
		Name:       name,
		Active:     true,
		Components: make([]Component, 0),
		Transform: &Transform{
			Position: mgl32.Vec3{0, 0, 0},
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
		scene: owner,
	}
}

func (n *Node) AddComponent(component Component) {
	component.SetNode(n)
	component.SetEnabled(true)
	n.Components = append(n.Components, component)
}

func (n *Node) RemoveComponent(component Component) {
	for i, comp := range n.Components {
		if comp == component {
			comp.OnDestroy()
			n.Components = append(n.Components[:i], n.Components[i+1:]...)
			return
		}
	}
}

// GetComponent returns the first component of type T on the node.
func GetComponent[T Component](n *Node) (T, bool) {
	for _, comp := range n.Components {
		if c, ok := comp.(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

func (n *Node) SetTransform(position mgl32.Vec3, rotation mgl32.Quat) {
	n.Transform.Position = position
	n.Transform.Rotation = rotation
}

func (n *Node) SetPosition(position mgl32.Vec3) {
	n.Transform.Position = position
}

func (n *Node) SetScale(scale mgl32.Vec3) {
	n.Transform.Scale = scale
}

// LookAt rotates the node so its forward (-Z) axis points along dir with up as close to
// the given up vector as possible. A zero dir or an up parallel to dir leaves the
// rotation unchanged and reports false.
func (n *Node) LookAt(dir, up mgl32.Vec3) bool {
	if dir.Len() < 1e-6 {
		return false
	}
	front := dir.Normalize()
	right := front.Cross(up)
	if right.Len() < 1e-6 {
		return false
	}
	right = right.Normalize()
	realUp := right.Cross(front)
	n.Transform.Rotation = mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, realUp, front.Mul(-1)).Mat4()).Normalize()
	return true
}

// Scene returns the owning scene, or nil once the node has been removed.
func (n *Node) Scene() *Scene {
	return n.scene
}

// Remove detaches the node from its scene and destroys its components.
func (n *Node) Remove() {
	if n.scene != nil {
		n.scene.RemoveNode(n)
	}
}

func (n *Node) destroy() {
	for _, comp := range n.Components {
		comp.OnDestroy()
	}
	n.Components = n.Components[:0]
	n.Active = false
	n.scene = nil
}
