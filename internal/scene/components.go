package scene

import (
	"SpaceBox/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// StaticModel draws a mesh with a material at its node's transform. It holds a
// reference on both for as long as it is attached.
type StaticModel struct {
	BaseComponent
	mesh     *renderer.Mesh
	material *renderer.Material
}

func (s *StaticModel) SetModel(mesh *renderer.Mesh) {
	if s.mesh == mesh {
		return
	}
	if mesh != nil {
		mesh.AddRef()
	}
	if s.mesh != nil {
		s.mesh.Release()
	}
	s.mesh = mesh
}

func (s *StaticModel) SetMaterial(material *renderer.Material) {
	if s.material == material {
		return
	}
	if material != nil {
		material.AddRef()
	}
	if s.material != nil {
		s.material.Release()
	}
	s.material = material
}

func (s *StaticModel) Model() *renderer.Mesh {
	return s.mesh
}

func (s *StaticModel) Material() *renderer.Material {
	return s.material
}

func (s *StaticModel) OnDestroy() {
	s.SetModel(nil)
	s.SetMaterial(nil)
}

// CameraComponent exposes the node's transform as a renderer camera.
type CameraComponent struct {
	BaseComponent
	camera *renderer.Camera
}

func NewCameraComponent() *CameraComponent {
	return &CameraComponent{camera: &renderer.Camera{
		Fov:         45,
		Near:        0.1,
		Far:         1000,
		AspectRatio: 1,
		WorldUp:     mgl32.Vec3{0, 1, 0},
	}}
}

func (c *CameraComponent) SetFov(fov float32) {
	c.camera.SetFov(fov)
}

func (c *CameraComponent) SetAspectRatio(aspect float32) {
	c.camera.SetAspectRatio(aspect)
}

func (c *CameraComponent) SetFarClip(far float32) {
	c.camera.SetFar(far)
}

// Camera returns the camera synced to the node's current position and rotation.
func (c *CameraComponent) Camera() *renderer.Camera {
	if n := c.GetNode(); n != nil {
		c.camera.Position = n.Transform.Position
		c.camera.LookAtDirection(n.Transform.Forward(), n.Transform.Up())
	}
	return c.camera
}

// ZoneComponent sets the ambient light and fog of the scene it is in.
type ZoneComponent struct {
	BaseComponent
	renderer.Zone
}

// DefaultZone is used by scenes without a zone node.
var DefaultZone = renderer.Zone{
	AmbientColor: mgl32.Vec3{0.1, 0.1, 0.1},
	FogColor:     mgl32.Vec3{0, 0, 0},
	FogStart:     250,
	FogEnd:       1000,
}
