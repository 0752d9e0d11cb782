package renderer

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrResourceNotFound    = errors.New("resource not found")
	ErrUnsupportedCubeSize = errors.New("unsupported cube texture size")
)

// Light is the directional light of the main scene.
type Light struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// Zone controls ambient light and fog for everything drawn from a scene.
type Zone struct {
	AmbientColor mgl32.Vec3
	FogColor     mgl32.Vec3
	FogStart     float32
	FogEnd       float32
}

// Drawable is one mesh placed in the world with the material it is drawn with.
type Drawable struct {
	Name      string
	Mesh      *Mesh
	Material  *Material
	Transform mgl32.Mat4
}

// SceneSource is what a viewport renders. The scene package implements it.
type SceneSource interface {
	Drawables() []Drawable
	Zone() Zone
}

// Viewport pairs a scene with the camera it is seen through.
type Viewport struct {
	Scene      SceneSource
	Camera     *Camera
	RenderPath *RenderPath
}

// CubeBackend allocates cube textures and draws viewports into their faces.
type CubeBackend interface {
	MaxCubeSize() int
	AllocateCube(tex *CubeTexture) error
	ReleaseCube(tex *CubeTexture)
	DrawFace(tex *CubeTexture, face CubeFace, vp *Viewport) error
}
