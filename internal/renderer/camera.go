// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position   mgl32.Vec3 // Camera position in world space
	Front      mgl32.Vec3 // Forward direction vector
	Up         mgl32.Vec3 // Up direction vector
	Right      mgl32.Vec3 // Right direction vector
	Projection mgl32.Mat4 // Projection matrix
	Pitch      float32    // Pitch angle (vertical rotation)
	Yaw        float32    // Yaw angle (horizontal rotation)

	// COLD DATA - Configuration and input handling, accessed less frequently
	WorldUp      mgl32.Vec3 // World up vector (usually (0,1,0))
	Speed        float32    // Movement speed
	Sensitivity  float32    // Mouse sensitivity
	Fov          float32    // Field of view
	Near         float32    // Near clipping plane
	Far          float32    // Far clipping plane
	AspectRatio  float32    // Screen aspect ratio
	LastX, LastY float32    // Last mouse position
	InvertMouse  bool       // Invert mouse Y axis

	Name string
}

func NewDefaultCamera(height int32, width int32) *Camera {
	camera := Camera{
		Position:    mgl32.Vec3{0, 7, 30},
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Pitch:       0.0,
		Yaw:         -90.0,
		Speed:       20,
		Sensitivity: 0.1,
		Fov:         45.0,
		Near:        0.1,
		Far:         300.0,
		LastX:       float32(width) / 2,
		LastY:       float32(height) / 2,
		AspectRatio: float32(width) / float32(height),
	}
	camera.updateCameraVectors()
	camera.UpdateProjection()
	return &camera
}

// NewCubeFaceCamera returns a 90 degree, square camera at the origin looking along dir.
func NewCubeFaceCamera(dir, up mgl32.Vec3, far float32) *Camera {
	c := &Camera{
		WorldUp:     up,
		Fov:         90,
		Near:        0.1,
		Far:         far,
		AspectRatio: 1,
	}
	c.LookAtDirection(dir, up)
	c.UpdateProjection()
	return c
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

// Setter methods that automatically update projection
func (c *Camera) SetNear(near float32) {
	c.Near = near
	c.UpdateProjection()
}

func (c *Camera) SetFar(far float32) {
	c.Far = far
	c.UpdateProjection()
}

func (c *Camera) SetFov(fov float32) {
	c.Fov = fov
	c.UpdateProjection()
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

// LookAtDirection points the camera along dir. up is re-orthogonalized against dir so
// Front, Up and Right always form an orthonormal basis.
func (c *Camera) LookAtDirection(dir, up mgl32.Vec3) {
	c.Front = dir.Normalize()
	c.Right = c.Front.Cross(up).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// Orientation returns the camera rotation; it maps -Z onto Front and +Y onto Up.
func (c *Camera) Orientation() mgl32.Quat {
	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(c.Right, c.Up, c.Front.Mul(-1)).Mat4())
}

// Move translates the camera in its own frame: x along Right, y along WorldUp, z along Front.
func (c *Camera) Move(x, y, z, deltaTime float32) {
	velocity := c.Speed * deltaTime
	c.Position = c.Position.
		Add(c.Right.Mul(x * velocity)).
		Add(c.WorldUp.Mul(y * velocity)).
		Add(c.Front.Mul(z * velocity))
}

func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	xoffset *= c.Sensitivity
	yoffset *= c.Sensitivity

	c.Yaw += xoffset

	if c.InvertMouse {
		c.Pitch -= yoffset
	} else {
		c.Pitch += yoffset
	}
	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -89.0, 89.0) // Prevent extreme pitch values
	}
	c.updateCameraVectors()
}

func (c *Camera) updateCameraVectors() {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)

	front := mgl32.Vec3{
		float32(math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
