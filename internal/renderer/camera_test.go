package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera(600, 800)

	if cam == nil {
		t.Fatal("NewDefaultCamera returned nil")
	}

	if cam.Position == (mgl32.Vec3{0, 0, 0}) {
		t.Error("Camera position should not be at origin")
	}

	if cam.Speed <= 0 {
		t.Error("Camera speed should be positive")
	}

	if cam.Sensitivity <= 0 {
		t.Error("Camera sensitivity should be positive")
	}

	if math.Abs(float64(cam.AspectRatio)-800.0/600.0) > 1e-5 {
		t.Errorf("Expected aspect ratio %f, got %f", 800.0/600.0, cam.AspectRatio)
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	cam.Position = mgl32.Vec3{0, 0, 5}
	cam.Front = mgl32.Vec3{0, 0, -1}
	cam.Up = mgl32.Vec3{0, 1, 0}

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}

	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(p.Z()+5)) > 1e-5 {
		t.Errorf("Expected origin 5 units in front of the camera, got %v", p)
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera(600, 800)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraGetViewProjection(t *testing.T) {
	cam := NewDefaultCamera(600, 800)

	vp := cam.GetViewProjection()

	zero := mgl32.Mat4{}
	if vp == zero {
		t.Error("ViewProjection should not be zero matrix")
	}
}

func TestCameraUpdateVectors(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	cam.Yaw = -90
	cam.Pitch = 0

	cam.updateCameraVectors()

	frontLen := cam.Front.Len()
	if math.Abs(float64(frontLen)-1.0) > 0.01 {
		t.Errorf("Front vector should be normalized, length=%f", frontLen)
	}
	if !vecNear(cam.Front, mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Expected yaw -90 to look down -Z, got %v", cam.Front)
	}
}

func TestCameraInvertMouse(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	cam.ProcessMouseMovement(0, 10, true)
	up := cam.Pitch

	cam = NewDefaultCamera(600, 800)
	cam.InvertMouse = true
	cam.ProcessMouseMovement(0, 10, true)

	if up <= 0 || cam.Pitch != -up {
		t.Errorf("Expected inverted pitch %f, got %f", -up, cam.Pitch)
	}
}

func TestCameraPitchConstrained(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	cam.ProcessMouseMovement(0, 5000, true)

	if cam.Pitch > 89 {
		t.Errorf("Expected pitch clamped to 89, got %f", cam.Pitch)
	}
}

func TestCameraMove(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	start := cam.Position

	cam.Move(0, 0, 1, 0.5)

	want := start.Add(cam.Front.Mul(cam.Speed * 0.5))
	if !vecNear(cam.Position, want, 1e-4) {
		t.Errorf("Expected %v, got %v", want, cam.Position)
	}
}

func TestLookAtDirectionOrthonormal(t *testing.T) {
	cam := &Camera{}
	cam.LookAtDirection(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0.2, -1, 0})

	for name, v := range map[string]mgl32.Vec3{"front": cam.Front, "up": cam.Up, "right": cam.Right} {
		if math.Abs(float64(v.Len())-1) > 1e-5 {
			t.Errorf("Expected unit %s, got length %f", name, v.Len())
		}
	}
	if d := cam.Front.Dot(cam.Up); math.Abs(float64(d)) > 1e-5 {
		t.Errorf("Expected front orthogonal to up, dot=%f", d)
	}
	if d := cam.Front.Dot(cam.Right); math.Abs(float64(d)) > 1e-5 {
		t.Errorf("Expected front orthogonal to right, dot=%f", d)
	}
}

func TestNewCubeFaceCamera(t *testing.T) {
	for i := 0; i < MaxCubeFaces; i++ {
		face := CubeFace(i)
		cam := NewCubeFaceCamera(face.Direction(), face.Up(), 256)

		if cam.Fov != 90 || cam.AspectRatio != 1 || cam.Far != 256 {
			t.Errorf("%s: unexpected projection fov=%f aspect=%f far=%f", face, cam.Fov, cam.AspectRatio, cam.Far)
		}
		if !vecNear(cam.Front, face.Direction(), 1e-5) {
			t.Errorf("%s: expected front %v, got %v", face, face.Direction(), cam.Front)
		}
		if !vecNear(cam.Up, face.Up(), 1e-5) {
			t.Errorf("%s: expected up %v, got %v", face, face.Up(), cam.Up)
		}

		rotated := cam.Orientation().Rotate(mgl32.Vec3{0, 0, -1})
		if !vecNear(rotated, cam.Front, 1e-5) {
			t.Errorf("%s: orientation maps -Z to %v, want %v", face, rotated, cam.Front)
		}
	}
}

func vecNear(a, b mgl32.Vec3, tol float32) bool {
	return a.Sub(b).Len() < tol
}
