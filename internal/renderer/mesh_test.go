package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPackColorRoundTrip(t *testing.T) {
	c := PackColor(1, 0.5, 0, 1)

	if c&0xff != 255 {
		t.Errorf("Expected red in the low byte, got %#x", c)
	}
	if c>>24 != 255 {
		t.Errorf("Expected alpha in the high byte, got %#x", c)
	}

	r, g, b, a := UnpackColor(c)
	if r != 1 || b != 0 || a != 1 {
		t.Errorf("Unexpected unpacked color %f %f %f %f", r, g, b, a)
	}
	if g < 0.49 || g > 0.51 {
		t.Errorf("Expected green near 0.5, got %f", g)
	}
}

func TestPackColorClamps(t *testing.T) {
	if got := PackColor(2, -1, 0, 0); got != 0xff {
		t.Errorf("Expected out of range channels clamped, got %#x", got)
	}
}

func TestBoundingBoxMerge(t *testing.T) {
	var b BoundingBox
	if b.Defined() {
		t.Fatal("Zero bounding box should be undefined")
	}

	b.Merge(mgl32.Vec3{1, 2, 3})
	if b.Min != b.Max {
		t.Errorf("First point should define both corners, got %v %v", b.Min, b.Max)
	}

	b.Merge(mgl32.Vec3{-1, 5, 0})
	if b.Min != (mgl32.Vec3{-1, 2, 0}) || b.Max != (mgl32.Vec3{1, 5, 3}) {
		t.Errorf("Unexpected box %v %v", b.Min, b.Max)
	}
	if b.Size() != (mgl32.Vec3{2, 3, 3}) {
		t.Errorf("Unexpected size %v", b.Size())
	}
	if b.Center() != (mgl32.Vec3{0, 3.5, 1.5}) {
		t.Errorf("Unexpected center %v", b.Center())
	}
}

func TestNewMesh(t *testing.T) {
	verts := []Vertex{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{0, 1, -2}},
	}
	m := NewMesh("tri", verts, IdentityIndices(3), ElementColor)

	if m.Elements&ElementPosition == 0 {
		t.Error("Meshes always carry positions")
	}
	if !m.HasColor() {
		t.Error("Expected color element")
	}
	if m.VertexCount() != 3 || m.IndexCount() != 3 {
		t.Errorf("Expected 3 vertices and indices, got %d and %d", m.VertexCount(), m.IndexCount())
	}
	if m.Bounds.Min != (mgl32.Vec3{0, 0, -2}) || m.Bounds.Max != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("Unexpected bounds %v %v", m.Bounds.Min, m.Bounds.Max)
	}
	if got := m.Positions(); len(got) != 9 || got[5] != 0 || got[8] != -2 {
		t.Errorf("Unexpected flat positions %v", got)
	}
}

func TestIdentityIndices(t *testing.T) {
	indices := IdentityIndices(36)
	for i, v := range indices {
		if v != uint32(i) {
			t.Fatalf("Expected index %d at %d, got %d", i, i, v)
		}
	}
}
