package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexElements is a bitmask describing which attributes a mesh's vertex buffer carries.
type VertexElements uint8

const (
	ElementPosition VertexElements = 1 << iota
	ElementColor
)

type PrimitiveType int

const (
	TriangleList PrimitiveType = iota
)

// Vertex is a position plus an RGBA8 color packed with red in the low byte.
type Vertex struct {
	Position mgl32.Vec3
	Color    uint32
}

// PackColor converts a normalized color to the packed vertex format.
func PackColor(r, g, b, a float32) uint32 {
	return uint32(toByte(r)) | uint32(toByte(g))<<8 | uint32(toByte(b))<<16 | uint32(toByte(a))<<24
}

// UnpackColor is the inverse of PackColor.
func UnpackColor(c uint32) (r, g, b, a float32) {
	return float32(c&0xff) / 255, float32(c>>8&0xff) / 255, float32(c>>16&0xff) / 255, float32(c>>24&0xff) / 255
}

func toByte(v float32) uint8 {
	v = mgl32.Clamp(v, 0, 1)
	return uint8(math.Round(float64(v * 255)))
}

// BoundingBox is an axis aligned box. The zero value is undefined and takes the first
// merged point as both corners.
type BoundingBox struct {
	Min     mgl32.Vec3
	Max     mgl32.Vec3
	defined bool
}

func (b *BoundingBox) Define(p mgl32.Vec3) {
	b.Min, b.Max, b.defined = p, p, true
}

func (b *BoundingBox) Merge(p mgl32.Vec3) {
	if !b.defined {
		b.Define(p)
		return
	}
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func (b BoundingBox) Defined() bool {
	return b.defined
}

func (b BoundingBox) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b BoundingBox) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Mesh is an immutable vertex/index buffer pair drawn as one geometry.
type Mesh struct {
	RefCounted

	Name      string
	Vertices  []Vertex
	Indices   []uint32
	Elements  VertexElements
	Primitive PrimitiveType
	Bounds    BoundingBox

	// GPU handles, owned by the backend that uploaded the mesh
	VAO uint32
	VBO uint32
	EBO uint32
}

// NewMesh builds a triangle list mesh and computes its bounding box from every vertex.
func NewMesh(name string, vertices []Vertex, indices []uint32, elements VertexElements) *Mesh {
	m := &Mesh{
		Name:      name,
		Vertices:  vertices,
		Indices:   indices,
		Elements:  elements | ElementPosition,
		Primitive: TriangleList,
	}
	for i := range vertices {
		m.Bounds.Merge(vertices[i].Position)
	}
	return m
}

func (m *Mesh) HasColor() bool {
	return m.Elements&ElementColor != 0
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// Positions returns the vertex positions as a flat float slice.
func (m *Mesh) Positions() []float32 {
	flat := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		flat = append(flat, v.Position.X(), v.Position.Y(), v.Position.Z())
	}
	return flat
}

// IdentityIndices returns 0..n-1.
func IdentityIndices(n int) []uint32 {
	indices := make([]uint32, n)
	for i := range indices {
		indices[i] = uint32(i)
	}
	return indices
}
