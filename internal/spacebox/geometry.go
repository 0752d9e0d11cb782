package spacebox

import (
	"SpaceBox/internal/renderer"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultStarCount = 100000
	StarHalfSize     = 0.05
	StarDistance     = 128.0
	verticesPerStar  = 6
)

// backVector is the normal of an unrotated star quad.
var backVector = mgl32.Vec3{0, 0, -1}

// shortestArc returns the smallest rotation taking unit vector from onto unit vector to.
// Parallel inputs give the identity; opposite inputs give a half turn about a fixed axis
// orthogonal to from.
func shortestArc(from, to mgl32.Vec3) mgl32.Quat {
	d := mgl32.Clamp(from.Dot(to), -1, 1)
	axis := from.Cross(to)
	if axis.Len() < 1e-6 {
		if d > 0 {
			return mgl32.QuatIdent()
		}
		return mgl32.QuatRotate(math.Pi, orthogonal(from))
	}
	angle := float32(math.Acos(float64(d)))
	return mgl32.QuatRotate(angle, axis.Normalize())
}

func orthogonal(v mgl32.Vec3) mgl32.Vec3 {
	if mgl32.Abs(v.X()) < 0.9 {
		return v.Cross(mgl32.Vec3{1, 0, 0}).Normalize()
	}
	return v.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// starBrightness is uniform^4: mostly dim stars with the occasional bright one.
func starBrightness(r Random) float32 {
	u := r.Float32()
	return u * u * u * u
}

// buildStar writes the two triangles of one star into out, which must hold 6 vertices.
func buildStar(r Random, halfSize float32, dir mgl32.Vec3, dist float32, out []renderer.Vertex) {
	quad := [verticesPerStar]mgl32.Vec3{
		{-halfSize, -halfSize, 0},
		{halfSize, -halfSize, 0},
		{halfSize, halfSize, 0},
		{-halfSize, -halfSize, 0},
		{halfSize, halfSize, 0},
		{-halfSize, halfSize, 0},
	}

	q := shortestArc(backVector, dir)
	center := dir.Mul(dist)
	for i := range quad {
		out[i].Position = q.Rotate(quad[i]).Add(center)
	}

	c := starBrightness(r)
	color := renderer.PackColor(c, c, c, 1)
	for i := range quad {
		out[i].Color = color
	}
}

// CreatePointStars builds count camera facing quads spread uniformly over a sphere shell
// of radius dist.
func CreatePointStars(r Random, count int, halfSize, dist float32) *renderer.Mesh {
	vertices := make([]renderer.Vertex, count*verticesPerStar)
	for i := 0; i < count; i++ {
		dir := randomDirection(r)
		buildStar(r, halfSize, dir, dist, vertices[i*verticesPerStar:(i+1)*verticesPerStar])
	}
	return renderer.NewMesh("point stars", vertices, renderer.IdentityIndices(len(vertices)),
		renderer.ElementPosition|renderer.ElementColor)
}

var boxVertices = [36]mgl32.Vec3{
	{-1, -1, -1},
	{1, -1, -1},
	{1, 1, -1},
	{-1, -1, -1},
	{1, 1, -1},
	{-1, 1, -1},

	{1, -1, 1},
	{-1, -1, 1},
	{-1, 1, 1},
	{1, -1, 1},
	{-1, 1, 1},
	{1, 1, 1},

	{1, -1, -1},
	{1, -1, 1},
	{1, 1, 1},
	{1, -1, -1},
	{1, 1, 1},
	{1, 1, -1},

	{-1, -1, 1},
	{-1, -1, -1},
	{-1, 1, -1},
	{-1, -1, 1},
	{-1, 1, -1},
	{-1, 1, 1},

	{-1, 1, -1},
	{1, 1, -1},
	{1, 1, 1},
	{-1, 1, -1},
	{1, 1, 1},
	{-1, 1, 1},

	{-1, -1, 1},
	{1, -1, 1},
	{1, -1, -1},
	{-1, -1, 1},
	{1, -1, -1},
	{-1, -1, -1},
}

// CreateBox builds the 36 vertex, position only cube spanning [-1, 1] on every axis.
// Faces share no vertices.
func CreateBox() *renderer.Mesh {
	vertices := make([]renderer.Vertex, len(boxVertices))
	for i, p := range boxVertices {
		vertices[i].Position = p
	}
	return renderer.NewMesh("box", vertices, renderer.IdentityIndices(len(vertices)), renderer.ElementPosition)
}
