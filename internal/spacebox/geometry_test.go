package spacebox

import (
	"SpaceBox/internal/renderer"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestShortestArc(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		from := randomDirection(r)
		to := randomDirection(r)
		got := shortestArc(from, to).Rotate(from)
		if !vecNear(got, to, 1e-4) {
			t.Fatalf("shortestArc(%v, %v) rotates to %v", from, to, got)
		}
	}
}

func TestShortestArcDegenerate(t *testing.T) {
	for _, v := range []mgl32.Vec3{{0, 0, -1}, {0, 0, 1}, {1, 0, 0}, {0, 1, 0}} {
		if q := shortestArc(v, v); !quatNear(q, mgl32.QuatIdent(), 1e-5) {
			t.Errorf("Expected identity for parallel %v, got %v", v, q)
		}

		opposite := v.Mul(-1)
		got := shortestArc(v, opposite).Rotate(v)
		if !vecNear(got, opposite, 1e-5) {
			t.Errorf("Expected %v rotated onto %v, got %v", v, opposite, got)
		}
	}
}

func TestRandomDirectionIsUnit(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	var sum mgl32.Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		d := randomDirection(r)
		if math.Abs(float64(d.Len())-1) > 1e-5 {
			t.Fatalf("Expected unit vector, got length %f", d.Len())
		}
		sum = sum.Add(d)
	}
	// a uniform distribution over the sphere averages to the origin
	if mean := sum.Mul(1.0 / n); mean.Len() > 0.03 {
		t.Errorf("Expected mean direction near zero, got %v", mean)
	}
}

func TestPointStarMesh(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	m := CreatePointStars(r, 50, StarHalfSize, StarDistance)

	if m.VertexCount() != 300 || m.IndexCount() != 300 {
		t.Fatalf("Expected 300 vertices and indices, got %d and %d", m.VertexCount(), m.IndexCount())
	}
	if !m.HasColor() {
		t.Error("Point stars carry vertex colors")
	}

	for i := 0; i < 50; i++ {
		quad := m.Vertices[i*6 : i*6+6]
		center := quad[0].Position.Add(quad[2].Position).Mul(0.5)
		if math.Abs(float64(center.Len()-StarDistance)) > 1e-3 {
			t.Errorf("Star %d center at distance %f, want %f", i, center.Len(), StarDistance)
		}

		// the quad faces the origin
		normal := quad[1].Position.Sub(quad[0].Position).Cross(quad[2].Position.Sub(quad[0].Position)).Normalize()
		if d := mgl32.Abs(normal.Dot(center.Normalize())); d < 0.999 {
			t.Errorf("Star %d quad is not perpendicular to its direction, dot=%f", i, d)
		}

		for _, v := range quad[1:] {
			if v.Color != quad[0].Color {
				t.Errorf("Star %d vertices have different colors", i)
			}
		}
		cr, cg, cb, ca := renderer.UnpackColor(quad[0].Color)
		if cr != cg || cg != cb || ca != 1 {
			t.Errorf("Star %d color is not an opaque gray: %f %f %f %f", i, cr, cg, cb, ca)
		}
	}
}

func TestPointStarBounds(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	m := CreatePointStars(r, DefaultStarCount, StarHalfSize, StarDistance)

	corner := float32(StarHalfSize * math.Sqrt2)
	outer := float32(StarDistance) + corner
	inner := float32(StarDistance) - corner
	b := m.Bounds

	for axis := 0; axis < 3; axis++ {
		if b.Max[axis] > outer || b.Min[axis] < -outer {
			t.Errorf("Axis %d: bounds [%f, %f] exceed the outer radius %f", axis, b.Min[axis], b.Max[axis], outer)
		}
		if b.Max[axis] < inner || b.Min[axis] > -inner {
			t.Errorf("Axis %d: bounds [%f, %f] do not reach the inner radius %f", axis, b.Min[axis], b.Max[axis], inner)
		}
	}
}

func TestStarBrightnessDistribution(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	const n = 10000
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = float64(starBrightness(r))
	}
	sort.Float64s(samples)

	// P(u^4 <= x) = x^(1/4)
	for _, x := range []float64{0.001, 0.01, 0.0625, 0.25, 0.5, 0.9} {
		idx := sort.SearchFloat64s(samples, x)
		got := float64(idx) / n
		want := math.Pow(x, 0.25)
		if math.Abs(got-want) > 0.02 {
			t.Errorf("CDF(%f) = %f, want %f", x, got, want)
		}
	}

	if median := samples[n/2]; math.Abs(median-0.0625) > 0.01 {
		t.Errorf("Expected median near 0.0625, got %f", median)
	}
	if samples[0] < 0 || samples[n-1] >= 1 {
		t.Errorf("Brightness out of range [%f, %f]", samples[0], samples[n-1])
	}
}

func TestCreateBox(t *testing.T) {
	m := CreateBox()

	if m.VertexCount() != 36 || m.IndexCount() != 36 {
		t.Fatalf("Expected 36 vertices and indices, got %d and %d", m.VertexCount(), m.IndexCount())
	}
	if m.HasColor() {
		t.Error("Box is position only")
	}
	if m.Bounds.Min != (mgl32.Vec3{-1, -1, -1}) || m.Bounds.Max != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Unexpected box bounds %v %v", m.Bounds.Min, m.Bounds.Max)
	}

	// two triangles on each of the six axis planes
	planes := map[mgl32.Vec3]int{}
	for i := 0; i < 36; i += 3 {
		a, b, c := m.Vertices[i].Position, m.Vertices[i+1].Position, m.Vertices[i+2].Position
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() == 0 {
			t.Fatalf("Triangle %d is degenerate", i/3)
		}
		planes[n.Normalize()]++
	}
	if len(planes) != 6 {
		t.Fatalf("Expected 6 face orientations, got %d", len(planes))
	}
	for n, count := range planes {
		if count != 2 {
			t.Errorf("Expected 2 triangles facing %v, got %d", n, count)
		}
	}
}

// vecNear compares by absolute distance. mgl32's ApproxEqualThreshold is relative and
// rejects float32 rounding noise against exact zero components.
func vecNear(a, b mgl32.Vec3, tol float32) bool {
	return a.Sub(b).Len() < tol
}

// quatNear treats q and -q as the same rotation.
func quatNear(a, b mgl32.Quat, tol float32) bool {
	d := a.Dot(b)
	return 1-float32(math.Abs(float64(d))) < tol
}

func TestVecNearAbsolute(t *testing.T) {
	got := shortestArc(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 0, 1}).Rotate(mgl32.Vec3{0, 0, -1})
	if !vecNear(got, mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("Expected anti-parallel rotation to land on +Z, got %v", got)
	}
	if !vecNear(mgl32.Vec3{-8.742278e-08, 0, 1}, mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Error("Expected rounding noise against zero components to compare equal")
	}
	if vecNear(mgl32.Vec3{0.01, 0, 1}, mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Error("Expected a real offset to compare unequal")
	}
	if !quatNear(mgl32.QuatIdent(), mgl32.Quat{W: -1}, 1e-6) {
		t.Error("Expected q and -q to compare equal")
	}
}
