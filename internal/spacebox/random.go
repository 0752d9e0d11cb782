package spacebox

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Random is the single stream all placement and color draws come from. It is not safe
// for concurrent use.
type Random interface {
	Float32() float32 // uniform in [0, 1)
}

// NewRandom returns a stream seeded with seed, or with a non-deterministic seed when
// seed is zero.
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = RandomSeed()
	}
	return rand.New(rand.NewSource(seed))
}

func RandomSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

func uniform(r Random, hi float32) float32 {
	return r.Float32() * hi
}

func uniformRange(r Random, lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}

func randomCubeVector(r Random) mgl32.Vec3 {
	return mgl32.Vec3{uniformRange(r, -1, 1), uniformRange(r, -1, 1), uniformRange(r, -1, 1)}
}

// randomDirection returns a unit vector uniformly distributed over the sphere. Cube
// samples outside the unit ball are rejected so the corners do not bias the result.
func randomDirection(r Random) mgl32.Vec3 {
	for {
		v := randomCubeVector(r)
		l := v.LenSqr()
		if l > 1e-6 && l <= 1 {
			return v.Normalize()
		}
	}
}

func randomColor(r Random) mgl32.Vec3 {
	return mgl32.Vec3{uniform(r, 1), uniform(r, 1), uniform(r, 1)}
}

// randomRotation composes rotations of 0..180 degrees about X, Y and Z.
func randomRotation(r Random) mgl32.Quat {
	x := mgl32.QuatRotate(mgl32.DegToRad(uniform(r, 180)), mgl32.Vec3{1, 0, 0})
	y := mgl32.QuatRotate(mgl32.DegToRad(uniform(r, 180)), mgl32.Vec3{0, 1, 0})
	z := mgl32.QuatRotate(mgl32.DegToRad(uniform(r, 180)), mgl32.Vec3{0, 0, 1})
	return x.Mul(y).Mul(z)
}
