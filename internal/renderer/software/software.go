// Package software evaluates the skybox materials on the CPU. It produces the same cube
// faces as the OpenGL backend without a GPU, which the preview tool and tests rely on.
package software

import (
	"SpaceBox/internal/logger"
	"SpaceBox/internal/renderer"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	DefaultMaxCubeSize = 4096

	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
	noiseSeed    = 1337

	// contributions below this are invisible in an 8 bit target
	minIntensity = 1.0 / 512
)

// Stats counts the work done since the last ResetStats.
type Stats struct {
	Faces       int
	DrawCalls   int
	ByTechnique map[renderer.Technique]int
}

type cubeFaces [renderer.MaxCubeFaces]*image.RGBA

// Renderer is a renderer.CubeBackend that rasterizes on the CPU.
type Renderer struct {
	maxSize int
	cubes   map[*renderer.CubeTexture]*cubeFaces
	noise   *perlin.Perlin
	stats   Stats
}

func New(maxSize int) *Renderer {
	if maxSize <= 0 {
		maxSize = DefaultMaxCubeSize
	}
	return &Renderer{
		maxSize: maxSize,
		cubes:   make(map[*renderer.CubeTexture]*cubeFaces),
		noise:   perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, noiseSeed),
		stats:   Stats{ByTechnique: make(map[renderer.Technique]int)},
	}
}

func (r *Renderer) MaxCubeSize() int {
	return r.maxSize
}

func (r *Renderer) AllocateCube(tex *renderer.CubeTexture) error {
	if tex.Format() != renderer.FormatRGBA8 {
		return fmt.Errorf("unsupported texture format %d", tex.Format())
	}
	size := tex.Size()
	faces := &cubeFaces{}
	for i := range faces {
		faces[i] = image.NewRGBA(image.Rect(0, 0, size, size))
	}
	r.cubes[tex] = faces

	logger.Log.Debug("Software cube allocated",
		zap.String("texture", tex.Name),
		zap.Int("size", size))
	return nil
}

func (r *Renderer) ReleaseCube(tex *renderer.CubeTexture) {
	delete(r.cubes, tex)
}

// Face returns the pixels of one face, or nil if tex has no storage. Rows are in cube
// map texel order: row 0 is the bottom of the face camera's view, which with the cube
// face up vectors is the world-up edge. A face can be uploaded to a GL cube map as is.
func (r *Renderer) Face(tex *renderer.CubeTexture, face renderer.CubeFace) *image.RGBA {
	faces, ok := r.cubes[tex]
	if !ok || face < 0 || face >= renderer.MaxCubeFaces {
		return nil
	}
	return faces[face]
}

func (r *Renderer) Stats() Stats {
	s := r.stats
	s.ByTechnique = make(map[renderer.Technique]int, len(r.stats.ByTechnique))
	for k, v := range r.stats.ByTechnique {
		s.ByTechnique[k] = v
	}
	return s
}

func (r *Renderer) ResetStats() {
	r.stats = Stats{ByTechnique: make(map[renderer.Technique]int)}
}

// DrawFace renders vp into one face. Materials are blended additively over the render
// path's clear color, which matches how the skybox materials are authored.
func (r *Renderer) DrawFace(tex *renderer.CubeTexture, face renderer.CubeFace, vp *renderer.Viewport) error {
	img := r.Face(tex, face)
	if img == nil {
		return fmt.Errorf("face %s has no storage", face)
	}
	if vp.Scene == nil || vp.Camera == nil {
		return fmt.Errorf("face %s: incomplete viewport", face)
	}

	size := img.Bounds().Dx()
	zone := vp.Scene.Zone()
	clear := vp.RenderPath.ClearColorFor(zone)

	buf := make([]mgl32.Vec3, size*size)
	for i := range buf {
		buf[i] = clear
	}

	var dirs []mgl32.Vec3
	viewProjection := vp.Camera.GetViewProjection()
	for _, d := range vp.Scene.Drawables() {
		r.stats.DrawCalls++
		r.stats.ByTechnique[d.Material.Technique]++

		switch d.Material.Technique {
		case renderer.TechniquePointStars:
			splatPointStars(buf, size, viewProjection, d)
		case renderer.TechniqueStar, renderer.TechniqueSun, renderer.TechniqueNebula:
			if dirs == nil {
				dirs = pixelDirections(vp.Camera, size)
			}
			r.shadeBox(buf, dirs, d)
		default:
			logger.Log.Warn("Software renderer skipping unsupported technique",
				zap.String("technique", string(d.Material.Technique)),
				zap.String("node", d.Name))
		}
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := buf[y*size+x]
			img.SetRGBA(x, y, color.RGBA{R: toByte(c[0]), G: toByte(c[1]), B: toByte(c[2]), A: 255})
		}
	}
	r.stats.Faces++
	return nil
}

func toByte(v float32) uint8 {
	return uint8(math.Round(float64(mgl32.Clamp(v, 0, 1) * 255)))
}

// pixelDirections returns the world space view direction through the center of every
// pixel, row 0 at NDC y = -1.
func pixelDirections(cam *renderer.Camera, size int) []mgl32.Vec3 {
	inv := cam.GetViewProjection().Inv()
	dirs := make([]mgl32.Vec3, size*size)
	for y := 0; y < size; y++ {
		ndcY := 2*(float32(y)+0.5)/float32(size) - 1
		for x := 0; x < size; x++ {
			ndcX := 2*(float32(x)+0.5)/float32(size) - 1
			far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
			p := far.Vec3().Mul(1 / far.W())
			dirs[y*size+x] = p.Sub(cam.Position).Normalize()
		}
	}
	return dirs
}

// splatPointStars projects the center of every star quad and adds its color to the
// pixel it lands in. Star quads are far below one pixel at every supported face size.
func splatPointStars(buf []mgl32.Vec3, size int, viewProjection mgl32.Mat4, d renderer.Drawable) {
	mvp := viewProjection.Mul4(d.Transform)
	verts := d.Mesh.Vertices
	for i := 0; i+5 < len(verts); i += 6 {
		center := verts[i].Position.Add(verts[i+2].Position).Mul(0.5)
		clip := mvp.Mul4x1(center.Vec4(1))
		w := clip.W()
		if w <= 0 {
			continue
		}
		x, y, z := clip.X()/w, clip.Y()/w, clip.Z()/w
		if x < -1 || x >= 1 || y < -1 || y >= 1 || z < -1 || z > 1 {
			continue
		}
		px := int((x + 1) / 2 * float32(size))
		py := int((y + 1) / 2 * float32(size))
		if px < 0 || px >= size || py < 0 || py >= size {
			continue
		}
		cr, cg, cb, _ := renderer.UnpackColor(verts[i].Color)
		buf[py*size+px] = buf[py*size+px].Add(mgl32.Vec3{cr, cg, cb})
	}
}

// pointIntensity is the shared star/sun profile: full brightness inside the disc of
// angular radius given by size, a pow falloff outside.
func pointIntensity(d, size, falloff float32) float32 {
	if size > 0 && d >= 1-size {
		return 1
	}
	if d <= 0 {
		return 0
	}
	return float32(math.Pow(float64(d), float64(falloff)))
}

// cutoff is the cosine below which pointIntensity drops under minIntensity.
func cutoff(size, falloff float32) float32 {
	c := float32(math.Exp(math.Log(minIntensity) / float64(falloff)))
	if size > 0 && 1-size < c {
		c = 1 - size
	}
	return c
}

func (r *Renderer) shadeBox(buf []mgl32.Vec3, dirs []mgl32.Vec3, d renderer.Drawable) {
	m := d.Material
	rot := d.Transform.Mat3()
	switch m.Technique {
	case renderer.TechniqueStar:
		shadePoint(buf, dirs, rot.Mul3x1(m.Vec3("StarPosition")).Normalize(),
			m.Vec3("StarColor"), m.Float("StarSize"), m.Float("StarFalloff"))
	case renderer.TechniqueSun:
		shadePoint(buf, dirs, rot.Mul3x1(m.Vec3("SunPosition")).Normalize(),
			m.Vec3("SunColor"), m.Float("SunSize"), m.Float("SunFalloff"))
	case renderer.TechniqueNebula:
		r.shadeNebula(buf, dirs, m)
	}
}

func shadePoint(buf []mgl32.Vec3, dirs []mgl32.Vec3, pos, col mgl32.Vec3, size, falloff float32) {
	if falloff <= 0 {
		falloff = 1
	}
	c := cutoff(size, falloff)
	for i, dir := range dirs {
		d := dir.Dot(pos)
		if d < c {
			continue
		}
		buf[i] = buf[i].Add(col.Mul(pointIntensity(d, size, falloff)))
	}
}

func (r *Renderer) shadeNebula(buf []mgl32.Vec3, dirs []mgl32.Vec3, m *renderer.Material) {
	col := m.Vec3("NebularColor")
	offset := m.Vec3("NebularOffset")
	scale := m.Float("NebularScale")
	intensity := m.Float("NebularIntensity")
	falloff := float64(m.Float("NebularFalloff"))
	if scale <= 0 {
		scale = 1
	}
	for i, dir := range dirs {
		p := dir.Mul(1 / scale).Add(offset)
		n := r.noise.Noise3D(float64(p[0]), float64(p[1]), float64(p[2]))
		v := math.Min(math.Max(0.5+0.5*n, 0), 1)
		buf[i] = buf[i].Add(col.Mul(intensity * float32(math.Pow(v, falloff))))
	}
}
