package spacebox

import (
	"SpaceBox/internal/renderer"
	"SpaceBox/internal/scene"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Per placement stop chances of the do-while loops. They set the expected instance
// counts: ~5 point star layers, ~100 bright stars, ~2 nebulae.
const (
	pointStarStopChance  = 0.2
	brightStarStopChance = 0.01
	nebulaStopChance     = 0.5
)

const (
	TagPointStars = "point_stars"
	TagBrightStar = "bright_star"
	TagNebula     = "nebula"
	TagSun        = "sun"
	TagCamera     = "cube_camera"
)

var spaceZone = renderer.Zone{
	AmbientColor: mgl32.Vec3{0.05, 0.1, 0.15},
	FogColor:     mgl32.Vec3{0, 0, 0},
	FogStart:     10,
	FogEnd:       100,
}

var brightStarFalloffBase = float32(math.Pow(2, 20))

// PassStats counts what one generation placed.
type PassStats struct {
	PointStarLayers int
	BrightStars     int
	Nebulae         int
	Sun             bool
}

type templates struct {
	pointStars *renderer.Material
	star       *renderer.Material
	nebula     *renderer.Material
	sun        *renderer.Material
}

func (t templates) release() {
	for _, m := range []*renderer.Material{t.pointStars, t.star, t.nebula, t.sun} {
		if m != nil {
			m.Release()
		}
	}
}

func addModel(s *scene.Scene, name, tag string, rotation mgl32.Quat, mesh *renderer.Mesh, material *renderer.Material) {
	node := s.CreateChild(name)
	node.Tag = tag
	node.SetTransform(mgl32.Vec3{}, rotation)
	model := &scene.StaticModel{}
	node.AddComponent(model)
	model.SetModel(mesh)
	model.SetMaterial(material)
}

// compose fills the pass scene according to cfg. Every enabled loop places at least one
// instance before it tests its stop chance.
func (g *Generator) compose(p *pass, cfg Config, t templates) {
	zoneNode := p.scene.CreateChild("Zone")
	zoneNode.AddComponent(&scene.ZoneComponent{Zone: spaceZone})

	accumulate := mgl32.QuatIdent()
	for cfg.PointStars {
		accumulate = randomRotation(g.rng).Mul(accumulate)
		addModel(p.scene, "point stars", TagPointStars, accumulate, p.pointStars, t.pointStars)
		p.stats.PointStarLayers++

		if g.rng.Float32() < pointStarStopChance {
			break
		}
	}

	for cfg.BrightStars {
		m := t.star.Clone()
		m.SetVec3("StarPosition", randomDirection(g.rng))
		m.SetVec3("StarColor", mgl32.Vec3{1, 1, 1})
		m.SetFloat("StarSize", 0)
		m.SetFloat("StarFalloff", uniform(g.rng, brightStarFalloffBase)+brightStarFalloffBase)
		addModel(p.scene, "bright star", TagBrightStar, accumulate, p.box, m)
		p.stats.BrightStars++

		if g.rng.Float32() < brightStarStopChance {
			break
		}
	}

	for cfg.Nebula {
		m := t.nebula.Clone()
		m.SetVec3("NebularColor", randomColor(g.rng))
		m.SetVec3("NebularOffset", mgl32.Vec3{
			uniformRange(g.rng, -1000, 1000),
			uniformRange(g.rng, -1000, 1000),
			uniformRange(g.rng, -1000, 1000),
		})
		m.SetFloat("NebularScale", uniform(g.rng, 0.5)+0.25)
		m.SetFloat("NebularIntensity", uniform(g.rng, 0.2)+0.9)
		m.SetFloat("NebularFalloff", uniform(g.rng, 3)+3)
		addModel(p.scene, "nebula", TagNebula, mgl32.QuatIdent(), p.box, m)
		p.stats.Nebulae++

		if g.rng.Float32() < nebulaStopChance {
			break
		}
	}

	if cfg.Sun {
		dir := randomDirection(g.rng)
		color := randomColor(g.rng)
		m := t.sun.Clone()
		m.SetVec3("SunPosition", dir)
		m.SetVec3("SunColor", color)
		m.SetFloat("SunSize", uniform(g.rng, 0.0001)+0.0001)
		m.SetFloat("SunFalloff", uniform(g.rng, 16)+8)
		addModel(p.scene, "sun", TagSun, mgl32.QuatIdent(), p.box, m)
		p.stats.Sun = true

		p.result.SunEnabled = true
		p.result.SunDirection = dir
		p.result.SunColor = color
	}
}
