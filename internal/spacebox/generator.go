package spacebox

import (
	"SpaceBox/internal/logger"
	"SpaceBox/internal/renderer"
	"SpaceBox/internal/scene"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	PointStarsMaterial = "Materials/point_stars.json"
	StarMaterial       = "Materials/star.json"
	NebulaMaterial     = "Materials/nebular.json"
	SunMaterial        = "Materials/sun.json"
	SpaceBoxRenderPath = "RenderPaths/SpaceBox.json"

	cubeCameraFov     = 90
	cubeCameraFarClip = 256
)

// Sun values published when the sun is disabled. They match the main scene's
// default light.
var (
	DefaultSunDirection = mgl32.Vec3{-0.5, 1, -0.5}.Normalize()
	DefaultSunColor     = mgl32.Vec3{0.2, 0.2, 0.2}
)

// Result is published once per generation.
type Result struct {
	PassID       string
	SunEnabled   bool
	SunDirection mgl32.Vec3
	SunColor     mgl32.Vec3
}

// FrameEvents schedules work at the end of the current frame.
type FrameEvents interface {
	SubscribeEndFrame(owner any, handler func())
	UnsubscribeEndFrame(owner any)
}

// pass is the transient state of one generation. It lives until the end of the frame
// Generate ran in.
type pass struct {
	id         string
	scene      *scene.Scene
	cameras    [renderer.MaxCubeFaces]*scene.Node
	pointStars *renderer.Mesh
	box        *renderer.Mesh
	templates  templates
	result     Result
	stats      PassStats
}

// Generator renders a procedural space skybox into SpaceCube.
type Generator struct {
	Config    Config
	SpaceCube *renderer.CubeTexture

	cache     *renderer.ResourceCache
	frames    FrameEvents
	rng       Random
	listeners []func(Result)

	pending     *pass
	lastResult  Result
	lastStats   PassStats
	generations int
}

func NewGenerator(cache *renderer.ResourceCache, backend renderer.CubeBackend, frames FrameEvents, rng Random) *Generator {
	return &Generator{
		Config:    DefaultConfig(),
		SpaceCube: renderer.NewCubeTexture("SpaceCube", backend),
		cache:     cache,
		frames:    frames,
		rng:       rng,
		lastResult: Result{
			SunDirection: DefaultSunDirection,
			SunColor:     DefaultSunColor,
		},
	}
}

// AddListener registers fn to receive every generation's Result.
func (g *Generator) AddListener(fn func(Result)) {
	g.listeners = append(g.listeners, fn)
}

// Generate rebuilds the skybox from scratch using the current Config. The cube faces are
// drawn by the next frame's render and the transient scene is released when that frame
// ends. Only missing resources are reported as errors; a cube size the backend rejects
// is logged and the previous texture content stays in place.
func (g *Generator) Generate() error {
	cfg := g.Config
	start := time.Now()

	if g.pending != nil {
		logger.Log.Warn("Skybox generation requested before previous cleanup; releasing it now",
			zap.String("pass", g.pending.id))
		g.teardown()
	}

	t, rp, err := g.loadResources(cfg)
	if err != nil {
		return err
	}

	starCount := cfg.StarCount
	if starCount <= 0 {
		starCount = DefaultStarCount
	}

	p := &pass{
		id:        uuid.NewString(),
		templates: t,
		result: Result{
			SunDirection: DefaultSunDirection,
			SunColor:     DefaultSunColor,
		},
	}
	p.result.PassID = p.id
	p.scene = scene.NewScene("spacebox " + p.id)
	p.pointStars = CreatePointStars(g.rng, starCount, StarHalfSize, StarDistance)
	p.pointStars.AddRef()
	p.box = CreateBox()
	p.box.AddRef()

	g.compose(p, cfg, t)
	g.setupCameras(p)

	if err := g.SpaceCube.SetSize(cfg.CubeSize, renderer.FormatRGBA8, renderer.UsageRenderTarget); err != nil {
		logger.Log.Error("SpaceCube resize failed",
			zap.Int("cubeSize", cfg.CubeSize),
			zap.Error(err))
	}
	for i := 0; i < renderer.MaxCubeFaces; i++ {
		cam, _ := scene.GetComponent[*scene.CameraComponent](p.cameras[i])
		s := g.SpaceCube.RenderSurface(renderer.CubeFace(i))
		s.SetUpdateMode(renderer.UpdateManual)
		s.QueueUpdate()
		s.SetNumViewports(1)
		s.SetViewport(0, &renderer.Viewport{Scene: p.scene, Camera: cam.Camera(), RenderPath: rp})
	}

	g.pending = p
	g.generations++
	g.lastResult = p.result
	g.lastStats = p.stats

	logger.Log.Info("Skybox generated",
		zap.String("pass", p.id),
		zap.Int("cubeSize", g.SpaceCube.Size()),
		zap.Int("pointStarLayers", p.stats.PointStarLayers),
		zap.Int("brightStars", p.stats.BrightStars),
		zap.Int("nebulae", p.stats.Nebulae),
		zap.Bool("sun", p.stats.Sun),
		zap.Duration("elapsed", time.Since(start)))

	for _, fn := range g.listeners {
		fn(p.result)
	}

	g.frames.SubscribeEndFrame(g, g.handleEndFrame)
	return nil
}

func (g *Generator) loadResources(cfg Config) (templates, *renderer.RenderPath, error) {
	var t templates
	load := func(path string, dst **renderer.Material) error {
		m, err := g.cache.GetMaterial(path)
		if err != nil {
			return err
		}
		*dst = m
		return nil
	}

	steps := []struct {
		enabled bool
		path    string
		dst     **renderer.Material
	}{
		{cfg.PointStars, PointStarsMaterial, &t.pointStars},
		{cfg.BrightStars, StarMaterial, &t.star},
		{cfg.Nebula, NebulaMaterial, &t.nebula},
		{cfg.Sun, SunMaterial, &t.sun},
	}
	for _, step := range steps {
		if !step.enabled {
			continue
		}
		if err := load(step.path, step.dst); err != nil {
			t.release()
			return templates{}, nil, fmt.Errorf("skybox generation: %w", err)
		}
	}

	rp, err := g.cache.GetRenderPath(SpaceBoxRenderPath)
	if err != nil {
		t.release()
		return templates{}, nil, fmt.Errorf("skybox generation: %w", err)
	}
	return t, rp, nil
}

func (g *Generator) setupCameras(p *pass) {
	for i := 0; i < renderer.MaxCubeFaces; i++ {
		face := renderer.CubeFace(i)
		node := p.scene.CreateChild("Camera")
		node.Tag = TagCamera
		cam := scene.NewCameraComponent()
		node.AddComponent(cam)
		cam.SetFarClip(cubeCameraFarClip)
		cam.SetAspectRatio(1)
		cam.SetFov(cubeCameraFov)
		node.SetPosition(mgl32.Vec3{})
		node.LookAt(face.Direction(), face.Up())
		p.cameras[i] = node
	}
}

// handleEndFrame runs once after the frame that Generate was called in.
func (g *Generator) handleEndFrame() {
	g.frames.UnsubscribeEndFrame(g)
	g.teardown()
}

// teardown releases the pending pass: its cameras, the surfaces' viewports, the scene
// and the meshes and templates it held.
func (g *Generator) teardown() {
	p := g.pending
	if p == nil {
		return
	}
	g.pending = nil
	g.frames.UnsubscribeEndFrame(g)

	for i, node := range p.cameras {
		if node != nil {
			node.Remove()
			p.cameras[i] = nil
		}
		g.SpaceCube.RenderSurface(renderer.CubeFace(i)).SetNumViewports(0)
	}
	p.scene.Clear()
	p.pointStars.Release()
	p.box.Release()
	p.templates.release()

	logger.Log.Debug("Skybox scene released", zap.String("pass", p.id))
}

// Pending reports whether a generated scene is waiting for its end-of-frame cleanup.
func (g *Generator) Pending() bool {
	return g.pending != nil
}

// TransientScene returns the scene of the pending pass, or nil.
func (g *Generator) TransientScene() *scene.Scene {
	if g.pending == nil {
		return nil
	}
	return g.pending.scene
}

// CameraNodes returns how many cube camera nodes are alive.
func (g *Generator) CameraNodes() int {
	if g.pending == nil {
		return 0
	}
	n := 0
	for _, node := range g.pending.cameras {
		if node != nil {
			n++
		}
	}
	return n
}

func (g *Generator) LastResult() Result {
	return g.lastResult
}

func (g *Generator) LastStats() PassStats {
	return g.lastStats
}

// Generations returns how many passes have been generated.
func (g *Generator) Generations() int {
	return g.generations
}

// Close releases any pending pass and the cube texture.
func (g *Generator) Close() {
	g.teardown()
	g.SpaceCube.Release()
}
