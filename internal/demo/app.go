package demo

import (
	"SpaceBox/internal/config"
	"SpaceBox/internal/engine"
	"SpaceBox/internal/logger"
	"SpaceBox/internal/renderer"
	"SpaceBox/internal/spacebox"

	"go.uber.org/zap"
)

// App wires the generator, the world and the controls into an engine window.
type App struct {
	cfg      config.AppConfig
	cache    *renderer.ResourceCache
	gen      *spacebox.Generator
	world    *World
	controls *Controls
}

func NewApp(cfg config.AppConfig) *App {
	return &App{cfg: cfg, cache: renderer.NewResourceCache()}
}

// Setup runs once the GL context exists.
func (a *App) Setup(g *engine.Gopher) error {
	world, err := NewWorld(a.cache)
	if err != nil {
		return err
	}
	a.world = world
	g.Renderer.Light = world.Light
	g.Camera.InvertMouse = a.cfg.InvertMouse

	seed := a.cfg.Seed
	if seed == 0 {
		seed = spacebox.RandomSeed()
	}
	logger.Log.Info("Random seed", zap.Int64("seed", seed))

	a.gen = spacebox.NewGenerator(a.cache, g.Renderer, g.Behaviours, spacebox.NewRandom(seed))
	a.gen.Config = a.cfg.Generator
	a.gen.AddListener(func(r spacebox.Result) {
		world.ApplyResult(r, a.gen.SpaceCube.Handle)
	})

	a.controls = NewControls(a.gen)
	a.controls.OnChange = g.SetTitle
	g.SetTitle(a.controls.Status())
	g.Behaviours.Add(a.controls)
	g.OnKey(a.controls.HandleKey)
	g.SetOnRenderCallback(func(float64) { a.render(g) })
	g.SetOnClose(a.Close)
	return nil
}

// render draws queued cube faces first so the sky sampled below is this frame's.
func (a *App) render(g *engine.Gopher) {
	if _, err := a.gen.SpaceCube.RenderQueued(); err != nil {
		logger.Log.Error("SpaceCube render failed", zap.Error(err))
	}
	g.Renderer.Render(a.world.Scene, g.Camera, a.world.ClearColor())
}

// Close releases everything Setup created. It must run while the GL context is current.
func (a *App) Close() {
	if a.gen != nil {
		a.gen.Close()
	}
	if a.world != nil {
		a.world.Close()
	}
	a.cache.LogStats()
}
