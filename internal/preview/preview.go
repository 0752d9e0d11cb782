// Package preview generates the skybox headless with the software renderer.
package preview

import (
	"SpaceBox/internal/behaviour"
	"SpaceBox/internal/logger"
	"SpaceBox/internal/renderer"
	"SpaceBox/internal/renderer/software"
	"SpaceBox/internal/spacebox"
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Preview owns a generator drawing into CPU memory. It runs its own frame manager, one
// frame per Generate call. Methods are safe for concurrent use.
type Preview struct {
	mu       sync.Mutex
	cache    *renderer.ResourceCache
	backend  *software.Renderer
	frames   *behaviour.BehaviourManager
	gen      *spacebox.Generator
	faces    [renderer.MaxCubeFaces]*image.RGBA
	lastSeed int64
}

func New(seed int64) *Preview {
	if seed == 0 {
		seed = spacebox.RandomSeed()
	}
	p := &Preview{
		cache:    renderer.NewResourceCache(),
		backend:  software.New(0),
		frames:   behaviour.NewBehaviourManager(),
		lastSeed: seed,
	}
	p.gen = spacebox.NewGenerator(p.cache, p.backend, p.frames, spacebox.NewRandom(seed))
	return p
}

// Seed returns the seed the random stream started from.
func (p *Preview) Seed() int64 {
	return p.lastSeed
}

// Generate produces a new sky with cfg and returns copies of the six faces in cube face
// order.
func (p *Preview) Generate(cfg spacebox.Config) ([renderer.MaxCubeFaces]*image.RGBA, spacebox.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var faces [renderer.MaxCubeFaces]*image.RGBA
	start := time.Now()

	p.gen.Config = cfg
	if err := p.gen.Generate(); err != nil {
		return faces, spacebox.Result{}, err
	}

	p.backend.ResetStats()
	var renderErr error
	p.frames.RunFrame(func() {
		_, renderErr = p.gen.SpaceCube.RenderQueued()
	})
	if renderErr != nil {
		return faces, spacebox.Result{}, fmt.Errorf("preview render: %w", renderErr)
	}

	for i := range faces {
		src := p.backend.Face(p.gen.SpaceCube, renderer.CubeFace(i))
		if src == nil {
			return faces, spacebox.Result{}, fmt.Errorf("preview: face %s has no storage", renderer.CubeFace(i))
		}
		dst := image.NewRGBA(src.Bounds())
		copy(dst.Pix, src.Pix)
		faces[i] = dst
		p.faces[i] = dst
	}

	stats := p.backend.Stats()
	logger.Log.Info("Preview rendered",
		zap.Int("size", p.gen.SpaceCube.Size()),
		zap.Int("faces", stats.Faces),
		zap.Int("drawCalls", stats.DrawCalls),
		zap.Duration("elapsed", time.Since(start)))
	return faces, p.gen.LastResult(), nil
}

// Export writes the faces of the last Generate as PNG files.
func (p *Preview) Export(dir string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.faces[0] == nil {
		return fmt.Errorf("preview: nothing generated yet")
	}
	return p.backend.SaveFaces(p.gen.SpaceCube, dir)
}

func (p *Preview) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen.Close()
	p.cache.LogStats()
}
