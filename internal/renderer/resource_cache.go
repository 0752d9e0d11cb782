package renderer

import (
	"SpaceBox/internal/logger"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

//go:embed resources
var builtinResources embed.FS

// ResourceStats provides debugging and profiling information
type ResourceStats struct {
	TotalLoaded     int
	CacheHits       int
	CacheMisses     int
	ActiveResources int
}

// RenderPath describes how a viewport clears and composes its target.
type RenderPath struct {
	Name        string     `json:"name"`
	ClearColor  [3]float32 `json:"clear_color"`
	UseFogColor bool       `json:"use_fog_color"`
	DepthTest   bool       `json:"depth_test"`
}

// ClearColorFor returns the color a viewport of this path is cleared to.
func (rp *RenderPath) ClearColorFor(zone Zone) mgl32.Vec3 {
	if rp == nil {
		return mgl32.Vec3{}
	}
	if rp.UseFogColor {
		return zone.FogColor
	}
	return mgl32.Vec3(rp.ClearColor)
}

type materialFile struct {
	Name       string               `json:"name"`
	Technique  string               `json:"technique"`
	Blend      string               `json:"blend"`
	DepthTest  bool                 `json:"depth_test"`
	CullNone   bool                 `json:"cull_none"`
	Parameters map[string][]float32 `json:"parameters"`
}

// ResourceCache hands out shared, reference counted material templates and render paths
// by logical path, e.g. "Materials/star.json".
type ResourceCache struct {
	fsys        fs.FS
	materials   map[string]*Material
	renderPaths map[string]*RenderPath
	mu          sync.RWMutex
	stats       ResourceStats
}

// NewResourceCache creates a cache over the built-in resources.
func NewResourceCache() *ResourceCache {
	sub, err := fs.Sub(builtinResources, "resources")
	if err != nil {
		panic(err)
	}
	return NewResourceCacheFS(sub)
}

// NewResourceCacheFS creates a cache that reads resources from fsys.
func NewResourceCacheFS(fsys fs.FS) *ResourceCache {
	return &ResourceCache{
		fsys:        fsys,
		materials:   make(map[string]*Material),
		renderPaths: make(map[string]*RenderPath),
	}
}

// GetMaterial returns the cached template for path, loading it on first use.
// Automatically increments the reference count; pair with Material.Release.
func (rc *ResourceCache) GetMaterial(path string) (*Material, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if m, exists := rc.materials[path]; exists {
		m.AddRef()
		rc.stats.CacheHits++

		logger.Log.Debug("Material cache hit",
			zap.String("path", path),
			zap.Int("refCount", m.Refs()))
		return m, nil
	}

	rc.stats.CacheMisses++
	data, err := fs.ReadFile(rc.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", path, ErrResourceNotFound)
	}
	m, err := parseMaterial(data)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", path, err)
	}

	m.AddRef()
	m.OnRelease(func() { rc.evictMaterial(path, m) })
	rc.materials[path] = m
	rc.stats.TotalLoaded++
	rc.stats.ActiveResources++

	logger.Log.Info("Material loaded and cached",
		zap.String("path", path),
		zap.String("technique", string(m.Technique)),
		zap.Int("parameters", len(m.params)))
	return m, nil
}

// GetRenderPath returns the render path stored at path. Render paths are immutable and
// live as long as the cache.
func (rc *ResourceCache) GetRenderPath(path string) (*RenderPath, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rp, exists := rc.renderPaths[path]; exists {
		rc.stats.CacheHits++
		return rp, nil
	}

	rc.stats.CacheMisses++
	data, err := fs.ReadFile(rc.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("render path %s: %w", path, ErrResourceNotFound)
	}
	rp := &RenderPath{}
	if err := json.Unmarshal(data, rp); err != nil {
		return nil, fmt.Errorf("render path %s: %w", path, err)
	}
	rc.renderPaths[path] = rp
	rc.stats.TotalLoaded++
	rc.stats.ActiveResources++
	return rp, nil
}

// evictMaterial runs from the template's release hook.
func (rc *ResourceCache) evictMaterial(path string, m *Material) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.materials[path] != m {
		return
	}
	delete(rc.materials, path)
	rc.stats.ActiveResources--
	logger.Log.Debug("Material freed", zap.String("path", path))
}

// IsCached reports whether path currently holds a live material template.
func (rc *ResourceCache) IsCached(path string) bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	_, ok := rc.materials[path]
	return ok
}

// GetStats returns current cache statistics
func (rc *ResourceCache) GetStats() ResourceStats {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	stats := rc.stats
	stats.ActiveResources = len(rc.materials) + len(rc.renderPaths)
	return stats
}

// LogStats logs current cache statistics
func (rc *ResourceCache) LogStats() {
	stats := rc.GetStats()
	hitRate := 0.0
	if total := stats.CacheHits + stats.CacheMisses; total > 0 {
		hitRate = float64(stats.CacheHits) / float64(total)
	}
	logger.Log.Info("Resource Cache Stats",
		zap.Int("totalLoaded", stats.TotalLoaded),
		zap.Int("activeResources", stats.ActiveResources),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses),
		zap.Float64("hitRate", hitRate))
}

func parseMaterial(data []byte) (*Material, error) {
	var file materialFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if file.Technique == "" {
		return nil, fmt.Errorf("missing technique")
	}

	m := NewMaterial(file.Name, Technique(file.Technique))
	m.DepthTest = file.DepthTest
	m.CullNone = file.CullNone
	switch file.Blend {
	case "", "replace":
		m.Blend = BlendReplace
	case "add":
		m.Blend = BlendAdd
	default:
		return nil, fmt.Errorf("unknown blend mode %q", file.Blend)
	}

	for name, values := range file.Parameters {
		switch len(values) {
		case 1:
			m.SetFloat(name, values[0])
		case 3:
			m.SetVec3(name, mgl32.Vec3{values[0], values[1], values[2]})
		default:
			return nil, fmt.Errorf("parameter %s: expected 1 or 3 values, got %d", name, len(values))
		}
	}
	return m, nil
}
