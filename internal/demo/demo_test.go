package demo

import (
	"SpaceBox/internal/behaviour"
	"SpaceBox/internal/renderer"
	"SpaceBox/internal/renderer/software"
	"SpaceBox/internal/scene"
	"SpaceBox/internal/spacebox"
	"strings"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewWorld(t *testing.T) {
	cache := renderer.NewResourceCache()
	w, err := NewWorld(cache)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}

	tiles := 0
	sky := 0
	for _, d := range w.Scene.Drawables() {
		switch d.Material.Technique {
		case renderer.TechniqueLit:
			tiles++
		case renderer.TechniqueSkybox:
			sky++
			if !d.Material.CullNone {
				t.Error("Sky should be drawn without culling")
			}
		}
	}
	if tiles != 121 {
		t.Errorf("Expected 121 floor tiles, got %d", tiles)
	}
	if sky != 1 {
		t.Errorf("Expected 1 sky, got %d", sky)
	}

	zone := w.Zone()
	if zone.FogStart != 100 || zone.FogEnd != 300 {
		t.Errorf("Expected fog 100..300, got %v..%v", zone.FogStart, zone.FogEnd)
	}

	// the default light matches the result published without a sun
	expected := mgl32.Vec3{0.5, -1, 0.5}.Normalize()
	if !vecNear(w.Light.Direction, expected, 1e-5) {
		t.Errorf("Expected light direction %v, got %v", expected, w.Light.Direction)
	}
}

func TestFloorTileLayout(t *testing.T) {
	w, err := NewWorld(renderer.NewResourceCache())
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}

	var corner *scene.Node
	for _, n := range w.Scene.Nodes() {
		if n.Name == "FloorTile" && n.Transform.Position.X() > 100 && n.Transform.Position.Z() > 100 {
			corner = n
		}
	}
	if corner == nil {
		t.Fatal("Expected a tile in the +X +Z corner")
	}
	if corner.Transform.Position != (mgl32.Vec3{102.5, -0.5, 102.5}) {
		t.Errorf("Expected corner tile at (102.5, -0.5, 102.5), got %v", corner.Transform.Position)
	}
}

func TestWorldApplyResult(t *testing.T) {
	w, err := NewWorld(renderer.NewResourceCache())
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}

	w.ApplyResult(spacebox.Result{
		SunEnabled:   true,
		SunDirection: mgl32.Vec3{0, 1, 0},
		SunColor:     mgl32.Vec3{1, 0.5, 0.25},
	}, 17)

	if w.Light.Direction != (mgl32.Vec3{0, -1, 0}) {
		t.Errorf("Expected the light to shine away from the sun, got %v", w.Light.Direction)
	}
	if w.Light.Color != (mgl32.Vec3{1, 0.5, 0.25}) {
		t.Errorf("Expected the sun color, got %v", w.Light.Color)
	}
	if w.SkyboxMaterial().TextureID != 17 {
		t.Errorf("Expected sky texture 17, got %d", w.SkyboxMaterial().TextureID)
	}
}

func TestWorldCloseReleasesTemplates(t *testing.T) {
	cache := renderer.NewResourceCache()
	w, err := NewWorld(cache)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}

	w.Close()

	if cache.IsCached(StoneMaterial) || cache.IsCached(SkyboxMaterial) {
		t.Error("Templates should be evicted once the world is closed")
	}
	if w.Scene.Len() != 0 {
		t.Errorf("Expected an empty scene, got %d nodes", w.Scene.Len())
	}
}

func newTestControls(t *testing.T) (*Controls, *spacebox.Generator, *behaviour.BehaviourManager) {
	t.Helper()
	frames := behaviour.NewBehaviourManager()
	gen := spacebox.NewGenerator(renderer.NewResourceCache(), software.New(0), frames, spacebox.NewRandom(3))
	gen.Config.CubeSize = 256
	gen.Config.StarCount = 50
	return NewControls(gen), gen, frames
}

func TestControlsToggles(t *testing.T) {
	c, gen, _ := newTestControls(t)

	c.HandleKey(glfw.Key1)
	c.HandleKey(glfw.Key2)
	c.HandleKey(glfw.Key3)
	c.HandleKey(glfw.Key4)

	cfg := gen.Config
	if cfg.PointStars || cfg.BrightStars || cfg.Nebula || cfg.Sun {
		t.Errorf("Expected every feature off, got %+v", cfg)
	}

	c.HandleKey(glfw.Key4)
	if !gen.Config.Sun {
		t.Error("Pressing 4 again should enable the sun")
	}
	if c.RegeneratePending() {
		t.Error("Toggles should not regenerate on their own")
	}
}

func TestControlsCubeSize(t *testing.T) {
	c, gen, _ := newTestControls(t)

	c.HandleKey(glfw.KeyRightBracket)
	if gen.Config.CubeSize != 512 {
		t.Errorf("Expected 512, got %d", gen.Config.CubeSize)
	}
	c.HandleKey(glfw.KeyLeftBracket)
	c.HandleKey(glfw.KeyLeftBracket)
	if gen.Config.CubeSize != 256 {
		t.Errorf("Expected the size to clamp at 256, got %d", gen.Config.CubeSize)
	}
}

func TestControlsUnboundKey(t *testing.T) {
	c, gen, _ := newTestControls(t)
	before := gen.Config

	c.HandleKey(glfw.KeyQ)

	if gen.Config != before || c.RegeneratePending() {
		t.Error("Unbound keys should do nothing")
	}
}

func TestControlsGenerateInUpdate(t *testing.T) {
	c, gen, frames := newTestControls(t)
	frames.Add(c)

	// Start requests the first sky
	frames.RunFrame(func() {
		if !gen.Pending() {
			t.Error("Expected the sky to be generated before rendering")
		}
	})
	if gen.Generations() != 1 {
		t.Fatalf("Expected 1 generation, got %d", gen.Generations())
	}
	if gen.Pending() {
		t.Error("Expected the pass to be released at the end of the frame")
	}

	frames.RunFrame(func() {})
	if gen.Generations() != 1 {
		t.Errorf("Expected no generation without a request, got %d", gen.Generations())
	}

	c.HandleKey(glfw.KeyG)
	frames.RunFrame(func() {})
	if gen.Generations() != 2 {
		t.Errorf("Expected G to regenerate, got %d generations", gen.Generations())
	}
}

func TestControlsStatus(t *testing.T) {
	c, _, _ := newTestControls(t)
	var titles []string
	c.OnChange = func(status string) { titles = append(titles, status) }

	c.Start()
	c.HandleKey(glfw.Key3)
	c.HandleKey(glfw.KeyRightBracket)
	c.HandleKey(glfw.KeyQ)

	if len(titles) != 3 {
		t.Fatalf("Expected 3 status updates, got %d", len(titles))
	}
	for _, want := range []string{"WASD", "nebula:on", "size:256"} {
		if !strings.Contains(titles[0], want) {
			t.Errorf("Expected %q in %q", want, titles[0])
		}
	}
	if !strings.Contains(titles[1], "nebula:off") {
		t.Errorf("Expected the nebula toggle in %q", titles[1])
	}
	if !strings.Contains(titles[2], "size:512") {
		t.Errorf("Expected the new size in %q", titles[2])
	}
	if titles[2] != c.Status() {
		t.Errorf("Expected the last update to match Status, got %q", titles[2])
	}
}

func TestActionString(t *testing.T) {
	if ActionRegenerate.String() != "regenerate" {
		t.Errorf("Expected regenerate, got %s", ActionRegenerate.String())
	}
	if ActionNone.String() != "none" {
		t.Errorf("Expected none, got %s", ActionNone.String())
	}
}

func vecNear(a, b mgl32.Vec3, tol float32) bool {
	return a.Sub(b).Len() < tol
}
