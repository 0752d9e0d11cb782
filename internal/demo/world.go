package demo

import (
	"SpaceBox/internal/logger"
	"SpaceBox/internal/renderer"
	"SpaceBox/internal/scene"
	"SpaceBox/internal/spacebox"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	StoneMaterial  = "Materials/stone.json"
	SkyboxMaterial = "Materials/skybox.json"

	floorTiles     = 5 // tiles on each side of the center tile
	tileSpacing    = 20.5
	skyboxScale    = 500
	lightIntensity = 1
)

var worldZone = renderer.Zone{
	AmbientColor: mgl32.Vec3{0.1, 0.1, 0.1},
	FogColor:     mgl32.Vec3{0, 0, 0},
	FogStart:     100,
	FogEnd:       300,
}

// World is the scene the player walks around in: a tiled stone floor under the
// generated sky, lit by a directional light that follows the sun.
type World struct {
	Scene *scene.Scene
	Light *renderer.Light

	box       *renderer.Mesh
	stone     *renderer.Material
	skyboxTpl *renderer.Material
	skybox    *renderer.Material
}

func NewWorld(cache *renderer.ResourceCache) (*World, error) {
	stone, err := cache.GetMaterial(StoneMaterial)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	skyboxTpl, err := cache.GetMaterial(SkyboxMaterial)
	if err != nil {
		stone.Release()
		return nil, fmt.Errorf("world: %w", err)
	}

	w := &World{
		Scene:     scene.NewScene("world"),
		Light:     &renderer.Light{Intensity: lightIntensity},
		box:       spacebox.CreateBox(),
		stone:     stone,
		skyboxTpl: skyboxTpl,
		skybox:    skyboxTpl.Clone(),
	}
	w.box.AddRef()
	w.ApplyResult(spacebox.Result{SunDirection: spacebox.DefaultSunDirection, SunColor: spacebox.DefaultSunColor}, 0)

	zoneNode := w.Scene.CreateChild("Zone")
	zoneNode.AddComponent(&scene.ZoneComponent{Zone: worldZone})

	for y := -floorTiles; y <= floorTiles; y++ {
		for x := -floorTiles; x <= floorTiles; x++ {
			tile := w.Scene.CreateChild("FloorTile")
			tile.SetPosition(mgl32.Vec3{float32(x) * tileSpacing, -0.5, float32(y) * tileSpacing})
			tile.SetScale(mgl32.Vec3{10, 0.5, 10})
			w.addModel(tile, w.stone)
		}
	}

	sky := w.Scene.CreateChild("Sky")
	sky.SetScale(mgl32.Vec3{skyboxScale, skyboxScale, skyboxScale})
	w.addModel(sky, w.skybox)

	logger.Log.Info("World created", zap.Int("nodes", w.Scene.Len()))
	return w, nil
}

func (w *World) addModel(n *scene.Node, material *renderer.Material) {
	model := &scene.StaticModel{}
	n.AddComponent(model)
	model.SetModel(w.box)
	model.SetMaterial(material)
}

// ApplyResult points the light away from the generated sun and binds the cube texture
// to the sky. The texture handle changes whenever the cube is reallocated.
func (w *World) ApplyResult(r spacebox.Result, cubeHandle uint32) {
	w.Light.Direction = r.SunDirection.Mul(-1)
	w.Light.Color = r.SunColor
	w.skybox.TextureID = cubeHandle
}

func (w *World) Zone() renderer.Zone {
	return w.Scene.Zone()
}

func (w *World) ClearColor() mgl32.Vec3 {
	return w.Zone().FogColor
}

func (w *World) SkyboxMaterial() *renderer.Material {
	return w.skybox
}

// Close removes every node and drops the references the world holds.
func (w *World) Close() {
	w.Scene.Clear()
	w.box.Release()
	w.stone.Release()
	w.skyboxTpl.Release()
}
