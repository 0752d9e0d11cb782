// Package opengl draws scenes and cube render targets with OpenGL 4.1 core.
package opengl

import (
	"SpaceBox/internal/logger"
	"SpaceBox/internal/renderer"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const vertexStride = 16 // renderer.Vertex: 3 floats + packed color

// Renderer draws the main scene to the default framebuffer and implements
// renderer.CubeBackend for cube render targets. All methods need the GL context current.
type Renderer struct {
	Width  int32
	Height int32
	Light  *renderer.Light

	shaders        map[renderer.Technique]*Shader
	cubes          map[*renderer.CubeTexture]*cubeTarget
	maxCubeSize    int
	currentProgram uint32
	warned         map[renderer.Technique]bool
}

func NewRenderer() *Renderer {
	return &Renderer{
		shaders: techniqueShaders(),
		cubes:   make(map[*renderer.CubeTexture]*cubeTarget),
		warned:  make(map[renderer.Technique]bool),
	}
}

// Init compiles every technique and reads the context limits.
func (rend *Renderer) Init(width, height int32) error {
	var u Unwind
	for _, shader := range rend.shaders {
		if err := shader.Compile(); err != nil {
			u.Unwind()
			return err
		}
		u.Add(shader.Delete)
	}
	u.Discard()

	var maxSize int32
	gl.GetIntegerv(gl.MAX_CUBE_MAP_TEXTURE_SIZE, &maxSize)
	rend.maxCubeSize = int(maxSize)

	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)
	rend.UpdateViewport(width, height)

	logger.Log.Info("OpenGL renderer initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Int("max cube size", rend.maxCubeSize))
	return nil
}

// UpdateViewport updates the OpenGL viewport to match the current window size
func (rend *Renderer) UpdateViewport(width, height int32) {
	rend.Width, rend.Height = width, height
	gl.Viewport(0, 0, width, height)
}

// Render draws the scene seen through camera into the default framebuffer.
func (rend *Renderer) Render(source renderer.SceneSource, camera *renderer.Camera, clearColor mgl32.Vec3) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, rend.Width, rend.Height)
	gl.ClearColor(clearColor.X(), clearColor.Y(), clearColor.Z(), 1.0)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	rend.drawScene(source, camera)
}

func (rend *Renderer) drawScene(source renderer.SceneSource, camera *renderer.Camera) {
	zone := source.Zone()
	viewProjection := camera.GetViewProjection()

	for _, d := range source.Drawables() {
		shader, ok := rend.shaders[d.Material.Technique]
		if !ok || !shader.isCompiled {
			if !rend.warned[d.Material.Technique] {
				logger.Log.Warn("No shader for technique",
					zap.String("technique", string(d.Material.Technique)),
					zap.String("node", d.Name))
				rend.warned[d.Material.Technique] = true
			}
			continue
		}
		if err := rend.upload(d.Mesh); err != nil {
			logger.Log.Error("Mesh upload failed", zap.String("mesh", d.Mesh.Name), zap.Error(err))
			continue
		}

		if rend.currentProgram != shader.program {
			shader.Use()
			rend.currentProgram = shader.program
		}
		rend.setState(d.Material)
		rend.setUniforms(shader, d, viewProjection, camera, zone)

		gl.BindVertexArray(d.Mesh.VAO)
		gl.DrawElements(gl.TRIANGLES, int32(d.Mesh.IndexCount()), gl.UNSIGNED_INT, nil)
		gl.BindVertexArray(0)
	}

	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

func (rend *Renderer) setState(m *renderer.Material) {
	switch m.Blend {
	case renderer.BlendAdd:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE)
	default:
		gl.Disable(gl.BLEND)
	}

	if m.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	if m.CullNone {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		// box meshes are wound to be seen from the inside
		gl.FrontFace(gl.CW)
	}

	if m.Technique == renderer.TechniqueSkybox {
		gl.DepthMask(false)
		gl.DepthFunc(gl.LEQUAL)
	} else {
		gl.DepthMask(m.DepthTest)
		gl.DepthFunc(gl.LESS)
	}
}

func (rend *Renderer) setUniforms(shader *Shader, d renderer.Drawable, viewProjection mgl32.Mat4, camera *renderer.Camera, zone renderer.Zone) {
	uniforms := shader.Uniforms()

	if d.Material.Technique == renderer.TechniqueSkybox {
		// Remove translation from view matrix (skybox should appear infinite)
		view := camera.GetViewMatrix()
		view[12], view[13], view[14] = 0, 0, 0
		uniforms.SetMat4("view", view)
		uniforms.SetMat4("projection", camera.GetProjectionMatrix())

		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, d.Material.TextureID)
		uniforms.SetInt("skybox", 0)
		return
	}

	uniforms.SetMat4("model", d.Transform)
	uniforms.SetMat4("viewProjection", viewProjection)
	uniforms.SetVec3("cameraPos", camera.Position)

	for _, name := range d.Material.ParameterNames() {
		p, _ := d.Material.ShaderParameter(name)
		uniforms.SetParameter(name, p)
	}

	if d.Material.Technique == renderer.TechniqueLit {
		light := rend.Light
		if light == nil {
			light = &renderer.Light{Direction: mgl32.Vec3{0, -1, 0}, Color: mgl32.Vec3{1, 1, 1}, Intensity: 1}
		}
		uniforms.SetVec3("lightDirection", light.Direction)
		uniforms.SetVec3("lightColor", light.Color)
		uniforms.SetFloat("lightIntensity", light.Intensity)
		uniforms.SetVec3("ambientColor", zone.AmbientColor)
		uniforms.SetVec3("fogColor", zone.FogColor)
		uniforms.SetFloat("fogStart", zone.FogStart)
		uniforms.SetFloat("fogEnd", zone.FogEnd)
	}
}

// upload creates the GPU buffers of a mesh the first time it is drawn. They are deleted
// when the mesh's last reference is released.
func (rend *Renderer) upload(mesh *renderer.Mesh) error {
	if mesh.VAO != 0 {
		return nil
	}
	if mesh.VertexCount() == 0 || mesh.IndexCount() == 0 {
		return fmt.Errorf("mesh %s is empty", mesh.Name)
	}

	gl.GenVertexArrays(1, &mesh.VAO)
	gl.BindVertexArray(mesh.VAO)

	gl.GenBuffers(1, &mesh.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, mesh.VertexCount()*vertexStride, gl.Ptr(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &mesh.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, mesh.IndexCount()*4, gl.Ptr(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	if mesh.HasColor() {
		gl.VertexAttribPointer(1, 4, gl.UNSIGNED_BYTE, true, vertexStride, gl.PtrOffset(12))
		gl.EnableVertexAttribArray(1)
	}
	gl.BindVertexArray(0)

	mesh.OnRelease(func() {
		gl.DeleteVertexArrays(1, &mesh.VAO)
		gl.DeleteBuffers(1, &mesh.VBO)
		gl.DeleteBuffers(1, &mesh.EBO)
		mesh.VAO, mesh.VBO, mesh.EBO = 0, 0, 0
	})
	return nil
}

// Cleanup frees every cube target and program.
func (rend *Renderer) Cleanup() {
	for tex := range rend.cubes {
		rend.ReleaseCube(tex)
	}
	for _, shader := range rend.shaders {
		shader.Delete()
	}
	rend.currentProgram = 0
}
