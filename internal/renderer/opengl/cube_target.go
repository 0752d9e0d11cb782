package opengl

import (
	"SpaceBox/internal/logger"
	"SpaceBox/internal/renderer"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// cubeTarget is the GL storage behind a render target cube texture: the cube map, one
// framebuffer per face and a depth buffer shared by all faces.
type cubeTarget struct {
	texture      uint32
	depth        uint32
	framebuffers [renderer.MaxCubeFaces]uint32
	size         int32
}

func (rend *Renderer) MaxCubeSize() int {
	return rend.maxCubeSize
}

func (rend *Renderer) AllocateCube(tex *renderer.CubeTexture) error {
	if tex.Format() != renderer.FormatRGBA8 {
		return fmt.Errorf("unsupported texture format %d", tex.Format())
	}
	size := int32(tex.Size())
	target := &cubeTarget{size: size}

	var u Unwind
	defer u.Unwind()

	gl.GenTextures(1, &target.texture)
	u.Add(func() { gl.DeleteTextures(1, &target.texture) })
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, target.texture)
	for i := uint32(0); i < renderer.MaxCubeFaces; i++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+i, 0, gl.RGBA8, size, size, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	gl.GenRenderbuffers(1, &target.depth)
	u.Add(func() { gl.DeleteRenderbuffers(1, &target.depth) })
	gl.BindRenderbuffer(gl.RENDERBUFFER, target.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, size, size)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(renderer.MaxCubeFaces, &target.framebuffers[0])
	u.Add(func() { gl.DeleteFramebuffers(renderer.MaxCubeFaces, &target.framebuffers[0]) })
	for i := uint32(0); i < renderer.MaxCubeFaces; i++ {
		gl.BindFramebuffer(gl.FRAMEBUFFER, target.framebuffers[i])
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_CUBE_MAP_POSITIVE_X+i, target.texture, 0)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, target.depth)
		if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			return fmt.Errorf("framebuffer for face %s incomplete: 0x%x", renderer.CubeFace(i), status)
		}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	u.Discard()

	// the new storage is complete, replace the old one
	if old, ok := rend.cubes[tex]; ok {
		old.delete()
	}
	rend.cubes[tex] = target
	tex.Handle = target.texture
	for i := 0; i < renderer.MaxCubeFaces; i++ {
		tex.RenderSurface(renderer.CubeFace(i)).Framebuffer = target.framebuffers[i]
	}

	logger.Log.Info("Cube render target allocated",
		zap.String("texture", tex.Name),
		zap.Int32("size", size),
		zap.Uint32("handle", target.texture))
	return nil
}

func (rend *Renderer) ReleaseCube(tex *renderer.CubeTexture) {
	target, ok := rend.cubes[tex]
	if !ok {
		return
	}
	target.delete()
	delete(rend.cubes, tex)
	tex.Handle = 0
	for i := 0; i < renderer.MaxCubeFaces; i++ {
		tex.RenderSurface(renderer.CubeFace(i)).Framebuffer = 0
	}
}

func (t *cubeTarget) delete() {
	gl.DeleteFramebuffers(renderer.MaxCubeFaces, &t.framebuffers[0])
	gl.DeleteRenderbuffers(1, &t.depth)
	gl.DeleteTextures(1, &t.texture)
}

// DrawFace renders vp into one face of tex and restores the default framebuffer.
func (rend *Renderer) DrawFace(tex *renderer.CubeTexture, face renderer.CubeFace, vp *renderer.Viewport) error {
	target, ok := rend.cubes[tex]
	if !ok {
		return fmt.Errorf("face %s has no storage", face)
	}
	if vp.Scene == nil || vp.Camera == nil {
		return fmt.Errorf("face %s: incomplete viewport", face)
	}

	clear := vp.RenderPath.ClearColorFor(vp.Scene.Zone())
	gl.BindFramebuffer(gl.FRAMEBUFFER, target.framebuffers[face])
	gl.Viewport(0, 0, target.size, target.size)
	gl.ClearColor(clear.X(), clear.Y(), clear.Z(), 1.0)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	rend.drawScene(vp.Scene, vp.Camera)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, rend.Width, rend.Height)
	return nil
}
