package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type CubeFace int

const (
	FacePositiveX CubeFace = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
	MaxCubeFaces = 6
)

var faceNames = [MaxCubeFaces]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

func (f CubeFace) String() string {
	if f < 0 || f >= MaxCubeFaces {
		return fmt.Sprintf("CubeFace(%d)", int(f))
	}
	return faceNames[f]
}

// Direction returns the axis the face looks along.
func (f CubeFace) Direction() mgl32.Vec3 {
	return faceDirections[f]
}

// Up returns the up vector a camera rendering the face uses. These follow the OpenGL
// cube map layout so faces rendered with a right-handed camera sample seamlessly.
func (f CubeFace) Up() mgl32.Vec3 {
	return faceUps[f]
}

var faceDirections = [MaxCubeFaces]mgl32.Vec3{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

var faceUps = [MaxCubeFaces]mgl32.Vec3{
	{0, -1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
	{0, -1, 0},
	{0, -1, 0},
}

type TextureFormat int

const (
	FormatNone TextureFormat = iota
	FormatRGBA8
)

type TextureUsage int

const (
	UsageStatic TextureUsage = iota
	UsageRenderTarget
)

type SurfaceUpdateMode int

const (
	UpdateVisible SurfaceUpdateMode = iota
	UpdateAlways
	UpdateManual
)

// RenderSurface is one renderable face of a cube texture.
type RenderSurface struct {
	Face      CubeFace
	mode      SurfaceUpdateMode
	queued    bool
	viewports []*Viewport

	// FBO handle, owned by the backend
	Framebuffer uint32
}

func (s *RenderSurface) SetUpdateMode(mode SurfaceUpdateMode) {
	s.mode = mode
}

func (s *RenderSurface) UpdateMode() SurfaceUpdateMode {
	return s.mode
}

// QueueUpdate requests one render of the surface. Requests do not stack: queuing twice
// before the next frame still renders once.
func (s *RenderSurface) QueueUpdate() {
	s.queued = true
}

func (s *RenderSurface) IsUpdateQueued() bool {
	return s.queued
}

// SetNumViewports resizes the viewport list; new slots are nil.
func (s *RenderSurface) SetNumViewports(n int) {
	if n <= len(s.viewports) {
		for i := n; i < len(s.viewports); i++ {
			s.viewports[i] = nil
		}
		s.viewports = s.viewports[:n]
		return
	}
	s.viewports = append(s.viewports, make([]*Viewport, n-len(s.viewports))...)
}

func (s *RenderSurface) SetViewport(i int, vp *Viewport) {
	if i >= 0 && i < len(s.viewports) {
		s.viewports[i] = vp
	}
}

func (s *RenderSurface) NumViewports() int {
	return len(s.viewports)
}

func (s *RenderSurface) Viewport(i int) *Viewport {
	if i < 0 || i >= len(s.viewports) {
		return nil
	}
	return s.viewports[i]
}

// needsRender reports whether the surface should be drawn this frame and consumes the
// queued update of manual surfaces.
func (s *RenderSurface) needsRender() bool {
	switch s.mode {
	case UpdateManual:
		if !s.queued {
			return false
		}
		s.queued = false
		return true
	default:
		return true
	}
}

// CubeTexture is a six face texture whose faces can be render targets.
type CubeTexture struct {
	Name     string
	size     int
	format   TextureFormat
	usage    TextureUsage
	surfaces [MaxCubeFaces]*RenderSurface
	backend  CubeBackend

	// Handle is the backend texture object
	Handle uint32
}

func NewCubeTexture(name string, backend CubeBackend) *CubeTexture {
	t := &CubeTexture{Name: name, backend: backend}
	for i := range t.surfaces {
		t.surfaces[i] = &RenderSurface{Face: CubeFace(i)}
	}
	return t
}

// IsValidCubeSize reports whether size is a power of two between 1 and maxSize.
func IsValidCubeSize(size, maxSize int) bool {
	return size > 0 && size <= maxSize && size&(size-1) == 0
}

// SetSize (re)allocates the texture storage. On failure the previous size, format and
// storage are kept.
func (t *CubeTexture) SetSize(size int, format TextureFormat, usage TextureUsage) error {
	if t.backend == nil {
		return fmt.Errorf("cube texture %s: no backend", t.Name)
	}
	if !IsValidCubeSize(size, t.backend.MaxCubeSize()) {
		return fmt.Errorf("cube texture %s size %d: %w", t.Name, size, ErrUnsupportedCubeSize)
	}

	prevSize, prevFormat, prevUsage := t.size, t.format, t.usage
	t.size, t.format, t.usage = size, format, usage
	if err := t.backend.AllocateCube(t); err != nil {
		t.size, t.format, t.usage = prevSize, prevFormat, prevUsage
		return fmt.Errorf("cube texture %s size %d: %w", t.Name, size, err)
	}
	return nil
}

func (t *CubeTexture) Size() int {
	return t.size
}

func (t *CubeTexture) Format() TextureFormat {
	return t.format
}

func (t *CubeTexture) Usage() TextureUsage {
	return t.usage
}

func (t *CubeTexture) RenderSurface(face CubeFace) *RenderSurface {
	if face < 0 || face >= MaxCubeFaces {
		return nil
	}
	return t.surfaces[face]
}

// RenderQueued draws every surface that is due this frame through its viewports and
// returns the number of faces drawn.
func (t *CubeTexture) RenderQueued() (int, error) {
	if t.backend == nil || t.size == 0 || t.usage != UsageRenderTarget {
		return 0, nil
	}
	drawn := 0
	for _, s := range t.surfaces {
		if len(s.viewports) == 0 || !s.needsRender() {
			continue
		}
		for _, vp := range s.viewports {
			if vp == nil {
				continue
			}
			if err := t.backend.DrawFace(t, s.Face, vp); err != nil {
				return drawn, fmt.Errorf("cube texture %s face %s: %w", t.Name, s.Face, err)
			}
		}
		drawn++
	}
	return drawn, nil
}

// Release frees the backend storage.
func (t *CubeTexture) Release() {
	if t.backend != nil && t.size != 0 {
		t.backend.ReleaseCube(t)
	}
	t.size = 0
}
