package renderer

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

type Technique string

const (
	TechniquePointStars Technique = "point_stars"
	TechniqueStar       Technique = "star"
	TechniqueNebula     Technique = "nebular"
	TechniqueSun        Technique = "sun"
	TechniqueSkybox     Technique = "skybox"
	TechniqueLit        Technique = "lit"
)

type BlendMode int

const (
	BlendReplace BlendMode = iota
	BlendAdd
)

// ShaderParameter is a float or vector uniform value.
type ShaderParameter struct {
	Components int
	Value      mgl32.Vec4
}

func FloatParameter(v float32) ShaderParameter {
	return ShaderParameter{Components: 1, Value: mgl32.Vec4{v, 0, 0, 0}}
}

func Vec3Parameter(v mgl32.Vec3) ShaderParameter {
	return ShaderParameter{Components: 3, Value: v.Vec4(0)}
}

func (p ShaderParameter) Float() float32 {
	return p.Value[0]
}

func (p ShaderParameter) Vec3() mgl32.Vec3 {
	return p.Value.Vec3()
}

type Material struct {
	RefCounted

	// HOT DATA
	Technique Technique
	Blend     BlendMode
	DepthTest bool
	CullNone  bool
	TextureID uint32
	params    map[string]ShaderParameter

	// COLD DATA
	Name string
}

func NewMaterial(name string, technique Technique) *Material {
	return &Material{
		Name:      name,
		Technique: technique,
		params:    make(map[string]ShaderParameter),
	}
}

// Clone returns an unshared copy with its own parameter table and no references.
func (m *Material) Clone() *Material {
	c := &Material{
		Technique: m.Technique,
		Blend:     m.Blend,
		DepthTest: m.DepthTest,
		CullNone:  m.CullNone,
		TextureID: m.TextureID,
		Name:      m.Name,
		params:    make(map[string]ShaderParameter, len(m.params)),
	}
	for k, v := range m.params {
		c.params[k] = v
	}
	return c
}

func (m *Material) SetShaderParameter(name string, value ShaderParameter) {
	if m.params == nil {
		m.params = make(map[string]ShaderParameter)
	}
	m.params[name] = value
}

func (m *Material) SetFloat(name string, v float32) {
	m.SetShaderParameter(name, FloatParameter(v))
}

func (m *Material) SetVec3(name string, v mgl32.Vec3) {
	m.SetShaderParameter(name, Vec3Parameter(v))
}

func (m *Material) ShaderParameter(name string) (ShaderParameter, bool) {
	p, ok := m.params[name]
	return p, ok
}

// Float returns a float parameter, or zero when it is not set.
func (m *Material) Float(name string) float32 {
	return m.params[name].Float()
}

// Vec3 returns a vector parameter, or the zero vector when it is not set.
func (m *Material) Vec3(name string) mgl32.Vec3 {
	return m.params[name].Vec3()
}

// ParameterNames returns the parameter names in sorted order.
func (m *Material) ParameterNames() []string {
	names := make([]string, 0, len(m.params))
	for name := range m.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
