package opengl

import (
	"SpaceBox/internal/logger"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	Name           string
	vertexSource   string
	fragmentSource string
	program        uint32
	uniforms       *UniformCache
	isCompiled     bool
}

func NewShader(name, vertexSource, fragmentSource string) *Shader {
	return &Shader{
		Name:           name,
		vertexSource:   vertexSource,
		fragmentSource: fragmentSource,
	}
}

// Compile builds the program. It is a no-op once the shader compiled successfully.
func (shader *Shader) Compile() error {
	if shader.isCompiled {
		return nil
	}
	vertexShader, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("shader %s: %w", shader.Name, err)
	}
	fragmentShader, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return fmt.Errorf("shader %s: %w", shader.Name, err)
	}
	program, err := GenShaderProgram(vertexShader, fragmentShader)
	if err != nil {
		return fmt.Errorf("shader %s: %w", shader.Name, err)
	}

	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	logger.Log.Debug("Shader compiled", zap.String("shader", shader.Name), zap.Uint32("program", program))
	return nil
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) Uniforms() *UniformCache {
	return shader.uniforms
}

func (shader *Shader) Delete() {
	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
		shader.program = 0
		shader.uniforms = nil
		shader.isCompiled = false
	}
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.Uint32("shader type", shaderType), zap.String("log", log))
		return 0, fmt.Errorf("failed to compile shader type %d: %s", shaderType, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("failed to link program: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}
