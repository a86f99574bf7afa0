// Package opengl implements the gfx capabilities on an OpenGL 4.1 core
// context. All calls must happen on the thread that owns the context.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/driftline/internal/engine/gfx"
	"github.com/Faultbox/driftline/pkg/math"
)

// Program is a linked shader program with a uniform location cache.
type Program struct {
	name      string
	id        uint32
	locations map[string]int32
}

// NewProgram compiles and links a program from GLSL sources.
func NewProgram(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", name, err)
	}
	return &Program{name: name, id: id, locations: make(map[string]int32)}, nil
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, max(logLen, 1))
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, max(logLen, 1))
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// location returns the cached uniform location, -1 if the program does not
// declare it.
func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

// Use makes the program current.
func (p *Program) Use() { gl.UseProgram(p.id) }

func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc := p.location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

func (p *Program) SetVec2(name string, v math.Vec2) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform2f(loc, v.X, v.Y)
	}
}

func (p *Program) SetVec3(name string, v math.Vec3) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

func (p *Program) SetVec4(name string, v math.Vec4) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (p *Program) SetFloat(name string, f float32) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform1f(loc, f)
	}
}

func (p *Program) SetInt(name string, i int32) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform1i(loc, i)
	}
}

func (p *Program) SetBool(name string, b bool) {
	var v int32
	if b {
		v = 1
	}
	p.SetInt(name, v)
}

// BindTexture binds tex to the given unit and points the sampler at it.
func (p *Program) BindTexture(unit int, name string, kind gfx.TextureKind, tex gfx.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(target(kind), uint32(tex))
	p.SetInt(name, int32(unit))
}

// Destroy deletes the program.
func (p *Program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func target(kind gfx.TextureKind) uint32 {
	if kind == gfx.TextureCube {
		return gl.TEXTURE_CUBE_MAP
	}
	return gl.TEXTURE_2D
}
