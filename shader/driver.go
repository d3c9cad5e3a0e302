package shader

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Stage identifies what a diagnostic refers to.
type Stage int

const (
	Vertex Stage = iota
	Fragment
	Program
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	case Program:
		return "PROGRAM"
	default:
		return "UNKNOWN"
	}
}

// translatorStage is the stage name the shader translator expects.
func (s Stage) translatorStage() string {
	if s == Vertex {
		return "vertex"
	}
	return "fragment"
}

// Driver is the subset of the OpenGL API the shader helper needs. GL is the
// real implementation; tests substitute their own.
type Driver interface {
	CreateShader(stage Stage) uint32
	// CompileShader uploads source to the shader object and compiles it,
	// returning the compile status and the info log.
	CompileShader(shader uint32, source string) (bool, string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	// LinkProgram attaches the shaders and links, returning the link status
	// and the info log.
	LinkProgram(program uint32, shaders ...uint32) (bool, string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, v mgl32.Vec3)
	Uniform4f(location int32, v mgl32.Vec4)
	UniformMatrix4fv(location int32, m mgl32.Mat4)
}
