package shader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	xlate "github.com/richinsley/learngl/translator"
)

// Shader is a linked vertex/fragment program built from two source files.
// ID is 0 when the last build failed.
type Shader struct {
	ID           uint32
	VertexPath   string
	FragmentPath string

	driver      Driver
	names       map[string]string // source name -> name in the compiled program
	locations   map[string]int32
	diagnostics []string
}

// New reads, compiles and links the two shader sources. Only a file that
// cannot be read is returned as an error: compile and link failures are
// logged, leave ID at 0 and are available from Log.
func New(driver Driver, vertexPath, fragmentPath string) (*Shader, error) {
	s := &Shader{
		VertexPath:   vertexPath,
		FragmentPath: fragmentPath,
		driver:       driver,
	}
	vs, fs, err := s.readSources()
	if err != nil {
		return nil, err
	}
	s.install(s.build(vs, fs))
	return s, nil
}

// NewFromSource builds a program from in-memory sources.
func NewFromSource(driver Driver, vertexSource, fragmentSource string) *Shader {
	s := &Shader{driver: driver}
	s.install(s.build(vertexSource, fragmentSource))
	return s
}

type buildResult struct {
	program     uint32
	names       map[string]string
	diagnostics []string
}

func (s *Shader) readSources() (string, string, error) {
	vs, err := os.ReadFile(s.VertexPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to open vertex shader %s: %w", s.VertexPath, err)
	}
	fs, err := os.ReadFile(s.FragmentPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to open fragment shader %s: %w", s.FragmentPath, err)
	}
	return string(vs), string(fs), nil
}

func (s *Shader) build(vertexSource, fragmentSource string) buildResult {
	res := buildResult{names: make(map[string]string)}

	vertex, vok := s.compileStage(Vertex, vertexSource, &res)
	fragment, fok := s.compileStage(Fragment, fragmentSource, &res)
	ok := vok && fok

	if vertex == 0 || fragment == 0 {
		// a stage never reached the driver; there is nothing to link
		if vertex != 0 {
			s.driver.DeleteShader(vertex)
		}
		if fragment != 0 {
			s.driver.DeleteShader(fragment)
		}
		return res
	}

	program := s.driver.CreateProgram()
	linked, infoLog := s.driver.LinkProgram(program, vertex, fragment)
	if !linked {
		res.report(Program, "PROGRAM_LINKING_ERROR", infoLog)
		ok = false
	}
	s.driver.DeleteShader(vertex)
	s.driver.DeleteShader(fragment)

	if !ok {
		s.driver.DeleteProgram(program)
		return res
	}
	res.program = program
	return res
}

// compileStage returns the shader object (0 if the source never reached the
// driver) and whether it compiled.
func (s *Shader) compileStage(stage Stage, source string, res *buildResult) (uint32, bool) {
	if xlate.IsESSL(source) {
		out, err := xlate.ToDesktop(source, stage.translatorStage())
		if err != nil {
			res.report(stage, "SHADER_COMPILATION_ERROR", err.Error())
			return 0, false
		}
		source = out.Code
		for name, mapped := range out.MappedNames {
			res.names[name] = mapped
		}
	}

	id := s.driver.CreateShader(stage)
	compiled, infoLog := s.driver.CompileShader(id, source)
	if !compiled {
		res.report(stage, "SHADER_COMPILATION_ERROR", infoLog)
	}
	return id, compiled
}

func (r *buildResult) report(stage Stage, kind, infoLog string) {
	msg := fmt.Sprintf("ERROR::%s of type: %s\n%s", kind, stage, strings.TrimSpace(infoLog))
	log.Printf("%s\n -- --------------------------------------------------- -- ", msg)
	r.diagnostics = append(r.diagnostics, msg)
}

func (s *Shader) install(res buildResult) {
	s.ID = res.program
	s.names = res.names
	s.locations = make(map[string]int32)
	s.diagnostics = res.diagnostics
}

// Reload re-reads both source files and rebuilds the program. If the new
// sources fail to build the current program stays in place and an error is
// returned.
func (s *Shader) Reload() error {
	if s.VertexPath == "" || s.FragmentPath == "" {
		return fmt.Errorf("shader was not loaded from files")
	}
	vs, fs, err := s.readSources()
	if err != nil {
		return err
	}
	res := s.build(vs, fs)
	if res.program == 0 {
		s.diagnostics = res.diagnostics
		return fmt.Errorf("rebuilding %s + %s failed, keeping program %d", s.VertexPath, s.FragmentPath, s.ID)
	}
	old := s.ID
	s.install(res)
	if old != 0 {
		s.driver.DeleteProgram(old)
	}
	log.Printf("Reloaded shader %s + %s (program %d)", s.VertexPath, s.FragmentPath, s.ID)
	return nil
}

// OK reports whether the last build produced a usable program.
func (s *Shader) OK() bool {
	return s.ID != 0
}

// Log returns the diagnostics of the last build, one entry per failure.
func (s *Shader) Log() string {
	return strings.Join(s.diagnostics, "\n")
}

// Use activates the program.
func (s *Shader) Use() {
	s.driver.UseProgram(s.ID)
}

// Delete releases the program.
func (s *Shader) Delete() {
	if s.ID != 0 {
		s.driver.DeleteProgram(s.ID)
	}
	s.ID = 0
	s.locations = make(map[string]int32)
}

// location resolves a uniform name, returning -1 when it does not exist.
func (s *Shader) location(name string) int32 {
	if s.ID == 0 {
		return -1
	}
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	mapped := name
	if m, ok := s.names[name]; ok {
		mapped = m
	}
	loc := s.driver.GetUniformLocation(s.ID, mapped)
	s.locations[name] = loc
	return loc
}

func (s *Shader) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	s.SetInt(name, i)
}

func (s *Shader) SetInt(name string, v int32) {
	if loc := s.location(name); loc != -1 {
		s.driver.Uniform1i(loc, v)
	}
}

func (s *Shader) SetFloat(name string, v float32) {
	if loc := s.location(name); loc != -1 {
		s.driver.Uniform1f(loc, v)
	}
}

func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	if loc := s.location(name); loc != -1 {
		s.driver.Uniform3f(loc, v)
	}
}

func (s *Shader) SetVec4(name string, v mgl32.Vec4) {
	if loc := s.location(name); loc != -1 {
		s.driver.Uniform4f(loc, v)
	}
}

func (s *Shader) SetMat4(name string, m mgl32.Mat4) {
	if loc := s.location(name); loc != -1 {
		s.driver.UniformMatrix4fv(loc, m)
	}
}
