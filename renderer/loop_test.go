package renderer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/learngl/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeContext asks to close after closeAfter frames; 0 never closes.
type fakeContext struct {
	closeAfter int
	frames     int
	clock      float64
	close      bool
}

func (c *fakeContext) MakeCurrent()                   {}
func (c *fakeContext) Shutdown()                      {}
func (c *fakeContext) SetShouldClose(v bool)          { c.close = v }
func (c *fakeContext) GetFramebufferSize() (int, int) { return 800, 600 }
func (c *fakeContext) Time() float64                  { return c.clock }

func (c *fakeContext) ShouldClose() bool {
	return c.close || (c.closeAfter > 0 && c.frames >= c.closeAfter)
}

func (c *fakeContext) EndFrame() {
	c.frames++
	c.clock += 0.5
}

type fakeScene struct {
	frames    []Frame
	destroyed bool
	shaders   []*shader.Shader
}

func (s *fakeScene) Draw(f Frame)              { s.frames = append(s.frames, f) }
func (s *fakeScene) Destroy()                  { s.destroyed = true }
func (s *fakeScene) Shaders() []*shader.Shader { return s.shaders }

type countingCapturer struct {
	n    int
	fail int
}

func (c *countingCapturer) Capture() error {
	c.n++
	if c.fail > 0 && c.n == c.fail {
		return errors.New("pipe closed")
	}
	return nil
}

func TestRunUntilClose(t *testing.T) {
	ctx := &fakeContext{closeAfter: 3, clock: 10}
	scene := &fakeScene{}

	require.NoError(t, Run(ctx, scene, LoopOptions{}))

	require.Len(t, scene.frames, 3)
	assert.True(t, scene.destroyed)
	assert.Equal(t, 3, ctx.frames)
	assert.Equal(t, int64(2), scene.frames[2].Index)
	assert.InDelta(t, 0.0, scene.frames[0].Time, 1e-9, "time is relative to the loop start")
	assert.InDelta(t, 1.0, scene.frames[2].Time, 1e-9)
	assert.InDelta(t, 0.5, scene.frames[2].Delta, 1e-9)
	assert.Equal(t, 800, scene.frames[0].Width)
	assert.Equal(t, 600, scene.frames[0].Height)
}

func TestRunClosedBeforeFirstFrame(t *testing.T) {
	ctx := &fakeContext{close: true}
	scene := &fakeScene{}
	require.NoError(t, Run(ctx, scene, LoopOptions{}))
	assert.Empty(t, scene.frames)
	assert.True(t, scene.destroyed)
}

func TestRunFrameLimitAndFixedStep(t *testing.T) {
	ctx := &fakeContext{}
	scene := &fakeScene{}
	capture := &countingCapturer{}

	err := Run(ctx, scene, LoopOptions{MaxFrames: 4, Capture: capture, FixedStep: 0.25})
	require.NoError(t, err)

	require.Len(t, scene.frames, 4)
	assert.Equal(t, 4, capture.n)
	assert.InDelta(t, 0.75, scene.frames[3].Time, 1e-9)
	assert.InDelta(t, 0.25, scene.frames[3].Delta, 1e-9)
}

func TestRunCaptureFailureStops(t *testing.T) {
	ctx := &fakeContext{}
	scene := &fakeScene{}
	err := Run(ctx, scene, LoopOptions{Capture: &countingCapturer{fail: 2}})
	assert.ErrorContains(t, err, "pipe closed")
	assert.Len(t, scene.frames, 2)
	assert.True(t, scene.destroyed)
}

type nopDriver struct{ next uint32 }

func (d *nopDriver) CreateShader(shader.Stage) uint32             { d.next++; return d.next }
func (d *nopDriver) CompileShader(uint32, string) (bool, string)  { return true, "" }
func (d *nopDriver) DeleteShader(uint32)                          {}
func (d *nopDriver) CreateProgram() uint32                        { d.next++; return d.next }
func (d *nopDriver) LinkProgram(uint32, ...uint32) (bool, string) { return true, "" }
func (d *nopDriver) DeleteProgram(uint32)                         {}
func (d *nopDriver) UseProgram(uint32)                            {}
func (d *nopDriver) GetUniformLocation(uint32, string) int32      { return -1 }
func (d *nopDriver) Uniform1i(int32, int32)                       {}
func (d *nopDriver) Uniform1f(int32, float32)                     {}
func (d *nopDriver) Uniform3f(int32, mgl32.Vec3)                  {}
func (d *nopDriver) Uniform4f(int32, mgl32.Vec4)                  {}
func (d *nopDriver) UniformMatrix4fv(int32, mgl32.Mat4)           {}

func TestRunReloadsShaders(t *testing.T) {
	dir := t.TempDir()
	vp := filepath.Join(dir, "a.vs")
	fp := filepath.Join(dir, "a.fs")
	require.NoError(t, os.WriteFile(vp, []byte("void main() {}"), 0o644))
	require.NoError(t, os.WriteFile(fp, []byte("void main() {}"), 0o644))
	s, err := shader.New(&nopDriver{}, vp, fp)
	require.NoError(t, err)
	first := s.ID

	polls := 0
	pending := func() bool {
		polls++
		return polls == 2
	}
	scene := &fakeScene{shaders: []*shader.Shader{s}}
	require.NoError(t, Run(&fakeContext{closeAfter: 3}, scene, LoopOptions{ReloadPending: pending}))

	assert.Equal(t, 3, polls)
	assert.NotEqual(t, first, s.ID, "the program was rebuilt once")
}
