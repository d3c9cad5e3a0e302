package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/learngl/graphics"
	"github.com/richinsley/learngl/shader"
)

// Frame describes the frame being drawn.
type Frame struct {
	Index  int64
	Time   float64 // seconds since the loop started
	Delta  float64 // seconds since the previous frame
	Width  int     // framebuffer size
	Height int
}

// Scene is the GL state of one exercise.
type Scene interface {
	Draw(frame Frame)
	Destroy()
}

// Reloadable is implemented by scenes whose shaders can be rebuilt from
// their source files.
type Reloadable interface {
	Shaders() []*shader.Shader
}

// Capturer receives each finished frame before buffers are swapped.
type Capturer interface {
	Capture() error
}

type LoopOptions struct {
	// MaxFrames stops the loop after that many frames; 0 means no limit.
	MaxFrames int
	// Capture, when set, is called after every draw.
	Capture Capturer
	// ReloadPending is polled once per frame; true triggers a shader reload.
	ReloadPending func() bool
	// FixedStep, when positive, advances time by this many seconds per frame
	// instead of following the wall clock.
	FixedStep float64
}

// Run drives scene until the context is asked to close or MaxFrames is
// reached. It must run on the thread that owns the GL context. The scene
// is destroyed before Run returns.
func Run(ctx graphics.Context, scene Scene, opts LoopOptions) error {
	defer scene.Destroy()

	startTime := ctx.Time()
	lastTime := 0.0
	var frameCount int64

	for !ctx.ShouldClose() {
		if opts.MaxFrames > 0 && frameCount >= int64(opts.MaxFrames) {
			break
		}

		if opts.ReloadPending != nil && opts.ReloadPending() {
			reloadShaders(scene)
		}

		currentTime := ctx.Time() - startTime
		if opts.FixedStep > 0 {
			currentTime = float64(frameCount) * opts.FixedStep
		}
		width, height := ctx.GetFramebufferSize()

		scene.Draw(Frame{
			Index:  frameCount,
			Time:   currentTime,
			Delta:  currentTime - lastTime,
			Width:  width,
			Height: height,
		})
		lastTime = currentTime

		if opts.Capture != nil {
			if err := opts.Capture.Capture(); err != nil {
				return fmt.Errorf("failed to capture frame %d: %w", frameCount, err)
			}
		}

		ctx.EndFrame()
		frameCount++
	}
	log.Printf("Render loop finished after %d frames", frameCount)
	return nil
}

func reloadShaders(scene Scene) {
	r, ok := scene.(Reloadable)
	if !ok {
		return
	}
	for _, s := range r.Shaders() {
		if err := s.Reload(); err != nil {
			log.Printf("Shader reload failed: %v", err)
		}
	}
}
