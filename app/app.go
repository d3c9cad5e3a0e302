// Package app turns an exercise into an executable: flags, window, optional
// shader watching and recording, then the render loop.
package app

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/richinsley/learngl/examples"
	"github.com/richinsley/learngl/glfwcontext"
	"github.com/richinsley/learngl/options"
	"github.com/richinsley/learngl/recorder"
	"github.com/richinsley/learngl/renderer"
	"github.com/richinsley/learngl/shader"
	"github.com/richinsley/learngl/watcher"
)

// defaultRecordSeconds bounds a recording when no frame limit is given.
const defaultRecordSeconds = 10

// Main runs ex with the process arguments and exits on failure.
func Main(ex examples.Example) {
	if err := Run(ex, os.Args[1:]); err != nil {
		log.Fatalf("%s: %v", ex.Name, err)
	}
}

// Run parses args, opens the window and renders ex until the window closes
// or the frame limit is reached.
func Run(ex examples.Example, args []string) error {
	fs := flag.NewFlagSet(ex.Name, flag.ContinueOnError)
	opts, err := options.Parse(fs, ex.Title, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *opts.Help {
		fmt.Println(ex.Title)
		fs.SetOutput(os.Stdout)
		fs.PrintDefaults()
		return nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer ctx.Shutdown()

	env := &examples.Env{Opts: opts, Ctx: ctx, Driver: shader.GL{}}
	scene, err := ex.Setup(env)
	if err != nil {
		return fmt.Errorf("failed to set up %s: %w", ex.Name, err)
	}

	loopOpts := renderer.LoopOptions{MaxFrames: *opts.Frames}

	if *opts.Watch {
		w, err := watcher.New(env.ShaderFiles()...)
		if err != nil {
			log.Printf("Shader watching disabled: %v", err)
		} else {
			defer w.Close()
			loopOpts.ReloadPending = w.Pending
			log.Printf("Watching %d shader files for changes", len(env.ShaderFiles()))
		}
	}

	var rec *recorder.Recorder
	if opts.Recording() {
		width, height := ctx.GetFramebufferSize()
		rec, err = recorder.New(*opts.Record, width, height, *opts.FPS, *opts.FFMPEGPath)
		if err != nil {
			scene.Destroy()
			return err
		}
		loopOpts.Capture = rec
		loopOpts.FixedStep = 1 / float64(*opts.FPS)
		if loopOpts.MaxFrames == 0 {
			loopOpts.MaxFrames = defaultRecordSeconds * *opts.FPS
		}
	}

	log.Printf("Starting %s", ex.Name)
	runErr := renderer.Run(ctx, scene, loopOpts)
	if rec != nil {
		if err := rec.Close(); err != nil && runErr == nil {
			runErr = fmt.Errorf("recording failed: %w", err)
		}
	}
	return runErr
}
