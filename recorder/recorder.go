// Package recorder pipes rendered frames to ffmpeg.
package recorder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Recorder is the consumer side of the capture pipeline. Frames are handed
// over on a buffered channel and written to the sink by one goroutine, so
// the render thread only blocks when the encoder falls behind.
type Recorder struct {
	width  int
	height int
	frames chan []byte
	done   chan error
	buf    []byte
	count  int64

	mu       sync.Mutex
	writeErr error // first sink failure, reported by Submit
}

const queueDepth = 3

// Args returns the ffmpeg input and output arguments for raw RGBA frames.
func Args(output string, width, height, fps int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}

	outputArgs = ffmpeg.KwArgs{}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".gif":
		outputArgs["loop"] = 0
	case ".webm":
		outputArgs["c:v"] = "libvpx-vp9"
		outputArgs["pix_fmt"] = "yuv420p"
	default:
		outputArgs["c:v"] = "libx264"
		outputArgs["pix_fmt"] = "yuv420p"
		// yuv420p needs even dimensions
		outputArgs["vf"] = "scale=trunc(iw/2)*2:trunc(ih/2)*2"
	}
	return
}

// New starts ffmpeg writing to output. ffmpegPath may be empty to use the
// ffmpeg found on PATH.
func New(output string, width, height, fps int, ffmpegPath string) (*Recorder, error) {
	if width <= 0 || height <= 0 || fps <= 0 {
		return nil, fmt.Errorf("invalid recording geometry %dx%d@%d", width, height, fps)
	}
	inputArgs, outputArgs := Args(output, width, height, fps)

	pipeReader, pipeWriter := io.Pipe()
	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(output, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if ffmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(ffmpegPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// unblock the writer if ffmpeg exits before reading everything
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	log.Printf("Recording %dx%d @ %d fps to %s", width, height, fps, output)
	return newRecorder(pipeWriter, func() error { return <-errc }, width, height), nil
}

func newRecorder(sink io.WriteCloser, wait func() error, width, height int) *Recorder {
	r := &Recorder{
		width:  width,
		height: height,
		frames: make(chan []byte, queueDepth),
		done:   make(chan error, 1),
	}
	go r.run(sink, wait)
	return r
}

func (r *Recorder) run(sink io.WriteCloser, wait func() error) {
	var writeErr error
	for frame := range r.frames {
		if writeErr != nil {
			continue
		}
		if _, err := sink.Write(frame); err != nil {
			writeErr = fmt.Errorf("failed to write frame to encoder: %w", err)
			log.Println(writeErr)
			r.setErr(writeErr)
		}
	}
	sink.Close()
	var waitErr error
	if err := wait(); err != nil {
		waitErr = fmt.Errorf("encoder failed: %w", err)
	}
	r.done <- errors.Join(waitErr, writeErr)
}

func (r *Recorder) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr == nil {
		r.writeErr = err
	}
}

func (r *Recorder) err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeErr
}

// Submit queues one frame of tightly packed RGBA rows in GL order (bottom
// row first). The rows are flipped into a fresh slice before queueing.
// Once the encoder has stopped accepting frames Submit returns that error.
func (r *Recorder) Submit(pixels []byte) error {
	if err := r.err(); err != nil {
		return err
	}
	want := r.width * r.height * 4
	if len(pixels) != want {
		return fmt.Errorf("frame has %d bytes, want %d", len(pixels), want)
	}
	r.frames <- flipRows(pixels, r.width, r.height)
	r.count++
	return nil
}

// Capture reads the current read framebuffer and queues it. It must run on
// the thread that owns the GL context.
func (r *Recorder) Capture() error {
	if r.buf == nil {
		r.buf = make([]byte, r.width*r.height*4)
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.buf))
	return r.Submit(r.buf)
}

// Frames returns the number of frames submitted so far.
func (r *Recorder) Frames() int64 {
	return r.count
}

// Close flushes queued frames and waits for the encoder to finish.
func (r *Recorder) Close() error {
	close(r.frames)
	err := <-r.done
	if err == nil {
		log.Printf("Recorded %d frames", r.count)
	}
	return err
}

func flipRows(pixels []byte, width, height int) []byte {
	rowSize := width * 4
	out := make([]byte, len(pixels))
	for y := 0; y < height; y++ {
		copy(out[y*rowSize:(y+1)*rowSize], pixels[(height-1-y)*rowSize:(height-y)*rowSize])
	}
	return out
}
