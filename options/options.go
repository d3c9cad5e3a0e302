package options

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultTitle  = "LearnOpenGL"
	DefaultAssets = "assets"
	DefaultFPS    = 60
)

type ExampleOptions struct {
	Width      *int
	Height     *int
	Title      *string
	Assets     *string // root directory for shaders/ and textures/
	ConfigFile *string
	Watch      *bool   // rebuild shader programs when their sources change
	Record     *string // output file; empty disables recording
	Frames     *int    // stop after this many frames; 0 runs until the window closes
	FPS        *int
	FFMPEGPath *string
	Help       *bool
}

// fileConfig mirrors ExampleOptions for TOML decoding. Absent keys stay nil.
type fileConfig struct {
	Width      *int    `toml:"width"`
	Height     *int    `toml:"height"`
	Title      *string `toml:"title"`
	Assets     *string `toml:"assets"`
	Watch      *bool   `toml:"watch"`
	Record     *string `toml:"record"`
	Frames     *int    `toml:"frames"`
	FPS        *int    `toml:"fps"`
	FFMPEGPath *string `toml:"ffmpeg"`
}

// Register declares the shared exercise flags on fs. The defaults reproduce
// the fixed window every exercise opens.
func Register(fs *flag.FlagSet, title string) *ExampleOptions {
	if title == "" {
		title = DefaultTitle
	}
	return &ExampleOptions{
		Width:      fs.Int("width", DefaultWidth, "Window width"),
		Height:     fs.Int("height", DefaultHeight, "Window height"),
		Title:      fs.String("title", title, "Window title"),
		Assets:     fs.String("assets", DefaultAssets, "Directory holding shaders/ and textures/"),
		ConfigFile: fs.String("config", "", "Optional TOML file with the same settings"),
		Watch:      fs.Bool("watch", false, "Reload shaders when their source files change"),
		Record:     fs.String("record", "", "Record frames to this video file (hides the window)"),
		Frames:     fs.Int("frames", 0, "Stop after this many frames (0 = until closed)"),
		FPS:        fs.Int("fps", DefaultFPS, "Frame rate of the recording"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Help:       fs.Bool("help", false, "Show help message"),
	}
}

// Parse parses args and then applies the config file, if any. Flags given
// explicitly on the command line win over values from the file.
func Parse(fs *flag.FlagSet, title string, args []string) (*ExampleOptions, error) {
	opts := Register(fs, title)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *opts.ConfigFile != "" {
		if err := opts.LoadFile(*opts.ConfigFile, explicitFlags(fs)); err != nil {
			return nil, err
		}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// LoadFile overlays settings from a TOML file. Keys named in skip are left
// untouched.
func (o *ExampleOptions) LoadFile(path string, skip map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	overlay(o.Width, fc.Width, skip["width"])
	overlay(o.Height, fc.Height, skip["height"])
	overlay(o.Title, fc.Title, skip["title"])
	overlay(o.Assets, fc.Assets, skip["assets"])
	overlay(o.Watch, fc.Watch, skip["watch"])
	overlay(o.Record, fc.Record, skip["record"])
	overlay(o.Frames, fc.Frames, skip["frames"])
	overlay(o.FPS, fc.FPS, skip["fps"])
	overlay(o.FFMPEGPath, fc.FFMPEGPath, skip["ffmpeg"])
	return nil
}

func overlay[T any](dst, src *T, skip bool) {
	if skip || src == nil || dst == nil {
		return
	}
	*dst = *src
}

func (o *ExampleOptions) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", *o.Width, *o.Height)
	}
	if *o.Frames < 0 {
		return fmt.Errorf("frames must not be negative: %d", *o.Frames)
	}
	if *o.Record != "" && *o.FPS <= 0 {
		return fmt.Errorf("fps must be positive when recording: %d", *o.FPS)
	}
	return nil
}

// Recording reports whether frames are captured to a video file.
func (o *ExampleOptions) Recording() bool {
	return o.Record != nil && *o.Record != ""
}

// ShaderPath returns the path of a shader source under the assets root.
func (o *ExampleOptions) ShaderPath(name string) string {
	return filepath.Join(*o.Assets, "shaders", name)
}

// TexturePath returns the path of an image under the assets root.
func (o *ExampleOptions) TexturePath(name string) string {
	return filepath.Join(*o.Assets, "textures", name)
}
