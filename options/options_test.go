package options

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	opts, err := Parse(flag.NewFlagSet("test", flag.ContinueOnError), "", nil)
	require.NoError(t, err)

	assert.Equal(t, 800, *opts.Width)
	assert.Equal(t, 600, *opts.Height)
	assert.Equal(t, "LearnOpenGL", *opts.Title)
	assert.Equal(t, "assets", *opts.Assets)
	assert.False(t, *opts.Watch)
	assert.False(t, opts.Recording())
	assert.Equal(t, 0, *opts.Frames)
	assert.Equal(t, filepath.Join("assets", "shaders", "base.vs"), opts.ShaderPath("base.vs"))
	assert.Equal(t, filepath.Join("assets", "textures", "container.png"), opts.TexturePath("container.png"))
}

func TestParseConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "learngl.toml")
	err := os.WriteFile(cfg, []byte(`
width = 1024
height = 768
title = "from file"
frames = 30
watch = true
`), 0o644)
	require.NoError(t, err)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	opts, err := Parse(fs, "Triangle", []string{"-config", cfg, "-width", "640"})
	require.NoError(t, err)

	assert.Equal(t, 640, *opts.Width, "explicit flag wins")
	assert.Equal(t, 768, *opts.Height)
	assert.Equal(t, "from file", *opts.Title)
	assert.Equal(t, 30, *opts.Frames)
	assert.True(t, *opts.Watch)
	assert.Equal(t, DefaultFPS, *opts.FPS, "absent keys keep defaults")
}

func TestParseMissingConfig(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	_, err := Parse(fs, "", []string{"-config", filepath.Join(t.TempDir(), "nope.toml")})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	_, err := Parse(fs, "", []string{"-width", "0"})
	assert.Error(t, err)

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	_, err = Parse(fs, "", []string{"-record", "out.mp4", "-fps", "0"})
	assert.Error(t, err)

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	opts, err := Parse(fs, "", []string{"-record", "out.mp4"})
	require.NoError(t, err)
	assert.True(t, opts.Recording())
}
