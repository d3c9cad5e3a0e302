package texture

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture is a 2D texture uploaded from an image file.
type Texture struct {
	ID     uint32
	Width  int32
	Height int32
}

// Options control sampling and orientation.
type Options struct {
	Wrap   string // "repeat" (default), "mirror" or "clamp"
	Filter string // "linear" (default), "nearest" or "mipmap"
	// FlipV flips rows so the first image row ends up at v=0. Most image
	// formats store the top row first while GL samples bottom-up.
	FlipV bool
}

// DefaultOptions repeat in both directions and use trilinear filtering.
var DefaultOptions = Options{Wrap: "repeat", Filter: "mipmap"}

// vflip vertically flips the provided RGBA image.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// Decode reads an image file and converts it to RGBA.
func Decode(path string, flip bool) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	log.Printf("Loaded %s texture %s (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return toRGBA(img, flip), nil
}

func toRGBA(img image.Image, flip bool) *image.RGBA {
	// image.NewRGBA starts at the origin so Pix rows line up with the upload
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	if flip {
		rgba = vflip(rgba)
	}
	return rgba
}

// Load decodes an image file and uploads it as a 2D texture.
func Load(path string, opts Options) (*Texture, error) {
	rgba, err := Decode(path, opts.FlipV)
	if err != nil {
		return nil, err
	}
	return Upload(rgba, opts), nil
}

// Upload creates a texture from decoded pixels.
func Upload(rgba *image.RGBA, opts Options) *Texture {
	t := &Texture{
		Width:  int32(rgba.Rect.Size().X),
		Height: int32(rgba.Rect.Size().Y),
	}

	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)

	wrap := getWrapMode(opts.Wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	minFilter, magFilter := getFilterMode(opts.Filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		t.Width,
		t.Height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	if opts.Filter == "mipmap" {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

func (t *Texture) Destroy() {
	gl.DeleteTextures(1, &t.ID)
	t.ID = 0
}

func getWrapMode(wrap string) int32 {
	switch wrap {
	case "clamp":
		return gl.CLAMP_TO_EDGE
	case "mirror":
		return gl.MIRRORED_REPEAT
	default:
		return gl.REPEAT
	}
}

func getFilterMode(filter string) (minFilter, magFilter int32) {
	switch filter {
	case "mipmap":
		return gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR
	case "nearest":
		return gl.NEAREST, gl.NEAREST
	default:
		return gl.LINEAR, gl.LINEAR
	}
}
