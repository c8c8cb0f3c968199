// Package loaders decodes image files into textures and environment maps.
package loaders

import (
	"errors"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	"golang.org/x/xerrors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrEmptyImage is returned for images without pixels
var ErrEmptyImage = errors.New("loaders: empty image")

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Format string
	Pixels []core.Vec3 // Row-major from the top row
}

// LoadImage loads a PNG, JPEG, BMP or TIFF image and converts it to a Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, xerrors.Errorf("opening image file: %w", err)
	}
	defer file.Close()

	data, err := DecodeImage(file)
	if err != nil {
		return nil, xerrors.Errorf("loading %s: %w", filename, err)
	}
	return data, nil
}

// DecodeImage decodes an image stream, detecting the format from its header
func DecodeImage(r io.Reader) (*ImageData, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, xerrors.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, xerrors.Errorf("%s image: %w", format, ErrEmptyImage)
	}

	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Format: format,
		Pixels: pixels,
	}, nil
}

// Texture wraps the image data in an image texture using filter
func (d *ImageData) Texture(filter material.Filter) *material.ImageTexture {
	if filter == material.FilterBilinear {
		return material.NewBilinearImageTexture(d.Width, d.Height, d.Pixels)
	}
	return material.NewImageTexture(d.Width, d.Height, d.Pixels)
}

// LoadTexture loads an image file straight into a texture
func LoadTexture(filename string, filter material.Filter) (*material.ImageTexture, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return data.Texture(filter), nil
}
