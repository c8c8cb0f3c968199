package renderer

import (
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/xerrors"
)

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return xerrors.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes img to a PNG file at path
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = xerrors.Errorf("closing %s: %w", path, closeErr)
		}
	}()
	return EncodePNG(f, img)
}
