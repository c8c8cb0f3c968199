package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Filter selects how an image texture reconstructs between pixels
type Filter int

const (
	FilterNearest Filter = iota
	FilterBilinear
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major from the top row: Pixels[y*Width + x]
	Filter Filter
}

// NewImageTexture creates a new nearest-neighbor image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewBilinearImageTexture creates an image texture with bilinear filtering
func NewBilinearImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	t := NewImageTexture(width, height, pixels)
	t.Filter = FilterBilinear
	return t
}

// Evaluate samples the texture at given UV coordinates.
// UV outside [0,1] is clamped to the border.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return core.Vec3{}
	}

	u := clamp01(uv.X)
	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	v := 1.0 - clamp01(uv.Y)

	if t.Filter == FilterBilinear {
		return t.bilinear(u, v)
	}

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.pixel(x, y)
}

func (t *ImageTexture) bilinear(u, v float64) core.Vec3 {
	fx := u * float64(t.Width-1)
	fy := v * float64(t.Height-1)
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	x1, y1 := min(x0+1, t.Width-1), min(y0+1, t.Height-1)
	tx, ty := fx-float64(x0), fy-float64(y0)

	top := core.Lerp(t.pixel(x0, y0), t.pixel(x1, y0), tx)
	bottom := core.Lerp(t.pixel(x0, y1), t.pixel(x1, y1), tx)
	return core.Lerp(top, bottom, ty)
}

func (t *ImageTexture) pixel(x, y int) core.Vec3 {
	return t.Pixels[y*t.Width+x]
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}
