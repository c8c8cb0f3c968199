package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Variance returns the sample variance of the pixel luminance
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	return max(0, (ps.LuminanceSqAccum/n-mean*mean)*n/(n-1))
}

// Framebuffer accumulates samples per pixel. Samples are summed and only
// averaged when read, so the order they arrive in does not matter.
type Framebuffer struct {
	width, height int
	pixels        []PixelStats
}

// NewFramebuffer creates an empty framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]PixelStats, width*height),
	}
}

// Pixel returns the statistics of pixel (x, y)
func (fb *Framebuffer) Pixel(x, y int) *PixelStats {
	return &fb.pixels[y*fb.width+x]
}

// Bounds returns the framebuffer rectangle
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// Image resolves the averaged colors to an 8-bit image
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(fb.Pixel(x, y).GetColor()))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with gamma 2 and clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Negative channels would turn into NaN under the square root
	colorVec = colorVec.Clamp(0.0, math.Inf(1)).GammaCorrect(2.0).Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
