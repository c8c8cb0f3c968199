package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestPixelStats_Average(t *testing.T) {
	var ps PixelStats
	if !ps.GetColor().IsZero() {
		t.Error("Empty pixel should be black")
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))
	ps.AddSample(core.NewVec3(0, 0, 1))
	ps.AddSample(core.NewVec3(1, 1, 1))

	want := core.NewVec3(0.5, 0.5, 0.5)
	if got := ps.GetColor(); got != want {
		t.Errorf("GetColor() = %v, want %v", got, want)
	}
	if ps.SampleCount != 4 {
		t.Errorf("SampleCount = %d, want 4", ps.SampleCount)
	}
}

func TestPixelStats_Variance(t *testing.T) {
	var constant PixelStats
	for i := 0; i < 10; i++ {
		constant.AddSample(core.Gray(0.3))
	}
	if v := constant.Variance(); v > 1e-12 {
		t.Errorf("Constant samples should have zero variance, got %g", v)
	}

	var alternating PixelStats
	alternating.AddSample(core.Gray(0))
	alternating.AddSample(core.Gray(1))
	// Luminance of gray(1) is 1, so the unbiased variance of {0, 1} is 0.5
	if v := alternating.Variance(); math.Abs(v-0.5) > 1e-9 {
		t.Errorf("Variance() = %f, want 0.5", v)
	}
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name  string
		input core.Vec3
		want  color.RGBA
	}{
		{"black", core.Vec3{}, color.RGBA{0, 0, 0, 255}},
		{"white", core.Gray(1), color.RGBA{255, 255, 255, 255}},
		{"gamma two", core.Gray(0.25), color.RGBA{127, 127, 127, 255}},
		{"clamped above", core.NewVec3(4, 1, 0), color.RGBA{255, 255, 0, 255}},
		{"clamped below", core.NewVec3(-1, 0, 0.25), color.RGBA{0, 0, 127, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vec3ToColor(tt.input); got != tt.want {
				t.Errorf("vec3ToColor(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFramebuffer_Image(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Pixel(2, 1).AddSample(core.Gray(1))

	img := fb.Image()
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("Unexpected bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Sampled pixel = %v, want white", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Unsampled pixel = %v, want black", got)
	}
}

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		width, height, tileSize int
		wantTiles               int
	}{
		{64, 64, 32, 4},
		{65, 64, 32, 6},
		{10, 10, 0, 1},
		{1, 1, 32, 1},
	}

	for _, tt := range tests {
		tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
		if len(tiles) != tt.wantTiles {
			t.Errorf("%dx%d/%d: got %d tiles, want %d", tt.width, tt.height, tt.tileSize, len(tiles), tt.wantTiles)
		}

		// Every pixel covered exactly once
		covered := make([]int, tt.width*tt.height)
		for i, tile := range tiles {
			if tile.ID != i {
				t.Errorf("Tile %d has ID %d", i, tile.ID)
			}
			for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
				for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
					covered[y*tt.width+x]++
				}
			}
		}
		for i, count := range covered {
			if count != 1 {
				t.Fatalf("%dx%d/%d: pixel %d covered %d times", tt.width, tt.height, tt.tileSize, i, count)
			}
		}
	}
}

func TestCalculateAverageLuminance(t *testing.T) {
	// Rec. 709 weights sum to one: (0.2126 + 0.7152 + 0.0722 + 0.0) / 4 = 0.25
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	if avgLum := CalculateAverageLuminance(img); math.Abs(avgLum-0.25) > 0.0001 {
		t.Errorf("Expected average luminosity 0.25, got %f", avgLum)
	}

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Set(0, 0, color.RGBA{255, 255, 255, 255})
	if avgLum := CalculateAverageLuminance(white); math.Abs(avgLum-1) > 0.0001 {
		t.Errorf("Expected average luminosity 1, got %f", avgLum)
	}

	if avgLum := CalculateAverageLuminance(image.NewRGBA(image.Rectangle{})); avgLum != 0 {
		t.Errorf("Empty image luminance = %f, want 0", avgLum)
	}
}
