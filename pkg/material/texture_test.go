package material

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-pathtracer/pkg/core"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

var (
	white = core.NewVec3(1, 1, 1)
	black = core.NewVec3(0, 0, 0)
)

// checkerImage is a 2x2 image:
//
//	white black
//	black white
func checkerImage() []core.Vec3 {
	return []core.Vec3{
		white, black, // Row 0 (top in image coords)
		black, white, // Row 1 (bottom in image coords)
	}
}

func TestImageTexture_Nearest(t *testing.T) {
	texture := NewImageTexture(2, 2, checkerImage())

	tests := []struct {
		name string
		uv   core.Vec2
		want core.Vec3
	}{
		{"bottom left", core.NewVec2(0.1, 0.1), black},
		{"bottom right", core.NewVec2(0.9, 0.1), white},
		{"top left", core.NewVec2(0.1, 0.9), white},
		{"top right", core.NewVec2(0.9, 0.9), black},
		{"u=1 edge stays in bounds", core.NewVec2(1, 0.9), black},
		{"v=0 edge stays in bounds", core.NewVec2(0.1, 0), black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, texture.Evaluate(tt.uv, core.Vec3{})); diff != "" {
				t.Errorf("Evaluate(%v) mismatch (-want +got):\n%s", tt.uv, diff)
			}
		})
	}
}

func TestImageTexture_ClampsOutOfRange(t *testing.T) {
	texture := NewImageTexture(2, 2, checkerImage())

	tests := []struct {
		uv   core.Vec2
		want core.Vec3
	}{
		{core.NewVec2(1.5, 0.9), black},   // clamps to top right, a wrap would give white
		{core.NewVec2(-0.5, 0.9), white},  // clamps to top left
		{core.NewVec2(0.1, -3), black},    // clamps to bottom left
		{core.NewVec2(2.3, 3.7), black},   // clamps to top right
		{core.NewVec2(-1, -1), black},     // clamps to bottom left
		{core.NewVec2(0.9, 1.25), black},  // clamps to top right
		{core.NewVec2(0.1, 1.75), white},  // clamps to top left
		{core.NewVec2(1.01, 0.01), white}, // clamps to bottom right
	}

	for _, tt := range tests {
		if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.want {
			t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.want, got)
		}
	}
}

func TestImageTexture_Bilinear(t *testing.T) {
	texture := NewBilinearImageTexture(2, 2, checkerImage())

	// Corners reproduce pixels exactly, the center averages all four
	if diff := cmp.Diff(white, texture.Evaluate(core.NewVec2(0, 1), core.Vec3{}), approx); diff != "" {
		t.Errorf("Top left corner mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(core.Gray(0.5), texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}), approx); diff != "" {
		t.Errorf("Center mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(core.Gray(0.5), texture.Evaluate(core.NewVec2(0.5, 1), core.Vec3{}), approx); diff != "" {
		t.Errorf("Top edge midpoint mismatch (-want +got):\n%s", diff)
	}
}

func TestImageTexture_Empty(t *testing.T) {
	tests := []*ImageTexture{
		NewImageTexture(0, 0, nil),
		NewImageTexture(2, 2, []core.Vec3{white}),
	}
	for _, texture := range tests {
		if got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); !got.IsZero() {
			t.Errorf("Expected black for an unusable image, got %v", got)
		}
	}
}

func TestChecker(t *testing.T) {
	checker := NewSolidChecker(white, black)

	tests := []struct {
		point core.Vec3
		want  core.Vec3
	}{
		{core.NewVec3(0.1, 0.1, 0.1), black},
		{core.NewVec3(-0.1, 0.1, 0.1), white},
		{core.NewVec3(-0.1, -0.1, 0.1), black},
		{core.NewVec3(0.1, 0.1, -0.1), white},
	}
	for _, tt := range tests {
		if got := checker.Evaluate(core.Vec2{}, tt.point); got != tt.want {
			t.Errorf("Checker at %v = %v, want %v", tt.point, got, tt.want)
		}
	}
}

func TestNoiseTexture_RangeAndDeterminism(t *testing.T) {
	axes := []NoiseAxis{NoiseAxisX, NoiseAxisY, NoiseAxisZ, NoiseAxisNorm}
	sampler := core.NewXorShift32(12)

	for _, axis := range axes {
		a := NewNoiseTexture(4, axis)
		b := NewNoiseTexture(4, axis)

		for i := 0; i < 500; i++ {
			point := sampler.Get3D().Multiply(20).Subtract(core.NewVec3(10, 10, 10))
			got := a.Evaluate(core.Vec2{}, point)
			if got.X < 0 || got.X > 1 || got.X != got.Y || got.Y != got.Z {
				t.Fatalf("Noise at %v = %v, expected grey in [0,1]", point, got)
			}
			if other := b.Evaluate(core.Vec2{}, point); other != got {
				t.Fatalf("Noise is not deterministic: %v vs %v", got, other)
			}
		}
	}
}

func TestPerlinTurbulence_NonNegative(t *testing.T) {
	texture := NewNoiseTexture(1, NoiseAxisZ)
	sampler := core.NewXorShift32(2)
	varied := false
	first := texture.noise.turbulence(core.NewVec3(0.5, 0.5, 0.5), turbulenceDepth)

	for i := 0; i < 1000; i++ {
		p := sampler.Get3D().Multiply(8)
		turb := texture.noise.turbulence(p, turbulenceDepth)
		if turb < 0 {
			t.Fatalf("Turbulence must be non-negative, got %f", turb)
		}
		if turb != first {
			varied = true
		}
	}
	if !varied {
		t.Error("Turbulence is constant")
	}
}
