package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials.
// Results are not clamped and may exceed 1 for emissive use.
type Texture interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor is a constant texture
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates between two textures in a 3D pattern
type Checker struct {
	Odd  Texture
	Even Texture
}

// NewChecker creates a checker of two child textures
func NewChecker(odd, even Texture) *Checker {
	return &Checker{Odd: odd, Even: even}
}

// NewSolidChecker creates a checker of two constant colors
func NewSolidChecker(odd, even core.Vec3) *Checker {
	return NewChecker(NewSolidColor(odd), NewSolidColor(even))
}

// Evaluate picks Odd where sin(10x)·sin(10y)·sin(10z) is negative
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sines := math.Sin(10*point.X) * math.Sin(10*point.Y) * math.Sin(10*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}

// evaluateOr evaluates t, or returns fallback if t is nil
func evaluateOr(t Texture, hit *HitRecord, fallback core.Vec3) core.Vec3 {
	if t == nil {
		return fallback
	}
	return t.Evaluate(hit.UV, hit.Point)
}
