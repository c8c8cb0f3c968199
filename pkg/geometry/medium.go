package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ConstantMedium is a homogeneous participating medium filling a closed boundary.
// Its material is expected to be an isotropic phase function.
type ConstantMedium struct {
	Boundary Shape
	Density  float64
	Phase    material.Handle
}

// NewConstantMedium creates a volume of the given density inside boundary
func NewConstantMedium(boundary Shape, density float64, phase material.Handle) *ConstantMedium {
	return &ConstantMedium{Boundary: boundary, Density: density, Phase: phase}
}

// Hit samples an exponential free-flight distance through the boundary.
// Intersection queries carry no random stream, so the distance is drawn
// from a stream seeded by a hash of the ray itself.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	if m.Density <= 0 {
		return false
	}

	var entry, exit material.HitRecord
	if !m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), &entry) {
		return false
	}
	if !m.Boundary.Hit(ray, entry.T+1e-4, math.Inf(1), &exit) {
		return false
	}

	t0 := math.Max(entry.T, tMin)
	t1 := math.Min(exit.T, tMax)
	if t0 >= t1 {
		return false
	}
	t0 = math.Max(t0, 0)

	rayLength := ray.Direction.Length()
	insideDistance := (t1 - t0) * rayLength
	u := core.NewXorShift32(hashRay(ray)).Next()
	hitDistance := -math.Log(1-u) / m.Density
	if hitDistance > insideDistance {
		return false
	}

	hit.T = t0 + hitDistance/rayLength
	hit.Point = ray.At(hit.T)
	hit.Normal = core.NewVec3(1, 0, 0) // arbitrary
	hit.FrontFace = true
	hit.UV = core.Vec2{}
	hit.Material = m.Phase
	return true
}

func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}

// hashRay folds the bits of a ray into a 32-bit seed
func hashRay(ray core.Ray) uint32 {
	components := [...]float64{
		ray.Origin.X, ray.Origin.Y, ray.Origin.Z,
		ray.Direction.X, ray.Direction.Y, ray.Direction.Z,
		ray.Time,
	}
	var h uint32
	for _, c := range components {
		bits := math.Float64bits(c)
		h = core.Tea(h^uint32(bits), uint32(bits>>32), 4)
	}
	return h
}
