package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// rectThickness pads the bounding box of flat rectangles
const rectThickness = 1e-4

// AARect is an axis-aligned rectangle in the plane Axis = K spanning
// [A0,A1]x[B0,B1] over the in-plane axes of Axis. Its outward normal points
// along +Axis, or -Axis when flipped.
type AARect struct {
	A0, A1   float64
	B0, B1   float64
	K        float64
	Axis     core.Axis
	Flip     bool
	Material material.Handle
}

// NewAARect creates an axis-aligned rectangle
func NewAARect(a0, a1, b0, b1, k float64, axis core.Axis, flip bool, mat material.Handle) *AARect {
	return &AARect{
		A0: math.Min(a0, a1), A1: math.Max(a0, a1),
		B0: math.Min(b0, b1), B1: math.Max(b0, b1),
		K:        k,
		Axis:     axis,
		Flip:     flip,
		Material: mat,
	}
}

func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	k := int(r.Axis)
	dk := ray.Direction.Axis(k)

	// Parallel rays never hit
	if math.Abs(dk) < 1e-12 {
		return false
	}

	t := (r.K - ray.Origin.Axis(k)) / dk
	if t < tMin || t > tMax {
		return false
	}

	ai, bi := r.Axis.PlaneAxes()
	point := ray.At(t)
	a, b := point.Axis(ai), point.Axis(bi)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return false
	}

	hit.T = t
	hit.Point = point
	hit.UV = core.NewVec2((a-r.A0)/(r.A1-r.A0), (b-r.B0)/(r.B1-r.B0))
	hit.Material = r.Material

	outwardNormal := r.Axis.Unit()
	if r.Flip {
		outwardNormal = outwardNormal.Negate()
	}
	hit.SetFaceNormal(ray, outwardNormal)
	return true
}

func (r *AARect) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		r.Axis.Compose(r.A0, r.B0, r.K),
		r.Axis.Compose(r.A1, r.B1, r.K),
	).Expand(rectThickness)
}

// Area returns the rectangle area
func (r *AARect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}
