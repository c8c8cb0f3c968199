package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Rectangle samples an axis-aligned rectangular light by area.
// The rectangle spans [A0,A1]x[B0,B1] in the plane Axis = K, where (A, B) are
// the in-plane axes returned by Axis.PlaneAxes.
type Rectangle struct {
	A0, A1 float64
	B0, B1 float64
	K      float64
	Axis   core.Axis
}

// NewRectangle creates an area-sampling distribution for an axis-aligned rectangle
func NewRectangle(a0, a1, b0, b1, k float64, axis core.Axis) *Rectangle {
	return &Rectangle{
		A0: math.Min(a0, a1), A1: math.Max(a0, a1),
		B0: math.Min(b0, b1), B1: math.Max(b0, b1),
		K:    k,
		Axis: axis,
	}
}

func (r *Rectangle) Kind() Kind {
	return KindRectangle
}

// Area returns the rectangle area
func (r *Rectangle) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// Generate picks a uniform point on the rectangle and returns the unit direction toward it
func (r *Rectangle) Generate(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	point := r.Axis.Compose(
		r.A0+sample.X*(r.A1-r.A0),
		r.B0+sample.Y*(r.B1-r.B0),
		r.K,
	)
	return point.Subtract(origin).Normalize()
}

// Value converts the uniform area density to solid angle: distance² / (cos θ_light · area).
// Directions that miss the rectangle have zero density.
func (r *Rectangle) Value(origin, direction core.Vec3) float64 {
	area := r.Area()
	if area <= 0 {
		return 0
	}

	k := int(r.Axis)
	dk := direction.Axis(k)
	if math.Abs(dk) < 1e-12 {
		return 0
	}

	t := (r.K - origin.Axis(k)) / dk
	if t <= 1e-6 {
		return 0
	}

	ai, bi := r.Axis.PlaneAxes()
	hit := origin.Add(direction.Multiply(t))
	pa, pb := hit.Axis(ai), hit.Axis(bi)
	if pa < r.A0 || pa > r.A1 || pb < r.B0 || pb > r.B1 {
		return 0
	}

	lengthSquared := direction.LengthSquared()
	distanceSquared := t * t * lengthSquared
	cosine := math.Abs(dk) / math.Sqrt(lengthSquared)
	if cosine < 1e-8 {
		return 0
	}

	return distanceSquared / (cosine * area)
}
