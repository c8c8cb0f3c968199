package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sphere samples a spherical light through the cone it subtends from the origin.
// This is the solid-angle form of the area density distance²/(cos θ·area):
// it covers the same visible directions with lower variance than picking a
// uniform point on the surface. From inside the sphere every direction hits
// it and sampling is uniform.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a distribution toward a spherical light
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: math.Abs(radius)}
}

func (s *Sphere) Kind() Kind {
	return KindSphere
}

// cosThetaMax returns the cosine of the subtended cone half-angle, or false
// when origin is inside (or on) the sphere
func (s *Sphere) cosThetaMax(origin core.Vec3) (float64, bool) {
	distanceSquared := s.Center.Subtract(origin).LengthSquared()
	radiusSquared := s.Radius * s.Radius
	if distanceSquared <= radiusSquared {
		return 0, false
	}
	return math.Sqrt(math.Max(0, 1-radiusSquared/distanceSquared)), true
}

func (s *Sphere) Generate(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	cosMax, outside := s.cosThetaMax(origin)
	if !outside {
		return core.SampleOnUnitSphere(sampler.Get2D())
	}

	sample := sampler.Get2D()
	z := 1 + sample.Y*(cosMax-1)
	phi := 2 * math.Pi * sample.X
	sinTheta := math.Sqrt(math.Max(0, 1-z*z))
	local := core.NewVec3(math.Cos(phi)*sinTheta, math.Sin(phi)*sinTheta, z)

	return core.NewONB(s.Center.Subtract(origin)).Local(local).Normalize()
}

// Value returns 1/solid-angle of the subtended cone for directions that hit the sphere
func (s *Sphere) Value(origin, direction core.Vec3) float64 {
	if s.Radius == 0 || direction.LengthSquared() == 0 {
		return 0
	}

	cosMax, outside := s.cosThetaMax(origin)
	if !outside {
		return 1.0 / (4.0 * math.Pi)
	}

	// Ray/sphere discriminant test; the nearest root must be in front of origin
	d := direction.Normalize()
	oc := origin.Subtract(s.Center)
	halfB := oc.Dot(d)
	c := oc.LengthSquared() - s.Radius*s.Radius
	discriminant := halfB*halfB - c
	if discriminant < 0 || -halfB-math.Sqrt(discriminant) <= 0 {
		return 0
	}

	solidAngle := 2 * math.Pi * (1 - cosMax)
	if solidAngle <= 0 {
		return 0
	}
	return 1.0 / solidAngle
}
