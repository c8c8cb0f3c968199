package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape. A moving sphere travels linearly from
// Center to Center1 over ray times [Time0, Time1]. A negative radius flips
// the normals inward, which makes hollow glass shells.
type Sphere struct {
	Center   core.Vec3
	Center1  core.Vec3
	Time0    float64
	Time1    float64
	Radius   float64
	Material material.Handle
	moving   bool
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Handle) *Sphere {
	return &Sphere{
		Center:   center,
		Center1:  center,
		Radius:   radius,
		Material: mat,
	}
}

// NewMovingSphere creates a sphere whose center moves between two positions over a time interval
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, mat material.Handle) *Sphere {
	return &Sphere{
		Center:   center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: mat,
		moving:   true,
	}
}

// CenterAt returns the center at the given ray time
func (s *Sphere) CenterAt(time float64) core.Vec3 {
	if !s.moving || s.Time1 == s.Time0 {
		return s.Center
	}
	t := (time - s.Time0) / (s.Time1 - s.Time0)
	return core.Lerp(s.Center, s.Center1, t)
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	center := s.CenterAt(ray.Time)
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.LengthSquared()
	if a == 0 {
		return false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return false
		}
	}

	hit.T = root
	hit.Point = ray.At(root)
	hit.Material = s.Material

	outwardNormal := hit.Point.Subtract(center).Multiply(1.0 / s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.UV = sphereUV(outwardNormal)
	return true
}

// sphereUV maps a point on the unit sphere to longitude u and latitude v, both in [0,1]
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the axis-aligned bounding box for this sphere, covering its whole motion
func (s *Sphere) BoundingBox() core.AABB {
	r := math.Abs(s.Radius)
	radius := core.NewVec3(r, r, r)
	box := core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
	if s.moving {
		box = box.Union(core.NewAABB(s.Center1.Subtract(radius), s.Center1.Add(radius)))
	}
	return box
}
