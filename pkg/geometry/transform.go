package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate moves a shape by Offset
type Translate struct {
	Shape  Shape
	Offset core.Vec3
}

// NewTranslate creates a translated instance of shape
func NewTranslate(shape Shape, offset core.Vec3) *Translate {
	return &Translate{Shape: shape, Offset: offset}
}

func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	moved := core.NewRayAt(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)
	if !t.Shape.Hit(moved, tMin, tMax, hit) {
		return false
	}
	hit.Point = hit.Point.Add(t.Offset)
	return true
}

func (t *Translate) BoundingBox() core.AABB {
	box := t.Shape.BoundingBox()
	return core.NewAABB(box.Min.Add(t.Offset), box.Max.Add(t.Offset))
}

// RotateY rotates a shape about the Y axis through the origin
type RotateY struct {
	Shape    Shape
	sin, cos float64
	bbox     core.AABB
}

// NewRotateY creates an instance of shape rotated by degrees about +Y
func NewRotateY(shape Shape, degrees float64) *RotateY {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	r := &RotateY{Shape: shape, sin: sin, cos: cos}

	box := shape.BoundingBox()
	corners := make([]core.Vec3, 0, 8)
	for _, x := range []float64{box.Min.X, box.Max.X} {
		for _, y := range []float64{box.Min.Y, box.Max.Y} {
			for _, z := range []float64{box.Min.Z, box.Max.Z} {
				corners = append(corners, r.toWorld(core.NewVec3(x, y, z)))
			}
		}
	}
	r.bbox = core.NewAABBFromPoints(corners...)
	return r
}

func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(r.cos*v.X-r.sin*v.Z, v.Y, r.sin*v.X+r.cos*v.Z)
}

func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(r.cos*v.X+r.sin*v.Z, v.Y, -r.sin*v.X+r.cos*v.Z)
}

func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	rotated := core.NewRayAt(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)
	if !r.Shape.Hit(rotated, tMin, tMax, hit) {
		return false
	}

	hit.Point = r.toWorld(hit.Point)
	hit.SetFaceNormal(ray, r.toWorld(hit.OutwardNormal()))
	return true
}

func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}
