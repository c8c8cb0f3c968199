// Package geometry is the intersection side of a scene: shapes, instances,
// participating media and the bounding volume hierarchy over them.
package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit fills hit and returns true for the nearest intersection in [tMin, tMax].
	// hit is left untouched on a miss.
	Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool
	BoundingBox() core.AABB
}

// Intersector answers nearest-hit queries for the estimator
type Intersector interface {
	NearestHit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}

// List is an unstructured collection of shapes searched linearly
type List []Shape

func (l List) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := tMax
	for _, shape := range l {
		if shape.Hit(ray, tMin, closestSoFar, hit) {
			hitAnything = true
			closestSoFar = hit.T
		}
	}
	return hitAnything
}

func (l List) BoundingBox() core.AABB {
	if len(l) == 0 {
		return core.AABB{}
	}
	box := l[0].BoundingBox()
	for _, shape := range l[1:] {
		box = box.Union(shape.BoundingBox())
	}
	return box
}

func (l List) NearestHit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var hit material.HitRecord
	ok := l.Hit(ray, tMin, tMax, &hit)
	return hit, ok
}
