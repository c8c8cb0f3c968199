package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box represents an axis-aligned box made up of 6 rectangles with outward normals
type Box struct {
	Min   core.Vec3
	Max   core.Vec3
	faces List
}

// NewBox creates a box spanning the two corner points
func NewBox(p0, p1 core.Vec3, mat material.Handle) *Box {
	aabb := core.NewAABBFromPoints(p0, p1)
	lo, hi := aabb.Min, aabb.Max

	return &Box{
		Min: lo,
		Max: hi,
		faces: List{
			NewAARect(lo.X, hi.X, lo.Y, hi.Y, hi.Z, core.AxisZ, false, mat), // front
			NewAARect(lo.X, hi.X, lo.Y, hi.Y, lo.Z, core.AxisZ, true, mat),  // back
			NewAARect(lo.X, hi.X, lo.Z, hi.Z, hi.Y, core.AxisY, false, mat), // top
			NewAARect(lo.X, hi.X, lo.Z, hi.Z, lo.Y, core.AxisY, true, mat),  // bottom
			NewAARect(lo.Y, hi.Y, lo.Z, hi.Z, hi.X, core.AxisX, false, mat), // right
			NewAARect(lo.Y, hi.Y, lo.Z, hi.Z, lo.X, core.AxisX, true, mat),  // left
		},
	}
}

// Hit tests all faces and keeps the closest
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	return b.faces.Hit(ray, tMin, tMax, hit)
}

func (b *Box) BoundingBox() core.AABB {
	return core.NewAABB(b.Min, b.Max)
}
