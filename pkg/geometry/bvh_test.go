package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MockShape for testing
type MockShape struct {
	boundingBox core.AABB
	hitT        float64 // t of the only intersection, 0 for never
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	if m.hitT == 0 || ray.Direction.X <= 0 || m.hitT < tMin || m.hitT > tMax {
		return false
	}
	hit.T = m.hitT
	return true
}

func (m MockShape) BoundingBox() core.AABB {
	return m.boundingBox
}

func unitBoxAt(x float64) core.AABB {
	return core.NewAABB(core.NewVec3(x, 0, 0), core.NewVec3(x+1, 1, 1))
}

func TestBVH_LeafThresholdBoundary(t *testing.T) {
	// Exactly leafThreshold shapes - should create single leaf
	shapes := make([]Shape, leafThreshold)
	for i := range shapes {
		shapes[i] = MockShape{boundingBox: unitBoxAt(float64(i))}
	}

	stats := NewBVH(shapes).Stats()
	if stats.TotalNodes != 1 || stats.LeafNodes != 1 {
		t.Errorf("Expected a single leaf for %d shapes, got %+v", len(shapes), stats)
	}

	// One more shape forces a split
	shapes = append(shapes, MockShape{boundingBox: unitBoxAt(leafThreshold)})
	stats = NewBVH(shapes).Stats()
	if stats.TotalNodes == 1 {
		t.Errorf("Expected split for %d shapes, but got single node", len(shapes))
	}
	if stats.LeafNodes < 2 {
		t.Errorf("Expected at least 2 leaf nodes after split, got %d", stats.LeafNodes)
	}
}

func TestBVH_EmptyAndSingleShape(t *testing.T) {
	bvh := NewBVH(nil)
	if bvh.Root != nil {
		t.Error("Expected nil root for empty BVH")
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	if _, ok := bvh.NearestHit(ray, 0.001, 1000.0); ok {
		t.Error("Expected no hit for empty BVH")
	}

	bvh = NewBVH([]Shape{MockShape{boundingBox: core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)), hitT: 1}})
	if stats := bvh.Stats(); stats.TotalNodes != 1 || stats.LeafNodes != 1 {
		t.Errorf("Expected a single leaf for one shape, got %+v", stats)
	}
}

func TestBVH_MultipleHitsInLeaf(t *testing.T) {
	shapes := []Shape{
		MockShape{boundingBox: core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)), hitT: 2},
		MockShape{boundingBox: core.NewAABB(core.NewVec3(0.5, 0, 0), core.NewVec3(1.5, 1, 1)), hitT: 1},
		MockShape{boundingBox: core.NewAABB(core.NewVec3(1.0, 0, 0), core.NewVec3(2.0, 1, 1)), hitT: 3},
	}

	ray := core.NewRay(core.NewVec3(-1, 0.5, 0.5), core.NewVec3(1, 0, 0))
	hit, ok := NewBVH(shapes).NearestHit(ray, 0.001, 1000.0)
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected closest hit at t=1.0, got t=%f", hit.T)
	}
}

func TestBVH_RayHitsBoundingBoxButMissesShapes(t *testing.T) {
	// Shape occupies only a small part of its bounding box
	shape := MockShape{boundingBox: core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 2))}

	ray := core.NewRay(core.NewVec3(-1, 1, 1), core.NewVec3(1, 0, 0))
	if _, ok := NewBVH([]Shape{shape}).NearestHit(ray, 0.001, 1000.0); ok {
		t.Error("Expected miss when ray hits bounding box but misses shape")
	}
}

func TestBVH_StatsCollection(t *testing.T) {
	shapes := make([]Shape, 20)
	for i := range shapes {
		shapes[i] = MockShape{boundingBox: unitBoxAt(float64(i))}
	}

	stats := NewBVH(shapes).Stats()
	if stats.TotalShapes != 20 {
		t.Errorf("Expected 20 total shapes, got %d", stats.TotalShapes)
	}
	if stats.LeafNodes == 0 {
		t.Error("Expected at least one leaf node")
	}
	if stats.TotalNodes < stats.LeafNodes {
		t.Error("Total nodes should be >= leaf nodes")
	}
	// For 20 shapes with leaf threshold 8, we should have multiple levels
	if stats.MaxDepth == 0 {
		t.Error("Expected max depth > 0 for 20 shapes")
	}
}

func TestBVH_IdenticalBoundingBoxes(t *testing.T) {
	same := core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	shapes := make([]Shape, 12)
	for i := range shapes {
		shapes[i] = MockShape{boundingBox: same, hitT: float64(len(shapes) - i)}
	}

	bvh := NewBVH(shapes)
	ray := core.NewRay(core.NewVec3(-1, 0.5, 0.5), core.NewVec3(1, 0, 0))
	hit, ok := bvh.NearestHit(ray, 0.001, 1000.0)
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected closest hit at t=1.0, got t=%f", hit.T)
	}
	if stats := bvh.Stats(); stats.TotalShapes != len(shapes) {
		t.Errorf("Expected every shape kept despite a degenerate split, got %+v", stats)
	}
}

func TestBVH_MatchesLinearSearch(t *testing.T) {
	sampler := core.NewXorShift32(99)
	randomIn := func(lo, hi float64) float64 { return lo + (hi-lo)*sampler.Get1D() }

	var shapes List
	for i := 0; i < 200; i++ {
		center := core.NewVec3(randomIn(-10, 10), randomIn(-10, 10), randomIn(-10, 10))
		switch i % 3 {
		case 0:
			shapes = append(shapes, NewSphere(center, randomIn(0.1, 1), material.Handle(i)))
		case 1:
			shapes = append(shapes, NewTranslate(NewBox(core.Vec3{}, core.NewVec3(1, 1, 1), material.Handle(i)), center))
		default:
			shapes = append(shapes, NewAARect(center.X, center.X+1, center.Y, center.Y+1, center.Z, core.AxisZ, false, material.Handle(i)))
		}
	}

	bvh := NewBVH(shapes)
	for i := 0; i < 500; i++ {
		origin := core.NewVec3(randomIn(-15, 15), randomIn(-15, 15), randomIn(-15, 15))
		direction := core.SampleOnUnitSphere(sampler.Get2D())
		ray := core.NewRay(origin, direction)

		want, wantOK := shapes.NearestHit(ray, 0.001, math.Inf(1))
		got, gotOK := bvh.NearestHit(ray, 0.001, math.Inf(1))
		if wantOK != gotOK {
			t.Fatalf("ray %d: BVH hit=%v, linear hit=%v", i, gotOK, wantOK)
		}
		if wantOK && (math.Abs(want.T-got.T) > 1e-9 || want.Material != got.Material) {
			t.Errorf("ray %d: BVH hit t=%f %v, linear hit t=%f %v", i, got.T, got.Material, want.T, want.Material)
		}
	}
}
