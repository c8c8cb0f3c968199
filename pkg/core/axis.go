package core

// Axis names a coordinate axis. For axis-aligned rectangles it is the plane normal.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "invalid"
}

// PlaneAxes returns the two in-plane axes of a rectangle whose normal is a.
// X: (y, z), Y: (x, z), Z: (x, y).
func (a Axis) PlaneAxes() (int, int) {
	switch a {
	case AxisX:
		return 1, 2
	case AxisY:
		return 0, 2
	default:
		return 0, 1
	}
}

// Unit returns the unit vector along a
func (a Axis) Unit() Vec3 {
	switch a {
	case AxisX:
		return NewVec3(1, 0, 0)
	case AxisY:
		return NewVec3(0, 1, 0)
	default:
		return NewVec3(0, 0, 1)
	}
}

// Compose builds a point from its normal-axis coordinate k and in-plane
// coordinates (a, b) as ordered by PlaneAxes.
func (a Axis) Compose(pa, pb, k float64) Vec3 {
	switch a {
	case AxisX:
		return NewVec3(k, pa, pb)
	case AxisY:
		return NewVec3(pa, k, pb)
	default:
		return NewVec3(pa, pb, k)
	}
}
