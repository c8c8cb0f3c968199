package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter; 0 is a pinhole
	FocusDistance float64   // Distance to the focal plane; 0 focuses on LookAt
	Time0, Time1  float64   // Shutter interval; rays get a uniform time inside it
}

// Camera generates primary rays through a thin lens
type Camera struct {
	config          CameraConfig
	height          int
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Camera coordinate system
	lensRadius      float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1
	}
	if config.Up.IsZero() {
		config.Up = core.NewVec3(0, 1, 0)
	}

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		config:          config,
		height:          max(1, int(math.Round(float64(config.Width)/config.AspectRatio))),
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a jittered ray through pixel (i, j), where j = 0 is the top row
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	s := (float64(i) + jitter.X) / float64(c.config.Width)
	t := 1.0 - (float64(j)+jitter.Y)/float64(c.height)
	return c.rayAt(s, t, sampler)
}

// rayAt casts a ray through viewport coordinates (s, t) in [0,1]², t = 0 at the bottom
func (c *Camera) rayAt(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		lens := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(lens.X)).Add(c.v.Multiply(lens.Y))
	}

	target := c.lowerLeftCorner.Add(c.horizontal.Multiply(s)).Add(c.vertical.Multiply(t))

	time := c.config.Time0
	if c.config.Time1 > c.config.Time0 {
		time += sampler.Get1D() * (c.config.Time1 - c.config.Time0)
	}
	return core.NewRayAt(origin, target.Subtract(origin), time)
}

// GetCameraForward returns the camera's forward direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// Height returns the image height implied by width and aspect ratio
func (c *Camera) Height() int {
	return c.height
}
