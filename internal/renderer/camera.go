package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera that always looks at Target.
type Camera struct {
	// HOT DATA - read every frame
	Position   mgl32.Vec3 // Camera position in world space
	Target     mgl32.Vec3 // Point the camera looks at
	Up         mgl32.Vec3 // Up direction vector
	Projection mgl32.Mat4 // Projection matrix

	// COLD DATA - configuration
	Fov         float32 // Vertical field of view in degrees
	Near        float32 // Near clipping plane
	Far         float32 // Far clipping plane
	AspectRatio float32 // Viewport width / height
}

type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

type Frustum struct {
	Planes [6]Plane
}

// NewCamera returns a camera with a 45° field of view looking down -Z from
// (0, 0, 10).
func NewCamera(width, height int32) *Camera {
	camera := Camera{
		Position: mgl32.Vec3{0, 0, 10},
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      45.0,
		Near:     0.1,
		Far:      1000.0,
	}
	camera.AspectRatio = aspect(width, height)
	camera.UpdateProjection()
	return &camera
}

func aspect(width, height int32) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

func (c *Camera) SetFov(fov float32) {
	c.Fov = fov
	c.UpdateProjection()
}

func (c *Camera) SetViewport(width, height int32) {
	c.AspectRatio = aspect(width, height)
	c.UpdateProjection()
}

// LookAt points the camera at target, keeping the current position.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

func (c *Camera) Front() mgl32.Vec3 {
	front := c.Target.Sub(c.Position)
	if front.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return front.Normalize()
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}

// CalculateFrustum extracts the six clip planes from the view-projection
// matrix (Gribb/Hartmann).
func (c *Camera) CalculateFrustum() Frustum {
	var frustum Frustum
	vp := c.GetViewProjection()
	row := func(i int) mgl32.Vec4 { return vp.Row(i) }

	w := row(3)
	for i, axis := range []int{0, 0, 1, 1, 2, 2} {
		r := row(axis)
		var p mgl32.Vec4
		if i%2 == 0 {
			p = w.Add(r)
		} else {
			p = w.Sub(r)
		}
		normal := p.Vec3()
		length := normal.Len()
		frustum.Planes[i] = Plane{
			Normal:   normal.Mul(1.0 / length),
			Distance: p.W() / length,
		}
	}
	return frustum
}

func (p *Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}
