package globe

import (
	"Globe3D/internal/renderer"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const polarEpsilon = 1e-6

type spherical struct {
	radius, phi, theta float32
}

// phi is measured from +Y, theta around Y starting at +Z.
func sphericalFromVec3(v mgl32.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  math32.Atan2(v.X(), v.Z()),
		phi:    math32.Acos(mgl32.Clamp(v.Y()/r, -1, 1)),
	}
}

func (s spherical) vec3() mgl32.Vec3 {
	sinPhiRadius := math32.Sin(s.phi) * s.radius
	return mgl32.Vec3{
		sinPhiRadius * math32.Sin(s.theta),
		math32.Cos(s.phi) * s.radius,
		sinPhiRadius * math32.Cos(s.theta),
	}
}

// OrbitControls orbits a camera around Target with optional zoom and pan,
// auto rotation and damped motion.
type OrbitControls struct {
	Target          mgl32.Vec3
	EnableRotate    bool
	EnableZoom      bool
	EnablePan       bool
	MinDistance     float32
	MaxDistance     float32
	RotateSpeed     float32
	ZoomSpeed       float32
	PanSpeed        float32
	AutoRotate      bool
	AutoRotateSpeed float32 // 1 is one turn per minute
	EnableDamping   bool
	DampingFactor   float32

	camera         *renderer.Camera
	sphericalDelta spherical
	scale          float32
	panOffset      mgl32.Vec3
	dragging       bool
	viewportHeight float32
}

func NewOrbitControls(camera *renderer.Camera) *OrbitControls {
	return &OrbitControls{
		EnableRotate:   true,
		EnableZoom:     true,
		EnablePan:      true,
		MinDistance:    0,
		MaxDistance:    math32.Inf(1),
		RotateSpeed:    1,
		ZoomSpeed:      1,
		PanSpeed:       1,
		DampingFactor:  0.05,
		camera:         camera,
		scale:          1,
		viewportHeight: 1,
	}
}

// SetViewportHeight sets the height, in the same units as drag deltas, that a
// full vertical drag spans.
func (c *OrbitControls) SetViewportHeight(height float32) {
	if height > 0 {
		c.viewportHeight = height
	}
}

func (c *OrbitControls) Dragging() bool {
	return c.dragging
}

func (c *OrbitControls) BeginDrag() {
	c.dragging = true
}

func (c *OrbitControls) EndDrag() {
	c.dragging = false
}

// Rotate orbits by a pointer drag of dx, dy.
func (c *OrbitControls) Rotate(dx, dy float32) {
	if !c.EnableRotate {
		return
	}
	c.sphericalDelta.theta -= 2 * math32.Pi * dx / c.viewportHeight * c.RotateSpeed
	c.sphericalDelta.phi -= 2 * math32.Pi * dy / c.viewportHeight * c.RotateSpeed
}

// Zoom dollies by wheel steps; positive steps move closer.
func (c *OrbitControls) Zoom(steps float32) {
	if !c.EnableZoom || steps == 0 {
		return
	}
	s := math32.Pow(0.95, c.ZoomSpeed*math32.Abs(steps))
	if steps > 0 {
		c.scale *= s
	} else {
		c.scale /= s
	}
}

// Pan moves the target in the camera plane so content follows the pointer.
func (c *OrbitControls) Pan(dx, dy float32) {
	if !c.EnablePan {
		return
	}
	offset := c.camera.Position.Sub(c.Target)
	targetDistance := offset.Len() * math32.Tan(mgl32.DegToRad(c.camera.Fov)/2)

	front := c.camera.Front()
	right := front.Cross(c.camera.Up)
	if right.Len() == 0 {
		return
	}
	right = right.Normalize()
	up := right.Cross(front)

	left := right.Mul(-2 * dx * targetDistance / c.viewportHeight * c.PanSpeed)
	upward := up.Mul(2 * dy * targetDistance / c.viewportHeight * c.PanSpeed)
	c.panOffset = c.panOffset.Add(left).Add(upward)
}

func (c *OrbitControls) autoRotationAngle(dt float32) float32 {
	return 2 * math32.Pi / 60 * c.AutoRotateSpeed * dt
}

// Update advances the controls by dt seconds and writes the camera pose.
// It reports whether the camera moved.
func (c *OrbitControls) Update(dt float32) bool {
	before := c.camera.Position

	s := sphericalFromVec3(c.camera.Position.Sub(c.Target))

	if c.AutoRotate && !c.dragging {
		c.sphericalDelta.theta -= c.autoRotationAngle(dt)
	}

	if c.EnableDamping {
		s.theta += c.sphericalDelta.theta * c.DampingFactor
		s.phi += c.sphericalDelta.phi * c.DampingFactor
	} else {
		s.theta += c.sphericalDelta.theta
		s.phi += c.sphericalDelta.phi
	}

	s.phi = mgl32.Clamp(s.phi, polarEpsilon, math32.Pi-polarEpsilon)
	s.radius = mgl32.Clamp(s.radius*c.scale, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		c.Target = c.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		c.Target = c.Target.Add(c.panOffset)
	}

	c.camera.Position = c.Target.Add(s.vec3())
	c.camera.LookAt(c.Target)

	if c.EnableDamping {
		c.sphericalDelta.theta *= 1 - c.DampingFactor
		c.sphericalDelta.phi *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Mul(1 - c.DampingFactor)
	} else {
		c.sphericalDelta = spherical{}
		c.panOffset = mgl32.Vec3{}
	}
	c.scale = 1

	return c.camera.Position.Sub(before).LenSqr() > 1e-12
}
