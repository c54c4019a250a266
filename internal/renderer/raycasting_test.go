package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRayIntersectSphere(t *testing.T) {
	ray := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}

	hit, dist, point := RayIntersectSphere(ray, mgl32.Vec3{0, 0, 0}, 2)
	if !hit {
		t.Fatal("Expected the ray to hit the sphere")
	}
	if math.Abs(float64(dist-8)) > 1e-5 {
		t.Errorf("Expected distance 8, got %f", dist)
	}
	if !point.ApproxEqual(mgl32.Vec3{0, 0, 2}) {
		t.Errorf("Expected hit at (0,0,2), got %v", point)
	}
}

func TestRayMissesSphere(t *testing.T) {
	ray := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}

	if hit, _, _ := RayIntersectSphere(ray, mgl32.Vec3{5, 0, 0}, 1); hit {
		t.Error("Ray should pass beside the sphere")
	}
}

func TestRayIgnoresSphereBehindOrigin(t *testing.T) {
	ray := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, 1}}

	if hit, _, _ := RayIntersectSphere(ray, mgl32.Vec3{0, 0, 0}, 2); hit {
		t.Error("Sphere behind the ray origin should not be hit")
	}
}

func TestRayFromInsideSphere(t *testing.T) {
	ray := Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}}

	hit, dist, _ := RayIntersectSphere(ray, mgl32.Vec3{0, 0, 0}, 3)
	if !hit {
		t.Fatal("Ray starting inside should hit the far side")
	}
	if math.Abs(float64(dist-3)) > 1e-5 {
		t.Errorf("Expected distance 3, got %f", dist)
	}
}

func TestScreenToRayCenter(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 7}
	cam.LookAt(mgl32.Vec3{0, 0, 0})

	ray := ScreenToRay(cam, 400, 300, 800, 600)

	if !ray.Origin.ApproxEqual(cam.Position) {
		t.Errorf("Ray should start at the camera, got %v", ray.Origin)
	}
	if !ray.Direction.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-4) {
		t.Errorf("Center ray should point forward, got %v", ray.Direction)
	}
}

func TestScreenToRayCorners(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 7}
	cam.LookAt(mgl32.Vec3{0, 0, 0})

	topLeft := ScreenToRay(cam, 0, 0, 800, 600)
	if topLeft.Direction.X() >= 0 || topLeft.Direction.Y() <= 0 {
		t.Errorf("Top-left ray should point left and up, got %v", topLeft.Direction)
	}

	// The horizontal half-angle is wider than the vertical one on a 4:3 viewport
	right := ScreenToRay(cam, 800, 300, 800, 600)
	bottom := ScreenToRay(cam, 400, 600, 800, 600)
	if right.Direction.X() <= -bottom.Direction.Y() {
		t.Errorf("Expected wider horizontal spread, right=%v bottom=%v", right.Direction, bottom.Direction)
	}
}
