package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewCamera(t *testing.T) {
	cam := NewCamera(800, 600)

	if cam == nil {
		t.Fatal("NewCamera returned nil")
	}

	if cam.Position == (mgl32.Vec3{0, 0, 0}) {
		t.Error("Camera position should not be at origin")
	}

	if cam.Fov != 45 {
		t.Errorf("Expected fov 45, got %f", cam.Fov)
	}

	if math.Abs(float64(cam.AspectRatio)-800.0/600.0) > 1e-6 {
		t.Errorf("Expected aspect 4/3, got %f", cam.AspectRatio)
	}
}

func TestCameraZeroHeightViewport(t *testing.T) {
	cam := NewCamera(800, 0)

	if cam.AspectRatio != 1 {
		t.Errorf("Minimized window should fall back to aspect 1, got %f", cam.AspectRatio)
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 5}
	cam.LookAt(mgl32.Vec3{0, 0, 0})

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}

	// The origin sits 5 units in front of the camera
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(p.Z()+5)) > 1e-5 {
		t.Errorf("Expected origin at view z=-5, got %f", p.Z())
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewCamera(800, 600)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraSetViewport(t *testing.T) {
	cam := NewCamera(800, 600)
	before := cam.Projection

	cam.SetViewport(1920, 1080)

	if cam.Projection == before {
		t.Error("Projection should change with the aspect ratio")
	}
}

func TestCameraFront(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 7}
	cam.Target = mgl32.Vec3{0, 0, 0}

	front := cam.Front()
	if !front.ApproxEqual(mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Expected front (0,0,-1), got %v", front)
	}

	cam.Target = cam.Position
	if front := cam.Front(); !front.ApproxEqual(mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Degenerate front should default to -Z, got %v", front)
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 7}
	cam.LookAt(mgl32.Vec3{0, 0, 0})

	frustum := cam.CalculateFrustum()

	tests := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   bool
	}{
		{"globe at origin", mgl32.Vec3{0, 0, 0}, 2, true},
		{"behind camera", mgl32.Vec3{0, 0, 20}, 1, false},
		{"far off to the side", mgl32.Vec3{100, 0, 0}, 1, false},
		{"beyond far plane", mgl32.Vec3{0, 0, -2000}, 1, false},
		{"straddling the left plane", mgl32.Vec3{-4, 0, 0}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frustum.IntersectsSphere(tt.center, tt.radius); got != tt.want {
				t.Errorf("IntersectsSphere(%v, %f) = %v, want %v", tt.center, tt.radius, got, tt.want)
			}
		})
	}
}
