package behaviour

import (
	"math"
	"testing"

	"Globe3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// vecNear compares component-wise with an absolute tolerance, so float noise
// around an exact zero still matches.
func vecNear(a, b mgl32.Vec3, delta float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > delta || d < -delta {
			return false
		}
	}
	return true
}

func TestNewTransform(t *testing.T) {
	transform := NewTransform("group")

	if transform.Name != "group" {
		t.Errorf("Expected name 'group', got '%s'", transform.Name)
	}

	if transform.Position != (mgl32.Vec3{0, 0, 0}) {
		t.Errorf("Expected position (0,0,0), got %v", transform.Position)
	}

	if transform.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Expected scale (1,1,1), got %v", transform.Scale)
	}
}

func TestTransformTranslate(t *testing.T) {
	transform := NewTransform("t")
	transform.SetPosition(mgl32.Vec3{5, 5, 5})

	transform.Translate(mgl32.Vec3{1, 2, 3})

	expected := mgl32.Vec3{6, 7, 8}
	if transform.Position != expected {
		t.Errorf("Expected position %v, got %v", expected, transform.Position)
	}
}

func TestTransformDirections(t *testing.T) {
	transform := NewTransform("t")

	if !vecNear(transform.Forward(), mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Expected forward (0,0,-1), got %v", transform.Forward())
	}

	transform.Rotate(mgl32.Vec3{0, 1, 0}, float32(math.Pi/2))

	if !vecNear(transform.Forward(), mgl32.Vec3{-1, 0, 0}, 1e-5) {
		t.Errorf("Expected forward (-1,0,0) after yaw, got %v", transform.Forward())
	}
	if !vecNear(transform.Up(), mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Errorf("Yaw should keep up, got %v", transform.Up())
	}
}

func TestTransformHierarchy(t *testing.T) {
	group := NewTransform("group")
	child := NewTransform("child")
	group.AddChild(child)
	child.SetPosition(mgl32.Vec3{2, 0, 0})

	group.Rotate(mgl32.Vec3{0, 1, 0}, float32(math.Pi/2))

	// +X rotated a quarter turn about +Y lands on -Z
	if got := child.WorldPosition(); !vecNear(got, mgl32.Vec3{0, 0, -2}, 1e-5) {
		t.Errorf("Expected world position (0,0,-2), got %v", got)
	}

	group.SetScale(mgl32.Vec3{2, 2, 2})
	if got := child.WorldPosition(); !vecNear(got, mgl32.Vec3{0, 0, -4}, 1e-5) {
		t.Errorf("Expected scaled world position (0,0,-4), got %v", got)
	}
	if got := child.WorldScale(); !vecNear(got, mgl32.Vec3{2, 2, 2}, 1e-5) {
		t.Errorf("Expected inherited scale, got %v", got)
	}
}

func TestTransformReparent(t *testing.T) {
	a := NewTransform("a")
	b := NewTransform("b")
	child := NewTransform("child")

	a.AddChild(child)
	b.AddChild(child)

	if len(a.Children) != 0 {
		t.Errorf("Old parent should lose the child, has %d", len(a.Children))
	}
	if child.Parent != b || len(b.Children) != 1 {
		t.Error("Child should belong to the new parent")
	}

	b.RemoveChild(child)
	if child.Parent != nil {
		t.Error("Removed child should have no parent")
	}
}

func TestTransformSync(t *testing.T) {
	group := NewTransform("group")
	group.Rotate(mgl32.Vec3{0, 1, 0}, float32(math.Pi))

	model := renderer.NewModel("pin", renderer.QuadGeometry(), renderer.NewMaterial("pin"), nil)
	node := NewTransform("pin")
	node.Model = model
	node.SetPosition(mgl32.Vec3{1, 0, 0})
	node.SetScale(mgl32.Vec3{1, 3, 1})
	group.AddChild(node)

	group.Sync()

	if !vecNear(model.Position, mgl32.Vec3{-1, 0, 0}, 1e-5) {
		t.Errorf("Expected model at (-1,0,0), got %v", model.Position)
	}
	if !vecNear(model.Scale, mgl32.Vec3{1, 3, 1}, 1e-5) {
		t.Errorf("Expected model scale (1,3,1), got %v", model.Scale)
	}
	if !model.IsDirty {
		t.Error("Sync should mark the model dirty")
	}

	model.UpdateModelMatrix()
	if got := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, model.ModelMatrix); !vecNear(got, mgl32.Vec3{-1, 0, 0}, 1e-5) {
		t.Errorf("Model matrix should place the origin at (-1,0,0), got %v", got)
	}
}
