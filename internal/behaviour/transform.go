package behaviour

import (
	"Globe3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a node in a scene hierarchy. Children inherit the parent's
// world transform; Sync pushes the resulting world transforms into attached
// models.
type Transform struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Parent   *Transform
	Children []*Transform
	Model    *renderer.Model // Optional, receives the world transform on Sync
}

func NewTransform(name string) *Transform {
	return &Transform{
		Name:     name,
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// AddChild reparents child under t.
func (t *Transform) AddChild(child *Transform) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = t
	t.Children = append(t.Children, child)
}

func (t *Transform) RemoveChild(child *Transform) {
	for i, c := range t.Children {
		if c == child {
			t.Children = append(t.Children[:i], t.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

func (t *Transform) Translate(delta mgl32.Vec3) {
	t.Position = t.Position.Add(delta)
}

func (t *Transform) Rotate(axis mgl32.Vec3, angle float32) {
	rotation := mgl32.QuatRotate(angle, axis)
	t.Rotation = t.Rotation.Mul(rotation)
}

func (t *Transform) SetPosition(pos mgl32.Vec3) {
	t.Position = pos
}

func (t *Transform) SetRotation(rot mgl32.Quat) {
	t.Rotation = rot
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
}

func (t *Transform) Forward() mgl32.Vec3 {
	return t.WorldRotation().Rotate(mgl32.Vec3{0, 0, -1})
}

func (t *Transform) Up() mgl32.Vec3 {
	return t.WorldRotation().Rotate(mgl32.Vec3{0, 1, 0})
}

func (t *Transform) Right() mgl32.Vec3 {
	return t.WorldRotation().Rotate(mgl32.Vec3{1, 0, 0})
}

// LocalMatrix is T * R * S.
func (t *Transform) LocalMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

func (t *Transform) WorldMatrix() mgl32.Mat4 {
	if t.Parent == nil {
		return t.LocalMatrix()
	}
	return t.Parent.WorldMatrix().Mul4(t.LocalMatrix())
}

func (t *Transform) WorldRotation() mgl32.Quat {
	if t.Parent == nil {
		return t.Rotation
	}
	return t.Parent.WorldRotation().Mul(t.Rotation)
}

// WorldScale assumes no shear, which holds as long as non-uniform scales
// only appear on leaves.
func (t *Transform) WorldScale() mgl32.Vec3 {
	if t.Parent == nil {
		return t.Scale
	}
	ps := t.Parent.WorldScale()
	return mgl32.Vec3{ps[0] * t.Scale[0], ps[1] * t.Scale[1], ps[2] * t.Scale[2]}
}

func (t *Transform) WorldPosition() mgl32.Vec3 {
	return t.TransformPoint(mgl32.Vec3{0, 0, 0})
}

// TransformPoint maps a point from t's local space to world space.
func (t *Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, t.WorldMatrix())
}

// Sync writes world transforms into the models of t and all descendants.
func (t *Transform) Sync() {
	if t.Model != nil {
		t.Model.SetPosition(t.WorldPosition())
		t.Model.SetRotation(t.WorldRotation())
		s := t.WorldScale()
		t.Model.SetScale(s[0], s[1], s[2])
	}
	for _, c := range t.Children {
		c.Sync()
	}
}
