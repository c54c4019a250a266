package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

type Material struct {
	// HOT DATA - Accessed every render call for shading calculations
	DiffuseColor  mgl32.Vec3 // Base color, linear RGB
	Alpha         float32    // Transparency (0.0 = transparent, 1.0 = opaque)
	Roughness     float32    // 0.0 = mirror, 1.0 = completely rough
	Metallic      float32    // 0.0 = dielectric, 1.0 = metallic
	TextureID     uint32     // Color map, 0 = none
	BumpTextureID uint32     // Height map, 0 = none
	BumpScale     float32    // Height map strength

	// Pipeline state
	Side        Side
	Transparent bool // Drawn after opaque models, back to front, blended
	DepthWrite  bool
	Wireframe   bool

	// Disc mask for billboards
	CircleMask bool
	RingWidth  float32
	RingColor  mgl32.Vec3

	Name string
}

// NewMaterial returns an opaque white front-sided material.
func NewMaterial(name string) *Material {
	return &Material{
		Name:         name,
		DiffuseColor: mgl32.Vec3{1, 1, 1},
		Alpha:        1.0,
		Roughness:    1.0,
		DepthWrite:   true,
	}
}

type Model struct {
	// HOT DATA - Accessed every frame in render loop
	ModelMatrix mgl32.Mat4
	Position    mgl32.Vec3
	Scale       mgl32.Vec3
	Rotation    mgl32.Quat
	Material    *Material
	Shader      *Shader
	VAO         uint32
	VBO         uint32
	EBO         uint32
	IsDirty     bool
	Visible     bool

	// MEDIUM DATA
	BoundingSphereRadius float32                // Local space, scaled by the largest Scale component
	CustomUniforms       map[string]interface{} // Shader specific uniforms

	// COLD DATA
	Name            string
	InterleavedData []float32
	Faces           []int32
}

// NewModel wraps geometry into a model at the origin with identity transform.
func NewModel(name string, geometry *Geometry, material *Material, shader *Shader) *Model {
	m := &Model{
		Name:                 name,
		Position:             mgl32.Vec3{0, 0, 0},
		Scale:                mgl32.Vec3{1, 1, 1},
		Rotation:             mgl32.QuatIdent(),
		Material:             material,
		Shader:               shader,
		Visible:              true,
		BoundingSphereRadius: geometry.BoundingRadius,
		InterleavedData:      geometry.InterleavedData,
		Faces:                geometry.Faces,
	}
	m.updateModelMatrix()
	return m
}

// SetPosition sets the position of the model
func (m *Model) SetPosition(position mgl32.Vec3) {
	m.Position = position
	m.IsDirty = true
}

func (m *Model) SetRotation(rotation mgl32.Quat) {
	m.Rotation = rotation
	m.IsDirty = true
}

func (m *Model) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.IsDirty = true
}

func (m *Model) SetUniform(name string, value interface{}) {
	if m.CustomUniforms == nil {
		m.CustomUniforms = make(map[string]interface{})
	}
	m.CustomUniforms[name] = value
}

// WorldBoundingRadius is the bounding radius after scaling.
func (m *Model) WorldBoundingRadius() float32 {
	s := m.Scale.X()
	if m.Scale.Y() > s {
		s = m.Scale.Y()
	}
	if m.Scale.Z() > s {
		s = m.Scale.Z()
	}
	return m.BoundingSphereRadius * s
}

// UpdateModelMatrix recalculates the matrix if the transform changed.
func (m *Model) UpdateModelMatrix() {
	if m.IsDirty {
		m.updateModelMatrix()
		m.IsDirty = false
	}
}

func (m *Model) updateModelMatrix() {
	// Matrices are multiplied right-to-left: T * R * S transforms vertices as: scale first, then rotate, then translate
	scaleMatrix := mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2])
	rotationMatrix := m.Rotation.Mat4()
	translationMatrix := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
}
