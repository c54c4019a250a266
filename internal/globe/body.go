package globe

import (
	"Globe3D/internal/behaviour"
	"Globe3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	bodyRoughness    = 0.7
	bodyMetalness    = 0.0
	bumpScaleFactor  = 0.05 // Config.BumpScale 1 is a subtle relief
	wireframeScale   = 1.002
	wireframeOpacity = 0.08
)

// body is the rotating group: the textured sphere, the optional wireframe
// overlay and, as children added later, every marker.
type body struct {
	group       *behaviour.Transform
	sphere      *renderer.Model
	wireframe   *renderer.Model // nil unless Config.ShowWireframe
	placeholder *renderer.Model
	tint        mgl32.Vec3 // sphere colour when there is no colour map
}

// groupRotation applies InitialRotation X first, then Y.
func groupRotation(r Rotation) mgl32.Quat {
	return mgl32.QuatRotate(r.X, mgl32.Vec3{1, 0, 0}).Mul(mgl32.QuatRotate(r.Y, mgl32.Vec3{0, 1, 0}))
}

func newBody(cfg Config, col colors, standard, basic *renderer.Shader) *body {
	b := &body{group: behaviour.NewTransform("globe"), tint: col.globe}
	b.group.SetRotation(groupRotation(cfg.InitialRotation))

	material := renderer.NewMaterial("globe")
	material.Roughness = bodyRoughness
	material.Metallic = bodyMetalness
	material.BumpScale = cfg.BumpScale * bumpScaleFactor
	b.sphere = renderer.NewModel("globe", renderer.SphereGeometry(cfg.Radius, 64, 64), material, standard)
	b.sphere.Visible = false
	sphereNode := behaviour.NewTransform("globe-sphere")
	sphereNode.Model = b.sphere
	b.group.AddChild(sphereNode)

	if cfg.ShowWireframe {
		wire := renderer.NewMaterial("wireframe")
		wire.DiffuseColor = col.wireframe
		wire.Wireframe = true
		wire.Transparent = true
		wire.Alpha = wireframeOpacity
		b.wireframe = renderer.NewModel("wireframe",
			renderer.SphereGeometry(cfg.Radius*wireframeScale, 32, 16), wire, basic)
		b.wireframe.Visible = false
		wireNode := behaviour.NewTransform("globe-wireframe")
		wireNode.Model = b.wireframe
		b.group.AddChild(wireNode)
	}

	// Shown until the texture pair arrives, then dropped for good
	fallback := renderer.NewMaterial("placeholder")
	fallback.DiffuseColor = col.globe
	fallback.Roughness = 1
	b.placeholder = renderer.NewModel("placeholder", renderer.SphereGeometry(cfg.Radius, 32, 16), fallback, standard)

	return b
}

func (b *body) models() []*renderer.Model {
	models := []*renderer.Model{b.placeholder, b.sphere}
	if b.wireframe != nil {
		models = append(models, b.wireframe)
	}
	return models
}

// reveal swaps the placeholder for the real globe. A zero texture leaves that
// map unbound.
func (b *body) reveal(colorTexture, bumpTexture uint32) {
	if colorTexture == 0 {
		b.sphere.Material.DiffuseColor = b.tint
	}
	b.sphere.Material.TextureID = colorTexture
	b.sphere.Material.BumpTextureID = bumpTexture
	b.sphere.Visible = true
	if b.wireframe != nil {
		b.wireframe.Visible = true
	}
	b.placeholder.Visible = false
}
