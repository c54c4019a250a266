package globe

import (
	"Globe3D/internal/behaviour"
	"Globe3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	surfaceScale = 1.001 // Pin foot, just above the surface
	anchorScale  = 1.18  // Badge center

	pinRadius      = 0.003
	pinSegments    = 8
	coneRadius     = 0.015
	coneHeight     = 0.04
	hoverScale     = 1.25
	hoverRing      = 0.12 // Fraction of the badge radius
	badgeImageSize = 128  // Marker images are downscaled to this on load
)

// Pin and badge colors, idle and hovered.
var (
	lineIdle      = Color("#94a3b8", "#94a3b8")
	lineHover     = Color("#ffffff", "#ffffff")
	coneIdle      = Color("#ef4444", "#ef4444")
	coneHover     = Color("#f97316", "#f97316")
	ringColor     = Color("#ffffff", "#ffffff")
	badgeBackdrop = Color("#171717", "#171717")
)

const (
	lineIdleOpacity  = 0.6
	lineHoverOpacity = 0.9
)

// badge renders one marker: a pin line from the surface to the anchor, a cone
// at the foot and a camera-facing disc showing the marker image.
type badge struct {
	marker  Marker
	size    float32
	surface mgl32.Vec3 // Group space
	anchor  mgl32.Vec3 // Group space

	node *behaviour.Transform
	line *renderer.Model
	cone *renderer.Model
	disc *renderer.Model

	visible   bool
	hovered   bool
	world     mgl32.Vec3 // Anchor in world space as of the last update
	textureID uint32
}

func newBadge(m Marker, cfg Config, basic *renderer.Shader) *badge {
	b := &badge{
		marker:  m,
		size:    m.size(cfg.MarkerSize),
		surface: LatLngToVec3(m.Lat, m.Lng, cfg.Radius*surfaceScale),
		anchor:  LatLngToVec3(m.Lat, m.Lng, cfg.Radius*anchorScale),
		node:    behaviour.NewTransform("marker " + m.Key()),
		visible: true,
	}

	span := b.anchor.Sub(b.surface)
	height := span.Len()
	orientation := mgl32.QuatIdent()
	if height > 0 {
		orientation = mgl32.QuatBetweenVectors(mgl32.Vec3{0, 1, 0}, span.Normalize())
	}

	lineMat := renderer.NewMaterial("pin-line")
	lineMat.Transparent = true
	b.line = renderer.NewModel("pin-line", renderer.CylinderGeometry(pinRadius, pinRadius, height, pinSegments), lineMat, basic)
	lineNode := behaviour.NewTransform("pin-line")
	lineNode.Model = b.line
	lineNode.SetPosition(b.surface.Add(b.anchor).Mul(0.5))
	lineNode.SetRotation(orientation)
	b.node.AddChild(lineNode)

	coneMat := renderer.NewMaterial("pin-cone")
	b.cone = renderer.NewModel("pin-cone", renderer.ConeGeometry(coneRadius, coneHeight, pinSegments), coneMat, basic)
	coneNode := behaviour.NewTransform("pin-cone")
	coneNode.Model = b.cone
	coneNode.SetPosition(b.surface)
	coneNode.SetRotation(orientation)
	b.node.AddChild(coneNode)

	discMat := renderer.NewMaterial("badge")
	discMat.DiffuseColor = badgeBackdrop
	discMat.Side = renderer.DoubleSide
	discMat.CircleMask = true
	discMat.RingColor = ringColor
	b.disc = renderer.NewModel("badge", renderer.QuadGeometry(), discMat, basic)

	b.applyHover()
	return b
}

func (b *badge) models() []*renderer.Model {
	return []*renderer.Model{b.line, b.cone, b.disc}
}

func (b *badge) scale() float32 {
	if b.hovered {
		return hoverScale
	}
	return 1
}

// setTexture shows the marker image on the disc.
func (b *badge) setTexture(textureID uint32) {
	b.textureID = textureID
	b.disc.Material.TextureID = textureID
	b.disc.Material.DiffuseColor = mgl32.Vec3{1, 1, 1}
}

func (b *badge) setHovered(hovered bool) {
	if b.hovered == hovered {
		return
	}
	b.hovered = hovered
	b.applyHover()
}

func (b *badge) applyHover() {
	if b.hovered {
		b.line.Material.DiffuseColor = lineHover
		b.line.Material.Alpha = lineHoverOpacity
		b.cone.Material.DiffuseColor = coneHover
		b.disc.Material.RingWidth = hoverRing
	} else {
		b.line.Material.DiffuseColor = lineIdle
		b.line.Material.Alpha = lineIdleOpacity
		b.cone.Material.DiffuseColor = coneIdle
		b.disc.Material.RingWidth = 0
	}
}

// update recomputes visibility from the current camera and turns the disc
// towards it. Models are only drawn when shown is set. It reports whether the
// badge just went out of view.
func (b *badge) update(group *behaviour.Transform, camera *renderer.Camera, shown bool) (hidden bool) {
	b.world = group.TransformPoint(b.anchor)
	wasVisible := b.visible
	b.visible = IsVisible(b.world, camera.Position)

	draw := shown && b.visible
	b.line.Visible = draw
	b.cone.Visible = draw
	b.disc.Visible = draw

	if b.visible {
		s := b.size * b.scale()
		b.disc.SetPosition(b.world)
		b.disc.SetRotation(billboard(b.world, camera))
		b.disc.SetScale(s, s, s)
	}
	return wasVisible && !b.visible
}

// hit intersects ray with the badge disc, approximated by a sphere of the
// disc radius. Hidden badges never hit.
func (b *badge) hit(ray renderer.Ray) (bool, float32) {
	if !b.visible {
		return false, 0
	}
	ok, dist, _ := renderer.RayIntersectSphere(ray, b.world, b.size/2*b.scale())
	return ok, dist
}

// billboard returns the rotation that turns local +Z from pos towards the
// camera, keeping the camera's up direction where possible.
func billboard(pos mgl32.Vec3, camera *renderer.Camera) mgl32.Quat {
	z := camera.Position.Sub(pos)
	if z.Len() == 0 {
		return mgl32.QuatIdent()
	}
	z = z.Normalize()

	x := camera.Up.Cross(z)
	if x.Len() < 1e-6 {
		x = mgl32.Vec3{1, 0, 0}.Cross(z)
		if x.Len() < 1e-6 {
			x = mgl32.Vec3{0, 0, 1}.Cross(z)
		}
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(x, y, z).Mat4()).Normalize()
}
