package globe

import (
	"testing"

	"Globe3D/internal/behaviour"
	"Globe3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeGeometry(t *testing.T) {
	cfg := Defaults()
	b := newBadge(Marker{Lat: 20, Lng: 30, Src: "a.png"}, cfg, renderer.NewBasicShader())

	assert.InDelta(t, cfg.Radius*surfaceScale, b.surface.Len(), 1e-4)
	assert.InDelta(t, cfg.Radius*anchorScale, b.anchor.Len(), 1e-4)
	assert.Equal(t, cfg.MarkerSize, b.size)
	assertVec(t, b.surface.Normalize(), b.anchor.Normalize(), 1e-5)

	require.Len(t, b.node.Children, 2)
	line, cone := b.node.Children[0], b.node.Children[1]
	assertVec(t, b.surface.Add(b.anchor).Mul(0.5), line.Position, 1e-5)
	assertVec(t, b.surface, cone.Position, 1e-5)

	// Both point their local +Y from the surface out to the badge.
	dir := b.anchor.Sub(b.surface).Normalize()
	assertVec(t, dir, line.Rotation.Rotate(mgl32.Vec3{0, 1, 0}), 1e-4)
	assertVec(t, dir, cone.Rotation.Rotate(mgl32.Vec3{0, 1, 0}), 1e-4)

	assert.Equal(t, lineIdle, b.line.Material.DiffuseColor)
	assert.Equal(t, float32(lineIdleOpacity), b.line.Material.Alpha)
	assert.Equal(t, coneIdle, b.cone.Material.DiffuseColor)
	assert.True(t, b.disc.Material.CircleMask)
	assert.Zero(t, b.disc.Material.RingWidth)
}

func TestBadgeSizeOverride(t *testing.T) {
	b := newBadge(Marker{Lat: 0, Lng: 0, Size: 0.2}, Defaults(), renderer.NewBasicShader())
	assert.Equal(t, float32(0.2), b.size)
}

func TestBadgeUpdate(t *testing.T) {
	b := newBadge(facingMarker, Defaults(), renderer.NewBasicShader())
	group := behaviour.NewTransform("globe")
	group.AddChild(b.node)
	camera := renderer.NewCamera(800, 600)
	camera.Position = mgl32.Vec3{0, 0, 7}

	assert.False(t, b.update(group, camera, false))
	assert.True(t, b.visible)
	assert.False(t, b.disc.Visible, "not drawn before the globe is shown")

	assert.False(t, b.update(group, camera, true))
	assert.True(t, b.disc.Visible)
	assert.True(t, b.line.Visible)
	assertVec(t, b.world, b.disc.Position, 1e-6)
	assert.InDelta(t, b.size, b.disc.Scale.X(), 1e-6)

	b.setHovered(true)
	b.update(group, camera, true)
	assert.InDelta(t, b.size*hoverScale, b.disc.Scale.X(), 1e-6)
	assert.Equal(t, float32(hoverRing), b.disc.Material.RingWidth)

	camera.Position = mgl32.Vec3{0, 0, -7}
	assert.True(t, b.update(group, camera, true), "reports the transition to hidden")
	assert.False(t, b.disc.Visible)
	assert.False(t, b.cone.Visible)
	assert.False(t, b.update(group, camera, true), "only once")
}

func TestBadgeHit(t *testing.T) {
	b := newBadge(facingMarker, Defaults(), renderer.NewBasicShader())
	group := behaviour.NewTransform("globe")
	camera := renderer.NewCamera(800, 600)
	camera.Position = mgl32.Vec3{0, 0, 7}
	b.update(group, camera, true)

	ray := renderer.Ray{Origin: camera.Position, Direction: mgl32.Vec3{0, 0, -1}}
	ok, dist := b.hit(ray)
	require.True(t, ok)
	assert.InDelta(t, 7-2*anchorScale-b.size/2, dist, 1e-4)

	miss := renderer.Ray{Origin: camera.Position, Direction: mgl32.Vec3{0.1, 0, -1}.Normalize()}
	ok, _ = b.hit(miss)
	assert.False(t, ok)

	b.visible = false
	ok, _ = b.hit(ray)
	assert.False(t, ok)
}

func TestBadgeSetTexture(t *testing.T) {
	b := newBadge(facingMarker, Defaults(), renderer.NewBasicShader())
	assert.Equal(t, badgeBackdrop, b.disc.Material.DiffuseColor)

	b.setTexture(7)
	assert.Equal(t, uint32(7), b.disc.Material.TextureID)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, b.disc.Material.DiffuseColor)
}

func TestBillboardFacesCamera(t *testing.T) {
	camera := renderer.NewCamera(800, 600)
	positions := []mgl32.Vec3{{0, 0, 2}, {1, 1, 1}, {-2, 0.5, 0}, {0, 2, 0}}
	cameras := []mgl32.Vec3{{0, 0, 7}, {3, 4, 5}, {0, 7, 0}}

	for _, camPos := range cameras {
		camera.Position = camPos
		for _, pos := range positions {
			q := billboard(pos, camera)
			want := camPos.Sub(pos).Normalize()
			assertVec(t, want, q.Rotate(mgl32.Vec3{0, 0, 1}), 1e-4)
			assert.InDelta(t, 1, q.Len(), 1e-4)
		}
	}
}

func TestBillboardKeepsUp(t *testing.T) {
	camera := renderer.NewCamera(800, 600)
	camera.Position = mgl32.Vec3{0, 0, 7}
	q := billboard(mgl32.Vec3{0, 0, 2}, camera)
	assertVec(t, mgl32.Vec3{0, 1, 0}, q.Rotate(mgl32.Vec3{0, 1, 0}), 1e-4)
}
