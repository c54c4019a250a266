package globe

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMergeEmptyOptionsKeepsDefaults(t *testing.T) {
	assert.Equal(t, Defaults(), Merge(Defaults(), Options{}))
}

func TestMergeOverridesEachFieldIndependently(t *testing.T) {
	cfg := Merge(Defaults(), Options{
		Radius:          ptr(float32(3)),
		ShowAtmosphere:  ptr(true),
		AutoRotateSpeed: ptr(float32(0)),
		InitialRotation: &Rotation{X: 0.1, Y: -0.2},
	})

	assert.Equal(t, float32(3), cfg.Radius)
	assert.True(t, cfg.ShowAtmosphere)
	assert.Equal(t, float32(0), cfg.AutoRotateSpeed)
	assert.Equal(t, Rotation{X: 0.1, Y: -0.2}, cfg.InitialRotation)

	def := Defaults()
	assert.Equal(t, def.GlobeColor, cfg.GlobeColor)
	assert.Equal(t, def.TextureURL, cfg.TextureURL)
	assert.Equal(t, def.MarkerSize, cfg.MarkerSize)
	assert.Equal(t, def.MinDistance, cfg.MinDistance)
	assert.Nil(t, cfg.BackgroundColor)
}

func TestMergeCopiesBackgroundColor(t *testing.T) {
	bg := "#000000"
	cfg := Merge(Defaults(), Options{BackgroundColor: &bg})
	bg = "#ffffff"

	require.NotNil(t, cfg.BackgroundColor)
	assert.Equal(t, "#000000", *cfg.BackgroundColor)
}

func TestMergeDoesNotValidate(t *testing.T) {
	cfg := Merge(Defaults(), Options{Radius: ptr(float32(-1)), MinDistance: ptr(float32(20))})
	assert.Equal(t, float32(-1), cfg.Radius)
	assert.Equal(t, float32(20), cfg.MinDistance)
}

func TestColor(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want mgl32.Vec3
	}{
		{"red", "#ff0000", mgl32.Vec3{1, 0, 0}},
		{"short white", "#fff", mgl32.Vec3{1, 1, 1}},
		{"black", "#000000", mgl32.Vec3{0, 0, 0}},
		{"invalid falls back", "not-a-color", mgl32.Vec3{0, 0, 1}},
		{"empty falls back", "", mgl32.Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.want, Color(tt.hex, "#0000ff"), 1e-3)
		})
	}
}

func TestColorIsLinear(t *testing.T) {
	// sRGB 0x80 is about 0.216 in linear light.
	c := Color("#808080", "#000000")
	assert.InDelta(t, 0.216, c.X(), 0.01)
}

func TestResolveColors(t *testing.T) {
	cfg := Defaults()
	cfg.GlobeColor = "bogus"
	col := resolveColors(cfg)
	assertVec(t, Color(Defaults().GlobeColor, "#000000"), col.globe, 1e-6)
	assert.Nil(t, col.background)

	cfg.BackgroundColor = ptr("#ff0000")
	col = resolveColors(cfg)
	require.NotNil(t, col.background)
	assertVec(t, mgl32.Vec3{1, 0, 0}, *col.background, 1e-3)

	cfg.BackgroundColor = ptr("nope")
	assert.Nil(t, resolveColors(cfg).background)
}

func TestFresnelPower(t *testing.T) {
	assert.Equal(t, float32(5), FresnelPower(0))
	assert.Equal(t, float32(3), FresnelPower(2))
	assert.Equal(t, float32(0.5), FresnelPower(4.5))
	assert.Equal(t, float32(0.5), FresnelPower(10))
}

func TestMarker(t *testing.T) {
	m := Marker{Lat: 51.5, Lng: -0.1, Src: "a.png"}
	assert.Equal(t, "51.5,-0.1,a.png", m.Key())
	assert.Equal(t, "(51.5000, -0.1000)", m.String())
	assert.Equal(t, float32(0.06), m.size(0.06))

	m.Label = "London"
	m.Size = 0.1
	assert.Equal(t, "London", m.String())
	assert.Equal(t, float32(0.1), m.size(0.06))
	assert.Equal(t, Marker{Lat: 51.5, Lng: -0.1, Src: "a.png"}.Key(), m.Key())
}
