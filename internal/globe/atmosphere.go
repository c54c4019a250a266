package globe

import (
	"Globe3D/internal/renderer"

	"github.com/chewxy/math32"
)

// AtmosphereScale is the shell radius relative to the globe.
const AtmosphereScale = 1.12

// FresnelPower maps the blur setting to the rim exponent. Higher blur gives a
// softer, wider glow; the exponent never drops below 0.5.
func FresnelPower(blur float32) float32 {
	return math32.Max(0.5, 5-blur)
}

// newAtmosphere builds the glow shell. Only its back faces are drawn so the
// rim shows around the globe silhouette, and it never writes depth so markers
// behind it stay visible. It is not part of the rotating group.
func newAtmosphere(cfg Config, col colors, shader *renderer.Shader) *renderer.Model {
	material := renderer.NewMaterial("atmosphere")
	material.Side = renderer.BackSide
	material.Transparent = true
	material.DepthWrite = false

	model := renderer.NewModel("atmosphere", renderer.SphereGeometry(cfg.Radius, 64, 32), material, shader)
	model.SetScale(AtmosphereScale, AtmosphereScale, AtmosphereScale)
	model.SetUniform("atmosphereColor", col.atmosphere)
	model.SetUniform("intensity", cfg.AtmosphereIntensity)
	model.SetUniform("fresnelPower", FresnelPower(cfg.AtmosphereBlur))
	return model
}
