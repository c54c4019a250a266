package renderer

import (
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var FrustumCullingEnabled bool = true
// Wireframe draws every model as lines regardless of its material.
var Wireframe bool = false
var DepthTestEnabled bool = true

// MaxLights is the number of non-ambient lights the standard shader accepts.
const MaxLights = 4

type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Mode      string // "ambient", "directional", "point"
}

type Render interface {
	Init(width, height int32, window *glfw.Window)
	Render(camera *Camera, lights []*Light)
	AddModel(model *Model)
	RemoveModel(model *Model)
	CreateTexture(img image.Image, name string, opts TextureOptions) (uint32, error)
	ReleaseTexture(textureID uint32)
	ReleaseShader(shader *Shader)
	SetClearColor(r, g, b, a float32)
	UpdateViewport(width, height int32)
	Cleanup()
}

func CreateAmbientLight(color mgl32.Vec3, intensity float32) *Light {
	return &Light{
		Color:     color,
		Intensity: intensity,
		Mode:      "ambient",
	}
}

// CreateDirectionalLight creates a light shining from position towards the
// origin, the way a sun placed in the scene would.
func CreateDirectionalLight(position mgl32.Vec3, color mgl32.Vec3, intensity float32) *Light {
	return &Light{
		Position:  position,
		Color:     color,
		Intensity: intensity,
		Mode:      "directional",
	}
}

func CreatePointLight(position mgl32.Vec3, color mgl32.Vec3, intensity float32) *Light {
	return &Light{
		Position:  position,
		Color:     color,
		Intensity: intensity,
		Mode:      "point",
	}
}

// AmbientTerm sums the contribution of every ambient light.
func AmbientTerm(lights []*Light) mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, l := range lights {
		if l != nil && l.Mode == "ambient" {
			sum = sum.Add(l.Color.Mul(l.Intensity))
		}
	}
	return sum
}
