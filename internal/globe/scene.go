package globe

import (
	"Globe3D/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	cameraFov      = 45
	cameraNear     = 0.1
	cameraFar      = 1000
	cameraDistance = 3.5 // In globe radii

	orbitRotateSpeed   = 0.4
	orbitDampingFactor = 0.1

	fillLightRatio = 0.3
)

var fillLightColor = Color("#88ccff", "#88ccff")

// scene holds the camera rig and lights. It carries no GPU state.
type scene struct {
	camera *renderer.Camera
	orbit  *OrbitControls
	lights []*renderer.Light
}

func newScene(cfg Config, width, height int32) *scene {
	camera := renderer.NewCamera(width, height)
	camera.Fov = cameraFov
	camera.Near = cameraNear
	camera.Far = cameraFar
	camera.UpdateProjection()
	camera.Position = mgl32.Vec3{0, 0, cfg.Radius * cameraDistance}
	camera.LookAt(mgl32.Vec3{0, 0, 0})

	orbit := NewOrbitControls(camera)
	orbit.EnablePan = cfg.EnablePan
	orbit.EnableZoom = cfg.EnableZoom
	orbit.MinDistance = cfg.MinDistance
	orbit.MaxDistance = cfg.MaxDistance
	orbit.RotateSpeed = orbitRotateSpeed
	orbit.AutoRotate = cfg.AutoRotateSpeed > 0
	orbit.AutoRotateSpeed = cfg.AutoRotateSpeed
	orbit.EnableDamping = true
	orbit.DampingFactor = orbitDampingFactor
	orbit.SetViewportHeight(float32(height))

	return &scene{
		camera: camera,
		orbit:  orbit,
		lights: sceneLights(cfg),
	}
}

// sceneLights returns an ambient light, a white sun high on the right and a
// weak cool fill from behind on the left.
func sceneLights(cfg Config) []*renderer.Light {
	r := cfg.Radius
	white := mgl32.Vec3{1, 1, 1}
	return []*renderer.Light{
		renderer.CreateAmbientLight(white, cfg.AmbientIntensity),
		renderer.CreateDirectionalLight(mgl32.Vec3{r * 5, r * 2, r * 5}, white, cfg.PointLightIntensity),
		renderer.CreateDirectionalLight(mgl32.Vec3{-r * 3, r, -r * 2}, fillLightColor, cfg.PointLightIntensity*fillLightRatio),
	}
}
