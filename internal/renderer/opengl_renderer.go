package renderer

import (
	"Globe3D/internal/logger"
	"fmt"
	"image"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type OpenGLRenderer struct {
	Models               []*Model
	textures             *TextureManager
	shaders              map[*Shader]struct{} // Every compiled program, deleted on Cleanup
	currentShaderProgram uint32
	clearColor           mgl32.Vec4
	transparent          []*Model // Scratch slice reused every frame
}

func (rend *OpenGLRenderer) Init(width, height int32, _ *glfw.Window) {
	if err := gl.Init(); err != nil {
		logger.Log.Error("OpenGL initialization failed", zap.Error(err))
		return
	}

	rend.textures = NewTextureManager()
	rend.shaders = make(map[*Shader]struct{})
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.Enable(gl.MULTISAMPLE)
	gl.Viewport(0, 0, width, height)
	logger.Log.Info("OpenGL render initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))
}

func (rend *OpenGLRenderer) AddModel(model *Model) {
	if err := rend.ensureShader(model.Shader); err != nil {
		logger.Log.Error("Model shader unavailable", zap.String("model", model.Name), zap.Error(err))
		return
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InterleavedData)*4, gl.Ptr(model.InterleavedData), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.Faces)*4, gl.Ptr(model.Faces), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	model.VAO = vao
	model.VBO = vbo
	model.EBO = ebo
	model.IsDirty = true
	model.UpdateModelMatrix()

	rend.Models = append(rend.Models, model)
}

func (rend *OpenGLRenderer) ensureShader(shader *Shader) error {
	if !shader.IsValid() {
		return fmt.Errorf("model has no shader")
	}
	if err := shader.Compile(); err != nil {
		return err
	}
	rend.shaders[shader] = struct{}{}
	return nil
}

// RemoveModel drops the model from the draw list and frees its GPU buffers.
// Textures are owned by whoever created them and released separately.
func (rend *OpenGLRenderer) RemoveModel(model *Model) {
	for i, m := range rend.Models {
		if m == model {
			rend.Models = append(rend.Models[:i], rend.Models[i+1:]...)
			deleteBuffers(model)
			return
		}
	}
}

func deleteBuffers(model *Model) {
	gl.DeleteVertexArrays(1, &model.VAO)
	gl.DeleteBuffers(1, &model.VBO)
	gl.DeleteBuffers(1, &model.EBO)
	model.VAO, model.VBO, model.EBO = 0, 0, 0
}

func (rend *OpenGLRenderer) SetClearColor(r, g, b, a float32) {
	rend.clearColor = mgl32.Vec4{r, g, b, a}
}

func (rend *OpenGLRenderer) Render(camera *Camera, lights []*Light) {
	gl.ClearColor(rend.clearColor[0], rend.clearColor[1], rend.clearColor[2], rend.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	var frustum Frustum
	if FrustumCullingEnabled {
		frustum = camera.CalculateFrustum()
	}

	rend.transparent = rend.transparent[:0]
	gl.Disable(gl.BLEND)
	for _, model := range rend.Models {
		if !model.Visible {
			continue
		}
		model.UpdateModelMatrix()
		if FrustumCullingEnabled && !frustum.IntersectsSphere(model.Position, model.WorldBoundingRadius()) {
			continue
		}
		if model.Material != nil && model.Material.Transparent {
			rend.transparent = append(rend.transparent, model)
			continue
		}
		rend.drawModel(model, camera, lights)
	}

	// Transparent pass, back to front
	sort.SliceStable(rend.transparent, func(i, j int) bool {
		di := rend.transparent[i].Position.Sub(camera.Position).LenSqr()
		dj := rend.transparent[j].Position.Sub(camera.Position).LenSqr()
		return di > dj
	})
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	for _, model := range rend.transparent {
		rend.drawModel(model, camera, lights)
	}

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	gl.Disable(gl.CULL_FACE)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

func (rend *OpenGLRenderer) drawModel(model *Model, camera *Camera, lights []*Light) {
	material := model.Material
	if material == nil {
		material = NewMaterial("default")
		model.Material = material
	}

	switch material.Side {
	case FrontSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Disable(gl.CULL_FACE)
	}
	gl.DepthMask(material.DepthWrite)
	if material.Wireframe || Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	shader := model.Shader
	if rend.currentShaderProgram != shader.program {
		shader.Use()
		rend.currentShaderProgram = shader.program
	}

	rend.setCommonUniforms(shader, model, camera, lights)
	rend.setMaterialUniforms(shader, material)
	rend.setShaderSpecificUniforms(shader, model)

	gl.BindVertexArray(model.VAO)
	gl.DrawElements(gl.TRIANGLES, int32(len(model.Faces)), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// setCommonUniforms sets uniforms that are common to most shaders
func (rend *OpenGLRenderer) setCommonUniforms(shader *Shader, model *Model, camera *Camera, lights []*Light) {
	shader.SetMat4("model", model.ModelMatrix)
	shader.SetMat4("view", camera.GetViewMatrix())
	shader.SetMat4("projection", camera.Projection)
	shader.SetMat4("viewProjection", camera.GetViewProjection())
	shader.SetVec3("viewPos", camera.Position)

	shader.SetVec3("ambientColor", AmbientTerm(lights))
	n := 0
	for _, light := range lights {
		if light == nil || light.Mode == "ambient" || n == MaxLights {
			continue
		}
		prefix := fmt.Sprintf("lights[%d].", n)
		shader.SetVec3(prefix+"position", light.Position)
		shader.SetVec3(prefix+"color", light.Color)
		shader.SetFloat(prefix+"intensity", light.Intensity)
		shader.SetBool(prefix+"isDirectional", light.Mode == "directional")
		n++
	}
	shader.SetInt("numLights", int32(n))
}

// setMaterialUniforms sets material-specific uniforms and binds texture units
func (rend *OpenGLRenderer) setMaterialUniforms(shader *Shader, material *Material) {
	shader.SetVec3("diffuseColor", material.DiffuseColor)
	shader.SetFloat("alpha", material.Alpha)
	shader.SetFloat("roughness", material.Roughness)
	shader.SetFloat("metallic", material.Metallic)

	shader.SetBool("useTexture", material.TextureID != 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, material.TextureID)
	shader.SetInt("textureSampler", 0)

	shader.SetBool("useBumpMap", material.BumpTextureID != 0)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, material.BumpTextureID)
	shader.SetInt("bumpMap", 1)
	shader.SetFloat("bumpScale", material.BumpScale)
	gl.ActiveTexture(gl.TEXTURE0)

	shader.SetBool("circleMask", material.CircleMask)
	shader.SetFloat("ringWidth", material.RingWidth)
	shader.SetVec3("ringColor", material.RingColor)
}

// setShaderSpecificUniforms allows models to set custom uniforms for their shaders
func (rend *OpenGLRenderer) setShaderSpecificUniforms(shader *Shader, model *Model) {
	for name, value := range model.CustomUniforms {
		switch v := value.(type) {
		case float32:
			shader.SetFloat(name, v)
		case int32:
			shader.SetInt(name, v)
		case bool:
			shader.SetBool(name, v)
		case mgl32.Vec3:
			shader.SetVec3(name, v)
		case mgl32.Mat4:
			shader.SetMat4(name, v)
		default:
			logger.Log.Debug("Skipping uniform of unsupported type", zap.String("uniform", name))
		}
	}
}

func (rend *OpenGLRenderer) CreateTexture(img image.Image, name string, opts TextureOptions) (uint32, error) {
	return rend.textures.CreateTexture(img, name, opts)
}

func (rend *OpenGLRenderer) ReleaseTexture(textureID uint32) {
	rend.textures.ReleaseTexture(textureID)
}

// TextureStats exposes the texture manager counters.
// ReleaseShader deletes a program compiled by AddModel. Models drawn with it
// must be removed first. Unknown shaders are ignored.
func (rend *OpenGLRenderer) ReleaseShader(shader *Shader) {
	if _, ok := rend.shaders[shader]; !ok {
		return
	}
	delete(rend.shaders, shader)
	if rend.currentShaderProgram == shader.program {
		rend.currentShaderProgram = 0
	}
	shader.Delete()
}

func (rend *OpenGLRenderer) TextureStats() TextureStats {
	return rend.textures.GetStats()
}

// UpdateViewport updates the OpenGL viewport to match the current window size
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (rend *OpenGLRenderer) Cleanup() {
	for _, model := range rend.Models {
		deleteBuffers(model)
	}
	rend.Models = nil
	for shader := range rend.shaders {
		shader.Delete()
	}
	rend.shaders = make(map[*Shader]struct{})
	rend.currentShaderProgram = 0
	if rend.textures != nil {
		rend.textures.Clear()
	}
}
