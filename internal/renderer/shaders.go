package renderer

import (
	"Globe3D/internal/logger"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	Name           string
	vertexSource   string
	fragmentSource string
	program        uint32
	isCompiled     bool
	uniforms       *UniformCache
}

// IsValid reports whether the shader carries sources to compile.
func (shader *Shader) IsValid() bool {
	return shader != nil && shader.vertexSource != "" && shader.fragmentSource != ""
}

func (shader *Shader) IsCompiled() bool {
	return shader.isCompiled
}

// Compile builds the program. It is a no-op for an already compiled shader.
func (shader *Shader) Compile() error {
	if shader.isCompiled {
		return nil
	}
	vertex, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("%s vertex shader: %w", shader.Name, err)
	}
	fragment, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return fmt.Errorf("%s fragment shader: %w", shader.Name, err)
	}
	program, err := GenShaderProgram(vertex, fragment)
	if err != nil {
		return fmt.Errorf("%s program: %w", shader.Name, err)
	}
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	logger.Log.Debug("Shader compiled", zap.String("shader", shader.Name), zap.Uint32("program", program))
	return nil
}

func (shader *Shader) Delete() {
	if !shader.isCompiled {
		return
	}
	gl.DeleteProgram(shader.program)
	shader.program = 0
	shader.isCompiled = false
	shader.uniforms = nil
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value)
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

func (shader *Shader) SetBool(name string, value bool) {
	shader.uniforms.SetBool(name, value)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("compile failed: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("link failed: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

var meshVertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition; // Vertex position
layout(location = 1) in vec2 inTexCoord; // Texture Coordinate
layout(location = 2) in vec3 inNormal;   // Vertex normal

uniform mat4 model;
uniform mat4 viewProjection;

out vec2 fragTexCoord;
out vec3 Normal;
out vec3 FragPos;

void main() {
    FragPos = vec3(model * vec4(inPosition, 1.0));
    Normal = mat3(transpose(inverse(model))) * inNormal;
    fragTexCoord = inTexCoord;
    gl_Position = viewProjection * vec4(FragPos, 1.0);
}
` + "\x00"

// Lambert diffuse plus a normalized Blinn-Phong lobe driven by roughness,
// with derivative based bump mapping.
var standardFragmentShaderSource = `#version 330 core
in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

struct Light {
    vec3 position;
    vec3 color;
    float intensity;
    int isDirectional;
};

uniform Light lights[4];
uniform int numLights;
uniform vec3 ambientColor;
uniform vec3 viewPos;

uniform vec3 diffuseColor;
uniform float alpha;
uniform float roughness;
uniform float metallic;
uniform bool useTexture;
uniform sampler2D textureSampler;
uniform bool useBumpMap;
uniform sampler2D bumpMap;
uniform float bumpScale;

out vec4 FragColor;

const float PI = 3.14159265359;

vec2 dHdxy() {
    vec2 dSTdx = dFdx(fragTexCoord);
    vec2 dSTdy = dFdy(fragTexCoord);
    float Hll = bumpScale * texture(bumpMap, fragTexCoord).x;
    float dBx = bumpScale * texture(bumpMap, fragTexCoord + dSTdx).x - Hll;
    float dBy = bumpScale * texture(bumpMap, fragTexCoord + dSTdy).x - Hll;
    return vec2(dBx, dBy);
}

vec3 perturbNormal(vec3 surfPos, vec3 surfNorm, vec2 dH) {
    vec3 sigmaX = normalize(dFdx(surfPos));
    vec3 sigmaY = normalize(dFdy(surfPos));
    vec3 R1 = cross(sigmaY, surfNorm);
    vec3 R2 = cross(surfNorm, sigmaX);
    float det = dot(sigmaX, R1);
    vec3 grad = sign(det) * (dH.x * R1 + dH.y * R2);
    return normalize(abs(det) * surfNorm - grad);
}

void main() {
    vec3 albedo = diffuseColor;
    if (useTexture) {
        albedo *= texture(textureSampler, fragTexCoord).rgb;
    }

    vec3 N = normalize(Normal);
    if (!gl_FrontFacing) {
        N = -N;
    }
    if (useBumpMap) {
        N = perturbNormal(FragPos, N, dHdxy());
    }
    vec3 V = normalize(viewPos - FragPos);

    vec3 diffuseAlbedo = albedo * (1.0 - metallic);
    vec3 F0 = mix(vec3(0.04), albedo, metallic);
    float a = max(roughness * roughness, 0.01);
    float shininess = 2.0 / (a * a) - 2.0;

    vec3 color = ambientColor * diffuseAlbedo / PI;
    for (int i = 0; i < numLights; i++) {
        vec3 L = lights[i].isDirectional == 1
            ? normalize(lights[i].position)
            : normalize(lights[i].position - FragPos);
        float NdotL = max(dot(N, L), 0.0);
        vec3 irradiance = NdotL * lights[i].color * lights[i].intensity;

        vec3 H = normalize(L + V);
        float spec = pow(max(dot(N, H), 0.0), shininess) * (shininess + 2.0) / (8.0 * PI);
        vec3 F = F0 + (1.0 - F0) * pow(1.0 - max(dot(H, V), 0.0), 5.0);

        color += irradiance * (diffuseAlbedo / PI + F * spec);
    }

    FragColor = vec4(color, alpha);
}
` + "\x00"

// Unlit color, optionally textured and masked to a disc with an outline ring.
var basicFragmentShaderSource = `#version 330 core
in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform vec3 diffuseColor;
uniform float alpha;
uniform bool useTexture;
uniform sampler2D textureSampler;
uniform bool circleMask;
uniform float ringWidth;
uniform vec3 ringColor;

out vec4 FragColor;

void main() {
    vec4 color = vec4(diffuseColor, alpha);
    if (useTexture) {
        vec4 tex = texture(textureSampler, fragTexCoord);
        // Badge backdrop shows through transparent image pixels
        color.rgb *= mix(vec3(0.09), tex.rgb, tex.a);
    }
    if (circleMask) {
        float d = length(fragTexCoord - vec2(0.5)) * 2.0;
        if (d > 1.0) {
            discard;
        }
        if (ringWidth > 0.0 && d > 1.0 - ringWidth) {
            color.rgb = mix(color.rgb, ringColor, 0.5);
        }
    }
    FragColor = color;
}
` + "\x00"

var atmosphereVertexShaderSource = `#version 330 core
layout(location = 0) in vec3 inPosition;
layout(location = 2) in vec3 inNormal;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 vNormal;
out vec3 vPosition;

void main() {
    mat4 modelView = view * model;
    vNormal = normalize(mat3(transpose(inverse(modelView))) * inNormal);
    vPosition = (modelView * vec4(inPosition, 1.0)).xyz;
    gl_Position = projection * modelView * vec4(inPosition, 1.0);
}
` + "\x00"

var atmosphereFragmentShaderSource = `#version 330 core
uniform vec3 atmosphereColor;
uniform float intensity;
uniform float fresnelPower;

in vec3 vNormal;
in vec3 vPosition;

out vec4 FragColor;

void main() {
    float fresnel = pow(1.0 - abs(dot(vNormal, normalize(-vPosition))), fresnelPower);
    FragColor = vec4(atmosphereColor, fresnel * intensity);
}
` + "\x00"

// NewStandardShader returns the lit, textured, bump mapped surface shader.
func NewStandardShader() *Shader {
	return &Shader{
		Name:           "standard",
		vertexSource:   meshVertexShaderSource,
		fragmentSource: standardFragmentShaderSource,
	}
}

// NewBasicShader returns the unlit shader used for pins, badges and overlays.
func NewBasicShader() *Shader {
	return &Shader{
		Name:           "basic",
		vertexSource:   meshVertexShaderSource,
		fragmentSource: basicFragmentShaderSource,
	}
}

// NewAtmosphereShader returns the fresnel rim shader. It reads the
// atmosphereColor, intensity and fresnelPower custom uniforms.
func NewAtmosphereShader() *Shader {
	return &Shader{
		Name:           "atmosphere",
		vertexSource:   atmosphereVertexShaderSource,
		fragmentSource: atmosphereFragmentShaderSource,
	}
}
