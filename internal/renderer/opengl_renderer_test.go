package renderer

import (
	"testing"
)

var _ Render = (*OpenGLRenderer)(nil)

func TestReleaseShaderForgetsProgram(t *testing.T) {
	kept := NewBasicShader()
	released := NewStandardShader()
	rend := &OpenGLRenderer{shaders: map[*Shader]struct{}{kept: {}, released: {}}}

	rend.ReleaseShader(released)
	if _, ok := rend.shaders[released]; ok {
		t.Error("released shader should be forgotten")
	}
	if _, ok := rend.shaders[kept]; !ok {
		t.Error("other shaders should stay registered")
	}

	// Unknown and already released shaders are ignored
	rend.ReleaseShader(released)
	rend.ReleaseShader(NewAtmosphereShader())
	if len(rend.shaders) != 1 {
		t.Errorf("expected 1 registered shader, got %d", len(rend.shaders))
	}
}
