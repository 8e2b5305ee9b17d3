package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	vertexSource   string
	fragmentSource string
	program        uint32
	uniforms       *UniformCache
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

// Compile builds and links the program. It must run after gl.Init.
func (shader *Shader) Compile() error {
	vertex, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	fragment, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return err
	}
	program, err := GenShaderProgram(vertex, fragment)
	if err != nil {
		return err
	}
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	return nil
}

func (shader *Shader) Delete() {
	if shader.program != 0 {
		gl.DeleteProgram(shader.program)
		shader.program = 0
	}
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value.X(), value.Y(), value.Z())
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

var voxelVertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition; // World space vertex position
layout(location = 1) in vec3 inColor;    // Flat voxel colour, face shade applied
layout(location = 2) in vec3 inNormal;   // Face normal

uniform mat4 viewProjection;

out vec3 fragColor;
out vec3 Normal;
out vec3 FragPos;

void main() {
    FragPos = inPosition;
    Normal = inNormal;
    fragColor = inColor;
    gl_Position = viewProjection * vec4(inPosition, 1.0);
}
` + "\x00"

var voxelFragmentShaderSource = `#version 330 core
in vec3 fragColor;
in vec3 Normal;
in vec3 FragPos;

uniform vec3 lightDirection;
uniform vec3 lightColor;
uniform float ambientStrength;
uniform vec3 viewPos;
uniform vec3 fogColor;
uniform float fogDistance;
uniform float usingAlpha;

out vec4 FragColor;

void main() {
    vec3 norm = normalize(Normal);
    float diff = max(dot(norm, -normalize(lightDirection)), 0.0);
    vec3 lit = (ambientStrength + (1.0 - ambientStrength) * diff) * lightColor * fragColor;

    float fog = clamp(length(viewPos - FragPos) / fogDistance, 0.0, 1.0);
    vec3 color = mix(lit, fogColor, fog * fog);

    float alpha = mix(1.0, 0.6, usingAlpha);
    FragColor = vec4(color, alpha);
}
` + "\x00"

func InitVoxelShader() Shader {
	return Shader{
		vertexSource:   voxelVertexShaderSource,
		fragmentSource: voxelFragmentShaderSource,
	}
}

func compileError(kind, log string) error {
	return fmt.Errorf("%s: %s", kind, log)
}
