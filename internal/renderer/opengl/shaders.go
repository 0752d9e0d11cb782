package opengl

import (
	"SpaceBox/internal/renderer"
)

// Every technique reads position from location 0. point_stars also reads a normalized
// RGBA8 color from location 1.

var worldVertexShaderSource = `#version 410 core

layout(location = 0) in vec3 inPosition;

uniform mat4 model;
uniform mat4 viewProjection;

out vec3 worldPos;

void main() {
    vec4 world = model * vec4(inPosition, 1.0);
    worldPos = world.xyz;
    gl_Position = viewProjection * world;
}
` + "\x00"

var pointStarsVertexShaderSource = `#version 410 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec4 inColor;

uniform mat4 model;
uniform mat4 viewProjection;

out vec3 vertexColor;

void main() {
    vertexColor = inColor.rgb;
    gl_Position = viewProjection * model * vec4(inPosition, 1.0);
}
` + "\x00"

var pointStarsFragmentShaderSource = `#version 410 core

in vec3 vertexColor;

out vec4 FragColor;

void main() {
    FragColor = vec4(vertexColor, 1.0);
}
` + "\x00"

// star and sun share the disc and falloff shape.
const pointLightFunctions = `
float pointIntensity(float d, float size, float falloff) {
    if (size > 0.0 && d >= 1.0 - size) {
        return 1.0;
    }
    return pow(max(d, 0.0), falloff);
}
`

var starFragmentShaderSource = `#version 410 core

in vec3 worldPos;

uniform mat4 model;
uniform vec3 cameraPos;
uniform vec3 StarPosition;
uniform vec3 StarColor;
uniform float StarSize;
uniform float StarFalloff;

out vec4 FragColor;
` + pointLightFunctions + `
void main() {
    vec3 dir = normalize(worldPos - cameraPos);
    vec3 pos = normalize(mat3(model) * StarPosition);
    float i = pointIntensity(dot(dir, pos), StarSize, StarFalloff);
    FragColor = vec4(StarColor * i, 1.0);
}
` + "\x00"

var sunFragmentShaderSource = `#version 410 core

in vec3 worldPos;

uniform mat4 model;
uniform vec3 cameraPos;
uniform vec3 SunPosition;
uniform vec3 SunColor;
uniform float SunSize;
uniform float SunFalloff;

out vec4 FragColor;
` + pointLightFunctions + `
void main() {
    vec3 dir = normalize(worldPos - cameraPos);
    vec3 pos = normalize(mat3(model) * SunPosition);
    float i = pointIntensity(dot(dir, pos), SunSize, SunFalloff);
    FragColor = vec4(SunColor * i, 1.0);
}
` + "\x00"

var nebularFragmentShaderSource = `#version 410 core

in vec3 worldPos;

uniform vec3 cameraPos;
uniform vec3 NebularColor;
uniform vec3 NebularOffset;
uniform float NebularScale;
uniform float NebularIntensity;
uniform float NebularFalloff;

out vec4 FragColor;

float hash(vec3 p) {
    p = fract(p * 0.3183099 + 0.1);
    p *= 17.0;
    return fract(p.x * p.y * p.z * (p.x + p.y + p.z));
}

float valueNoise(vec3 p) {
    vec3 i = floor(p);
    vec3 f = fract(p);
    f = f * f * (3.0 - 2.0 * f);
    return mix(mix(mix(hash(i + vec3(0, 0, 0)), hash(i + vec3(1, 0, 0)), f.x),
                   mix(hash(i + vec3(0, 1, 0)), hash(i + vec3(1, 1, 0)), f.x), f.y),
               mix(mix(hash(i + vec3(0, 0, 1)), hash(i + vec3(1, 0, 1)), f.x),
                   mix(hash(i + vec3(0, 1, 1)), hash(i + vec3(1, 1, 1)), f.x), f.y), f.z);
}

// three octaves, roughly in [-1, 1]
float fbm(vec3 p) {
    float sum = 0.0;
    float amp = 1.0;
    for (int i = 0; i < 3; i++) {
        sum += amp * (valueNoise(p) * 2.0 - 1.0);
        p *= 2.0;
        amp *= 0.5;
    }
    return sum / 1.75;
}

void main() {
    vec3 dir = normalize(worldPos - cameraPos);
    float scale = NebularScale > 0.0 ? NebularScale : 1.0;
    float n = clamp(0.5 + 0.5 * fbm(dir / scale + NebularOffset), 0.0, 1.0);
    FragColor = vec4(NebularColor * NebularIntensity * pow(n, NebularFalloff), 1.0);
}
` + "\x00"

var litFragmentShaderSource = `#version 410 core

in vec3 worldPos;

uniform vec3 cameraPos;
uniform vec3 DiffuseColor;
uniform vec3 lightDirection;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform vec3 ambientColor;
uniform vec3 fogColor;
uniform float fogStart;
uniform float fogEnd;

out vec4 FragColor;

void main() {
    // flat normal from the screen space derivatives, always facing the viewer
    vec3 norm = normalize(cross(dFdx(worldPos), dFdy(worldPos)));
    float diff = max(dot(norm, -normalize(lightDirection)), 0.0);
    vec3 color = DiffuseColor * (ambientColor + lightColor * lightIntensity * diff);

    float dist = length(worldPos - cameraPos);
    float fog = clamp((dist - fogStart) / max(fogEnd - fogStart, 0.0001), 0.0, 1.0);
    FragColor = vec4(mix(color, fogColor, fog), 1.0);
}
` + "\x00"

var skyboxVertexShaderSource = `#version 410 core

layout(location = 0) in vec3 inPosition;

uniform mat4 view;
uniform mat4 projection;

out vec3 texCoords;

void main() {
    texCoords = inPosition;
    vec4 pos = projection * view * vec4(inPosition, 1.0);
    // depth is always 1 so the sky sits behind everything
    gl_Position = pos.xyww;
}
` + "\x00"

var skyboxFragmentShaderSource = `#version 410 core

in vec3 texCoords;

uniform samplerCube skybox;

out vec4 FragColor;

void main() {
    FragColor = texture(skybox, texCoords);
}
` + "\x00"

// techniqueShaders returns one uncompiled shader per technique the renderer draws.
func techniqueShaders() map[renderer.Technique]*Shader {
	return map[renderer.Technique]*Shader{
		renderer.TechniquePointStars: NewShader("point_stars", pointStarsVertexShaderSource, pointStarsFragmentShaderSource),
		renderer.TechniqueStar:       NewShader("star", worldVertexShaderSource, starFragmentShaderSource),
		renderer.TechniqueSun:        NewShader("sun", worldVertexShaderSource, sunFragmentShaderSource),
		renderer.TechniqueNebula:     NewShader("nebular", worldVertexShaderSource, nebularFragmentShaderSource),
		renderer.TechniqueLit:        NewShader("lit", worldVertexShaderSource, litFragmentShaderSource),
		renderer.TechniqueSkybox:     NewShader("skybox", skyboxVertexShaderSource, skyboxFragmentShaderSource),
	}
}
