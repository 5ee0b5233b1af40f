package renderer

// Fragment shader for the GPU Chladni field path. Same equation and
// shading as pattern.ChladniValue / ChladniShading.Intensity; the
// contract test in shaders_test.go keeps the two in agreement.
const chladniFragmentShader = `
#version 330

in vec2 fragTexCoord;
out vec4 finalColor;

uniform vec2 resolution;
uniform float modeN;
uniform float modeM;
uniform float amplitude;
uniform float time;
uniform vec3 baseColor;
uniform float lineThickness;
uniform float vignetteInner;
uniform float vignetteOuter;
uniform float ambientWobble;

const float PI = 3.14159265358979;

void main() {
    vec2 uv = gl_FragCoord.xy / resolution;
    float half_ = min(resolution.x, resolution.y) * 0.5;
    vec2 p = (gl_FragCoord.xy - resolution * 0.5) / half_;
    float r = length(p);

    if (r >= vignetteOuter) {
        finalColor = vec4(0.0, 0.0, 0.0, 1.0);
        return;
    }

    float v = cos(modeN * PI * p.x) * cos(modeM * PI * p.y)
            - cos(modeM * PI * p.x) * cos(modeN * PI * p.y);

    v += sin(time * 0.7) * ambientWobble;
    v *= 1.0 - 0.25 * clamp(amplitude, 0.0, 1.0);
    float thickness = lineThickness * (1.0 + 0.8 * clamp(amplitude, 0.0, 1.0));

    float av = abs(v);
    float line = 1.0 / (1.0 + (av / thickness) * (av / thickness));
    float glow = 0.35 * exp(-av * 3.0);
    float intensity = line + glow;

    if (r > vignetteInner) {
        intensity *= 1.0 - (r - vignetteInner) / (vignetteOuter - vignetteInner);
    }

    intensity = clamp(intensity, 0.0, 1.0);
    finalColor = vec4(baseColor * intensity, 1.0);
}
`
