package renderer

// screenVS is the batch vertex shader with raylib's default attribute names.
const screenVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;
uniform mat4 mvp;
out vec2 fragTexCoord;
out vec4 fragColor;
void main() {
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// screenFS samples a portal's target in screen space, so the view lines up
// with the pixels the portal covers on screen. The open scale fades the view
// in from the portal tint.
const screenFS = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
uniform sampler2D texture0;
uniform sampler2D portalView;
uniform vec2 resolution;
uniform float openScale;
out vec4 finalColor;
void main() {
    vec2 uv = gl_FragCoord.xy / resolution;
    vec3 view = texture(portalView, uv).rgb;
    finalColor = vec4(mix(fragColor.rgb, view, clamp(openScale, 0.0, 1.0)), 1.0);
}
`
