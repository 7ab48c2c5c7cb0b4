package opengl

// ── Shaders ───────────────────────────────────────────────────────────────────
//
// The fill-extrusion programs. Uniform declarations must stay in sync with
// the schemas in package program; NewProgram rejects any drift.

// extrusionUniforms is shared by the standard and pattern programs.
const extrusionUniforms = `
uniform mat4  u_matrix;
uniform vec3  u_lightpos;
uniform float u_lightintensity;
uniform vec3  u_lightcolor;
uniform float u_vertical_gradient;
uniform float u_opacity;

// globe: all zero (identity matrix) in mercator
uniform vec3  u_tile_id;
uniform float u_zoom_transition;
uniform mat4  u_inv_rot_matrix;
uniform vec2  u_merc_center;
uniform vec3  u_up_dir;
uniform float u_height_lift;

uniform vec2  u_ao;             // intensity, radius
uniform float u_edge_radius;
uniform vec3  u_flood_light_color;
uniform float u_vertical_scale;
uniform float u_flood_light_intensity;
uniform vec3  u_ground_shadow_factor;
`

// extrusionVertexBody projects the extruded vertex and computes lighting.
// Expects v_color, v_ao, v_flood outputs to be declared.
const extrusionVertexBody = `
layout(location = 0) in vec2  a_pos;
layout(location = 1) in vec3  a_normal;
layout(location = 2) in vec2  a_base_height;
layout(location = 3) in float a_top;
layout(location = 4) in vec4  a_color;

const float EXTENT = 8192.0;
const float PI = 3.141592653589793;

vec3 tile_to_ecef(vec2 p) {
    vec2 merc = (p / EXTENT + u_tile_id.xy) / u_tile_id.z;
    float lng = merc.x * 2.0 * PI - PI;
    float lat = 2.0 * atan(exp(PI - merc.y * 2.0 * PI)) - PI * 0.5;
    return vec3(cos(lat) * sin(lng), -sin(lat), cos(lat) * cos(lng));
}

vec3 extrude(out float z, out float height) {
    float base = max(0.0, a_base_height.x) * u_vertical_scale;
    height = max(0.0, a_base_height.y) * u_vertical_scale;
    z = mix(base, height, a_top);

    vec2 inset = a_normal.xy * u_edge_radius * a_top;
    vec3 pos = vec3(a_pos - inset, z);

    if (u_tile_id.z > 0.0) {
        vec3 up = tile_to_ecef(pos.xy);
        vec3 globe = (u_inv_rot_matrix * vec4(up * EXTENT, 1.0)).xyz + up * (z + u_height_lift);
        vec2 merc = ((pos.xy / EXTENT + u_tile_id.xy) / u_tile_id.z - u_merc_center) * EXTENT;
        vec3 flat_pos = vec3(merc, 0.0) + u_up_dir * (z + u_height_lift);
        pos = mix(globe, flat_pos, u_zoom_transition);
    }
    return pos;
}

void light(float z, float height) {
    vec3 n = normalize(a_normal);
    float directional = clamp(dot(n, normalize(u_lightpos)), 0.0, 1.0);
    directional = mix(1.0 - u_lightintensity, max(u_lightintensity + 0.5, 1.0), directional);
    if (n.z < 0.5) {
        float gradient = clamp(z * pow(max(height, 1.0) / 150.0, 0.5), mix(0.7, 0.98, 1.0 - u_lightintensity), 1.0);
        directional *= (1.0 - u_vertical_gradient) + u_vertical_gradient * gradient;
    }

    vec3 lit = clamp(a_color.rgb * directional * u_lightcolor, mix(vec3(0.0), vec3(0.3), 1.0 - u_lightcolor), vec3(1.0));
    float ground = 1.0 - a_top;
    v_ao = u_ao.x * ground * clamp(u_ao.y / max(z + u_ao.y, 1e-3), 0.0, 1.0);
    lit *= mix(vec3(1.0), u_ground_shadow_factor, ground * u_ao.x);
    v_flood = u_flood_light_color * u_flood_light_intensity * ground;
    v_color = vec4(lit, a_color.a) * u_opacity;
}
`

const fillExtrusionVertSrc = `
#version 410 core
` + extrusionUniforms + `
out vec4  v_color;
out float v_ao;
out vec3  v_flood;
` + extrusionVertexBody + `
void main() {
    float z, height;
    vec3 pos = extrude(z, height);
    gl_Position = u_matrix * vec4(pos, 1.0);
    light(z, height);
}
` + "\x00"

const fillExtrusionFragSrc = `
#version 410 core
in vec4  v_color;
in float v_ao;
in vec3  v_flood;
out vec4 outColor;

void main() {
    vec3 rgb = v_color.rgb * (1.0 - v_ao) + v_flood * v_color.a;
    outColor = vec4(rgb, v_color.a);
}
` + "\x00"

const fillExtrusionPatternVertSrc = `
#version 410 core
` + extrusionUniforms + `
uniform float u_height_factor;
uniform vec2  u_pixel_coord_upper;
uniform vec2  u_pixel_coord_lower;
uniform float u_tile_units_to_pixels;

layout(location = 5) in vec4  a_pattern;       // atlas tl.xy, br.xy in pixels
layout(location = 6) in float a_edge_distance;

out vec4  v_color;
out float v_ao;
out vec3  v_flood;
out vec2  v_pos;
flat out vec4 v_pattern;
` + extrusionVertexBody + `
vec2 pattern_pos(vec2 pattern_size, vec2 pos) {
    vec2 offset = mod(mod(mod(u_pixel_coord_upper, pattern_size) * 256.0, pattern_size) * 256.0 + u_pixel_coord_lower, pattern_size);
    return (u_tile_units_to_pixels * pos + offset) / pattern_size;
}

void main() {
    float z, height;
    vec3 pos = extrude(z, height);
    gl_Position = u_matrix * vec4(pos, 1.0);
    light(z, height);

    vec2 size = a_pattern.zw - a_pattern.xy;
    bool wall = normalize(a_normal).z < 0.5;
    vec2 face = wall ? vec2(a_edge_distance, z * u_height_factor) : a_pos;
    v_pos = pattern_pos(size, face);
    v_pattern = a_pattern;
}
` + "\x00"

const fillExtrusionPatternFragSrc = `
#version 410 core
uniform sampler2D u_image;
uniform vec2      u_texsize;

in vec4  v_color;
in float v_ao;
in vec3  v_flood;
in vec2  v_pos;
flat in vec4 v_pattern;
out vec4 outColor;

void main() {
    vec2 uv = mix(v_pattern.xy, v_pattern.zw, fract(v_pos)) / u_texsize;
    vec4 texel = texture(u_image, uv);
    vec3 rgb = texel.rgb * v_color.rgb * (1.0 - v_ao) + v_flood * texel.a;
    outColor = vec4(rgb, texel.a) * v_color.a;
}
` + "\x00"

const fillExtrusionDepthVertSrc = `
#version 410 core
uniform mat4  u_matrix;
uniform float u_edge_radius;
uniform float u_vertical_scale;

layout(location = 0) in vec2  a_pos;
layout(location = 1) in vec3  a_normal;
layout(location = 2) in vec2  a_base_height;
layout(location = 3) in float a_top;

void main() {
    float z = mix(a_base_height.x, a_base_height.y, a_top) * u_vertical_scale;
    vec2 inset = a_normal.xy * u_edge_radius * a_top;
    gl_Position = u_matrix * vec4(a_pos - inset, z, 1.0);
}
` + "\x00"

const fillExtrusionDepthFragSrc = `
#version 410 core
void main() {}
` + "\x00"

const groundEffectVertSrc = `
#version 410 core
uniform mat4  u_matrix;
uniform float u_meter_to_tile;
uniform float u_edge_radius;
uniform vec2  u_ao;

layout(location = 0) in vec2  a_pos;
layout(location = 1) in vec2  a_normal;
layout(location = 2) in float a_flood_radius;   // meters

out float v_ground;

void main() {
    float ao_radius = u_ao.y * u_meter_to_tile;
    float flood_radius = a_flood_radius * u_meter_to_tile;
    float radius = max(ao_radius, flood_radius);
    vec2 pos = a_pos + a_normal * (radius + u_edge_radius);
    v_ground = radius > 0.0 ? length(a_normal) : 0.0;
    gl_Position = u_matrix * vec4(pos, 0.0, 1.0);
}
` + "\x00"

const groundEffectFragSrc = `
#version 410 core
uniform float     u_opacity;
uniform float     u_ao_pass;
uniform vec2      u_ao;
uniform float     u_flood_light_intensity;
uniform vec3      u_flood_light_color;
uniform float     u_attenuation;
uniform sampler2D u_fb;
uniform float     u_fb_size;

in float v_ground;
out vec4 outColor;

void main() {
    float falloff = pow(1.0 - clamp(v_ground, 0.0, 1.0), u_attenuation + 1.0);
    if (u_ao_pass > 0.5) {
        outColor = vec4(0.0, 0.0, 0.0, u_ao.x * falloff * u_opacity);
        return;
    }
    float occluded = texture(u_fb, gl_FragCoord.xy / u_fb_size).a;
    vec3 flood = u_flood_light_color * u_flood_light_intensity * falloff * (1.0 - occluded);
    outColor = vec4(flood, falloff) * u_opacity;
}
` + "\x00"

// Sources bundles the vertex and fragment source of one program.
type Sources struct {
	Vertex, Fragment string
}

var (
	FillExtrusionSources             = Sources{fillExtrusionVertSrc, fillExtrusionFragSrc}
	FillExtrusionPatternSources      = Sources{fillExtrusionPatternVertSrc, fillExtrusionPatternFragSrc}
	FillExtrusionDepthSources        = Sources{fillExtrusionDepthVertSrc, fillExtrusionDepthFragSrc}
	FillExtrusionGroundEffectSources = Sources{groundEffectVertSrc, groundEffectFragSrc}
)
