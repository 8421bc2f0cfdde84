// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PhongVertexShader transforms interleaved mesh vertices into world and clip space.
//
//go:embed phong.vert
var PhongVertexShader string

// PhongFragmentShader shades with ambient, diffuse and specular terms from one point light.
//
//go:embed phong.frag
var PhongFragmentShader string
