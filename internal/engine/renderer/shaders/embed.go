// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for the tessellated landscape.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader shades the landscape according to the draw mode.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// LineVertexShader is the vertex shader for colored debug lines.
//
//go:embed lines.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for colored debug lines.
//
//go:embed lines.frag
var LineFragmentShader string
