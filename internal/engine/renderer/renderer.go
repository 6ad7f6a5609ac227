// Package renderer draws the tessellated landscape and debug lines with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/roam-terrain/internal/engine/debug"
	"github.com/Faultbox/roam-terrain/internal/engine/lighting"
	"github.com/Faultbox/roam-terrain/internal/engine/renderer/shaders"
	"github.com/Faultbox/roam-terrain/internal/engine/shader"
	"github.com/Faultbox/roam-terrain/internal/engine/terrain"
	"github.com/Faultbox/roam-terrain/internal/logger"
	"github.com/Faultbox/roam-terrain/pkg/math"
)

const (
	vertexSize     = int(unsafe.Sizeof(terrain.Vertex{}))
	lineVertexSize = int(unsafe.Sizeof(debug.LineVertex{}))
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FovX   float32
	Near   float32
	Far    float32
	Mode   DrawMode
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config     Config
	projection math.Mat4

	terrainProgram *shader.Program
	lineProgram    *shader.Program

	// Streamed landscape mesh, rebuilt every frame.
	terrainVAO      uint32
	terrainVBO      uint32
	terrainCapacity int
	terrainCount    int32

	lineVAO      uint32
	lineVBO      uint32
	lineCapacity int

	texture uint32
	light   lighting.Light
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg, light: lighting.Overhead()}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log := logger.Named("renderer")
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0, 0, 0, 1)

	var err error
	r.terrainProgram, err = shader.NewProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	r.lineProgram, err = shader.NewProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		r.terrainProgram.Delete()
		return nil, fmt.Errorf("line shader: %w", err)
	}

	r.terrainVAO, r.terrainVBO = newVertexArray(vertexSize, [][2]int{{3, 0}, {3, 12}})
	r.lineVAO, r.lineVBO = newVertexArray(lineVertexSize, [][2]int{{3, 0}, {3, 12}})
	r.texture = uploadStipple()

	r.Resize(cfg.Width, cfg.Height)
	log.Debug("renderer ready", zap.Stringer("mode", cfg.Mode))
	return r, nil
}

// newVertexArray creates a VAO over an empty VBO with float attributes
// given as (components, byte offset) pairs.
func newVertexArray(stride int, attribs [][2]int) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	for i, a := range attribs {
		gl.VertexAttribPointerWithOffset(uint32(i), int32(a[0]), gl.FLOAT, false, int32(stride), uintptr(a[1]))
		gl.EnableVertexAttribArray(uint32(i))
	}
	gl.BindVertexArray(0)
	return vao, vbo
}

func uploadStipple() uint32 {
	pix := terrain.StippleTexture(terrain.TextureSize, 1)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, terrain.TextureSize, terrain.TextureSize, 0,
		gl.RGB, gl.UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Named("renderer").Info("closing renderer")
	for _, vao := range []*uint32{&r.terrainVAO, &r.lineVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&r.terrainVBO, &r.lineVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}
	r.terrainProgram.Delete()
	r.lineProgram.Delete()
}

// Resize handles window resize and rebuilds the projection.
func (r *Renderer) Resize(width, height int) {
	if height <= 0 {
		height = 1
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.updateProjection()
	logger.Named("renderer").Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetFovX changes the horizontal field of view in degrees.
func (r *Renderer) SetFovX(fovX float32) {
	if fovX == r.config.FovX {
		return
	}
	r.config.FovX = fovX
	r.updateProjection()
}

func (r *Renderer) updateProjection() {
	aspect := float32(r.config.Width) / float32(r.config.Height)
	r.projection = math.PerspectiveFovX(r.config.FovX, aspect, r.config.Near, r.config.Far)
}

// Mode returns the current draw mode.
func (r *Renderer) Mode() DrawMode { return r.config.Mode }

// CycleMode advances to the next draw mode.
func (r *Renderer) CycleMode() DrawMode {
	r.config.Mode = r.config.Mode.Next()
	return r.config.Mode
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// streamVertices replaces the contents of vbo, growing it when needed.
func streamVertices(vbo uint32, capacity *int, data unsafe.Pointer, bytes int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if bytes > *capacity {
		*capacity = bytes + bytes/2
		gl.BufferData(gl.ARRAY_BUFFER, *capacity, nil, gl.STREAM_DRAW)
	}
	if bytes > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, bytes, data)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// UploadTerrain streams this frame's landscape triangles to the GPU.
func (r *Renderer) UploadTerrain(vertices []terrain.Vertex) {
	r.terrainCount = int32(len(vertices))
	if len(vertices) == 0 {
		return
	}
	streamVertices(r.terrainVBO, &r.terrainCapacity, unsafe.Pointer(&vertices[0]), len(vertices)*vertexSize)
}

// DrawTerrain draws the last uploaded landscape.
func (r *Renderer) DrawTerrain(view math.Mat4) {
	if r.terrainCount == 0 {
		return
	}

	p := r.terrainProgram
	p.Use()
	p.SetMat4("uViewProj", r.projection.Mul(view))
	p.SetInt("uMode", int32(r.config.Mode))
	p.SetFloat("uTexScale", 1.0/terrain.TextureSize)
	p.SetVec3("uLightDir", r.light.Direction)
	p.SetVec3("uAmbient", r.light.Ambient)
	p.SetVec3("uDiffuse", r.light.Diffuse)
	p.SetVec3("uMaterial", r.light.Material)

	if r.config.Mode == DrawTexture {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.texture)
		p.SetInt("uTexture", 0)
	}
	if r.config.Mode == DrawWireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	gl.BindVertexArray(r.terrainVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, r.terrainCount)

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// DrawLines draws colored line segments, two vertices each.
func (r *Renderer) DrawLines(view math.Mat4, vertices []debug.LineVertex) {
	if len(vertices) == 0 {
		return
	}
	streamVertices(r.lineVBO, &r.lineCapacity, unsafe.Pointer(&vertices[0]), len(vertices)*lineVertexSize)

	r.lineProgram.Use()
	r.lineProgram.SetMat4("uViewProj", r.projection.Mul(view))
	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)))
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}
