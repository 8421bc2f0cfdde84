package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/objcurve/pkg/formats"
)

// Attribute describes one vertex attribute inside the interleaved buffer.
type Attribute struct {
	Location uint32
	Size     int32 // floats
	Offset   int   // floats from the start of the vertex
}

// Layout is the interleaved vertex format produced by the OBJ loader:
// position, color, texcoord, normal.
var Layout = []Attribute{
	{Location: 0, Size: 3, Offset: formats.OBJPositionOffset},
	{Location: 1, Size: 3, Offset: formats.OBJColorOffset},
	{Location: 2, Size: 2, Offset: formats.OBJTexCoordOffset},
	{Location: 3, Size: 3, Offset: formats.OBJNormalOffset},
}

// Stride is the byte size of one interleaved vertex.
const Stride = formats.OBJFloatsPerVertex * 4

// Mesh is a vertex array drawn as a triangle list.
type Mesh struct {
	vao   uint32
	vbo   uint32
	count int32
}

// VertexCount returns the number of vertices to draw.
func (m *Mesh) VertexCount() int32 {
	return m.count
}

// UploadMesh copies an interleaved vertex buffer to the GPU.
// Returns nil for an empty buffer.
func UploadMesh(vertices []float32) *Mesh {
	if len(vertices) == 0 {
		return nil
	}

	m := &Mesh{count: int32(len(vertices) / formats.OBJFloatsPerVertex)}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	for _, a := range Layout {
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, Stride, uintptr(a.Offset*4))
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.BindVertexArray(0)
	return m
}

func (m *Mesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
}

// Delete releases GPU resources.
func (m *Mesh) Delete() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}
