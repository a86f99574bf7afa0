package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Primitive is the GL primitive type used to draw a geometry.
type Primitive uint32

const (
	Triangles     Primitive = gl.TRIANGLES
	TriangleStrip Primitive = gl.TRIANGLE_STRIP
	Lines         Primitive = gl.LINES
)

// Geometry is a VAO with interleaved float attributes and optional indices.
type Geometry struct {
	vao, vbo, ebo uint32
	primitive     Primitive
	count         int32
	indexed       bool
}

// NewGeometry uploads interleaved vertices. layout lists the component count
// of each attribute in location order. When indices is empty the vertices
// are drawn in order.
func NewGeometry(vertices []float32, layout []int, indices []uint32, primitive Primitive) *Geometry {
	g := &Geometry{primitive: primitive}

	stride := 0
	for _, n := range layout {
		stride += n
	}
	if stride == 0 || len(vertices) == 0 {
		return g
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	offset := 0
	for i, n := range layout {
		gl.VertexAttribPointerWithOffset(uint32(i), int32(n), gl.FLOAT, false, int32(stride*4), uintptr(offset*4))
		gl.EnableVertexAttribArray(uint32(i))
		offset += n
	}

	if len(indices) > 0 {
		gl.GenBuffers(1, &g.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		g.count = int32(len(indices))
		g.indexed = true
	} else {
		g.count = int32(len(vertices) / stride)
	}

	gl.BindVertexArray(0)
	return g
}

// Draw issues the draw call.
func (g *Geometry) Draw() {
	if g.vao == 0 || g.count == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	if g.indexed {
		gl.DrawElements(uint32(g.primitive), g.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(uint32(g.primitive), 0, g.count)
	}
	gl.BindVertexArray(0)
}

// Destroy releases the buffers.
func (g *Geometry) Destroy() {
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}
