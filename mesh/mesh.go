package mesh

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh owns a vertex array object with its vertex buffer and, when indexed,
// its element buffer.
type Mesh struct {
	VAO         uint32
	VBO         uint32
	EBO         uint32
	VertexCount int32
	IndexCount  int32
}

// New uploads static vertex data (and optional indices) and records the
// attribute layout in a fresh VAO.
func New(vertices []float32, indices []uint32, layout Layout) (*Mesh, error) {
	if err := layout.Validate(vertices, indices); err != nil {
		return nil, err
	}

	m := &Mesh{
		VertexCount: int32(layout.VertexCount(vertices)),
		IndexCount:  int32(len(indices)),
	}

	gl.GenVertexArrays(1, &m.VAO)
	gl.GenBuffers(1, &m.VBO)
	gl.BindVertexArray(m.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	if len(indices) > 0 {
		gl.GenBuffers(1, &m.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	stride := layout.Stride()
	for i, comps := range layout {
		gl.VertexAttribPointer(uint32(i), int32(comps), gl.FLOAT, false, stride, gl.PtrOffset(layout.Offset(i)))
		gl.EnableVertexAttribArray(uint32(i))
	}

	// the VAO keeps the element buffer binding, so only the array buffer is unbound
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return m, nil
}

// Draw issues the draw call for the whole mesh as triangles.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.VAO)
	if m.EBO != 0 {
		gl.DrawElements(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.VertexCount)
	}
}

func (m *Mesh) Destroy() {
	gl.DeleteVertexArrays(1, &m.VAO)
	gl.DeleteBuffers(1, &m.VBO)
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
	}
	m.VAO, m.VBO, m.EBO = 0, 0, 0
}
