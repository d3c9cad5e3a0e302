package mesh

import (
	"fmt"
)

const floatSize = 4

// Layout lists the component count of each vertex attribute, in location
// order. {3, 2} is a vec3 position at location 0 followed by a vec2 texture
// coordinate at location 1.
type Layout []int

var (
	Position        = Layout{3}
	PositionColor   = Layout{3, 3}
	PositionUV      = Layout{3, 2}
	PositionColorUV = Layout{3, 3, 2}
)

// Components returns the number of floats per vertex.
func (l Layout) Components() int {
	n := 0
	for _, c := range l {
		n += c
	}
	return n
}

// Stride returns the size of one vertex in bytes.
func (l Layout) Stride() int32 {
	return int32(l.Components() * floatSize)
}

// Offset returns the byte offset of the attribute at location i.
func (l Layout) Offset(i int) int {
	n := 0
	for _, c := range l[:i] {
		n += c
	}
	return n * floatSize
}

// Validate checks that the layout can describe vertices and that the data
// fits it.
func (l Layout) Validate(vertices []float32, indices []uint32) error {
	if len(l) == 0 {
		return fmt.Errorf("empty vertex layout")
	}
	for i, c := range l {
		if c < 1 || c > 4 {
			return fmt.Errorf("attribute %d has %d components, want 1..4", i, c)
		}
	}
	comps := l.Components()
	if len(vertices) == 0 {
		return fmt.Errorf("no vertex data")
	}
	if len(vertices)%comps != 0 {
		return fmt.Errorf("%d floats is not a whole number of %d-float vertices", len(vertices), comps)
	}
	count := uint32(len(vertices) / comps)
	for i, idx := range indices {
		if idx >= count {
			return fmt.Errorf("index %d at position %d is out of range for %d vertices", idx, i, count)
		}
	}
	return nil
}

// VertexCount returns the number of vertices in data.
func (l Layout) VertexCount(vertices []float32) int {
	return len(vertices) / l.Components()
}
