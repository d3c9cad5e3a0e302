package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutStrideAndOffsets(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		stride  int32
		offsets []int
	}{
		{"position", Position, 12, []int{0}},
		{"position+color", PositionColor, 24, []int{0, 12}},
		{"position+uv", PositionUV, 20, []int{0, 12}},
		{"position+color+uv", PositionColorUV, 32, []int{0, 12, 24}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stride, tt.layout.Stride())
			for i, want := range tt.offsets {
				assert.Equal(t, want, tt.layout.Offset(i))
			}
		})
	}
}

func TestLayoutValidate(t *testing.T) {
	quad := []float32{
		0.5, 0.5, 0.0, 1.0, 1.0,
		0.5, -0.5, 0.0, 1.0, 0.0,
		-0.5, -0.5, 0.0, 0.0, 0.0,
		-0.5, 0.5, 0.0, 0.0, 1.0,
	}

	assert.NoError(t, PositionUV.Validate(quad, []uint32{0, 1, 3, 1, 2, 3}))
	assert.NoError(t, PositionUV.Validate(quad, nil))
	assert.Equal(t, 4, PositionUV.VertexCount(quad))

	assert.Error(t, PositionUV.Validate(quad, []uint32{0, 1, 4}), "index past the last vertex")
	assert.Error(t, PositionColor.Validate(quad, nil), "20 floats do not split into 6-float vertices")
	assert.Error(t, PositionUV.Validate(nil, nil))
	assert.Error(t, Layout{}.Validate(quad, nil))
	assert.Error(t, Layout{5}.Validate(quad, nil))
}
