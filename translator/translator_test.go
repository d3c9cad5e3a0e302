package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const esslFragment = `#version 300 es
precision mediump float;
uniform vec4 ourColor;
out vec4 FragColor;
void main() {
    FragColor = ourColor;
}
`

func TestIsESSL(t *testing.T) {
	assert.True(t, IsESSL(esslFragment))
	assert.True(t, IsESSL("\n// header\n#version 300 es\nvoid main() {}"))
	assert.False(t, IsESSL("#version 330 core\nvoid main() {}"))
	assert.False(t, IsESSL("void main() {}"))
	assert.False(t, IsESSL(""))
}

func TestIsESSLIgnoresComments(t *testing.T) {
	assert.True(t, IsESSL("#version 300 es // webgl2\nvoid main() {}"))
	assert.True(t, IsESSL("/* shared header */\n#version 300 es\nvoid main() {}"))
	assert.True(t, IsESSL("/*\n * multi-line\n * header\n */\n#version 300 es\n"))
	assert.True(t, IsESSL("#version /* inline */ 300 es\n"))
	assert.False(t, IsESSL("/* #version 300 es */\n#version 330 core\n"))
	assert.False(t, IsESSL("// #version 300 es\n#version 330 core\n"))
	assert.False(t, IsESSL("/* unterminated\n#version 300 es\n"))
}

func TestToDesktop(t *testing.T) {
	res, err := ToDesktop(esslFragment, "fragment")
	require.NoError(t, err)

	assert.Contains(t, res.Code, "#version 410")
	assert.Contains(t, res.MappedNames, "ourColor")
	assert.Contains(t, res.MappedNames, "FragColor", "outputs are mapped too")
}

func TestToDesktopInvalidSource(t *testing.T) {
	_, err := ToDesktop("#version 300 es\nvoid main() { this is not glsl }\n", "fragment")
	assert.Error(t, err)
}

func TestToDesktopUnknownStage(t *testing.T) {
	_, err := ToDesktop(esslFragment, "geometry")
	assert.Error(t, err)
}
