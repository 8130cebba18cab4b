package meshio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/simplex"
)

const squareText = `v 0 0
v 1 0
v 1 1
v 0 1
t 1 2 3
t 1 3 4
l 1 2 3 5
l 1 3 4 7
#
`

func TestLoadParsesVerticesTrianglesAndLabels(t *testing.T) {
	m, s, err := Load(strings.NewReader(squareText), nil)
	require.NoError(t, err)
	assert.Len(t, m.AllVertices(), 4)
	assert.Len(t, m.AllTriangles(), 2)

	v1 := simplex.Simplex0(1)
	assert.Equal(t, attrs.Vec2{X: 0, Y: 0}, s.Current(v1))

	t1 := simplex.NewSimplex2(1, 2, 3)
	t2 := simplex.NewSimplex2(1, 3, 4)
	assert.Equal(t, simplex.Label(5), m.Label(t1))
	assert.Equal(t, simplex.Label(7), m.Label(t2))
}

func TestLoadStopsAtHashSentinel(t *testing.T) {
	text := "v 0 0\nv 1 0\nv 0 1\nt 1 2 3\n#\nv 9 9\n"
	m, _, err := Load(strings.NewReader(text), nil)
	require.NoError(t, err)
	assert.Len(t, m.AllVertices(), 3)
}

func TestLoadRejectsOutOfRangeVertexIndex(t *testing.T) {
	text := "v 0 0\nv 1 0\nv 0 1\nt 1 2 9\n"
	_, _, err := Load(strings.NewReader(text), nil)
	assert.Error(t, err)
}

func TestLoadMshIsUnsupported(t *testing.T) {
	_, _, err := LoadMsh(strings.NewReader(""), nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteThenLoadRoundTripsTopology(t *testing.T) {
	m, s, err := Load(strings.NewReader(squareText), nil)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, Write(&buf, m, s))

	m2, s2, err := Load(strings.NewReader(buf.String()), nil)
	require.NoError(t, err)
	assert.Len(t, m2.AllVertices(), len(m.AllVertices()))
	assert.Len(t, m2.AllTriangles(), len(m.AllTriangles()))
	assert.Equal(t, s.Current(simplex.Simplex0(1)), s2.Current(simplex.Simplex0(1)))
}

func TestWriteEmitsDeterministicVertexOrder(t *testing.T) {
	m, s, err := Load(strings.NewReader(squareText), nil)
	require.NoError(t, err)

	var first, second strings.Builder
	require.NoError(t, Write(&first, m, s))
	require.NoError(t, Write(&second, m, s))
	assert.Equal(t, first.String(), second.String())
}
