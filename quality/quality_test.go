package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/simplex"
)

func squareMesh(t *testing.T) (*mesh.Mesh, *attrs.Store) {
	t.Helper()
	m := mesh.New()
	s := attrs.NewStore()
	v1 := m.InsertVertex()
	v2 := m.InsertVertex()
	v3 := m.InsertVertex()
	v4 := m.InsertVertex()
	s.SetCurrent(v1, attrs.Vec2{X: 0, Y: 0})
	s.SetCurrent(v2, attrs.Vec2{X: 1, Y: 0})
	s.SetCurrent(v3, attrs.Vec2{X: 1, Y: 1})
	s.SetCurrent(v4, attrs.Vec2{X: 0, Y: 1})
	_, err := m.InsertTriangle(v1, v2, v3)
	require.NoError(t, err)
	_, err = m.InsertTriangle(v1, v3, v4)
	require.NoError(t, err)
	return m, s
}

func TestDelaunayNudgedSquareDiagonalIsBad(t *testing.T) {
	m, s := squareMesh(t)
	diag := simplex.NewSimplex1(1, 3)
	// A unit square split along either diagonal is exactly co-circular;
	// nudge one corner in toward the diagonal to make the diagonal clearly
	// non-Delaunay (opposite angles about 136 + 90 degrees) and verify the
	// measure flags it.
	s.SetCurrent(simplex.Simplex0(2), attrs.Vec2{X: 0.7, Y: 0.3})
	bad := Delaunay{}.IsBad(m, s, diag)
	assert.True(t, bad)
}

func TestThresholdUpperAndLower(t *testing.T) {
	m, s := squareMesh(t)
	require.NoError(t, s.Create("refinement", attrs.DimEdge))
	e := simplex.NewSimplex1(1, 2)
	require.NoError(t, s.SetEdge("refinement", e, 0.5))

	up := Threshold{Attribute: "refinement", Mode: Upper}
	assert.True(t, up.IsBad(m, s, e)) // edge length 1.0 > bound 0.5

	low := Threshold{Attribute: "refinement", Mode: Lower}
	assert.False(t, low.IsBad(m, s, e))
}

func TestMaxMinAreaEdge(t *testing.T) {
	m, s := squareMesh(t)
	p := param.New(param.WithAreaThreshold("coarsening", 0, 0.9))
	q := MaxMinAreaEdge{Name: "coarsening", Label: 0, Params: p}
	t1 := simplex.NewSimplex2(1, 2, 3)
	assert.True(t, q.IsBad(m, s, t1))
}
