package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/giterr"
	"github.com/gritmesh/grit/simplex"
)

func twoTriangleSquare(t *testing.T) (*Mesh, *attrs.Store, simplex.Simplex0, simplex.Simplex0, simplex.Simplex0, simplex.Simplex0) {
	t.Helper()
	m := New()
	store := attrs.NewStore()
	v1 := m.InsertVertex()
	v2 := m.InsertVertex()
	v3 := m.InsertVertex()
	v4 := m.InsertVertex()
	store.SetCurrent(v1, attrs.Vec2{X: 0, Y: 0})
	store.SetCurrent(v2, attrs.Vec2{X: 1, Y: 0})
	store.SetCurrent(v3, attrs.Vec2{X: 1, Y: 1})
	store.SetCurrent(v4, attrs.Vec2{X: 0, Y: 1})
	_, err := m.InsertTriangle(v1, v2, v3)
	require.NoError(t, err)
	_, err = m.InsertTriangle(v1, v3, v4)
	require.NoError(t, err)
	return m, store, v1, v2, v3, v4
}

func TestInsertTriangleRejectsDegenerate(t *testing.T) {
	m := New()
	v1 := m.InsertVertex()
	v2 := m.InsertVertex()
	_, err := m.InsertTriangle(v1, v1, v2)
	assert.ErrorIs(t, err, giterr.ErrInvalidGeometry)
}

func TestInsertTriangleRejectsFan(t *testing.T) {
	m := New()
	v1 := m.InsertVertex()
	v2 := m.InsertVertex()
	v3 := m.InsertVertex()
	v4 := m.InsertVertex()
	_, err := m.InsertTriangle(v1, v2, v3)
	require.NoError(t, err)
	_, err = m.InsertTriangle(v1, v2, v4)
	require.NoError(t, err) // second incident triangle on edge(v1,v2) is fine

	v5 := m.InsertVertex()
	_, err = m.InsertTriangle(v1, v2, v5)
	assert.ErrorIs(t, err, giterr.ErrTopologyViolation)
}

func TestInvariantEveryEdgeAtMostTwoTriangles(t *testing.T) {
	m, _, v1, v2, v3, _ := twoTriangleSquare(t)
	for _, e := range m.AllEdges() {
		tris := m.TrianglesOf(e)
		assert.GreaterOrEqual(t, len(tris), 1)
		assert.LessOrEqual(t, len(tris), 2)
	}
	assert.True(t, m.IsInterfaceEdge(simplex.NewSimplex1(int(v1), int(v3))) == false)
	_ = v2
}

func TestStarClosureContainment(t *testing.T) {
	m, _, v1, _, _, _ := twoTriangleSquare(t)
	star := m.Star(v1)
	closure := m.ClosureOf(v1)
	// star(closure(s)) ⊇ {s} and closure(star(s)) ⊇ {s}
	assert.True(t, m.StarSet(closure).HasV(v1))
	assert.True(t, m.Closure(star).HasV(v1))
}

func TestReplaceRejectsInvertedTriangle(t *testing.T) {
	m, store, v1, v2, v3, _ := twoTriangleSquare(t)
	old := simplex.NewSet()
	old = old.AddT(simplex.NewSimplex2(int(v1), int(v2), int(v3)))
	cs := ChangeSet{
		NewTriangles: []OrientedTriangle{{V0: v1, V1: v2, V2: v3}},
		OldSet:       old,
		ParentLUT2: map[simplex.Simplex2]simplex.Simplex2{
			simplex.NewSimplex2(int(v1), int(v2), int(v3)): simplex.NewSimplex2(int(v1), int(v2), int(v3)),
		},
	}
	// Force a degenerate placement to trigger rejection.
	store.SetCurrent(v3, store.Current(v1))
	_, err := m.Replace(cs, store)
	assert.ErrorIs(t, err, giterr.ErrTopologyViolation)
}

func TestReplaceIsAtomicOnFailure(t *testing.T) {
	m, store, v1, v2, v3, v4 := twoTriangleSquare(t)
	before := len(m.AllTriangles())

	old := simplex.NewSet().AddT(simplex.NewSimplex2(int(v1), int(v3), int(v4)))
	store.SetCurrent(v4, store.Current(v1)) // degenerate
	cs := ChangeSet{
		NewTriangles: []OrientedTriangle{{V0: v1, V1: v3, V2: v4}},
		OldSet:       old,
		ParentLUT2: map[simplex.Simplex2]simplex.Simplex2{
			simplex.NewSimplex2(int(v1), int(v3), int(v4)): simplex.NewSimplex2(int(v1), int(v3), int(v4)),
		},
	}
	_, err := m.Replace(cs, store)
	assert.Error(t, err)
	assert.Equal(t, before, len(m.AllTriangles()))
	_ = v2
}
