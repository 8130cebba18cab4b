package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gritmesh/grit/assign"
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/ops"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/quality"
	"github.com/gritmesh/grit/simplex"
)

func unitSquare(t *testing.T) (*mesh.Mesh, *attrs.Store) {
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

func TestAnalyzerSnapshotsSet(t *testing.T) {
	set := simplex.NewSet().AddV(simplex.Simplex0(1)).AddV(simplex.Simplex0(2))
	a := NewAnalyzer(set)
	require.True(t, a.HasNext())
	var seen []simplex.Simplex
	for a.HasNext() {
		seen = append(seen, a.Pop())
	}
	assert.Len(t, seen, 2)
	assert.False(t, a.HasNext())
}

func TestBatchRunCommitsFlipAcrossBothVerticesOfDiagonal(t *testing.T) {
	m, s := unitSquare(t)
	diag := simplex.NewSimplex1(1, 3)
	require.True(t, m.IsValid(diag))

	p := param.New(param.WithMaxIterations("edge_flip", 10))
	b := Batch{
		Name:      "edge_flip",
		Labels:    []simplex.Label{0},
		Dim:       attrs.DimEdge,
		Measure:   quality.AlwaysBad{},
		Operation: ops.Flip{},
		Strategy:  assign.Empty{},
		Params:    p,
	}

	n := b.Run(m, s)
	assert.Equal(t, 1, n)
	assert.False(t, m.IsValid(diag))
	assert.True(t, m.IsValid(simplex.NewSimplex1(2, 4)))
}

func TestBatchRunRespectsZeroIterationBudget(t *testing.T) {
	m, s := unitSquare(t)
	diag := simplex.NewSimplex1(1, 3)

	p := param.New()
	b := Batch{
		Name:      "edge_flip",
		Labels:    []simplex.Label{0},
		Dim:       attrs.DimEdge,
		Measure:   quality.AlwaysBad{},
		Operation: ops.Flip{},
		Strategy:  assign.Empty{},
		Params:    p,
	}

	n := b.Run(m, s)
	assert.Equal(t, 0, n)
	assert.True(t, m.IsValid(diag))
}

func TestBatchRunSplitRemovesOldAttributesAndAssignsNew(t *testing.T) {
	m, s := unitSquare(t)
	diag := simplex.NewSimplex1(1, 3)
	require.NoError(t, s.Create("foo", attrs.DimEdge))
	require.NoError(t, s.SetEdge("foo", diag, 7))

	p := param.New(param.WithMaxIterations("split", 10))
	b := Batch{
		Name:      "split",
		Labels:    []simplex.Label{0},
		Dim:       attrs.DimEdge,
		Measure:   quality.AlwaysBad{},
		Operation: ops.Split{Params: p},
		Strategy:  assign.Copy{},
		Params:    p,
	}

	n := b.Run(m, s)
	// AlwaysBad flags all five edges of the square and each is still valid
	// when reached, so all five are split; the diagonal's midpoint is
	// vertex 6, the second fresh id.
	assert.Equal(t, 5, n)
	assert.False(t, m.IsValid(diag))
	_, err := s.GetEdge("foo", diag)
	assert.Error(t, err)
	got, err := s.GetEdge("foo", simplex.NewSimplex1(1, 6))
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)
}
