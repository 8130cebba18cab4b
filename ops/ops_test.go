package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/simplex"
)

// square builds a unit square split along the (1,3) diagonal, both
// triangles in the same phase (label 0) unless relabeled by the caller.
func square(t *testing.T) (*mesh.Mesh, *attrs.Store, simplex.Simplex2, simplex.Simplex2) {
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
	t1, err := m.InsertTriangle(v1, v2, v3)
	require.NoError(t, err)
	t2, err := m.InsertTriangle(v1, v3, v4)
	require.NoError(t, err)
	return m, s, t1, t2
}

func TestSplitDoublesIncidentTriangles(t *testing.T) {
	m, s, t1, t2 := square(t)
	e := simplex.NewSimplex1(1, 3)
	require.True(t, m.IsValid(e))

	op := Split{Params: param.New()}
	plan, err := op.Plan(e, m, s)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Len(t, plan.NewTriangles, 4)
	assert.True(t, plan.OldSet.HasT(t1))
	assert.True(t, plan.OldSet.HasT(t2))
	assert.True(t, plan.OldSet.HasE(e))
	require.NotNil(t, plan.SplitMidpoint)

	ids, err := m.Replace(plan.ChangeSet, s)
	require.NoError(t, err)
	assert.Len(t, ids, 4)
	assert.False(t, m.IsValid(e))
	assert.Len(t, m.AllTriangles(), 4)
}

func TestFlipSwapsDiagonal(t *testing.T) {
	m, s, _, _ := square(t)
	e := simplex.NewSimplex1(1, 3)

	op := Flip{}
	plan, err := op.Plan(e, m, s)
	require.NoError(t, err)
	require.NotNil(t, plan)

	_, err = m.Replace(plan.ChangeSet, s)
	require.NoError(t, err)
	assert.False(t, m.IsValid(e))
	assert.True(t, m.IsValid(simplex.NewSimplex1(2, 4)))
}

func TestCollapseRemovesDegreeTwoVertex(t *testing.T) {
	// A thin ear: v5 connects only to v1 and v2 via a short sliver
	// triangle sharing edge (v1,v2) with the square's first triangle.
	m := mesh.New()
	s := attrs.NewStore()
	v1 := m.InsertVertex()
	v2 := m.InsertVertex()
	v3 := m.InsertVertex()
	v5 := m.InsertVertex()
	s.SetCurrent(v1, attrs.Vec2{X: 0, Y: 0})
	s.SetCurrent(v2, attrs.Vec2{X: 1, Y: 0})
	s.SetCurrent(v3, attrs.Vec2{X: 1, Y: 1})
	s.SetCurrent(v5, attrs.Vec2{X: 0.5, Y: -0.01})
	_, err := m.InsertTriangle(v1, v2, v3)
	require.NoError(t, err)
	_, err = m.InsertTriangle(v2, v1, v5)
	require.NoError(t, err)
	// v1 carries the rest of the mesh; only the ear tip v5 should be
	// admissible for collapse here.
	m.SetSubmeshBoundary(v1, true)

	e := simplex.NewSimplex1(int(v1), int(v5))
	candidates := FindCollapsable(m, e)
	require.Equal(t, []simplex.Simplex0{v5}, candidates)

	op := Collapse{Params: param.New(), ParamName: "coarsening"}
	plan, err := op.Plan(e, m, s)
	require.NoError(t, err)
	require.NotNil(t, plan)

	_, err = m.Replace(plan.ChangeSet, s)
	require.NoError(t, err)
	assert.False(t, m.HasVertex(v5))
}

func TestVertexSplitDuplicatesDivergentVertex(t *testing.T) {
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
	t1, err := m.InsertTriangle(v1, v2, v3)
	require.NoError(t, err)
	t2, err := m.InsertTriangle(v1, v3, v4)
	require.NoError(t, err)
	m.SetLabel(t1, 1)
	m.SetLabel(t2, 2)

	s.AddLabel(v1, 1)
	s.AddLabel(v1, 2)
	s.SetTarget(v1, 1, attrs.Vec2{X: -1, Y: -1})
	s.SetTarget(v1, 2, attrs.Vec2{X: 1, Y: 1})

	p := param.New(param.WithDistanceThreshold("vertex_split", 1, 0.1), param.WithStrength("vertex_split", 1, 0.05))
	op := VertexSplit{Params: p, ParamName: "vertex_split"}
	plan, err := op.Plan(v1, m, s)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, simplex.Label(1), plan.VSLabel)
	require.NotNil(t, plan.VSCopy)

	_, err = m.Replace(plan.ChangeSet, s)
	require.NoError(t, err)
	assert.True(t, m.HasVertex(*plan.VSCopy))
}

func TestMergeCollapsesSliver(t *testing.T) {
	m := mesh.New()
	s := attrs.NewStore()
	v1 := m.InsertVertex()
	v2 := m.InsertVertex()
	vo := m.InsertVertex()
	w := m.InsertVertex()
	x := m.InsertVertex()
	s.SetCurrent(v1, attrs.Vec2{X: 0, Y: 0})
	s.SetCurrent(v2, attrs.Vec2{X: 1, Y: 0})
	s.SetCurrent(vo, attrs.Vec2{X: 0.5, Y: 0.05})
	s.SetCurrent(w, attrs.Vec2{X: 0.5, Y: -1})
	s.SetCurrent(x, attrs.Vec2{X: -0.5, Y: 0.05})

	tTop, err := m.InsertTriangle(v1, v2, vo)
	require.NoError(t, err)
	tBot, err := m.InsertTriangle(v2, v1, w)
	require.NoError(t, err)
	// Gives vo an incident interface edge (v1,vo), shared with a
	// differently-labeled triangle, so vo itself counts as interface.
	t3, err := m.InsertTriangle(vo, v1, x)
	require.NoError(t, err)
	m.SetLabel(tTop, 1)
	m.SetLabel(tBot, 2)
	m.SetLabel(t3, 2)

	op := Merge{}
	plan, err := op.Plan(tTop, m, s)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Len(t, plan.NewTriangles, 2)

	_, err = m.Replace(plan.ChangeSet, s)
	require.NoError(t, err)
	assert.True(t, m.IsValid(simplex.NewSimplex1(int(w), int(vo))))
}
