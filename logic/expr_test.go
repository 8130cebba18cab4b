package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/simplex"
)

func twoPhaseSquare(t *testing.T) (*mesh.Mesh, *attrs.Store, simplex.Simplex1) {
	t.Helper()
	m := mesh.New()
	store := attrs.NewStore()
	v1 := m.InsertVertex()
	v2 := m.InsertVertex()
	v3 := m.InsertVertex()
	v4 := m.InsertVertex()
	store.SetCurrent(v1, attrs.Vec2{X: 0, Y: 0})
	store.SetCurrent(v2, attrs.Vec2{X: 1, Y: 0})
	store.SetCurrent(v3, attrs.Vec2{X: 1, Y: 1})
	store.SetCurrent(v4, attrs.Vec2{X: 0, Y: 1})
	t1, err := m.InsertTriangle(v1, v2, v3)
	require.NoError(t, err)
	t2, err := m.InsertTriangle(v1, v3, v4)
	require.NoError(t, err)
	m.SetLabel(t1, 1)
	m.SetLabel(t2, 2)
	diag := simplex.NewSimplex1(int(v1), int(v3))
	return m, store, diag
}

func TestInPhaseAndInterface(t *testing.T) {
	m, store, diag := twoPhaseSquare(t)
	assert.True(t, IsInterface.Eval(m, store, diag))
	assert.True(t, InPhase(1).Eval(m, store, diag))
	assert.True(t, InPhase(2).Eval(m, store, diag))
	assert.False(t, InPhase(9).Eval(m, store, diag))
}

func TestCombinators(t *testing.T) {
	m, store, diag := twoPhaseSquare(t)
	expr := And(IsInterface, Not(IsBoundary))
	assert.True(t, expr.Eval(m, store, diag))

	always := Or(Bool(false), Bool(true))
	assert.True(t, always.Eval(m, store, diag))
}

func TestIsDimension(t *testing.T) {
	m, store, diag := twoPhaseSquare(t)
	assert.True(t, IsDimension(1).Eval(m, store, diag))
	assert.False(t, IsDimension(2).Eval(m, store, diag))
}
