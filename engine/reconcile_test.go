package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/simplex"
)

func twoPhaseMesh(t *testing.T) (*mesh.Mesh, *attrs.Store, simplex.Simplex0, simplex.Simplex0, simplex.Simplex0, simplex.Simplex0) {
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
	_, err := m.InsertTriangle(v1, v2, v3)
	require.NoError(t, err)
	t2, err := m.InsertTriangle(v1, v3, v4)
	require.NoError(t, err)
	m.SetLabel(t2, 1)
	return m, store, v1, v2, v3, v4
}

func TestReconcileVertexLabelsMatchesIncidentTriangles(t *testing.T) {
	m, store, v1, v2, v3, v4 := twoPhaseMesh(t)

	reconcileVertexLabels(m, store, param.New())

	// v1 and v3 are shared by both triangles; v2 only touches the
	// label-0 triangle, v4 only the label-1 one.
	assert.ElementsMatch(t, []simplex.Label{0, 1}, store.Labels(v1))
	assert.ElementsMatch(t, []simplex.Label{0}, store.Labels(v2))
	assert.ElementsMatch(t, []simplex.Label{0, 1}, store.Labels(v3))
	assert.ElementsMatch(t, []simplex.Label{1}, store.Labels(v4))
}

func TestReconcileVertexLabelsExcludesAmbient(t *testing.T) {
	m, store, _, v2, _, _ := twoPhaseMesh(t)
	p := param.New(param.WithAmbientLabel(0))

	reconcileVertexLabels(m, store, p)

	assert.Empty(t, store.Labels(v2)) // v2 only touches the label-0 triangle, which is now ambient
}

func TestReconcileVertexLabelsPreservesTargetForRetainedLabel(t *testing.T) {
	m, store, _, v2, _, _ := twoPhaseMesh(t)
	store.SetTarget(v2, 0, attrs.Vec2{X: 5, Y: 5})

	reconcileVertexLabels(m, store, param.New())
	reconcileVertexLabels(m, store, param.New())

	tgt, err := store.Target(v2, 0)
	require.NoError(t, err)
	assert.Equal(t, attrs.Vec2{X: 5, Y: 5}, tgt)
}
