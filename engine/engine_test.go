package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/meshio"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/scheduler"
	"github.com/gritmesh/grit/simplex"
)

const squareText = `v 0 0
v 1 0
v 1 1
v 0 1
t 1 2 3
t 1 3 4
l 1 2 3 0
l 1 3 4 0
#
`

func TestUpdateConvergesWithEveryBatchDisabled(t *testing.T) {
	m, store, err := meshio.Load(strings.NewReader(squareText), nil)
	require.NoError(t, err)

	eng := New(m, store, nil)
	mon := &scheduler.CountMonitor{}
	require.NoError(t, eng.Update(param.New(), mon))
	assert.Equal(t, 0, mon.Total)
	assert.Len(t, eng.Mesh.AllTriangles(), 2)
}

func TestUpdateRunsEdgeFlipToConvergence(t *testing.T) {
	m, store, err := meshio.Load(strings.NewReader(squareText), nil)
	require.NoError(t, err)

	eng := New(m, store, nil)
	p := param.New(param.WithMaxIterations("edge_flip", 10))
	mon := &scheduler.CountMonitor{}
	require.NoError(t, eng.Update(p, mon))
	assert.Len(t, eng.Mesh.AllTriangles(), 2)
}

// A freshly loaded mesh only carries triangle labels (meshio's `l`
// lines); Update must seed every vertex's label set from its incident
// triangles before handing the mesh to the scheduler, or the move
// operation — which looks a vertex's target up by its store.Labels —
// would never have anything to act on.
func TestUpdateSeedsVertexLabelsAndAppliesMoveTarget(t *testing.T) {
	m, store, err := meshio.Load(strings.NewReader(squareText), nil)
	require.NoError(t, err)

	target := simplex.Simplex0(3) // vertex at (1, 1)
	store.SetTarget(target, 0, attrs.Vec2{X: 0.7, Y: 0.7})

	eng := New(m, store, nil)
	p := param.New(
		param.WithMaxIterations("move", 1),
		param.WithMaxIterations("scheduler", 1),
	)
	mon := &scheduler.CountMonitor{}
	require.NoError(t, eng.Update(p, mon))

	for _, v := range []simplex.Simplex0{1, 2, 3, 4} {
		assert.NotEmpty(t, eng.Store.Labels(v), "vertex %d should be labelled from its incident triangles", v)
	}

	pos := eng.Store.Current(target)
	assert.InDelta(t, 0.7, pos.X, 1e-9)
	assert.InDelta(t, 0.7, pos.Y, 1e-9)
}
