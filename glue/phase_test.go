package glue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
)

func twoPhaseSquare(t *testing.T) (*mesh.Mesh, *attrs.Store) {
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
	m.SetLabel(t1, 1)
	m.SetLabel(t2, 2)
	return m, s
}

func TestNewPhaseProjectsOnlyMatchingLabel(t *testing.T) {
	m, s := twoPhaseSquare(t)
	phase := NewPhase(m, s, 1)
	assert.Equal(t, 1, phase.NumTriangles())
	assert.Equal(t, 3, phase.NumVertices())
}

func TestPhaseLocalIndexRoundTrips(t *testing.T) {
	m, s := twoPhaseSquare(t)
	phase := NewPhase(m, s, 1)
	for local := 0; local < phase.NumVertices(); local++ {
		g := phase.GlobalVertex(local)
		got, ok := phase.LocalIndex(g)
		require.True(t, ok)
		assert.Equal(t, local, got)
	}
}

func TestPhaseReadWriteCoordsRoundTrips(t *testing.T) {
	m, s := twoPhaseSquare(t)
	phase := NewPhase(m, s, 1)
	coords := phase.ReadCoords()
	for i := range coords {
		coords[i].X += 10
	}
	require.NoError(t, phase.WriteCoords(coords))

	for i, c := range coords {
		assert.Equal(t, c, s.Current(phase.GlobalVertex(i)))
	}
}

func TestPhaseWriteCoordsRejectsWrongLength(t *testing.T) {
	m, s := twoPhaseSquare(t)
	phase := NewPhase(m, s, 1)
	err := phase.WriteCoords(make([]attrs.Vec2, phase.NumVertices()+1))
	assert.Error(t, err)
}

func TestPhaseNeighboursAreSymmetric(t *testing.T) {
	m, s := twoPhaseSquare(t)
	phase := NewPhase(m, s, 1)
	for local := 0; local < phase.NumVertices(); local++ {
		for _, nb := range phase.Neighbours(local) {
			found := false
			for _, back := range phase.Neighbours(nb) {
				if back == local {
					found = true
				}
			}
			assert.True(t, found)
		}
	}
}

func TestPhaseReadWriteAttributeRoundTrips(t *testing.T) {
	m, s := twoPhaseSquare(t)
	require.NoError(t, s.Create("weight", attrs.DimVertex))
	phase := NewPhase(m, s, 1)
	values := make([]float64, phase.NumVertices())
	for i := range values {
		values[i] = float64(i) + 0.5
	}
	for i := 0; i < phase.NumVertices(); i++ {
		s.AddLabel(phase.GlobalVertex(i), 1)
	}
	require.NoError(t, phase.WriteAttribute("weight", values))
	assert.Equal(t, values, phase.ReadAttribute("weight"))
}
