package subdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/simplex"
)

// strip builds a 2x1 strip of four triangles spanning x in [0,2], so a
// two-slab decomposition cuts it roughly down the middle.
func strip(t *testing.T) (*mesh.Mesh, *attrs.Store) {
	t.Helper()
	m := mesh.New()
	s := attrs.NewStore()
	v := make([]simplex.Simplex0, 6)
	coords := []attrs.Vec2{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
	}
	for i, c := range coords {
		v[i] = m.InsertVertex()
		s.SetCurrent(v[i], c)
	}
	tris := [][3]int{{0, 1, 4}, {0, 4, 3}, {1, 2, 5}, {1, 5, 4}}
	for _, tri := range tris {
		_, err := m.InsertTriangle(v[tri[0]], v[tri[1]], v[tri[2]])
		require.NoError(t, err)
	}
	return m, s
}

func TestCreateSubdomainsPartitionsByXCoordinate(t *testing.T) {
	m, s := strip(t)
	p := param.New(param.WithNumberOfSubdomains(2))

	domains, err := SlabDecomposition{}.CreateSubdomains(p, m, s)
	require.NoError(t, err)
	require.Len(t, domains, 2)

	total := 0
	for _, d := range domains {
		total += len(d.Mesh.AllTriangles())
	}
	assert.Equal(t, 4, total)
}

func TestCreateSubdomainsFlagsSharedVerticesAsSubmeshBoundary(t *testing.T) {
	m, s := strip(t)
	p := param.New(param.WithNumberOfSubdomains(2))

	domains, err := SlabDecomposition{}.CreateSubdomains(p, m, s)
	require.NoError(t, err)

	cutFound := false
	for _, d := range domains {
		for _, v := range d.Mesh.AllVertices() {
			if d.Mesh.SubmeshBoundary(v) {
				cutFound = true
			}
		}
	}
	assert.True(t, cutFound)
}

func TestMergeSubdomainsIsIdentityForUnchangedSubmeshes(t *testing.T) {
	m, s := strip(t)
	p := param.New(param.WithNumberOfSubdomains(2))

	domains, err := SlabDecomposition{}.CreateSubdomains(p, m, s)
	require.NoError(t, err)

	err = SlabDecomposition{}.MergeSubdomains(domains, p, m, s)
	require.NoError(t, err)

	assert.Len(t, m.AllTriangles(), 4)
	assert.Len(t, m.AllVertices(), 6)
	for _, v := range m.AllVertices() {
		assert.False(t, m.SubmeshBoundary(v))
	}
}

func TestCreateSubdomainsWithSingleSlabKeepsWholeMeshInOneDomain(t *testing.T) {
	m, s := strip(t)
	p := param.New(param.WithNumberOfSubdomains(1))

	domains, err := SlabDecomposition{}.CreateSubdomains(p, m, s)
	require.NoError(t, err)
	require.Len(t, domains, 1)
	assert.Len(t, domains[0].Mesh.AllTriangles(), 4)
}
