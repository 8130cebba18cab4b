package ops

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/simplex"
)

// Merge implements the proximity-driven triangle split of spec.md
// §4.5.4: a thin sliver between two interface vertices is collapsed by
// re-cutting the local quadrilateral along its other diagonal.
type Merge struct{}

// Name implements Operation.
func (Merge) Name() string { return "merge" }

// Init implements Operation; merge needs no global preparation.
func (Merge) Init(*mesh.Mesh, *attrs.Store) {}

// UpdateLocalAttributes implements Operation; merge always needs a plan.
func (Merge) UpdateLocalAttributes(simplex.Simplex, *mesh.Mesh, *attrs.Store) bool {
	return false
}

// Plan implements Operation. The preconditions (longest edge is
// interface, its opposite vertex is interface and within the configured
// distance/angle thresholds) are the same ones quality.Merge tests; Plan
// re-derives the geometry needed to build the replacement triangles
// rather than trusting the analyzer blindly, so it is safe to call
// directly in tests.
func (Merge) Plan(s simplex.Simplex, m *mesh.Mesh, store *attrs.Store) (*Plan, error) {
	t, ok := s.(simplex.Simplex2)
	if !ok {
		return nil, nil
	}
	e := longestEdgeOf(t, store)
	if !m.IsInterfaceEdge(e) {
		return nil, nil
	}
	vo := t.Opposite(e)
	if !m.IsInterfaceVertex(vo) {
		return nil, nil
	}
	tris := m.TrianglesOf(e)
	if len(tris) != 2 {
		return nil, nil
	}
	other := tris[0]
	if other == t {
		other = tris[1]
	}
	w := other.Opposite(e)
	v1, v2 := e.Vertices()

	if mesh.Area(store.Current(w), store.Current(vo), store.Current(v1)) <= degenerateAreaEps {
		return nil, nil
	}
	if mesh.Area(store.Current(w), store.Current(vo), store.Current(v2)) <= degenerateAreaEps {
		return nil, nil
	}

	nt1 := mesh.OrientedTriangle{V0: w, V1: vo, V2: v1}
	nt2 := mesh.OrientedTriangle{V0: w, V1: vo, V2: v2}
	newEdge := simplex.NewSimplex1(int(w), int(vo))

	return &Plan{
		ChangeSet: mesh.ChangeSet{
			NewTriangles: []mesh.OrientedTriangle{nt1, nt2},
			OldSet:       m.Star(e),
			ParentLUT2: map[simplex.Simplex2]simplex.Simplex2{
				nt1.Canonical(): t,
				nt2.Canonical(): other,
			},
		},
		ParentLUT1: map[simplex.Simplex1]simplex.Simplex1{newEdge: e},
	}, nil
}
