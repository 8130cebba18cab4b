package ops

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/logic"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/simplex"
)

const degenerateAreaEps = 1e-12

// Flip implements edge flip (spec.md §4.5.3): the two triangles sharing
// a non-interface, non-boundary edge are replaced by the two triangles
// sharing the opposite diagonal.
type Flip struct{}

// Name implements Operation.
func (Flip) Name() string { return "edge_flip" }

// Init implements Operation; flip needs no global preparation.
func (Flip) Init(*mesh.Mesh, *attrs.Store) {}

// UpdateLocalAttributes implements Operation; flip always needs a plan.
func (Flip) UpdateLocalAttributes(simplex.Simplex, *mesh.Mesh, *attrs.Store) bool {
	return false
}

// Plan implements Operation.
func (Flip) Plan(s simplex.Simplex, m *mesh.Mesh, store *attrs.Store) (*Plan, error) {
	e, ok := s.(simplex.Simplex1)
	if !ok {
		return nil, nil
	}
	if m.IsInterfaceEdge(e) || m.IsBoundaryEdge(e) || logic.IsSubmeshBoundary.Eval(m, store, e) {
		return nil, nil
	}
	tris := m.TrianglesOf(e)
	if len(tris) != 2 {
		return nil, nil
	}

	w1 := tris[0].Opposite(e)
	w2 := tris[1].Opposite(e)
	v1, v2 := e.Vertices()

	if mesh.Area(store.Current(w1), store.Current(w2), store.Current(v1)) <= degenerateAreaEps {
		return nil, nil
	}
	if mesh.Area(store.Current(w1), store.Current(w2), store.Current(v2)) <= degenerateAreaEps {
		return nil, nil
	}

	nt1 := mesh.OrientedTriangle{V0: w1, V1: w2, V2: v1}
	nt2 := mesh.OrientedTriangle{V0: w2, V1: w1, V2: v2}

	return &Plan{
		ChangeSet: mesh.ChangeSet{
			NewTriangles: []mesh.OrientedTriangle{nt1, nt2},
			OldSet:       m.Star(e),
			ParentLUT2: map[simplex.Simplex2]simplex.Simplex2{
				nt1.Canonical(): tris[0],
				nt2.Canonical(): tris[1],
			},
		},
	}, nil
}
