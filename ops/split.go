package ops

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/logic"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/simplex"
)

// Split implements edge split (spec.md §4.5.1): a new vertex at the
// midpoint of e replaces e with two edges and doubles every incident
// triangle.
type Split struct {
	Params *param.Parameters
}

// Name implements Operation.
func (Split) Name() string { return "split" }

// Init implements Operation; split needs no global preparation.
func (Split) Init(*mesh.Mesh, *attrs.Store) {}

// UpdateLocalAttributes implements Operation; split always needs a plan.
func (Split) UpdateLocalAttributes(simplex.Simplex, *mesh.Mesh, *attrs.Store) bool {
	return false
}

// Plan implements Operation.
func (o Split) Plan(s simplex.Simplex, m *mesh.Mesh, store *attrs.Store) (*Plan, error) {
	e, ok := s.(simplex.Simplex1)
	if !ok {
		return nil, nil
	}
	if logic.IsSubmeshBoundary.Eval(m, store, e) || !m.IsValid(e) {
		return nil, nil
	}
	tris := m.TrianglesOf(e)
	if len(tris) == 0 {
		return nil, nil
	}

	v1, v2 := e.Vertices()
	mid := m.ReserveVertex()
	store.SetCurrent(mid, attrs.Mid(store.Current(v1), store.Current(v2)))

	newTris := make([]mesh.OrientedTriangle, 0, 2*len(tris))
	parentLUT2 := make(map[simplex.Simplex2]simplex.Simplex2, 2*len(tris))
	parentLUT1 := map[simplex.Simplex1]simplex.Simplex1{
		simplex.NewSimplex1(int(mid), int(v1)): e,
		simplex.NewSimplex1(int(mid), int(v2)): e,
	}

	for _, t := range tris {
		w := t.Opposite(e)
		tri1 := mesh.OrientedTriangle{V0: v1, V1: mid, V2: w}
		tri2 := mesh.OrientedTriangle{V0: mid, V1: v2, V2: w}
		newTris = append(newTris, tri1, tri2)
		parentLUT2[tri1.Canonical()] = t
		parentLUT2[tri2.Canonical()] = t

		if !o.Params.UseSparseEdgeAttributes {
			parentLUT1[simplex.NewSimplex1(int(mid), int(w))] = e
		}
	}

	return &Plan{
		ChangeSet: mesh.ChangeSet{
			NewTriangles: newTris,
			OldSet:       m.Star(e),
			ParentLUT2:   parentLUT2,
		},
		ParentLUT1:    parentLUT1,
		SplitEdge:     &e,
		SplitMidpoint: &mid,
	}, nil
}
