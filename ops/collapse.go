package ops

import (
	"math"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/simplex"
)

// FindCollapsable returns the subset of e's endpoints admissible as the
// collapsed (removed) vertex, per spec.md §4.5.6: never a submesh
// boundary vertex; never a boundary vertex when e itself is not a
// boundary edge; an interface vertex only when e is also interface and
// the interface is locally a 1-manifold at that vertex (exactly two
// incident interface edges). Results are sorted ascending by vertex id.
func FindCollapsable(m *mesh.Mesh, e simplex.Simplex1) []simplex.Simplex0 {
	v1, v2 := e.Vertices()
	eIsBoundary := m.IsBoundaryEdge(e)
	eIsInterface := m.IsInterfaceEdge(e)

	var out []simplex.Simplex0
	for _, v := range [2]simplex.Simplex0{v1, v2} {
		if m.SubmeshBoundary(v) {
			continue
		}
		if !eIsBoundary && m.IsBoundaryVertex(v) {
			continue
		}
		if m.IsInterfaceVertex(v) {
			if !eIsInterface {
				continue
			}
			count := 0
			for _, ie := range m.IncidentEdges(v) {
				if m.IsInterfaceEdge(ie) {
					count++
				}
			}
			if count != 2 {
				continue
			}
		}
		out = append(out, v)
	}
	if len(out) == 2 && out[0] > out[1] {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// Collapse implements edge collapse (spec.md §4.5.2).
type Collapse struct {
	Params    *param.Parameters
	ParamName string // area-threshold lookup name, typically "coarsening"
}

// Name implements Operation.
func (Collapse) Name() string { return "coarsening" }

// Init implements Operation; collapse needs no global preparation.
func (Collapse) Init(*mesh.Mesh, *attrs.Store) {}

// UpdateLocalAttributes implements Operation; collapse always needs a plan.
func (Collapse) UpdateLocalAttributes(simplex.Simplex, *mesh.Mesh, *attrs.Store) bool {
	return false
}

// Plan implements Operation.
func (o Collapse) Plan(s simplex.Simplex, m *mesh.Mesh, store *attrs.Store) (*Plan, error) {
	e, ok := s.(simplex.Simplex1)
	if !ok {
		return nil, nil
	}
	candidates := FindCollapsable(m, e)
	if len(candidates) == 0 {
		return nil, nil
	}
	// DESIGN.md open-question #1: smallest vertex id is always the
	// collapsed (removed) vertex among admissible candidates.
	vf := candidates[0]
	v1, v2 := e.Vertices()
	vt := v1
	if vf == v1 {
		vt = v2
	}

	if !simplicesEqual(simplex.Intersection(linkOf(m, v1), linkOf(m, v2)), linkOf(m, e)) {
		return nil, nil
	}

	starVf := m.Star(vf)
	starE := m.Star(e)

	newTris := make([]mesh.OrientedTriangle, 0, starVf.Len2())
	parentLUT2 := make(map[simplex.Simplex2]simplex.Simplex2, starVf.Len2())
	toReconnect := simplex.Difference(starVf, starE)
	areaDelta := make(map[simplex.Label]float64)

	for _, t := range toReconnect.Triangles() {
		nt := substituteVertex(t, vf, vt)
		newTris = append(newTris, nt)
		parentLUT2[nt.Canonical()] = t

		lbl := m.Label(t)
		areaDelta[lbl] -= m.TriangleArea(t, store)
		areaDelta[lbl] += mesh.Area(store.Current(nt.V0), store.Current(nt.V1), store.Current(nt.V2))
	}

	if o.Params != nil {
		for lbl, d := range areaDelta {
			bound := o.Params.GetAreaThreshold(o.ParamName, lbl)
			if bound > 0 && math.Abs(d) > bound {
				return nil, nil
			}
		}
	}

	parentLUT1 := make(map[simplex.Simplex1]simplex.Simplex1)
	closureStarE := m.Closure(starE)
	for _, oe := range simplex.Difference(starVf, closureStarE).Edges() {
		a, b := oe.Vertices()
		if a == vf {
			a = vt
		}
		if b == vf {
			b = vt
		}
		parentLUT1[simplex.NewSimplex1(int(a), int(b))] = oe
	}

	return &Plan{
		ChangeSet: mesh.ChangeSet{
			NewTriangles: newTris,
			OldSet:       starVf,
			ParentLUT2:   parentLUT2,
		},
		ParentLUT1: parentLUT1,
	}, nil
}

func simplicesEqual(a, b simplex.Set) bool {
	if a.Len0() != b.Len0() || a.Len1() != b.Len1() || a.Len2() != b.Len2() {
		return false
	}
	for _, v := range a.Vertices() {
		if !b.HasV(v) {
			return false
		}
	}
	for _, e := range a.Edges() {
		if !b.HasE(e) {
			return false
		}
	}
	for _, t := range a.Triangles() {
		if !b.HasT(t) {
			return false
		}
	}
	return true
}
