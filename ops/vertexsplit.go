package ops

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/simplex"
)

// VertexSplit implements spec.md §4.5.5: an interface vertex whose
// phases disagree on where it should go is duplicated, one phase's
// triangles following the copy to an inward offset position.
type VertexSplit struct {
	Params       *param.Parameters
	ParamName    string // "vertex_split" by convention
	AmbientLabel simplex.Label
	UseAmbient   bool
}

// Name implements Operation.
func (VertexSplit) Name() string { return "vertex_split" }

// Init implements Operation; vertex-split needs no global preparation.
func (VertexSplit) Init(*mesh.Mesh, *attrs.Store) {}

// UpdateLocalAttributes implements Operation; vertex-split always needs
// a plan.
func (VertexSplit) UpdateLocalAttributes(simplex.Simplex, *mesh.Mesh, *attrs.Store) bool {
	return false
}

// Plan implements Operation.
func (o VertexSplit) Plan(s simplex.Simplex, m *mesh.Mesh, store *attrs.Store) (*Plan, error) {
	v, ok := s.(simplex.Simplex0)
	if !ok {
		return nil, nil
	}
	if m.SubmeshBoundary(v) || !m.IsInterfaceVertex(v) {
		return nil, nil
	}
	labels := nonAmbientLabels(m.LabelsAt(v), o.AmbientLabel, o.UseAmbient)
	if len(labels) < 2 {
		return nil, nil
	}

	chosen, found := pickDivergentLabel(store, v, labels, o.Params.GetDistanceThreshold(o.ParamName, 0))
	if !found {
		return nil, nil
	}

	vNew := m.ReserveVertex()
	offsetPos := computeOffsetPosition(store, v, chosen, o.Params.GetStrength(o.ParamName, chosen))

	oldSet := simplex.NewSet()
	newTris := make([]mesh.OrientedTriangle, 0)
	parentLUT2 := make(map[simplex.Simplex2]simplex.Simplex2)
	for _, t := range m.TrianglesAt(v) {
		if m.Label(t) != chosen {
			continue
		}
		oldSet = oldSet.AddT(t)
		nt := substituteVertex(t, v, vNew)
		newTris = append(newTris, nt)
		parentLUT2[nt.Canonical()] = t
	}
	if len(newTris) == 0 {
		return nil, nil
	}

	return &Plan{
		ChangeSet: mesh.ChangeSet{
			NewTriangles: newTris,
			OldSet:       oldSet,
			ParentLUT2:   parentLUT2,
		},
		VSOriginal:  &v,
		VSCopy:      &vNew,
		VSLabel:     chosen,
		VSOffsetPos: offsetPos,
	}, nil
}

func pickDivergentLabel(store *attrs.Store, v simplex.Simplex0, labels []simplex.Label, threshold float64) (simplex.Label, bool) {
	for i := range labels {
		for j := range labels {
			if i == j {
				continue
			}
			ti, erri := store.Target(v, labels[i])
			tj, errj := store.Target(v, labels[j])
			if erri != nil || errj != nil {
				continue
			}
			if dist(ti, tj) > threshold {
				return labels[i], true
			}
		}
	}
	return 0, false
}

// computeOffsetPosition places the duplicate vertex along the direction
// from v's current position toward its target under label, scaled by
// strength; falls back to v's own current position when no displacement
// is meaningful (coincident current/target, or zero strength).
func computeOffsetPosition(store *attrs.Store, v simplex.Simplex0, label simplex.Label, strength float64) attrs.Vec2 {
	cur := store.Current(v)
	tgt, err := store.Target(v, label)
	if err != nil || strength <= 0 {
		return cur
	}
	dir := tgt.Sub(cur)
	length := dist(cur, tgt)
	if length <= degenerateAreaEps {
		return cur
	}
	return cur.Add(dir.Scale(strength / length))
}
