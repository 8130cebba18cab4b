package ops

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/simplex"
)

// InterfaceSmoothing implements the interface-straightening variant of
// spec.md §4.5.8: each 2-valent interface vertex is pulled toward the
// midpoint of its two interface neighbours.
type InterfaceSmoothing struct {
	Params    *param.Parameters
	ParamName string // "interface_smoothing" by convention
}

// Name implements Operation.
func (InterfaceSmoothing) Name() string { return "interface_smoothing" }

// Init implements Operation; no global preparation needed.
func (InterfaceSmoothing) Init(*mesh.Mesh, *attrs.Store) {}

// UpdateLocalAttributes implements Operation.
func (o InterfaceSmoothing) UpdateLocalAttributes(s simplex.Simplex, m *mesh.Mesh, store *attrs.Store) bool {
	v, ok := s.(simplex.Simplex0)
	if !ok {
		return false
	}
	if m.SubmeshBoundary(v) || !m.IsInterfaceVertex(v) {
		return true
	}
	var neighbours []simplex.Simplex0
	for _, e := range m.IncidentEdges(v) {
		if m.IsInterfaceEdge(e) {
			neighbours = append(neighbours, e.Other(v))
		}
	}
	if len(neighbours) != 2 {
		return true
	}
	avg := attrs.Mid(store.Current(neighbours[0]), store.Current(neighbours[1]))
	strength := o.Params.GetStrength(o.ParamName, 0)
	if strength <= 0 {
		strength = 1
	}
	cur := store.Current(v)
	store.SetCurrent(v, cur.Add(avg.Sub(cur).Scale(strength)))
	return true
}

// Plan implements Operation; smoothing never changes topology.
func (InterfaceSmoothing) Plan(simplex.Simplex, *mesh.Mesh, *attrs.Store) (*Plan, error) {
	return nil, nil
}

// LaplacianSmoothing implements the bulk variant of spec.md §4.5.8: each
// interior, non-interface vertex is pulled toward the average of its
// 1-ring neighbours.
type LaplacianSmoothing struct {
	Params    *param.Parameters
	ParamName string // "smoothing" by convention
}

// Name implements Operation.
func (LaplacianSmoothing) Name() string { return "smoothing" }

// Init implements Operation; no global preparation needed.
func (LaplacianSmoothing) Init(*mesh.Mesh, *attrs.Store) {}

// UpdateLocalAttributes implements Operation.
func (o LaplacianSmoothing) UpdateLocalAttributes(s simplex.Simplex, m *mesh.Mesh, store *attrs.Store) bool {
	v, ok := s.(simplex.Simplex0)
	if !ok {
		return false
	}
	if m.SubmeshBoundary(v) || m.IsBoundaryVertex(v) || m.IsInterfaceVertex(v) {
		return true
	}
	edges := m.IncidentEdges(v)
	if len(edges) == 0 {
		return true
	}
	sum := attrs.Vec2{}
	for _, e := range edges {
		sum = sum.Add(store.Current(e.Other(v)))
	}
	avg := sum.Scale(1.0 / float64(len(edges)))
	strength := o.Params.GetStrength(o.ParamName, 0)
	if strength <= 0 {
		strength = 1
	}
	cur := store.Current(v)
	store.SetCurrent(v, cur.Add(avg.Sub(cur).Scale(strength)))
	return true
}

// Plan implements Operation; smoothing never changes topology.
func (LaplacianSmoothing) Plan(simplex.Simplex, *mesh.Mesh, *attrs.Store) (*Plan, error) {
	return nil, nil
}
