package batch

import (
	"github.com/gritmesh/grit/assign"
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/logic"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/ops"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/quality"
	"github.com/gritmesh/grit/simplex"
)

// Batch is one named pass of spec.md §4.8: for every label in Labels, scan
// the phase's Dim-dimensional simplex set once and, for each simplex the
// quality Measure flags as bad, either let Operation update it in place or
// commit a Plan through Strategy and mesh.Replace.
type Batch struct {
	Name      string
	Labels    []simplex.Label
	Dim       attrs.Dim
	Condition logic.Expr // optional extra guard, e.g. logic.Not(logic.IsSubmeshBoundary)
	Measure   quality.Measure
	Operation ops.Operation
	Strategy  assign.Strategy
	Params    *param.Parameters
}

// Run executes one batch pass and returns the number of simplices the
// operation actually handled (in-place updates plus committed plans),
// the convergence signal the caller's pipeline loop watches. Returns 0
// without scanning anything if the batch's configured iteration budget
// is exhausted.
func (b Batch) Run(m *mesh.Mesh, store *attrs.Store) int {
	if b.Params != nil && b.Params.MaxIterationsFor(b.Name) <= 0 {
		return 0
	}
	b.Operation.Init(m, store)

	counter := 0
	for _, label := range b.Labels {
		analyzer := NewAnalyzer(b.phaseSet(m, label))
		for analyzer.HasNext() {
			s := analyzer.Pop()
			if !m.IsValid(s) {
				continue
			}
			if b.Condition != nil && !b.Condition.Eval(m, store, s) {
				continue
			}
			if !b.Measure.IsBad(m, store, s) {
				continue
			}
			if b.Operation.UpdateLocalAttributes(s, m, store) {
				counter++
				continue
			}
			plan, err := b.Operation.Plan(s, m, store)
			if err != nil || plan == nil {
				continue
			}
			if err := commit(plan, m, store, b.Strategy); err != nil {
				continue
			}
			counter++
		}
	}
	return counter
}

// commit runs the plan→assign→replace→remove sequence of spec.md §4.8.
// Attribute rows for the new set materialize as Strategy.Apply writes
// them (the store has no separate "reserve a row" step), so the
// sequence collapses to assign, then the mesh swap, then dropping the
// old set's rows.
func commit(p *ops.Plan, m *mesh.Mesh, store *attrs.Store, strategy assign.Strategy) error {
	if err := strategy.Apply(p, store); err != nil {
		return err
	}
	if _, err := m.Replace(p.ChangeSet, store); err != nil {
		return err
	}
	for _, e := range p.OldSet.Edges() {
		store.RemoveEdge(e)
	}
	for _, t := range p.OldSet.Triangles() {
		store.RemoveTriangle(t)
	}
	return nil
}

func (b Batch) phaseSet(m *mesh.Mesh, label simplex.Label) simplex.Set {
	set := simplex.NewSet()
	inPhase := logic.InPhase(label)
	switch b.Dim {
	case attrs.DimVertex:
		for _, v := range m.AllVertices() {
			if inPhase.Eval(m, nil, v) {
				set = set.AddV(v)
			}
		}
	case attrs.DimEdge:
		for _, e := range m.AllEdges() {
			if inPhase.Eval(m, nil, e) {
				set = set.AddE(e)
			}
		}
	case attrs.DimTriangle:
		for _, t := range m.AllTriangles() {
			if inPhase.Eval(m, nil, t) {
				set = set.AddT(t)
			}
		}
	}
	return set
}
