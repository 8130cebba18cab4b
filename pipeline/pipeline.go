// Package pipeline implements the default algorithm of spec.md §4.9: a
// fixed, ordered sequence of named batches (package batch) run once per
// scheduler iteration, per subdomain, per phase label present in the
// mesh. Each step is guarded by its own max_iterations budget; Algorithm
// stops reporting further work once a full pass commits nothing.
//
// The ordering itself is data, not control flow, which mirrors the
// teacher's builder package applying a fixed list of BuilderOptions left
// to right: Algorithm.steps returns the ordered []batch.Batch for the
// labels currently present, and Run simply walks it summing counters.
package pipeline

import (
	"math"
	"sort"

	"github.com/gritmesh/grit/assign"
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/batch"
	"github.com/gritmesh/grit/logic"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/ops"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/quality"
	"github.com/gritmesh/grit/simplex"
)

// Algorithm is the fixed per-phase pipeline of spec.md §4.9.
type Algorithm struct {
	Params *param.Parameters
}

// Run executes one full pass of the pipeline (steps 1–8, in order) over
// every phase label currently present in m, returning the total number
// of simplices the batches committed (the scheduler's convergence
// signal).
func (alg Algorithm) Run(m *mesh.Mesh, store *attrs.Store) int {
	labels := distinctLabels(m, alg.Params)
	total := 0
	for _, b := range alg.steps(labels) {
		total += b.Run(m, store)
	}
	return total
}

// steps builds the ordered batch list for the given labels. The
// VertexSplit and Merge measures are instantiated once per label since
// their threshold lookup is keyed by (operation name, label); the other
// measures steps uses (AlwaysBad, Delaunay, Threshold and the merge
// finishing measure) run once across every label.
func (alg Algorithm) steps(labels []simplex.Label) []batch.Batch {
	p := alg.Params
	var out []batch.Batch

	// 1. move
	out = append(out, batch.Batch{
		Name:      "move",
		Labels:    labels,
		Dim:       attrs.DimVertex,
		Condition: moveCondition(p),
		Measure:   quality.AlwaysBad{},
		Operation: ops.Move{},
		Strategy:  assign.Empty{},
		Params:    p,
	})

	// 2. vertex_split — label-parametrized, one batch per label.
	for _, l := range labels {
		out = append(out, batch.Batch{
			Name:   "vertex_split",
			Labels: []simplex.Label{l},
			Dim:    attrs.DimVertex,
			Measure: quality.VertexSplit{
				Name: "vertex_split", Params: p,
				AmbientLabel: p.AmbientLabel, UseAmbient: p.UseAmbient,
			},
			Operation: ops.VertexSplit{
				Params: p, ParamName: "vertex_split",
				AmbientLabel: p.AmbientLabel, UseAmbient: p.UseAmbient,
			},
			Strategy: assign.VertexSplit{},
			Params:   p,
		})
	}

	// 3. interface_smoothing
	out = append(out, batch.Batch{
		Name:      "interface_smoothing",
		Labels:    labels,
		Dim:       attrs.DimVertex,
		Measure:   quality.AlwaysBad{},
		Operation: ops.InterfaceSmoothing{Params: p, ParamName: "interface_smoothing"},
		Strategy:  assign.Empty{},
		Params:    p,
	})

	// 4. smoothing (Laplacian)
	out = append(out, batch.Batch{
		Name:      "smoothing",
		Labels:    labels,
		Dim:       attrs.DimVertex,
		Measure:   quality.AlwaysBad{},
		Operation: ops.LaplacianSmoothing{Params: p, ParamName: "smoothing"},
		Strategy:  assign.Empty{},
		Params:    p,
	})

	// 5. interface_refinement / refinement
	out = append(out, refinementBatch(p, labels, "interface_refinement", true))
	out = append(out, refinementBatch(p, labels, "refinement", false))

	// 6. interface_coarsening / coarsening
	out = append(out, coarseningBatch(p, labels, "interface_coarsening", true))
	out = append(out, coarseningBatch(p, labels, "coarsening", false))

	// 7. edge_flip — restores Delaunay-ness of non-interface edges only.
	out = append(out, batch.Batch{
		Name:      "edge_flip",
		Labels:    labels,
		Dim:       attrs.DimEdge,
		Condition: logic.And(logic.Not(logic.IsInterface), logic.Not(logic.IsBoundary), logic.Not(logic.IsSubmeshBoundary)),
		Measure:   quality.Delaunay{},
		Operation: ops.Flip{},
		Strategy:  assign.Copy{},
		Params:    p,
	})

	// 8. merge — proximity-driven triangle split, plus a vertex-collapse
	// finishing pass that removes the short edge the split can leave
	// behind when the sliver was already thin along the non-split
	// direction too.
	for _, l := range labels {
		out = append(out, batch.Batch{
			Name:      "merge",
			Labels:    []simplex.Label{l},
			Dim:       attrs.DimTriangle,
			Measure:   quality.Merge{Name: "merge", Label: l, Params: p},
			Operation: ops.Merge{},
			Strategy:  assign.Merge{},
			Params:    p,
		})
	}
	out = append(out, batch.Batch{
		Name:      "merge",
		Labels:    labels,
		Dim:       attrs.DimEdge,
		Condition: logic.IsInterface,
		Measure:   mergeFinishingMeasure{params: p},
		Operation: ops.Collapse{Params: p, ParamName: "merge"},
		Strategy:  assign.Copy{},
		Params:    p,
	})

	return out
}

func refinementBatch(p *param.Parameters, labels []simplex.Label, name string, interfaceOnly bool) batch.Batch {
	var cond logic.Expr = logic.Not(logic.IsInterface)
	if interfaceOnly {
		cond = logic.IsInterface
	}
	return batch.Batch{
		Name:      name,
		Labels:    labels,
		Dim:       attrs.DimEdge,
		Condition: logic.And(cond, logic.Not(logic.IsSubmeshBoundary)),
		Measure:   quality.Threshold{Attribute: p.UpperThresholdAttribute[name], Mode: quality.Upper},
		Operation: ops.Split{Params: p},
		Strategy:  assign.EdgeSplit{},
		Params:    p,
	}
}

func coarseningBatch(p *param.Parameters, labels []simplex.Label, name string, interfaceOnly bool) batch.Batch {
	var cond logic.Expr = logic.Not(logic.IsInterface)
	if interfaceOnly {
		cond = logic.IsInterface
	}
	return batch.Batch{
		Name:      name,
		Labels:    labels,
		Dim:       attrs.DimEdge,
		Condition: logic.And(cond, logic.Not(logic.IsSubmeshBoundary)),
		Measure:   quality.Threshold{Attribute: p.LowerThresholdAttribute[name], Mode: quality.Lower},
		Operation: ops.Collapse{Params: p, ParamName: name},
		Strategy:  assign.Copy{},
		Params:    p,
	}
}

// moveCondition restricts the move batch to interface vertices only when
// Parameters.UseOnlyInterface is set, per the configuration table in
// spec.md §6; nil (no restriction, every vertex is a candidate) otherwise.
func moveCondition(p *param.Parameters) logic.Expr {
	if p.UseOnlyInterface {
		return logic.IsInterface
	}
	return nil
}

// mergeFinishingMeasure flags an edge as bad when it is shorter than the
// largest merge distance threshold among the labels at either endpoint;
// it does not check collapsability itself — the "vertex-collapse
// finishing pass" spec.md
// §4.9 step 8 calls for, cleaning up a sliver the triangle split leaves
// behind along its short direction.
type mergeFinishingMeasure struct {
	params *param.Parameters
}

func (q mergeFinishingMeasure) IsBad(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool {
	e, ok := s.(simplex.Simplex1)
	if !ok {
		return false
	}
	v1, v2 := e.Vertices()
	bound := 0.0
	for _, v := range [2]simplex.Simplex0{v1, v2} {
		for _, l := range m.LabelsAt(v) {
			if b := q.params.GetDistanceThreshold("merge", l); b > bound {
				bound = b
			}
		}
	}
	if bound <= 0 {
		return false
	}
	return edgeLen(a, v1, v2) < bound
}

func edgeLen(a *attrs.Store, v1, v2 simplex.Simplex0) float64 {
	p1, p2 := a.Current(v1), a.Current(v2)
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}

// distinctLabels returns every phase label currently present on some
// triangle in m, sorted ascending, unioned with Parameters.InputLabels
// (so a label with no triangles yet but named by configuration still
// gets scheduled — e.g. the phase a vertex-split is about to introduce).
func distinctLabels(m *mesh.Mesh, p *param.Parameters) []simplex.Label {
	seen := make(map[simplex.Label]struct{})
	for _, t := range m.AllTriangles() {
		seen[m.Label(t)] = struct{}{}
	}
	for _, l := range p.InputLabels {
		seen[l] = struct{}{}
	}
	out := make([]simplex.Label, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
