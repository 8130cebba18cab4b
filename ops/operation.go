// Package ops implements the mesh operations of spec.md §4.5: split,
// collapse, flip, merge, vertex-split, move and the two smoothing
// variants. Each exposes the same three-hook shape the batch runner
// (package batch) drives: init, update_local_attributes, plan. A plan
// is a plain-data ops.Plan (wrapping mesh.ChangeSet), never a mutation —
// per spec.md §9's design note, the operation never reaches around the
// mesh/attribute boundary the way the original's friend-class manager
// did; only mesh.Replace commits.
package ops

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/simplex"
)

// Plan is what an operation's Plan hook returns: the connectivity change
// (embedded mesh.ChangeSet, ready to hand to mesh.Replace) plus whatever
// extra context package assign's strategies need to populate the new
// simplices' attributes. Only the fields a given operation produces are
// non-nil; assign strategies type-switch on operation identity, not on
// which Plan fields happen to be set.
type Plan struct {
	mesh.ChangeSet

	// ParentLUT1 maps each new edge to the existing edge it inherits
	// attributes from, consulted by assign.Copy.
	ParentLUT1 map[simplex.Simplex1]simplex.Simplex1

	// SplitEdge/SplitMidpoint are set by Split, consumed by
	// assign.EdgeSplit.
	SplitEdge     *simplex.Simplex1
	SplitMidpoint *simplex.Simplex0

	// VSOriginal/VSCopy/VSLabel/VSOffsetPos are set by VertexSplit,
	// consumed by assign.VertexSplit.
	VSOriginal  *simplex.Simplex0
	VSCopy      *simplex.Simplex0
	VSLabel     simplex.Label
	VSOffsetPos attrs.Vec2
}

// Operation is the uniform shape every mesh operation in this package
// implements, per spec.md §4.5.
type Operation interface {
	// Name identifies the operation for parameter lookups
	// (max_iterations, thresholds, …) — matches the batch name used in
	// spec.md §4.9's pipeline.
	Name() string

	// Init performs optional one-shot global preparation before a batch
	// runs (Move uses this to pre-compute collision-safe substep
	// targets); every other operation, the smoothing variants included,
	// no-ops here.
	Init(m *mesh.Mesh, store *attrs.Store)

	// UpdateLocalAttributes may mutate attrs only, never topology. It
	// returns true if it fully handled s, in which case the batch
	// runner skips Plan for this simplex.
	UpdateLocalAttributes(s simplex.Simplex, m *mesh.Mesh, store *attrs.Store) bool

	// Plan computes the connectivity change for s, or returns a nil
	// Plan (and nil error) to skip it.
	Plan(s simplex.Simplex, m *mesh.Mesh, store *attrs.Store) (*Plan, error)
}
