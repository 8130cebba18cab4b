// Package assign implements the attribute assignment strategies of
// spec.md §4.6: functors applied by the batch runner (package batch)
// after a mesh operation's plan is computed and before mesh.Replace
// commits it, populating every newly planned simplex's attributes from
// its parent look-up entry.
//
// The style mirrors matrix/conversions.go's representation-to-
// representation transform pattern in the teacher: a small pure function
// taking a source description and a destination store, with no hidden
// state of its own.
package assign

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/giterr"
	"github.com/gritmesh/grit/ops"
	"github.com/gritmesh/grit/simplex"
)

// Strategy populates a.Store's attribute values for every newly planned
// simplex in p, reading from their parents via p.ParentLUT1/ParentLUT2.
type Strategy interface {
	Apply(p *ops.Plan, store *attrs.Store) error
}

// registeredNames lists every attribute name a Store currently knows
// about for a given dimension, used by Copy to iterate "every named
// attribute" per spec.md §4.6.
func registeredNames(store *attrs.Store, dim attrs.Dim) []string {
	return store.NamesOf(dim)
}

// Copy copies, for every new edge/triangle, every named attribute from
// its parent entry in the look-up tables. Unknown parents raise
// giterr.ErrMissingParent.
type Copy struct{}

// Apply implements Strategy.
func (Copy) Apply(p *ops.Plan, store *attrs.Store) error {
	return copyEdgesAndTriangles(p, store)
}

func copyEdgesAndTriangles(p *ops.Plan, store *attrs.Store) error {
	for _, t := range p.NewTriangles {
		newID := t.Canonical()
		parent, ok := p.ParentLUT2[newID]
		if !ok {
			return giterr.ErrMissingParent
		}
		for _, name := range registeredNames(store, attrs.DimTriangle) {
			val, err := store.GetTriangle(name, parent)
			if err != nil {
				continue
			}
			if err := store.SetTriangle(name, newID, val); err != nil {
				return err
			}
		}
	}
	for newEdge, parentEdge := range p.ParentLUT1 {
		for _, name := range registeredNames(store, attrs.DimEdge) {
			val, err := store.GetEdge(name, parentEdge)
			if err != nil {
				continue
			}
			if err := store.SetEdge(name, newEdge, val); err != nil {
				return err
			}
		}
	}
	return nil
}

// Empty performs no attribute mutation; used where the operation
// mutates attributes directly in update_local_attributes (e.g. move).
type Empty struct{}

// Apply implements Strategy.
func (Empty) Apply(*ops.Plan, *attrs.Store) error { return nil }

// EdgeSplit interpolates the new midpoint vertex's per-label scalars
// (including `current`/`target`) as half the sum of the split edge's
// endpoint values, then applies Copy for the new edges and triangles.
type EdgeSplit struct{}

// Apply implements Strategy.
func (EdgeSplit) Apply(p *ops.Plan, store *attrs.Store) error {
	if p.SplitEdge == nil || p.SplitMidpoint == nil {
		return giterr.ErrMissingParent
	}
	v1, v2 := p.SplitEdge.Vertices()
	mid := *p.SplitMidpoint

	store.SetCurrent(mid, attrs.Mid(store.Current(v1), store.Current(v2)))

	labels := unionLabels(store.Labels(v1), store.Labels(v2))
	for _, l := range labels {
		store.AddLabel(mid, l)
		for _, name := range registeredNames(store, attrs.DimVertex) {
			a1, err1 := store.GetVertex(name, v1, l)
			a2, err2 := store.GetVertex(name, v2, l)
			switch {
			case err1 == nil && err2 == nil:
				_ = store.SetVertex(name, mid, l, (a1+a2)/2)
			case err1 == nil:
				_ = store.SetVertex(name, mid, l, a1)
			case err2 == nil:
				_ = store.SetVertex(name, mid, l, a2)
			}
		}
		t1, err1 := store.Target(v1, l)
		t2, err2 := store.Target(v2, l)
		switch {
		case err1 == nil && err2 == nil:
			store.SetTarget(mid, l, attrs.Mid(t1, t2))
		case err1 == nil:
			store.SetTarget(mid, l, t1)
		case err2 == nil:
			store.SetTarget(mid, l, t2)
		}
	}
	return copyEdgesAndTriangles(p, store)
}

func unionLabels(a, b []simplex.Label) []simplex.Label {
	seen := make(map[simplex.Label]struct{}, len(a)+len(b))
	var out []simplex.Label
	for _, l := range append(append([]simplex.Label{}, a...), b...) {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

// VertexSplit places the duplicate vertex at p.VSOffsetPos (computed by
// ops.ComputeOffsetPosition during planning), transfers p.VSLabel's
// attribute values from the original to the copy, and applies Copy for
// the reconnected triangles.
type VertexSplit struct{}

// Apply implements Strategy.
func (VertexSplit) Apply(p *ops.Plan, store *attrs.Store) error {
	if p.VSOriginal == nil || p.VSCopy == nil {
		return giterr.ErrMissingParent
	}
	orig, copy_ := *p.VSOriginal, *p.VSCopy
	label := p.VSLabel

	store.SetCurrent(copy_, p.VSOffsetPos)
	store.AddLabel(copy_, label)
	for _, name := range registeredNames(store, attrs.DimVertex) {
		val, err := store.GetVertex(name, orig, label)
		if err == nil {
			_ = store.SetVertex(name, copy_, label, val)
		}
	}
	if tgt, err := store.Target(orig, label); err == nil {
		store.SetTarget(copy_, label, tgt)
	}
	store.EraseLabel(orig, label)

	return copyEdgesAndTriangles(p, store)
}

// Merge applies Copy; the two new triangles and the new edge it produces
// all reuse pre-existing vertices (spec.md §4.5.4 never allocates a new
// vertex), so there is no extra per-vertex carry-over to perform beyond
// what Copy already does for the new edge and triangles.
type Merge struct{}

// Apply implements Strategy.
func (Merge) Apply(p *ops.Plan, store *attrs.Store) error {
	return copyEdgesAndTriangles(p, store)
}
