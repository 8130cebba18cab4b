// Package batch implements the quality analyzer and batch runner of
// spec.md §4.8: single-pass iteration over a phase's simplex set,
// driving one mesh operation's plan/assign/replace commit per bad
// simplex found, with an operation counter for convergence tracking.
package batch

import "github.com/gritmesh/grit/simplex"

// Analyzer yields each simplex of a fixed, pre-captured set exactly
// once. Because the set is snapshotted at construction time, simplices
// a commit inserts mid-pass are never yielded in the same pass — the
// same guarantee core.Graph's BFS/DFS give a caller against a mutating
// frontier, applied here to a one-shot bad-simplex scan instead of a
// graph traversal.
type Analyzer struct {
	items []simplex.Simplex
	idx   int
}

// NewAnalyzer captures set's current members, sorted dimension-by-
// dimension for reproducibility.
func NewAnalyzer(set simplex.Set) *Analyzer {
	items := make([]simplex.Simplex, 0, set.Len0()+set.Len1()+set.Len2())
	for _, v := range set.Vertices() {
		items = append(items, v)
	}
	for _, e := range set.Edges() {
		items = append(items, e)
	}
	for _, t := range set.Triangles() {
		items = append(items, t)
	}
	return &Analyzer{items: items}
}

// HasNext reports whether Pop would return another simplex.
func (a *Analyzer) HasNext() bool { return a.idx < len(a.items) }

// Pop returns the next simplex and advances the cursor. Panics if called
// when HasNext is false, exactly like a misused iterator — callers
// always guard with HasNext per the spec.md §4.8 loop shape.
func (a *Analyzer) Pop() simplex.Simplex {
	s := a.items[a.idx]
	a.idx++
	return s
}
