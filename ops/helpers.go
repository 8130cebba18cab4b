package ops

import (
	"math"
	"sort"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/simplex"
)

func dist(a, b attrs.Vec2) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Hypot(dx, dy)
}

func longestEdgeOf(t simplex.Simplex2, store *attrs.Store) simplex.Simplex1 {
	edges := t.Edges()
	best := edges[0]
	bestLen := edgeLength(store, best)
	for _, e := range edges[1:] {
		if l := edgeLength(store, e); l > bestLen {
			best, bestLen = e, l
		}
	}
	return best
}

func edgeLength(store *attrs.Store, e simplex.Simplex1) float64 {
	a, b := e.Vertices()
	return dist(store.Current(a), store.Current(b))
}

func nonAmbientLabels(labels []simplex.Label, ambient simplex.Label, useAmbient bool) []simplex.Label {
	if !useAmbient {
		out := append([]simplex.Label(nil), labels...)
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		return out
	}
	out := make([]simplex.Label, 0, len(labels))
	for _, l := range labels {
		if l != ambient {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// linkOf generalizes mesh.Mesh.Link to any simplex dimension: closure of
// star minus star of closure, the glossary definition used by edge
// collapse's admissibility check (spec.md §4.5.2).
func linkOf(m *mesh.Mesh, s simplex.Simplex) simplex.Set {
	closureStar := m.Closure(m.Star(s))
	starClosure := m.StarSet(m.ClosureOf(s))
	return simplex.Difference(closureStar, starClosure)
}

// substituteVertex replaces every occurrence of from in t's vertex
// triple with to, returning the resulting (unordered) triple. Winding is
// irrelevant here: mesh.Replace re-derives CCW orientation from
// attrs.Store.Current before committing.
func substituteVertex(t simplex.Simplex2, from, to simplex.Simplex0) mesh.OrientedTriangle {
	verts := t.Vertices()
	var nv [3]simplex.Simplex0
	for i, v := range verts {
		if v == from {
			nv[i] = to
		} else {
			nv[i] = v
		}
	}
	return mesh.OrientedTriangle{V0: nv[0], V1: nv[1], V2: nv[2]}
}
