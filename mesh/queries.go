package mesh

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/simplex"
)

// Boundary returns s's immediate sub-simplices: a triangle's three
// edges, an edge's two vertices, or the empty set for a vertex.
func (m *Mesh) Boundary(s simplex.Simplex) simplex.Set {
	out := simplex.NewSet()
	switch v := s.(type) {
	case simplex.Simplex2:
		for _, e := range v.Edges() {
			out = out.AddE(e)
		}
	case simplex.Simplex1:
		a, b := v.Vertices()
		out = out.AddV(a).AddV(b)
	case simplex.Simplex0:
		// empty
	}
	return out
}

// FullBoundary returns the closure of Boundary(s).
func (m *Mesh) FullBoundary(s simplex.Simplex) simplex.Set {
	return m.Closure(m.Boundary(s))
}

// Star returns every simplex whose closure contains s: for a vertex, its
// incident edges and triangles plus itself; for an edge, its incident
// triangles plus itself; for a triangle, itself.
func (m *Mesh) Star(s simplex.Simplex) simplex.Set {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.starLocked(s)
}

func (m *Mesh) starLocked(s simplex.Simplex) simplex.Set {
	out := simplex.NewSet()
	switch v := s.(type) {
	case simplex.Simplex0:
		out = out.AddV(v)
		for t := range m.vertexTris[v] {
			out = out.AddT(t)
			for _, e := range t.Edges() {
				if e.Has(v) {
					out = out.AddE(e)
				}
			}
		}
	case simplex.Simplex1:
		out = out.AddE(v)
		for _, t := range m.edgeTris[v] {
			out = out.AddT(t)
		}
	case simplex.Simplex2:
		out = out.AddT(v)
	}
	return out
}

// StarSet returns the union of Star(s) over every simplex in set.
func (m *Mesh) StarSet(set simplex.Set) simplex.Set {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := simplex.NewSet()
	for _, v := range set.Vertices() {
		out = simplex.Union(out, m.starLocked(v))
	}
	for _, e := range set.Edges() {
		out = simplex.Union(out, m.starLocked(e))
	}
	for _, t := range set.Triangles() {
		out = simplex.Union(out, m.starLocked(t))
	}
	return out
}

// Closure returns set plus the boundary of every simplex in it.
func (m *Mesh) Closure(set simplex.Set) simplex.Set {
	out := set.Clone()
	for _, t := range set.Triangles() {
		for _, e := range t.Edges() {
			out = out.AddE(e)
		}
		for _, v := range t.Vertices() {
			out = out.AddV(v)
		}
	}
	for _, e := range set.Edges() {
		a, b := e.Vertices()
		out = out.AddV(a).AddV(b)
	}
	return out
}

// ClosureOf is a convenience wrapper for a single simplex.
func (m *Mesh) ClosureOf(s simplex.Simplex) simplex.Set {
	set := simplex.NewSet()
	switch v := s.(type) {
	case simplex.Simplex0:
		set = set.AddV(v)
	case simplex.Simplex1:
		set = set.AddE(v)
	case simplex.Simplex2:
		set = set.AddT(v)
	}
	return m.Closure(set)
}

// Link returns closure(star(s)) \ star(closure(s)) — the boundary of the
// neighbourhood of s.
func (m *Mesh) Link(s simplex.Simplex0) simplex.Set {
	star := m.Star(s)
	closureStar := m.Closure(star)
	closureS := m.ClosureOf(s)
	starClosureS := m.StarSet(closureS)
	return simplex.Difference(closureStar, starClosureS)
}

// IsInterfaceEdge reports whether e's two incident triangles (if both
// exist) carry different labels. An edge with fewer than two incident
// triangles is not an interface edge.
func (m *Mesh) IsInterfaceEdge(e simplex.Simplex1) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tris := m.edgeTris[e]
	if len(tris) != 2 {
		return false
	}
	return m.triangles[tris[0]].label != m.triangles[tris[1]].label
}

// IsInterfaceVertex reports whether any edge incident to v is an
// interface edge.
func (m *Mesh) IsInterfaceVertex(v simplex.Simplex0) bool {
	for _, e := range m.IncidentEdges(v) {
		if m.IsInterfaceEdge(e) {
			return true
		}
	}
	return false
}

// IsBoundaryEdge reports whether e has fewer than two incident
// triangles.
func (m *Mesh) IsBoundaryEdge(e simplex.Simplex1) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.edgeTris[e]) < 2
}

// IsBoundaryVertex reports whether v is an endpoint of some boundary
// edge.
func (m *Mesh) IsBoundaryVertex(v simplex.Simplex0) bool {
	for _, e := range m.IncidentEdges(v) {
		if m.IsBoundaryEdge(e) {
			return true
		}
	}
	return false
}

// IncidentEdges returns the edges incident to v, derived from its
// incident triangles.
func (m *Mesh) IncidentEdges(v simplex.Simplex0) []simplex.Simplex1 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set := simplex.NewSet()
	for t := range m.vertexTris[v] {
		for _, e := range t.Edges() {
			if e.Has(v) {
				set = set.AddE(e)
			}
		}
	}
	return set.Edges()
}

// LabelsAt returns the distinct phase labels of every triangle incident
// to v.
func (m *Mesh) LabelsAt(v simplex.Simplex0) []simplex.Label {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[simplex.Label]struct{})
	for t := range m.vertexTris[v] {
		seen[m.triangles[t].label] = struct{}{}
	}
	out := make([]simplex.Label, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	return out
}

// Area returns the (always non-negative, by invariant 3) embedding area
// of a triangle given its three vertex positions.
func Area(a, b, c attrs.Vec2) float64 {
	area := 0.5 * ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y))
	if area < 0 {
		return -area
	}
	return area
}
