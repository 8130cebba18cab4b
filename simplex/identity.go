// Package simplex defines the 0/1/2-simplex identities of a 2D simplicial
// complex and the SimplexSet container used throughout GRIT to describe
// "a bag of simplices" — the currency that mesh operations plan in and
// that quality measures filter over.
//
// Canonicalization keeps equality and hashing independent of how a caller
// happened to order a triangle's vertices: Simplex1 always stores its two
// vertex ids with A < B, and Simplex2 always stores its three with
// A < B < C. Geometric orientation (CCW/CW) is not part of the identity —
// the mesh tracks that separately, exactly as spec.md §3 requires.
package simplex

import "sort"

// Label is an unsigned phase label carried by every 2-simplex and, by
// extension, by every 0-simplex that participates in that phase's star.
type Label uint32

// Simplex is implemented by Simplex0, Simplex1 and Simplex2 so that
// generic code (SimplexSet.Filter, logic predicates) can operate on any
// dimension through a single interface.
type Simplex interface {
	// Dim returns 0, 1 or 2.
	Dim() int
}

// Simplex0 is a single vertex id.
type Simplex0 int

// Dim implements Simplex.
func (Simplex0) Dim() int { return 0 }

// Simplex1 is an unordered pair of vertex ids, canonicalised so A < B.
type Simplex1 struct {
	A, B int
}

// NewSimplex1 canonicalises (a, b) into a Simplex1 with A < B.
// Panics-free: a == b is a degenerate edge and is the caller's
// responsibility to reject (mesh.InsertTriangle does, via giterr).
func NewSimplex1(a, b int) Simplex1 {
	if a > b {
		a, b = b, a
	}
	return Simplex1{A: a, B: b}
}

// Dim implements Simplex.
func (Simplex1) Dim() int { return 1 }

// Vertices returns the two endpoint ids in canonical order.
func (e Simplex1) Vertices() (Simplex0, Simplex0) {
	return Simplex0(e.A), Simplex0(e.B)
}

// Has reports whether v is one of the edge's two endpoints.
func (e Simplex1) Has(v Simplex0) bool {
	return int(v) == e.A || int(v) == e.B
}

// Other returns the endpoint of e that is not v. The caller must ensure
// v is one of e's endpoints (Has(v) == true); otherwise the result is
// unspecified but deterministic (it returns A).
func (e Simplex1) Other(v Simplex0) Simplex0 {
	if int(v) == e.A {
		return Simplex0(e.B)
	}
	return Simplex0(e.A)
}

// Simplex2 is an unordered triple of vertex ids, canonicalised so
// A < B < C. This identity is used for hashing/equality only; the mesh
// stores the geometric (possibly non-canonical) oriented triple alongside
// it for CCW/CW bookkeeping.
type Simplex2 struct {
	A, B, C int
}

// NewSimplex2 canonicalises (a, b, c) into a Simplex2 with A < B < C. The
// caller must ensure a, b, c are pairwise distinct; mesh.InsertTriangle
// rejects degenerate triangles before calling this.
func NewSimplex2(a, b, c int) Simplex2 {
	v := []int{a, b, c}
	sort.Ints(v)
	return Simplex2{A: v[0], B: v[1], C: v[2]}
}

// Dim implements Simplex.
func (Simplex2) Dim() int { return 2 }

// Vertices returns the three vertex ids in canonical order.
func (t Simplex2) Vertices() [3]Simplex0 {
	return [3]Simplex0{Simplex0(t.A), Simplex0(t.B), Simplex0(t.C)}
}

// Edges returns the triangle's three canonical edges.
func (t Simplex2) Edges() [3]Simplex1 {
	return [3]Simplex1{
		NewSimplex1(t.A, t.B),
		NewSimplex1(t.B, t.C),
		NewSimplex1(t.A, t.C),
	}
}

// Has reports whether v is one of the triangle's three vertices.
func (t Simplex2) Has(v Simplex0) bool {
	i := int(v)
	return i == t.A || i == t.B || i == t.C
}

// Opposite returns the triangle's vertex that is not one of e's endpoints.
// The caller must ensure e is one of t.Edges(); otherwise the first of
// t's vertices (in ascending order) that is not an endpoint of e is
// returned.
func (t Simplex2) Opposite(e Simplex1) Simplex0 {
	for _, v := range t.Vertices() {
		if int(v) != e.A && int(v) != e.B {
			return v
		}
	}
	return Simplex0(-1)
}
