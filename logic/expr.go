// Package logic implements the composable simplex predicates of
// spec.md §4.4: pure, cheap boolean expressions evaluated against a
// mesh/attribute pair, combined with &&, || and !.
//
// The teacher composes algorithm behavior through functional hooks
// (algorithms.BFSOptions.OnVisit, DFSOptions.OnExit); GRIT generalizes
// that one step further into a small closed sum type evaluated by a type
// switch, per spec.md §9's design note ("a sum type of predicates
// evaluated by pattern match... performance-critical filters should be
// monomorphic").
package logic

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/simplex"
)

// Expr is a pure predicate over one simplex. Evaluation never mutates
// mesh or attrs.
type Expr interface {
	Eval(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool
}

// ExprFunc adapts a plain function to Expr.
type ExprFunc func(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool

// Eval implements Expr.
func (f ExprFunc) Eval(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool { return f(m, a, s) }

// Bool is a constant leaf.
type Bool bool

// Eval implements Expr.
func (b Bool) Eval(*mesh.Mesh, *attrs.Store, simplex.Simplex) bool { return bool(b) }

// IsNull is the leaf that always evaluates false, used as an explicit
// "no predicate" placeholder (distinct from Bool(false) for readability
// at call sites).
var IsNull = Bool(false)

// IsDimension leaf: true iff s has the given dimension (0, 1 or 2).
type IsDimension int

// Eval implements Expr.
func (d IsDimension) Eval(_ *mesh.Mesh, _ *attrs.Store, s simplex.Simplex) bool {
	return s.Dim() == int(d)
}

// InPhase leaf: true for a triangle in the given label; for a vertex,
// true if any incident triangle carries the label; for an edge, true if
// either incident triangle does.
type InPhase simplex.Label

// Eval implements Expr.
func (l InPhase) Eval(m *mesh.Mesh, _ *attrs.Store, s simplex.Simplex) bool {
	switch v := s.(type) {
	case simplex.Simplex2:
		return m.Label(v) == simplex.Label(l)
	case simplex.Simplex1:
		for _, t := range m.TrianglesOf(v) {
			if m.Label(t) == simplex.Label(l) {
				return true
			}
		}
		return false
	case simplex.Simplex0:
		for _, lab := range m.LabelsAt(v) {
			if lab == simplex.Label(l) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

type isBoundary struct{}

// IsBoundary leaf: true iff s is a boundary edge/vertex (spec.md §3).
var IsBoundary Expr = isBoundary{}

func (isBoundary) Eval(m *mesh.Mesh, _ *attrs.Store, s simplex.Simplex) bool {
	switch v := s.(type) {
	case simplex.Simplex1:
		return m.IsBoundaryEdge(v)
	case simplex.Simplex0:
		return m.IsBoundaryVertex(v)
	default:
		return false
	}
}

type isInterface struct{}

// IsInterface leaf: true iff s is an interface edge/vertex.
var IsInterface Expr = isInterface{}

func (isInterface) Eval(m *mesh.Mesh, _ *attrs.Store, s simplex.Simplex) bool {
	switch v := s.(type) {
	case simplex.Simplex1:
		return m.IsInterfaceEdge(v)
	case simplex.Simplex0:
		return m.IsInterfaceVertex(v)
	default:
		return false
	}
}

type isSubmeshBoundary struct{}

// IsSubmeshBoundary leaf: true iff s is (or touches, for an edge) a
// submesh-boundary vertex.
var IsSubmeshBoundary Expr = isSubmeshBoundary{}

func (isSubmeshBoundary) Eval(m *mesh.Mesh, _ *attrs.Store, s simplex.Simplex) bool {
	switch v := s.(type) {
	case simplex.Simplex0:
		return m.SubmeshBoundary(v)
	case simplex.Simplex1:
		a, b := v.Vertices()
		return m.SubmeshBoundary(a) || m.SubmeshBoundary(b)
	default:
		return false
	}
}

type isManifold struct{}

// IsManifold leaf: true iff s is currently part of a manifold
// neighbourhood — for an edge, at most two incident triangles (mesh
// invariant 1, always true for a simplex IsValid returns true for); for
// a vertex or triangle, true iff it exists in the mesh (finer
// local-manifold tests for interface vertices live in
// ops.FindCollapsable, per spec.md §4.5.6).
var IsManifold Expr = isManifold{}

func (isManifold) Eval(m *mesh.Mesh, _ *attrs.Store, s simplex.Simplex) bool {
	if e, ok := s.(simplex.Simplex1); ok {
		return len(m.TrianglesOf(e)) <= 2
	}
	return m.IsValid(s)
}

type isValid struct{}

// IsValid leaf: true iff s still exists in the mesh.
var IsValid Expr = isValid{}

func (isValid) Eval(m *mesh.Mesh, _ *attrs.Store, s simplex.Simplex) bool {
	return m.IsValid(s)
}

// And returns an Expr that is true iff every operand is true
// (short-circuiting left to right).
func And(exprs ...Expr) Expr { return andExpr(exprs) }

type andExpr []Expr

func (a andExpr) Eval(m *mesh.Mesh, at *attrs.Store, s simplex.Simplex) bool {
	for _, e := range a {
		if !e.Eval(m, at, s) {
			return false
		}
	}
	return true
}

// Or returns an Expr that is true iff any operand is true
// (short-circuiting left to right).
func Or(exprs ...Expr) Expr { return orExpr(exprs) }

type orExpr []Expr

func (o orExpr) Eval(m *mesh.Mesh, at *attrs.Store, s simplex.Simplex) bool {
	for _, e := range o {
		if e.Eval(m, at, s) {
			return true
		}
	}
	return false
}

// Not returns the negation of e.
func Not(e Expr) Expr { return notExpr{e} }

type notExpr struct{ e Expr }

func (n notExpr) Eval(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool {
	return !n.e.Eval(m, a, s)
}
