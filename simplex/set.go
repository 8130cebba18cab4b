package simplex

import "sort"

// Set is an immutable-from-the-caller's-perspective bag of simplices,
// split by dimension so operations never have to discriminate by type
// assertion. Membership is independent of insertion order: equality is
// set equality, exactly as spec.md §4.1 requires.
//
// Like core.Graph's Vertices()/Edges(), enumeration methods always return
// results sorted for reproducibility.
type Set struct {
	v0 map[Simplex0]struct{}
	v1 map[Simplex1]struct{}
	v2 map[Simplex2]struct{}
}

// NewSet returns an empty Set.
func NewSet() Set {
	return Set{
		v0: make(map[Simplex0]struct{}),
		v1: make(map[Simplex1]struct{}),
		v2: make(map[Simplex2]struct{}),
	}
}

// AddV adds a Simplex0 to the set. No-op if already present.
func (s Set) AddV(v Simplex0) Set {
	s.v0[v] = struct{}{}
	return s
}

// AddE adds a Simplex1 to the set.
func (s Set) AddE(e Simplex1) Set {
	s.v1[e] = struct{}{}
	return s
}

// AddT adds a Simplex2 to the set.
func (s Set) AddT(t Simplex2) Set {
	s.v2[t] = struct{}{}
	return s
}

// HasV, HasE, HasT report membership.
func (s Set) HasV(v Simplex0) bool { _, ok := s.v0[v]; return ok }
func (s Set) HasE(e Simplex1) bool { _, ok := s.v1[e]; return ok }
func (s Set) HasT(t Simplex2) bool { _, ok := s.v2[t]; return ok }

// Has reports membership for any dimension via the Simplex interface.
func (s Set) Has(x Simplex) bool {
	switch v := x.(type) {
	case Simplex0:
		return s.HasV(v)
	case Simplex1:
		return s.HasE(v)
	case Simplex2:
		return s.HasT(v)
	default:
		return false
	}
}

// Len0, Len1, Len2 report the per-dimension size.
func (s Set) Len0() int { return len(s.v0) }
func (s Set) Len1() int { return len(s.v1) }
func (s Set) Len2() int { return len(s.v2) }

// Empty reports whether the set has no simplices of any dimension.
func (s Set) Empty() bool { return len(s.v0) == 0 && len(s.v1) == 0 && len(s.v2) == 0 }

// Vertices returns the 0-simplices sorted by id.
func (s Set) Vertices() []Simplex0 {
	out := make([]Simplex0, 0, len(s.v0))
	for v := range s.v0 {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Edges returns the 1-simplices sorted by (A, B).
func (s Set) Edges() []Simplex1 {
	out := make([]Simplex1, 0, len(s.v1))
	for e := range s.v1 {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Triangles returns the 2-simplices sorted by (A, B, C).
func (s Set) Triangles() []Simplex2 {
	out := make([]Simplex2, 0, len(s.v2))
	for t := range s.v2 {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		if out[i].B != out[j].B {
			return out[i].B < out[j].B
		}
		return out[i].C < out[j].C
	})
	return out
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	out := NewSet()
	for v := range s.v0 {
		out.v0[v] = struct{}{}
	}
	for e := range s.v1 {
		out.v1[e] = struct{}{}
	}
	for t := range s.v2 {
		out.v2[t] = struct{}{}
	}
	return out
}

// Union returns a new Set containing every simplex in s or other.
// Commutative: Union(a, b) == Union(b, a).
func Union(a, b Set) Set {
	out := a.Clone()
	for v := range b.v0 {
		out.v0[v] = struct{}{}
	}
	for e := range b.v1 {
		out.v1[e] = struct{}{}
	}
	for t := range b.v2 {
		out.v2[t] = struct{}{}
	}
	return out
}

// Intersection returns a new Set containing every simplex present in both
// a and b.
func Intersection(a, b Set) Set {
	out := NewSet()
	for v := range a.v0 {
		if _, ok := b.v0[v]; ok {
			out.v0[v] = struct{}{}
		}
	}
	for e := range a.v1 {
		if _, ok := b.v1[e]; ok {
			out.v1[e] = struct{}{}
		}
	}
	for t := range a.v2 {
		if _, ok := b.v2[t]; ok {
			out.v2[t] = struct{}{}
		}
	}
	return out
}

// Difference returns a new Set containing every simplex in a that is not
// in b. Difference(a, a) == ∅.
func Difference(a, b Set) Set {
	out := NewSet()
	for v := range a.v0 {
		if _, ok := b.v0[v]; !ok {
			out.v0[v] = struct{}{}
		}
	}
	for e := range a.v1 {
		if _, ok := b.v1[e]; !ok {
			out.v1[e] = struct{}{}
		}
	}
	for t := range a.v2 {
		if _, ok := b.v2[t]; !ok {
			out.v2[t] = struct{}{}
		}
	}
	return out
}

// Filter returns a new Set containing only the simplices of s for which
// pred returns true. Filter(P, Filter(Q, s)) == Filter(P && Q, s) holds
// because both sides iterate the same membership independent of order.
func (s Set) Filter(pred func(Simplex) bool) Set {
	out := NewSet()
	for v := range s.v0 {
		if pred(v) {
			out.v0[v] = struct{}{}
		}
	}
	for e := range s.v1 {
		if pred(e) {
			out.v1[e] = struct{}{}
		}
	}
	for t := range s.v2 {
		if pred(t) {
			out.v2[t] = struct{}{}
		}
	}
	return out
}

// FilterV, FilterE, FilterT are dimension-monomorphic filters used by the
// quality/batch packages' hot loops, avoiding the Simplex interface
// boxing that the generic Filter incurs (spec.md §9 design note:
// "performance-critical filters should be monomorphic").
func (s Set) FilterV(pred func(Simplex0) bool) Set {
	out := NewSet()
	for v := range s.v0 {
		if pred(v) {
			out.v0[v] = struct{}{}
		}
	}
	return out
}

func (s Set) FilterE(pred func(Simplex1) bool) Set {
	out := NewSet()
	for e := range s.v1 {
		if pred(e) {
			out.v1[e] = struct{}{}
		}
	}
	return out
}

func (s Set) FilterT(pred func(Simplex2) bool) Set {
	out := NewSet()
	for t := range s.v2 {
		if pred(t) {
			out.v2[t] = struct{}{}
		}
	}
	return out
}
