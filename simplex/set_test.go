package simplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleSet() Set {
	s := NewSet()
	s.AddV(1).AddV(2).AddV(3)
	s.AddE(NewSimplex1(1, 2)).AddE(NewSimplex1(2, 3))
	s.AddT(NewSimplex2(1, 2, 3))
	return s
}

func TestCanonicalOrdering(t *testing.T) {
	e := NewSimplex1(5, 2)
	assert.Equal(t, Simplex1{A: 2, B: 5}, e)

	tr := NewSimplex2(9, 1, 4)
	assert.Equal(t, Simplex2{A: 1, B: 4, C: 9}, tr)
}

func TestDifferenceWithSelfIsEmpty(t *testing.T) {
	a := sampleSet()
	assert.True(t, Difference(a, a).Empty())
}

func TestUnionCommutative(t *testing.T) {
	a := sampleSet()
	b := NewSet()
	b.AddV(4).AddE(NewSimplex1(3, 4))

	ab := Union(a, b)
	ba := Union(b, a)
	assert.Equal(t, ab.Vertices(), ba.Vertices())
	assert.Equal(t, ab.Edges(), ba.Edges())
	assert.Equal(t, ab.Triangles(), ba.Triangles())
}

func TestFilterDistributesOverAnd(t *testing.T) {
	a := sampleSet()
	isOdd := func(s Simplex) bool {
		v, ok := s.(Simplex0)
		return ok && int(v)%2 == 1
	}
	gt1 := func(s Simplex) bool {
		v, ok := s.(Simplex0)
		return ok && int(v) > 1
	}
	combined := a.Filter(func(s Simplex) bool { return isOdd(s) && gt1(s) })
	nested := a.Filter(isOdd).Filter(gt1)
	assert.ElementsMatch(t, combined.Vertices(), nested.Vertices())
}

func TestIntersectionAndMembership(t *testing.T) {
	a := sampleSet()
	b := NewSet()
	b.AddV(2).AddV(3).AddV(9)

	got := Intersection(a, b)
	assert.Equal(t, []Simplex0{2, 3}, got.Vertices())
	assert.True(t, a.HasT(NewSimplex2(3, 2, 1)))
}

func TestEdgeHelpers(t *testing.T) {
	e := NewSimplex1(1, 2)
	assert.True(t, e.Has(1))
	assert.Equal(t, Simplex0(2), e.Other(1))

	tri := NewSimplex2(1, 2, 3)
	assert.Equal(t, Simplex0(3), tri.Opposite(NewSimplex1(1, 2)))
}
