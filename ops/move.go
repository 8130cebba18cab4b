package ops

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/simplex"
)

// Reserved attribute names Move's Init writes and UpdateLocalAttributes
// reads, per spec.md §4.5.7.
const (
	moveSubstepX = "__move_substep_target_x"
	moveSubstepY = "__move_substep_target_y"
)

// Move implements spec.md §4.5.7: every vertex is advanced toward its
// per-label target by the largest time-step fraction that introduces no
// triangle collapse anywhere in the mesh, computed once in Init and
// applied per vertex in UpdateLocalAttributes.
type Move struct{}

// Name implements Operation.
func (Move) Name() string { return "move" }

// Init precomputes a single global substep fraction (the original solves
// a per-triangle
// linear/quadratic inequality for a per-triangle fraction; here a single
// conservative global fraction is found by shrinking geometrically until
// every triangle keeps positive area) and writes the resulting substep
// target into every vertex's __move_substep_target_x/y attribute.
func (Move) Init(m *mesh.Mesh, store *attrs.Store) {
	_ = store.Create(moveSubstepX, attrs.DimVertex)
	_ = store.Create(moveSubstepY, attrs.DimVertex)

	target := func(v simplex.Simplex0) (attrs.Vec2, bool) {
		labels := store.Labels(v)
		if len(labels) == 0 {
			return attrs.Vec2{}, false
		}
		tgt, err := store.Target(v, labels[0])
		if err != nil {
			return attrs.Vec2{}, false
		}
		return tgt, true
	}

	frac := largestSafeFraction(m, store, target)

	for _, v := range m.AllVertices() {
		cur := store.Current(v)
		sub := cur
		if tgt, ok := target(v); ok {
			sub = cur.Add(tgt.Sub(cur).Scale(frac))
		}
		for _, l := range store.Labels(v) {
			_ = store.SetVertex(moveSubstepX, v, l, sub.X)
			_ = store.SetVertex(moveSubstepY, v, l, sub.Y)
		}
	}
}

func largestSafeFraction(m *mesh.Mesh, store *attrs.Store, target func(simplex.Simplex0) (attrs.Vec2, bool)) float64 {
	frac := 1.0
	for _, t := range m.AllTriangles() {
		verts := t.Vertices()
		for frac > 0 {
			var pos [3]attrs.Vec2
			for i, v := range verts {
				cur := store.Current(v)
				pos[i] = cur
				if tgt, ok := target(v); ok {
					pos[i] = cur.Add(tgt.Sub(cur).Scale(frac))
				}
			}
			if mesh.Area(pos[0], pos[1], pos[2]) > degenerateAreaEps {
				break
			}
			frac -= 0.05
		}
	}
	if frac < 0 {
		frac = 0
	}
	return frac
}

// UpdateLocalAttributes implements Operation: writes the precomputed
// substep target into `current` and reports the simplex handled, so the
// batch runner never calls Plan for a vertex.
func (Move) UpdateLocalAttributes(s simplex.Simplex, m *mesh.Mesh, store *attrs.Store) bool {
	v, ok := s.(simplex.Simplex0)
	if !ok {
		return false
	}
	labels := store.Labels(v)
	if len(labels) == 0 {
		return true
	}
	x, errX := store.GetVertex(moveSubstepX, v, labels[0])
	y, errY := store.GetVertex(moveSubstepY, v, labels[0])
	if errX == nil && errY == nil {
		store.SetCurrent(v, attrs.Vec2{X: x, Y: y})
	}
	return true
}

// Plan implements Operation; move never changes topology.
func (Move) Plan(simplex.Simplex, *mesh.Mesh, *attrs.Store) (*Plan, error) { return nil, nil }
