// Package glue implements the phase-projection view of spec.md §4 module
// L: Phase, an owned, local-indexed snapshot of one phase label's
// vertices/triangles, built for callers (external solvers, assembly
// code) that want contiguous arrays rather than the sparse simplex maps
// mesh.Mesh and attrs.Store keep internally.
//
// Grounded on core/view.go's InducedSubgraph/UnweightedView: borrow from
// the source under a read lock, build a fresh local structure, and never
// mutate the source while building it. A Phase is an owned view exactly
// as spec.md §3's "Ownership" section requires: it must not outlive a
// mutation of the mesh/store it was built from.
package glue

import (
	"sort"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/giterr"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/simplex"
)

// Phase is a local-indexed projection of every triangle carrying Label
// and the vertices incident to them. Local vertex indices are 0..N-1 in
// ascending global-id order, so two Phase views built from the same
// (mesh, label) at different times assign the same local index to the
// same surviving vertex — useful for a caller diffing two snapshots.
type Phase struct {
	Label      simplex.Label
	mesh       *mesh.Mesh
	store      *attrs.Store
	vertices   []simplex.Simplex0 // local index -> global id
	localIndex map[simplex.Simplex0]int
	triangles  []simplex.Simplex2
	adjacency  [][]int // local index -> sorted local neighbour indices
}

// NewPhase builds the projection of every triangle labelled label out of
// m/store. The returned Phase borrows m and store; it must not be used
// after either is mutated.
func NewPhase(m *mesh.Mesh, store *attrs.Store, label simplex.Label) *Phase {
	var triangles []simplex.Simplex2
	vertexSet := make(map[simplex.Simplex0]struct{})
	for _, t := range m.AllTriangles() {
		if m.Label(t) != label {
			continue
		}
		triangles = append(triangles, t)
		for _, v := range t.Vertices() {
			vertexSet[v] = struct{}{}
		}
	}

	vertices := make([]simplex.Simplex0, 0, len(vertexSet))
	for v := range vertexSet {
		vertices = append(vertices, v)
	}
	sort.Slice(vertices, func(i, j int) bool { return vertices[i] < vertices[j] })

	localIndex := make(map[simplex.Simplex0]int, len(vertices))
	for i, v := range vertices {
		localIndex[v] = i
	}

	neighbourSets := make([]map[int]struct{}, len(vertices))
	for i := range neighbourSets {
		neighbourSets[i] = make(map[int]struct{})
	}
	for _, t := range triangles {
		for _, e := range t.Edges() {
			a, b := e.Vertices()
			ia, okA := localIndex[a]
			ib, okB := localIndex[b]
			if !okA || !okB {
				continue
			}
			neighbourSets[ia][ib] = struct{}{}
			neighbourSets[ib][ia] = struct{}{}
		}
	}
	adjacency := make([][]int, len(vertices))
	for i, set := range neighbourSets {
		row := make([]int, 0, len(set))
		for j := range set {
			row = append(row, j)
		}
		sort.Ints(row)
		adjacency[i] = row
	}

	return &Phase{
		Label:      label,
		mesh:       m,
		store:      store,
		vertices:   vertices,
		localIndex: localIndex,
		triangles:  triangles,
		adjacency:  adjacency,
	}
}

// NumVertices returns the number of locally-indexed vertices.
func (p *Phase) NumVertices() int { return len(p.vertices) }

// NumTriangles returns the number of triangles in the phase.
func (p *Phase) NumTriangles() int { return len(p.triangles) }

// GlobalVertex maps a local index back to its global mesh.Simplex0 id.
func (p *Phase) GlobalVertex(local int) simplex.Simplex0 { return p.vertices[local] }

// LocalIndex maps a global vertex id to its local index and reports
// whether v is part of this phase at all.
func (p *Phase) LocalIndex(v simplex.Simplex0) (int, bool) {
	i, ok := p.localIndex[v]
	return i, ok
}

// Triangles returns the phase's triangles as local-index triples, in the
// same order as p.Triangles' global Simplex2 form would sort.
func (p *Phase) Triangles() [][3]int {
	out := make([][3]int, len(p.triangles))
	for i, t := range p.triangles {
		verts := t.Vertices()
		out[i] = [3]int{p.localIndex[verts[0]], p.localIndex[verts[1]], p.localIndex[verts[2]]}
	}
	return out
}

// Neighbours returns the sorted local indices of every vertex adjacent
// to local via some edge of a triangle in this phase.
func (p *Phase) Neighbours(local int) []int {
	out := make([]int, len(p.adjacency[local]))
	copy(out, p.adjacency[local])
	return out
}

// ReadCoords returns the local-indexed contiguous array of `current`
// positions.
func (p *Phase) ReadCoords() []attrs.Vec2 {
	out := make([]attrs.Vec2, len(p.vertices))
	for i, v := range p.vertices {
		out[i] = p.store.Current(v)
	}
	return out
}

// WriteCoords writes a local-indexed contiguous array back into the
// store's `current` field. Fails with giterr.ErrInvalidArgument if the
// length does not match NumVertices.
func (p *Phase) WriteCoords(values []attrs.Vec2) error {
	if len(values) != len(p.vertices) {
		return giterr.ErrInvalidArgument
	}
	for i, v := range p.vertices {
		p.store.SetCurrent(v, values[i])
	}
	return nil
}

// ReadAttribute returns the local-indexed contiguous array of the named
// vertex attribute under this phase's label, 0 where the vertex has no
// value recorded for that (name, label) pair.
func (p *Phase) ReadAttribute(name string) []float64 {
	out := make([]float64, len(p.vertices))
	for i, v := range p.vertices {
		if val, err := p.store.GetVertex(name, v, p.Label); err == nil {
			out[i] = val
		}
	}
	return out
}

// WriteAttribute writes a local-indexed contiguous array back into the
// named vertex attribute under this phase's label. Fails with
// giterr.ErrInvalidArgument if the length does not match NumVertices.
func (p *Phase) WriteAttribute(name string, values []float64) error {
	if len(values) != len(p.vertices) {
		return giterr.ErrInvalidArgument
	}
	for i, v := range p.vertices {
		if err := p.store.SetVertex(name, v, p.Label, values[i]); err != nil {
			return err
		}
	}
	return nil
}
