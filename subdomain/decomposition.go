// Package subdomain implements spec.md §4.10: splitting the global mesh
// into independently-owned slabs before a scheduler iteration, and
// folding the slabs' results back into one mesh afterwards.
//
// Submeshes reuse the GLOBAL mesh's own simplex.Simplex0 ids rather than
// keeping a local<->global vertex-id translation table: since a
// simplex.Simplex0 is already a bare integer and two independent
// mesh.Mesh values are free to share the same id space, a vertex that
// sits on a cut simply exists, under the same id, in every submesh that
// touches it. The only hazard that introduces is two submeshes minting
// brand-new vertices (an edge split's midpoint, a vertex-split's copy)
// during the same iteration and colliding on the same fresh id; each
// submesh is given a disjoint block of the id space via
// mesh.NewWithNextVertex to rule that out. See DESIGN.md.
package subdomain

import (
	"math"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/pipeline"
	"github.com/gritmesh/grit/simplex"
)

// idBlockSize upper-bounds how many fresh vertices a single submesh can
// mint in one scheduler iteration before its block would overlap the
// next submesh's. A refinement pass doubling the mesh several times over
// stays well under this.
const idBlockSize = 1_000_000

// SubDomain is one slab's private view: its own submesh and attribute
// store, a Parameters clone so it can run independently of every other
// subdomain, and the pipeline it drives to convergence.
type SubDomain struct {
	ID             int
	Mesh           *mesh.Mesh
	Store          *attrs.Store
	Params         *param.Parameters
	Algorithm      pipeline.Algorithm
	OperationsDone int
}

// innerIterationCap bounds how many full pipeline passes a single
// subdomain may run within one scheduler iteration, guarding against a
// pathological parameter set (e.g. a refinement threshold a coarsening
// threshold keeps undoing) that would otherwise spin forever.
const innerIterationCap = 10_000

// RunToConvergence drives d's pipeline until a full pass commits nothing,
// per spec.md §4.9's "stops reporting further work once a full pass
// commits nothing", or until innerIterationCap passes have run.
func (d *SubDomain) RunToConvergence() {
	for i := 0; i < innerIterationCap; i++ {
		n := d.Algorithm.Run(d.Mesh, d.Store)
		d.OperationsDone += n
		if n == 0 {
			return
		}
	}
}

// Decomposition is what scheduler.Run drives each iteration through:
// split the current global state into subdomains, let the caller run
// each one to convergence, then fold the results back together.
type Decomposition interface {
	CreateSubdomains(p *param.Parameters, m *mesh.Mesh, store *attrs.Store) ([]*SubDomain, error)
	MergeSubdomains(domains []*SubDomain, p *param.Parameters, m *mesh.Mesh, store *attrs.Store) error
}

// SlabDecomposition implements spec.md §4.10: NumberOfSubdomains slabs cut
// along ascending x, each triangle assigned to the slab holding the
// majority of its vertices, each vertex shared by more than one slab's
// triangles flagged submesh_boundary in that slab's submesh.
type SlabDecomposition struct{}

// CreateSubdomains partitions m into p.NumberOfSubdomains (at least 1)
// slabs by the x-coordinate of each vertex's `current` position.
func (SlabDecomposition) CreateSubdomains(p *param.Parameters, m *mesh.Mesh, store *attrs.Store) ([]*SubDomain, error) {
	n := p.NumberOfSubdomains
	if n < 1 {
		n = 1
	}

	vertices := m.AllVertices()
	if len(vertices) == 0 {
		n = 1
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, v := range vertices {
		x := store.Current(v).X
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}
	width := maxX - minX

	slabOf := func(v simplex.Simplex0) int {
		if n <= 1 || width <= 0 {
			return 0
		}
		idx := int((store.Current(v).X - minX) / width * float64(n))
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		return idx
	}

	triangles := m.AllTriangles()
	triSlab := make(map[simplex.Simplex2]int, len(triangles))
	vertexSlabs := make(map[simplex.Simplex0]map[int]struct{})
	for _, t := range triangles {
		counts := make(map[int]int, 3)
		for _, v := range t.Vertices() {
			counts[slabOf(v)]++
		}
		best, bestCount := 0, -1
		for idx := 0; idx < n; idx++ {
			if counts[idx] > bestCount {
				best, bestCount = idx, counts[idx]
			}
		}
		triSlab[t] = best
		for _, v := range t.Vertices() {
			if vertexSlabs[v] == nil {
				vertexSlabs[v] = make(map[int]struct{})
			}
			vertexSlabs[v][best] = struct{}{}
		}
	}

	highWater := 0
	for _, v := range vertices {
		if int(v) > highWater {
			highWater = int(v)
		}
	}

	domains := make([]*SubDomain, n)
	for i := 0; i < n; i++ {
		sp := p.Clone()
		domains[i] = &SubDomain{
			ID:        i,
			Mesh:      mesh.NewWithNextVertex(highWater + (i+1)*idBlockSize),
			Store:     attrs.NewStore(),
			Params:    sp,
			Algorithm: pipeline.Algorithm{Params: sp},
		}
	}

	for _, name := range store.NamesOf(attrs.DimVertex) {
		for _, d := range domains {
			_ = d.Store.Create(name, attrs.DimVertex)
		}
	}
	for _, name := range store.NamesOf(attrs.DimEdge) {
		for _, d := range domains {
			_ = d.Store.Create(name, attrs.DimEdge)
		}
	}
	for _, name := range store.NamesOf(attrs.DimTriangle) {
		for _, d := range domains {
			_ = d.Store.Create(name, attrs.DimTriangle)
		}
	}

	copiedVertex := make(map[int]map[simplex.Simplex0]bool, n)
	copiedEdge := make(map[int]map[simplex.Simplex1]bool, n)
	for i := range domains {
		copiedVertex[i] = make(map[simplex.Simplex0]bool)
		copiedEdge[i] = make(map[simplex.Simplex1]bool)
	}

	for _, t := range triangles {
		slab := triSlab[t]
		d := domains[slab]
		v0, v1, v2, ok := m.OrientedVertices(t)
		if !ok {
			continue
		}
		nt, err := d.Mesh.InsertTriangle(v0, v1, v2)
		if err != nil {
			return nil, err
		}
		d.Mesh.SetLabel(nt, m.Label(t))
		copyTriangleAttrs(store, d.Store, t)

		for _, v := range [3]simplex.Simplex0{v0, v1, v2} {
			if !copiedVertex[slab][v] {
				copiedVertex[slab][v] = true
				copyVertexAttrs(store, d.Store, v)
				d.Mesh.SetSubmeshBoundary(v, len(vertexSlabs[v]) > 1)
			}
		}
		for _, e := range t.Edges() {
			if !copiedEdge[slab][e] {
				copiedEdge[slab][e] = true
				copyEdgeAttrs(store, d.Store, e)
			}
		}
	}

	return domains, nil
}

// MergeSubdomains rebuilds m and store from scratch out of every
// subdomain's final submesh, per spec.md §4.10's decomposition-then-merge
// round trip. Vertices shared by more than one subdomain carry identical
// attribute values in each copy (operations never touch a
// submesh-boundary vertex), so the first subdomain to contribute a given
// simplex owns its copy; submesh_boundary itself is always cleared, since
// the merged global mesh is not anyone's decomposition cut.
func (SlabDecomposition) MergeSubdomains(domains []*SubDomain, p *param.Parameters, m *mesh.Mesh, store *attrs.Store) error {
	m.Reset()
	newStore := attrs.NewStore()

	names0 := map[string]struct{}{}
	names1 := map[string]struct{}{}
	names2 := map[string]struct{}{}
	for _, d := range domains {
		for _, name := range d.Store.NamesOf(attrs.DimVertex) {
			names0[name] = struct{}{}
		}
		for _, name := range d.Store.NamesOf(attrs.DimEdge) {
			names1[name] = struct{}{}
		}
		for _, name := range d.Store.NamesOf(attrs.DimTriangle) {
			names2[name] = struct{}{}
		}
	}
	for name := range names0 {
		_ = newStore.Create(name, attrs.DimVertex)
	}
	for name := range names1 {
		_ = newStore.Create(name, attrs.DimEdge)
	}
	for name := range names2 {
		_ = newStore.Create(name, attrs.DimTriangle)
	}

	seenVertex := make(map[simplex.Simplex0]bool)
	seenEdge := make(map[simplex.Simplex1]bool)

	for _, d := range domains {
		for _, t := range d.Mesh.AllTriangles() {
			v0, v1, v2, ok := d.Mesh.OrientedVertices(t)
			if !ok {
				continue
			}
			nt, err := m.InsertTriangle(v0, v1, v2)
			if err != nil {
				return err
			}
			m.SetLabel(nt, d.Mesh.Label(t))
			copyTriangleAttrs(d.Store, newStore, t)

			for _, v := range [3]simplex.Simplex0{v0, v1, v2} {
				if !seenVertex[v] {
					seenVertex[v] = true
					copyVertexAttrs(d.Store, newStore, v)
					m.SetSubmeshBoundary(v, false)
				}
			}
			for _, e := range t.Edges() {
				if !seenEdge[e] {
					seenEdge[e] = true
					copyEdgeAttrs(d.Store, newStore, e)
				}
			}
		}
	}

	store.ReplaceWith(newStore)
	return nil
}

func copyVertexAttrs(src, dst *attrs.Store, v simplex.Simplex0) {
	dst.SetCurrent(v, src.Current(v))
	names := src.NamesOf(attrs.DimVertex)
	for _, label := range src.Labels(v) {
		dst.AddLabel(v, label)
		for _, name := range names {
			if val, err := src.GetVertex(name, v, label); err == nil {
				_ = dst.SetVertex(name, v, label, val)
			}
		}
		if tgt, err := src.Target(v, label); err == nil {
			dst.SetTarget(v, label, tgt)
		}
	}
}

func copyEdgeAttrs(src, dst *attrs.Store, e simplex.Simplex1) {
	for _, name := range src.NamesOf(attrs.DimEdge) {
		if val, err := src.GetEdge(name, e); err == nil {
			_ = dst.SetEdge(name, e, val)
		}
	}
}

func copyTriangleAttrs(src, dst *attrs.Store, t simplex.Simplex2) {
	for _, name := range src.NamesOf(attrs.DimTriangle) {
		if val, err := src.GetTriangle(name, t); err == nil {
			_ = dst.SetTriangle(name, t, val)
		}
	}
}
