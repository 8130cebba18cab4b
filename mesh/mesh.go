// Package mesh implements the incidence-preserving 2-complex store of
// spec.md §3/§4.2: vertices, edges and oriented triangles with a phase
// label, plus the primitive operations (insert, remove, replace) every
// mesh operation in package ops commits through.
//
// The storage shape directly generalizes the teacher's core.Graph:
// core.Graph keeps adjacencyList[from][to][edgeID] nested maps guarded by
// a pair of sync.RWMutex; Mesh keeps the analogous vertex->triangle and
// edge->triangle incidence maps guarded by one sync.RWMutex (a single
// lock suffices here because, per spec.md §5, a Mesh is mutated by at
// most one goroutine at a time — the lock exists so glue.Phase views can
// read concurrently with that single writer, not to arbitrate writers).
package mesh

import (
	"sync"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/giterr"
	"github.com/gritmesh/grit/simplex"
)

// OrientedTriangle is a triangle as a mesh operation plans it: an ordered
// (v0, v1, v2) triple whose winding the operation intends, prior to the
// CCW-orientation check Replace performs against attrs.Store.Current.
type OrientedTriangle struct {
	V0, V1, V2 simplex.Simplex0
}

// Canonical returns the unordered identity of the triangle.
func (o OrientedTriangle) Canonical() simplex.Simplex2 {
	return simplex.NewSimplex2(int(o.V0), int(o.V1), int(o.V2))
}

type triRecord struct {
	verts [3]int // oriented as last (re)inserted
	label simplex.Label
}

// Mesh is a 2-manifold-with-boundary 2-complex: for every 2-simplex, its
// oriented triple and phase label; for every 1-simplex, the 2-simplices
// sharing it (0, 1 or 2); for every 0-simplex, the incident 2-simplices
// and a submesh-boundary flag.
type Mesh struct {
	mu sync.RWMutex

	nextVertex int

	vertices        map[simplex.Simplex0]struct{}
	submeshBoundary map[simplex.Simplex0]bool
	vertexTris      map[simplex.Simplex0]map[simplex.Simplex2]struct{}

	edgeTris map[simplex.Simplex1][]simplex.Simplex2

	triangles map[simplex.Simplex2]*triRecord
}

// New returns an empty Mesh.
func New() *Mesh {
	return &Mesh{
		vertices:        make(map[simplex.Simplex0]struct{}),
		submeshBoundary: make(map[simplex.Simplex0]bool),
		vertexTris:      make(map[simplex.Simplex0]map[simplex.Simplex2]struct{}),
		edgeTris:        make(map[simplex.Simplex1][]simplex.Simplex2),
		triangles:       make(map[simplex.Simplex2]*triRecord),
	}
}

// NewWithNextVertex returns an empty Mesh whose InsertVertex/ReserveVertex
// id allocator starts just above n. Package subdomain uses this to hand
// each slab's submesh a disjoint block of fresh ids, so that two
// submeshes independently allocating new vertices (a split midpoint, a
// vertex-split copy) during the same scheduler iteration can never
// collide, without needing a local<->global id translation table.
func NewWithNextVertex(n int) *Mesh {
	m := New()
	m.nextVertex = n
	return m
}

// Reset discards every vertex, edge, triangle and flag, returning m to
// the state New() would produce. Package subdomain uses this to rebuild
// the global mesh from scratch when folding a scheduler iteration's
// submeshes back together.
func (m *Mesh) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextVertex = 0
	m.vertices = make(map[simplex.Simplex0]struct{})
	m.submeshBoundary = make(map[simplex.Simplex0]bool)
	m.vertexTris = make(map[simplex.Simplex0]map[simplex.Simplex2]struct{})
	m.edgeTris = make(map[simplex.Simplex1][]simplex.Simplex2)
	m.triangles = make(map[simplex.Simplex2]*triRecord)
}

// InsertVertex allocates a fresh vertex id and marks it present with no
// incident simplices.
func (m *Mesh) InsertVertex() simplex.Simplex0 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertVertexLocked()
}

func (m *Mesh) insertVertexLocked() simplex.Simplex0 {
	m.nextVertex++
	v := simplex.Simplex0(m.nextVertex)
	m.vertices[v] = struct{}{}
	m.vertexTris[v] = make(map[simplex.Simplex2]struct{})
	return v
}

// ReserveVertex allocates a fresh vertex id without marking it present.
// Mesh operations (package ops) call this during planning to name a
// vertex a new triangle will reference; the id only becomes a real mesh
// vertex once Replace actually inserts a triangle that uses it, keeping
// planning itself non-mutating with respect to topology.
func (m *Mesh) ReserveVertex() simplex.Simplex0 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextVertex++
	return simplex.Simplex0(m.nextVertex)
}

// HasVertex reports whether v is present in the mesh.
func (m *Mesh) HasVertex(v simplex.Simplex0) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vertices[v]
	return ok
}

// InsertTriangle canonicalises (v0, v1, v2), inserts any missing edges,
// and inserts the triangle, storing the given winding as-is (callers that
// care about CCW — meshio.Load, ops.*'s commit path — are responsible for
// orienting it). Fails with giterr.ErrInvalidGeometry if any two of the
// three vertices coincide, or giterr.ErrTopologyViolation if inserting
// would give any of the triangle's edges a third incident triangle (fans
// are forbidden).
func (m *Mesh) InsertTriangle(v0, v1, v2 simplex.Simplex0) (simplex.Simplex2, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertTriangleLocked(v0, v1, v2, 0)
}

func (m *Mesh) insertTriangleLocked(v0, v1, v2 simplex.Simplex0, label simplex.Label) (simplex.Simplex2, error) {
	if v0 == v1 || v1 == v2 || v0 == v2 {
		return simplex.Simplex2{}, giterr.ErrInvalidGeometry
	}
	for _, v := range [3]simplex.Simplex0{v0, v1, v2} {
		if _, ok := m.vertices[v]; !ok {
			m.vertices[v] = struct{}{}
			m.vertexTris[v] = make(map[simplex.Simplex2]struct{})
		}
	}

	id := simplex.NewSimplex2(int(v0), int(v1), int(v2))
	if _, exists := m.triangles[id]; exists {
		return simplex.Simplex2{}, giterr.ErrTopologyViolation
	}

	edges := id.Edges()
	for _, e := range edges {
		if len(m.edgeTris[e]) >= 2 {
			return simplex.Simplex2{}, giterr.ErrTopologyViolation
		}
	}

	m.triangles[id] = &triRecord{verts: [3]int{int(v0), int(v1), int(v2)}, label: label}
	for _, e := range edges {
		m.edgeTris[e] = append(m.edgeTris[e], id)
	}
	for _, v := range id.Vertices() {
		m.vertexTris[v][id] = struct{}{}
	}
	return id, nil
}

// Remove deletes s if nothing of higher dimension depends on it; removing
// a 2-simplex cascades to any edge or vertex it orphans, per spec.md
// §4.2.
func (m *Mesh) Remove(s simplex.Simplex) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := s.(type) {
	case simplex.Simplex0:
		return m.removeVertexLocked(v)
	case simplex.Simplex1:
		return m.removeEdgeLocked(v)
	case simplex.Simplex2:
		if _, ok := m.triangles[v]; !ok {
			return nil
		}
		m.removeTriangleLocked(v)
		for _, u := range v.Vertices() {
			if len(m.vertexTris[u]) == 0 {
				_ = m.removeVertexLocked(u)
			}
		}
		return nil
	default:
		return giterr.ErrInvalidArgument
	}
}

func (m *Mesh) removeTriangleLocked(t simplex.Simplex2) {
	rec, ok := m.triangles[t]
	if !ok {
		return
	}
	delete(m.triangles, t)
	for _, v := range t.Vertices() {
		delete(m.vertexTris[v], t)
	}
	for _, e := range t.Edges() {
		tris := m.edgeTris[e]
		for i, tt := range tris {
			if tt == t {
				tris = append(tris[:i], tris[i+1:]...)
				break
			}
		}
		if len(tris) == 0 {
			delete(m.edgeTris, e)
		} else {
			m.edgeTris[e] = tris
		}
	}
	_ = rec
}

func (m *Mesh) removeEdgeLocked(e simplex.Simplex1) error {
	if len(m.edgeTris[e]) > 0 {
		return giterr.ErrTopologyViolation
	}
	delete(m.edgeTris, e)
	return nil
}

func (m *Mesh) removeVertexLocked(v simplex.Simplex0) error {
	if len(m.vertexTris[v]) > 0 {
		return giterr.ErrTopologyViolation
	}
	delete(m.vertices, v)
	delete(m.vertexTris, v)
	delete(m.submeshBoundary, v)
	return nil
}

// Label returns the phase label of t.
func (m *Mesh) Label(t simplex.Simplex2) simplex.Label {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.triangles[t]; ok {
		return rec.label
	}
	return 0
}

// SetLabel writes the phase label of t.
func (m *Mesh) SetLabel(t simplex.Simplex2, label simplex.Label) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.triangles[t]; ok {
		rec.label = label
	}
}

// SubmeshBoundary reports whether v lies on a decomposition cut line.
func (m *Mesh) SubmeshBoundary(v simplex.Simplex0) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.submeshBoundary[v]
}

// SetSubmeshBoundary writes the submesh-boundary flag of v.
func (m *Mesh) SetSubmeshBoundary(v simplex.Simplex0, flag bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submeshBoundary[v] = flag
}

// OrientedVertices returns t's stored winding.
func (m *Mesh) OrientedVertices(t simplex.Simplex2) (simplex.Simplex0, simplex.Simplex0, simplex.Simplex0, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.triangles[t]
	if !ok {
		return 0, 0, 0, false
	}
	return simplex.Simplex0(rec.verts[0]), simplex.Simplex0(rec.verts[1]), simplex.Simplex0(rec.verts[2]), true
}

// AllTriangles returns every 2-simplex in the mesh, sorted.
func (m *Mesh) AllTriangles() []simplex.Simplex2 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]simplex.Simplex2, 0, len(m.triangles))
	for t := range m.triangles {
		out = append(out, t)
	}
	s := simplex.NewSet()
	for _, t := range out {
		s = s.AddT(t)
	}
	return s.Triangles()
}

// AllVertices returns every 0-simplex in the mesh, sorted.
func (m *Mesh) AllVertices() []simplex.Simplex0 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := simplex.NewSet()
	for v := range m.vertices {
		s = s.AddV(v)
	}
	return s.Vertices()
}

// AllEdges returns every 1-simplex in the mesh, sorted.
func (m *Mesh) AllEdges() []simplex.Simplex1 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := simplex.NewSet()
	for e := range m.edgeTris {
		s = s.AddE(e)
	}
	return s.Edges()
}

// TrianglesOf returns the 2-simplices sharing edge e (0, 1 or 2 of
// them).
func (m *Mesh) TrianglesOf(e simplex.Simplex1) []simplex.Simplex2 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]simplex.Simplex2, len(m.edgeTris[e]))
	copy(out, m.edgeTris[e])
	return out
}

// TrianglesAt returns the 2-simplices incident to v.
func (m *Mesh) TrianglesAt(v simplex.Simplex0) []simplex.Simplex2 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]simplex.Simplex2, 0, len(m.vertexTris[v]))
	for t := range m.vertexTris[v] {
		out = append(out, t)
	}
	return out
}

// IsValid reports whether s still exists in the mesh (used by the batch
// runner to skip picks invalidated by an earlier commit in the same
// pass).
func (m *Mesh) IsValid(s simplex.Simplex) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch v := s.(type) {
	case simplex.Simplex0:
		_, ok := m.vertices[v]
		return ok
	case simplex.Simplex1:
		return len(m.edgeTris[v]) > 0
	case simplex.Simplex2:
		_, ok := m.triangles[v]
		return ok
	default:
		return false
	}
}

func signedArea(a, b, c attrs.Vec2) float64 {
	return 0.5 * ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y))
}

// TriangleArea returns the embedding area of t using positions from
// store. Returns 0 if t is unknown.
func (m *Mesh) TriangleArea(t simplex.Simplex2, store *attrs.Store) float64 {
	v0, v1, v2, ok := m.OrientedVertices(t)
	if !ok {
		return 0
	}
	return Area(store.Current(v0), store.Current(v1), store.Current(v2))
}
