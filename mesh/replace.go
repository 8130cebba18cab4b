package mesh

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/giterr"
	"github.com/gritmesh/grit/simplex"
)

// snapshot is a deep copy of the mesh's mutable state, used by Replace to
// make the "insert-all-new, then remove-all-old, then validate" sequence
// atomic. This generalizes core.Graph.Clone's deep-copy-for-export
// pattern into a deep-copy-for-rollback one: Replace snapshots before
// mutating and restores on any validation failure, rather than trying to
// undo each step precisely.
type snapshot struct {
	nextVertex      int
	vertices        map[simplex.Simplex0]struct{}
	submeshBoundary map[simplex.Simplex0]bool
	vertexTris      map[simplex.Simplex0]map[simplex.Simplex2]struct{}
	edgeTris        map[simplex.Simplex1][]simplex.Simplex2
	triangles       map[simplex.Simplex2]*triRecord
}

func (m *Mesh) snapshotLocked() *snapshot {
	s := &snapshot{
		nextVertex:      m.nextVertex,
		vertices:        make(map[simplex.Simplex0]struct{}, len(m.vertices)),
		submeshBoundary: make(map[simplex.Simplex0]bool, len(m.submeshBoundary)),
		vertexTris:      make(map[simplex.Simplex0]map[simplex.Simplex2]struct{}, len(m.vertexTris)),
		edgeTris:        make(map[simplex.Simplex1][]simplex.Simplex2, len(m.edgeTris)),
		triangles:       make(map[simplex.Simplex2]*triRecord, len(m.triangles)),
	}
	for v := range m.vertices {
		s.vertices[v] = struct{}{}
	}
	for v, b := range m.submeshBoundary {
		s.submeshBoundary[v] = b
	}
	for v, ts := range m.vertexTris {
		cp := make(map[simplex.Simplex2]struct{}, len(ts))
		for t := range ts {
			cp[t] = struct{}{}
		}
		s.vertexTris[v] = cp
	}
	for e, ts := range m.edgeTris {
		cp := make([]simplex.Simplex2, len(ts))
		copy(cp, ts)
		s.edgeTris[e] = cp
	}
	for t, rec := range m.triangles {
		cp := *rec
		s.triangles[t] = &cp
	}
	return s
}

func (m *Mesh) restoreLocked(s *snapshot) {
	m.nextVertex = s.nextVertex
	m.vertices = s.vertices
	m.submeshBoundary = s.submeshBoundary
	m.vertexTris = s.vertexTris
	m.edgeTris = s.edgeTris
	m.triangles = s.triangles
}

// ChangeSet is the plain-data description a mesh operation's plan() step
// produces (spec.md §9: "a plain data record of old/new sets and parent
// maps", replacing the original's friend-class gateway). The runner
// (package batch) alone performs the commit via Replace.
type ChangeSet struct {
	// NewTriangles are the oriented triangles to insert.
	NewTriangles []OrientedTriangle
	// OldSet is every simplex to remove once the new set is fully
	// inserted.
	OldSet simplex.Set
	// ParentLUT2 maps each new triangle's canonical id to the existing
	// triangle it inherits attributes and label from.
	ParentLUT2 map[simplex.Simplex2]simplex.Simplex2
}

// Replace is the atomic connectivity swap every mesh operation commits
// through: every simplex in cs.NewTriangles is inserted before any
// simplex in cs.OldSet is removed. Each new triangle's winding is
// re-derived from store's `current` coordinates to be CCW; insertion
// fails the whole Replace with giterr.ErrTopologyViolation if the
// triangle would be degenerate (zero area) or if committing the change
// would leave any edge with more than two incident triangles.
//
// On failure the mesh is left exactly as it was before the call (no
// partial topology change is ever observed), per spec.md §7.
func (m *Mesh) Replace(cs ChangeSet, store *attrs.Store) (map[simplex.Simplex2]simplex.Simplex2, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshotLocked()
	newIDs := make(map[simplex.Simplex2]simplex.Simplex2, len(cs.NewTriangles))

	for _, ot := range cs.NewTriangles {
		p0 := store.Current(ot.V0)
		p1 := store.Current(ot.V1)
		p2 := store.Current(ot.V2)
		area := signedArea(p0, p1, p2)

		v0, v1, v2 := ot.V0, ot.V1, ot.V2
		if area < 0 {
			v1, v2 = v2, v1
			area = -area
		}
		if area <= 0 {
			m.restoreLocked(snap)
			return nil, giterr.ErrTopologyViolation
		}

		id, err := m.insertTriangleLockedAllowOverfan(v0, v1, v2, m.labelFor(ot, cs.ParentLUT2))
		if err != nil {
			m.restoreLocked(snap)
			return nil, err
		}
		newIDs[id] = cs.ParentLUT2[ot.Canonical()]
	}

	for _, t := range cs.OldSet.Triangles() {
		m.removeTriangleLocked(t)
	}
	for _, e := range cs.OldSet.Edges() {
		if err := m.removeEdgeLocked(e); err != nil {
			m.restoreLocked(snap)
			return nil, err
		}
	}
	for _, v := range cs.OldSet.Vertices() {
		if err := m.removeVertexLocked(v); err != nil {
			m.restoreLocked(snap)
			return nil, err
		}
	}

	for e, tris := range m.edgeTris {
		if len(tris) > 2 {
			m.restoreLocked(snap)
			return nil, giterr.ErrTopologyViolation
		}
		_ = e
	}

	return newIDs, nil
}

func (m *Mesh) labelFor(ot OrientedTriangle, lut map[simplex.Simplex2]simplex.Simplex2) simplex.Label {
	parent, ok := lut[ot.Canonical()]
	if !ok {
		return 0
	}
	if rec, ok := m.triangles[parent]; ok {
		return rec.label
	}
	return 0
}

// insertTriangleLockedAllowOverfan is identical to insertTriangleLocked
// except it does not reject a third incident triangle on an edge — that
// invariant is validated once, globally, at the end of Replace, since the
// old triangle sharing the edge is typically still present at the moment
// the new one is inserted.
func (m *Mesh) insertTriangleLockedAllowOverfan(v0, v1, v2 simplex.Simplex0, label simplex.Label) (simplex.Simplex2, error) {
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
	m.triangles[id] = &triRecord{verts: [3]int{int(v0), int(v1), int(v2)}, label: label}
	for _, e := range id.Edges() {
		m.edgeTris[e] = append(m.edgeTris[e], id)
	}
	for _, v := range id.Vertices() {
		m.vertexTris[v][id] = struct{}{}
	}
	return id, nil
}
