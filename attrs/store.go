// Package attrs implements the per-simplex attribute dictionaries of
// spec.md §3/§4.3: named scalar fields keyed by simplex (and additionally
// by phase label for 0-simplices), plus the two reserved 0-simplex vector
// fields `current` and `target`.
//
// Values live in plain Go maps rather than arena-indexed slices: the
// teacher's Vertex.Metadata (core/types.go) already keys per-vertex data
// by a user string, and GRIT generalizes that one step further by adding
// the per-label dimension spec.md requires. A sync.RWMutex guards the
// whole store, mirroring core.Graph's single-writer-per-subdomain
// discipline (see mesh.Mesh).
package attrs

import (
	"sync"

	"github.com/gritmesh/grit/giterr"
	"github.com/gritmesh/grit/simplex"
)

// Dim identifies which simplex dimension an attribute name is registered
// against.
type Dim int

const (
	DimVertex   Dim = 0
	DimEdge     Dim = 1
	DimTriangle Dim = 2
)

// Vec2 is a 2D vector, used for the reserved `current`/`target` fields.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns the component-wise difference.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Mid returns the midpoint of a and b.
func Mid(a, b Vec2) Vec2 { return Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }

// Store is the owned attribute dictionary collection for one mesh (or one
// subdomain's submesh). It must not outlive the mesh it describes.
type Store struct {
	mu sync.RWMutex

	names map[string]Dim // registered attribute name -> dimension

	vertexVal map[string]map[simplex.Simplex0]map[simplex.Label]float64
	edgeVal   map[string]map[simplex.Simplex1]float64
	triVal    map[string]map[simplex.Simplex2]float64

	current Vec2Field
	target  map[simplex.Simplex0]map[simplex.Label]Vec2

	// labels holds each vertex's ordered (insertion-order) set of phase
	// labels it currently participates in.
	labels map[simplex.Simplex0][]simplex.Label
}

// Vec2Field is the reserved, per-vertex (no label) `current` position
// field.
type Vec2Field map[simplex.Simplex0]Vec2

// NewStore returns an empty attribute store.
func NewStore() *Store {
	return &Store{
		names:     make(map[string]Dim),
		vertexVal: make(map[string]map[simplex.Simplex0]map[simplex.Label]float64),
		edgeVal:   make(map[string]map[simplex.Simplex1]float64),
		triVal:    make(map[string]map[simplex.Simplex2]float64),
		current:   make(Vec2Field),
		target:    make(map[simplex.Simplex0]map[simplex.Label]Vec2),
		labels:    make(map[simplex.Simplex0][]simplex.Label),
	}
}

// Create registers name at dimension dim. Idempotent: calling it again
// with the same dim is a no-op; calling it with a different dim is a
// programmer error reported via giterr.ErrInvalidArgument.
func (s *Store) Create(name string, dim Dim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.names[name]; ok {
		if existing != dim {
			return giterr.ErrInvalidArgument
		}
		return nil
	}
	s.names[name] = dim
	switch dim {
	case DimVertex:
		s.vertexVal[name] = make(map[simplex.Simplex0]map[simplex.Label]float64)
	case DimEdge:
		s.edgeVal[name] = make(map[simplex.Simplex1]float64)
	case DimTriangle:
		s.triVal[name] = make(map[simplex.Simplex2]float64)
	}
	return nil
}

// Exist reports whether name is registered at dimension dim.
func (s *Store) Exist(name string, dim Dim) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.names[name]
	return ok && d == dim
}

// GetVertex returns the value of attribute name for (v, label).
func (s *Store) GetVertex(name string, v simplex.Simplex0, label simplex.Label) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byVertex, ok := s.vertexVal[name]
	if !ok {
		return 0, giterr.ErrMissingAttribute
	}
	if !s.hasLabelLocked(v, label) {
		return 0, giterr.ErrUnknownLabel
	}
	byLabel, ok := byVertex[v]
	if !ok {
		return 0, giterr.ErrUnknownLabel
	}
	val, ok := byLabel[label]
	if !ok {
		return 0, giterr.ErrUnknownLabel
	}
	return val, nil
}

// SetVertex creates-or-overwrites attribute name at (v, label).
func (s *Store) SetVertex(name string, v simplex.Simplex0, label simplex.Label, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.names[name]; !ok {
		return giterr.ErrMissingAttribute
	}
	byVertex := s.vertexVal[name]
	if byVertex[v] == nil {
		byVertex[v] = make(map[simplex.Label]float64)
	}
	byVertex[v][label] = value
	return nil
}

// GetEdge returns the value of attribute name for e.
func (s *Store) GetEdge(name string, e simplex.Simplex1) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byEdge, ok := s.edgeVal[name]
	if !ok {
		return 0, giterr.ErrMissingAttribute
	}
	val, ok := byEdge[e]
	if !ok {
		return 0, giterr.ErrMissingAttribute
	}
	return val, nil
}

// SetEdge creates-or-overwrites attribute name for e.
func (s *Store) SetEdge(name string, e simplex.Simplex1, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.names[name]; !ok {
		return giterr.ErrMissingAttribute
	}
	s.edgeVal[name][e] = value
	return nil
}

// GetTriangle returns the value of attribute name for t.
func (s *Store) GetTriangle(name string, t simplex.Simplex2) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byTri, ok := s.triVal[name]
	if !ok {
		return 0, giterr.ErrMissingAttribute
	}
	val, ok := byTri[t]
	if !ok {
		return 0, giterr.ErrMissingAttribute
	}
	return val, nil
}

// SetTriangle creates-or-overwrites attribute name for t.
func (s *Store) SetTriangle(name string, t simplex.Simplex2, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.names[name]; !ok {
		return giterr.ErrMissingAttribute
	}
	s.triVal[name][t] = value
	return nil
}

// Clear writes value to every dim-dimensional simplex the store has
// entries for under name; for a vertex attribute, every (vertex, label)
// entry is overwritten.
func (s *Store) Clear(name string, dim Dim, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.names[name]; !ok || d != dim {
		return giterr.ErrMissingAttribute
	}
	switch dim {
	case DimEdge:
		for e := range s.edgeVal[name] {
			s.edgeVal[name][e] = value
		}
	case DimTriangle:
		for t := range s.triVal[name] {
			s.triVal[name][t] = value
		}
	case DimVertex:
		for v, byLabel := range s.vertexVal[name] {
			for l := range byLabel {
				s.vertexVal[name][v][l] = value
			}
		}
	}
	return nil
}

// Current returns the reserved `current` (spatial position) field of v.
func (s *Store) Current(v simplex.Simplex0) Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current[v]
}

// SetCurrent writes the reserved `current` field of v.
func (s *Store) SetCurrent(v simplex.Simplex0, p Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[v] = p
}

// Target returns the reserved `target` field of (v, label). Fails with
// giterr.ErrUnknownLabel if label is not in v's label set.
func (s *Store) Target(v simplex.Simplex0, label simplex.Label) (Vec2, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasLabelLocked(v, label) {
		return Vec2{}, giterr.ErrUnknownLabel
	}
	byLabel, ok := s.target[v]
	if !ok {
		return Vec2{}, giterr.ErrUnknownLabel
	}
	p, ok := byLabel[label]
	if !ok {
		return Vec2{}, giterr.ErrUnknownLabel
	}
	return p, nil
}

// SetTarget writes the reserved `target` field of (v, label).
func (s *Store) SetTarget(v simplex.Simplex0, label simplex.Label, p Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target[v] == nil {
		s.target[v] = make(map[simplex.Label]Vec2)
	}
	s.target[v][label] = p
}

// Labels returns the ordered set of phase labels v currently participates
// in (insertion order, not sorted — order reflects phase-membership
// history the way the mesh built it up).
func (s *Store) Labels(v simplex.Simplex0) []simplex.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]simplex.Label, len(s.labels[v]))
	copy(out, s.labels[v])
	return out
}

// HasLabel reports whether v participates in label.
func (s *Store) HasLabel(v simplex.Simplex0, label simplex.Label) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasLabelLocked(v, label)
}

func (s *Store) hasLabelLocked(v simplex.Simplex0, label simplex.Label) bool {
	for _, l := range s.labels[v] {
		if l == label {
			return true
		}
	}
	return false
}

// AddLabel appends label to v's label set if not already present. This,
// EraseLabel and ClearLabels are the only ways to change a vertex's
// phase membership, per spec.md §4.6.
func (s *Store) AddLabel(v simplex.Simplex0, label simplex.Label) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasLabelLocked(v, label) {
		return
	}
	s.labels[v] = append(s.labels[v], label)
}

// EraseLabel removes label from v's label set and drops every
// (name, label) value stored for v under that label, preserving every
// other (label, value) pair untouched.
func (s *Store) EraseLabel(v simplex.Simplex0, label simplex.Label) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ls := s.labels[v]
	for i, l := range ls {
		if l == label {
			s.labels[v] = append(ls[:i], ls[i+1:]...)
			break
		}
	}
	for name, byVertex := range s.vertexVal {
		if s.names[name] != DimVertex {
			continue
		}
		delete(byVertex[v], label)
	}
	delete(s.target[v], label)
}

// ClearLabels removes every label from v (and all associated per-label
// values), e.g. when v itself is removed from the mesh.
func (s *Store) ClearLabels(v simplex.Simplex0) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range namesOf(s.names, DimVertex) {
		delete(s.vertexVal[name], v)
	}
	delete(s.target, v)
	delete(s.current, v)
	delete(s.labels, v)
}

// NamesOf returns every attribute name currently registered at dim,
// order unspecified; used by package assign to iterate "every named
// attribute" when copying values from a parent simplex.
func (s *Store) NamesOf(dim Dim) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return namesOf(s.names, dim)
}

func namesOf(names map[string]Dim, dim Dim) []string {
	out := make([]string, 0, len(names))
	for n, d := range names {
		if d == dim {
			out = append(out, n)
		}
	}
	return out
}

// RemoveEdge drops every named attribute value stored for e.
func (s *Store) RemoveEdge(e simplex.Simplex1) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, d := range s.names {
		if d == DimEdge {
			delete(s.edgeVal[name], e)
		}
	}
}

// ReplaceWith atomically swaps s's entire contents with other's. Package
// subdomain uses this to fold a freshly rebuilt store back into the
// engine-owned *Store after a scheduler iteration's submeshes are merged,
// without changing the caller's *Store identity.
func (s *Store) ReplaceWith(other *Store) {
	if s == other {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	other.mu.Lock()
	defer other.mu.Unlock()
	s.names = other.names
	s.vertexVal = other.vertexVal
	s.edgeVal = other.edgeVal
	s.triVal = other.triVal
	s.current = other.current
	s.target = other.target
	s.labels = other.labels
}

// RemoveTriangle drops every named attribute value stored for t.
func (s *Store) RemoveTriangle(t simplex.Simplex2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, d := range s.names {
		if d == DimTriangle {
			delete(s.triVal[name], t)
		}
	}
}
