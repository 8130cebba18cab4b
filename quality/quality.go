// Package quality implements the per-operation bad-simplex predicates of
// spec.md §4.7. Each Measure selects candidates for exactly one mesh
// operation, and is itself built from package logic's composable
// predicates plus the small amount of geometry (angles, lengths, areas)
// the original measures need.
package quality

import (
	"math"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/simplex"
)

// Measure is a predicate selecting bad simplices of a fixed dimension
// for one named operation.
type Measure interface {
	IsBad(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool
}

func dist(a, b attrs.Vec2) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func angleAt(apex, p1, p2 attrs.Vec2) float64 {
	v1 := attrs.Vec2{X: p1.X - apex.X, Y: p1.Y - apex.Y}
	v2 := attrs.Vec2{X: p2.X - apex.X, Y: p2.Y - apex.Y}
	dot := v1.X*v2.X + v1.Y*v2.Y
	n1 := math.Hypot(v1.X, v1.Y)
	n2 := math.Hypot(v2.X, v2.Y)
	if n1 == 0 || n2 == 0 {
		return 0
	}
	cos := dot / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}

func edgeLength(a *attrs.Store, e simplex.Simplex1) float64 {
	va, vb := e.Vertices()
	return dist(a.Current(va), a.Current(vb))
}

// AlwaysBad marks every simplex it is asked about as bad, used by
// unconditional smoothing batches.
type AlwaysBad struct{}

// IsBad implements Measure.
func (AlwaysBad) IsBad(*mesh.Mesh, *attrs.Store, simplex.Simplex) bool { return true }

// Threshold is bad when an edge's length crosses the upper or lower
// bound stored as an edge attribute name (e.g. "refinement",
// "coarsening").
type Threshold struct {
	Attribute string
	// Mode selects whether crossing means "longer than" (refinement) or
	// "shorter than" (coarsening).
	Mode ThresholdMode
}

// ThresholdMode selects the comparison direction for Threshold.
type ThresholdMode int

const (
	// Upper: bad if edge length > attribute value.
	Upper ThresholdMode = iota
	// Lower: bad if edge length < attribute value.
	Lower
)

// IsBad implements Measure.
func (t Threshold) IsBad(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool {
	e, ok := s.(simplex.Simplex1)
	if !ok {
		return false
	}
	bound, err := a.GetEdge(t.Attribute, e)
	if err != nil {
		return false
	}
	length := edgeLength(a, e)
	if t.Mode == Upper {
		return length > bound
	}
	return length < bound
}

// Delaunay is bad when e's two opposite vertices form a locally
// non-Delaunay quadrilateral (the sum of the angles opposite e in its
// two incident triangles exceeds 180 degrees) and both incident
// triangles have positive area.
type Delaunay struct{}

// IsBad implements Measure.
func (Delaunay) IsBad(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool {
	e, ok := s.(simplex.Simplex1)
	if !ok {
		return false
	}
	tris := m.TrianglesOf(e)
	if len(tris) != 2 {
		return false
	}
	v1, v2 := e.Vertices()
	w1 := tris[0].Opposite(e)
	w2 := tris[1].Opposite(e)

	if m.TriangleArea(tris[0], a) <= 0 || m.TriangleArea(tris[1], a) <= 0 {
		return false
	}

	p1, p2 := a.Current(v1), a.Current(v2)
	angle1 := angleAt(a.Current(w1), p1, p2)
	angle2 := angleAt(a.Current(w2), p1, p2)
	return angle1+angle2 > math.Pi
}

// InterfaceFlatness is bad when v is a 2-valent interface vertex whose
// turning angle exceeds the configured angle threshold.
type InterfaceFlatness struct {
	Name   string
	Label  simplex.Label
	Params *param.Parameters
}

// IsBad implements Measure.
func (q InterfaceFlatness) IsBad(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool {
	v, ok := s.(simplex.Simplex0)
	if !ok {
		return false
	}
	ifaceEdges := interfaceEdgesAt(m, v)
	if len(ifaceEdges) != 2 {
		return false
	}
	other0 := ifaceEdges[0].Other(v)
	other1 := ifaceEdges[1].Other(v)
	turning := math.Pi - angleAt(a.Current(v), a.Current(other0), a.Current(other1))
	limit := q.Params.AngleThreshold(q.Name, q.Label) * math.Pi / 180
	return math.Abs(turning) > limit
}

func interfaceEdgesAt(m *mesh.Mesh, v simplex.Simplex0) []simplex.Simplex1 {
	var out []simplex.Simplex1
	for _, e := range m.IncidentEdges(v) {
		if m.IsInterfaceEdge(e) {
			out = append(out, e)
		}
	}
	return out
}

// MaxMinAreaEdge is bad when t's area-to-longest-edge-squared ratio
// falls below the configured threshold, a standard shape-quality
// surrogate for "max-min angle" triangle quality.
type MaxMinAreaEdge struct {
	Name   string
	Label  simplex.Label
	Params *param.Parameters
}

// IsBad implements Measure.
func (q MaxMinAreaEdge) IsBad(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool {
	t, ok := s.(simplex.Simplex2)
	if !ok {
		return false
	}
	area := m.TriangleArea(t, a)
	longest := 0.0
	for _, e := range t.Edges() {
		if l := edgeLength(a, e); l > longest {
			longest = l
		}
	}
	if longest == 0 {
		return true
	}
	ratio := area / (longest * longest)
	minRatio := q.Params.GetAreaThreshold(q.Name, q.Label)
	return ratio < minRatio
}

// VertexSplit is bad per spec.md §4.5.5: v is interface, not
// submesh-boundary, participates in at least two non-ambient phases, and
// two of those phases' target positions differ by more than the
// configured distance threshold.
type VertexSplit struct {
	Name         string
	Params       *param.Parameters
	AmbientLabel simplex.Label
	UseAmbient   bool
}

// IsBad implements Measure.
func (q VertexSplit) IsBad(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool {
	v, ok := s.(simplex.Simplex0)
	if !ok {
		return false
	}
	if m.SubmeshBoundary(v) || !m.IsInterfaceVertex(v) {
		return false
	}
	labels := nonAmbient(m.LabelsAt(v), q.AmbientLabel, q.UseAmbient)
	if len(labels) < 2 {
		return false
	}
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			ti, erri := a.Target(v, labels[i])
			tj, errj := a.Target(v, labels[j])
			if erri != nil || errj != nil {
				continue
			}
			if dist(ti, tj) > q.Params.GetDistanceThreshold(q.Name, labels[i]) {
				return true
			}
		}
	}
	return false
}

func nonAmbient(labels []simplex.Label, ambient simplex.Label, useAmbient bool) []simplex.Label {
	if !useAmbient {
		return labels
	}
	out := make([]simplex.Label, 0, len(labels))
	for _, l := range labels {
		if l != ambient {
			out = append(out, l)
		}
	}
	return out
}

// Merge is bad iff t meets the merge preconditions of spec.md §4.5.4:
// its longest edge is an interface edge whose opposite vertex is also on
// the interface, within the configured distance threshold of the edge,
// and under the configured angle threshold. Per the resolved open
// question (DESIGN.md #2), a candidate whose longest edge is not the
// interface edge is skipped outright.
type Merge struct {
	Name   string
	Label  simplex.Label
	Params *param.Parameters
}

// IsBad implements Measure.
func (q Merge) IsBad(m *mesh.Mesh, a *attrs.Store, s simplex.Simplex) bool {
	t, ok := s.(simplex.Simplex2)
	if !ok {
		return false
	}
	e := longestEdge(t, a)
	if !m.IsInterfaceEdge(e) {
		return false
	}
	vOpp := t.Opposite(e)
	if !m.IsInterfaceVertex(vOpp) {
		return false
	}
	v1, v2 := e.Vertices()
	d := pointLineDistance(a.Current(vOpp), a.Current(v1), a.Current(v2))
	if d > q.Params.GetDistanceThreshold(q.Name, q.Label) {
		return false
	}
	angle := angleAt(a.Current(vOpp), a.Current(v1), a.Current(v2))
	limit := q.Params.AngleThreshold(q.Name, q.Label) * math.Pi / 180
	return angle < limit
}

func longestEdge(t simplex.Simplex2, a *attrs.Store) simplex.Simplex1 {
	edges := t.Edges()
	best := edges[0]
	bestLen := edgeLength(a, best)
	for _, e := range edges[1:] {
		if l := edgeLength(a, e); l > bestLen {
			best, bestLen = e, l
		}
	}
	return best
}

func pointLineDistance(p, a, b attrs.Vec2) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	abLen := math.Hypot(abx, aby)
	if abLen == 0 {
		return dist(p, a)
	}
	cross := abx*apy - aby*apx
	return math.Abs(cross) / abLen
}
