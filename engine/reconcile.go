package engine

import (
	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/simplex"
)

// reconcileVertexLabels brings every vertex's attrs.Store label set back
// in line with the mesh's own topology: a vertex participates in a label
// iff some incident triangle carries it, per spec.md §8's invariant and
// grounded on original_source's
// grit_init_attribute_manager_with_mesh.h, which walks each vertex's
// star and adds a label whenever a dimension-2 member of the star
// carries it. Unlike that routine, a label still present on both sides
// is left alone rather than cleared and re-added, so Current/Target
// values already recorded under it survive.
//
// meshio.Load only ever assigns triangle labels (the `l` line), so a
// freshly loaded mesh has every vertex's label set empty; without this
// step the move and vertex-split operations, which read store.Labels to
// find a vertex's target, would silently never act on it. Update runs
// this once before handing the mesh to the scheduler; subdomain merges
// and the split/vertex-split assignment strategies keep it correct
// afterwards.
func reconcileVertexLabels(m *mesh.Mesh, store *attrs.Store, p *param.Parameters) {
	for _, v := range m.AllVertices() {
		desired := make(map[simplex.Label]bool)
		for _, l := range m.LabelsAt(v) {
			if p.UseAmbient && l == p.AmbientLabel {
				continue
			}
			desired[l] = true
		}
		for _, l := range store.Labels(v) {
			if !desired[l] {
				store.EraseLabel(v, l)
			}
		}
		for l := range desired {
			store.AddLabel(v, l)
		}
	}
}
