// Package engine implements the top-level facade of spec.md §4: a single
// Update(parameters) entry point that owns the global mesh and attribute
// store and drives them to convergence through scheduler.Run.
//
// Grounded on the teacher's builder/api.go posture — a thin public facade
// carrying no algorithmic logic of its own, only wiring and ownership.
package engine

import (
	"log/slog"

	"github.com/gritmesh/grit/attrs"
	"github.com/gritmesh/grit/mesh"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/scheduler"
	"github.com/gritmesh/grit/subdomain"
)

// Engine owns one mesh and its attribute store for the lifetime of a
// simulation run. Per spec.md §3's ownership rule, the Engine is the sole
// writer of its Mesh/Store outside of an in-flight Update call.
type Engine struct {
	Mesh   *mesh.Mesh
	Store  *attrs.Store
	Logger *slog.Logger

	decomp subdomain.Decomposition
}

// New returns an Engine over an existing mesh/store pair — typically the
// result of meshio.Load. logger may be nil (defaults to slog.Default()
// inside scheduler.Run).
func New(m *mesh.Mesh, store *attrs.Store, logger *slog.Logger) *Engine {
	return &Engine{
		Mesh:   m,
		Store:  store,
		Logger: logger,
		decomp: subdomain.SlabDecomposition{},
	}
}

// Update runs the scheduler's decompose/pipeline/merge loop against the
// engine's mesh and store until convergence (or Parameters' "scheduler"
// iteration cap is hit), reporting progress through mon (may be nil).
func (e *Engine) Update(p *param.Parameters, mon scheduler.Monitor) error {
	reconcileVertexLabels(e.Mesh, e.Store, p)
	return scheduler.Run(e.decomp, p, e.Mesh, e.Store, mon, e.Logger)
}
