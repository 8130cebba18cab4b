// Package giterr collects the sentinel error kinds shared across the GRIT
// engine. Callers use errors.Is against these values; packages that need a
// parameterized error wrap one of these with fmt.Errorf("...: %w", ...).
package giterr

import "errors"

var (
	// ErrInvalidArgument indicates a caller supplied sizes or labels that
	// cannot be matched (e.g. vertex-count vs value-count mismatch at a
	// glue.Phase boundary).
	ErrInvalidArgument = errors.New("grit: invalid argument")

	// ErrMissingAttribute indicates an attribute name was never created for
	// the requested dimension.
	ErrMissingAttribute = errors.New("grit: attribute not created for dimension")

	// ErrUnknownLabel indicates a per-vertex label query where the label is
	// absent from that vertex's label set.
	ErrUnknownLabel = errors.New("grit: label not present on vertex")

	// ErrMissingParent indicates an attribute assignment strategy could not
	// find a look-up entry for a newly created simplex.
	ErrMissingParent = errors.New("grit: missing parent look-up entry")

	// ErrTopologyViolation indicates mesh.replace would create a
	// non-manifold edge, a duplicate triangle, or a non-positively
	// oriented triangle.
	ErrTopologyViolation = errors.New("grit: topology violation")

	// ErrInvalidGeometry indicates a degenerate triangle (two or more
	// coincident vertices).
	ErrInvalidGeometry = errors.New("grit: invalid geometry")

	// ErrIoFailure indicates the input mesh file was not found or could
	// not be parsed.
	ErrIoFailure = errors.New("grit: io failure")
)
