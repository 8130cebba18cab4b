// Package param implements the configuration surface of spec.md §6: a
// single Parameters value, built with functional options exactly the way
// the teacher's builder.BuilderOption / gridgraph.GridOptions are, and
// cloned once per scheduler iteration so each subdomain thread reads its
// own immutable copy (spec.md §5).
package param

import "github.com/gritmesh/grit/simplex"

// Option mutates a Parameters value during construction. Later options
// override earlier ones, applied left to right — the same determinism
// contract as builder.BuilderOption.
type Option func(*Parameters)

// Parameters holds every tunable the core consumes. New with no options
// gives a reasonable, if inert, default: NumberOfSubdomains 1, no batch
// enabled (MaxIterations defaults to 0 = disabled per name), ambient
// disabled. The zero value has NumberOfSubdomains 0 and nil maps.
type Parameters struct {
	NumberOfSubdomains int
	AmbientLabel       simplex.Label
	UseAmbient         bool
	InputLabels        []simplex.Label

	UseSparseEdgeAttributes bool
	UseOnlyInterface        bool

	MaxIterations map[string]int

	UpperThresholdAttribute map[string]string
	LowerThresholdAttribute map[string]string

	AngleThresholdDeg  map[string]map[simplex.Label]float64
	DistanceThreshold  map[string]map[simplex.Label]float64
	AreaThreshold      map[string]map[simplex.Label]float64
	Strength           map[string]map[simplex.Label]float64

	Verbose             bool
	SilentThreads       bool
	DebugRender         bool
	DebugRenderFilename string
	DebugRenderLevel    int
	Profiling           bool
}

// New returns a Parameters with sensible defaults (1 subdomain, every
// batch disabled) and then applies opts in order.
func New(opts ...Option) *Parameters {
	p := &Parameters{
		NumberOfSubdomains:      1,
		MaxIterations:           make(map[string]int),
		UpperThresholdAttribute: make(map[string]string),
		LowerThresholdAttribute: make(map[string]string),
		AngleThresholdDeg:       make(map[string]map[simplex.Label]float64),
		DistanceThreshold:       make(map[string]map[simplex.Label]float64),
		AreaThreshold:           make(map[string]map[simplex.Label]float64),
		Strength:                make(map[string]map[simplex.Label]float64),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Clone deep-copies p so a scheduler iteration can hand each subdomain
// thread its own immutable snapshot.
func (p *Parameters) Clone() *Parameters {
	c := *p
	c.InputLabels = append([]simplex.Label(nil), p.InputLabels...)
	c.MaxIterations = cloneIntMap(p.MaxIterations)
	c.UpperThresholdAttribute = cloneStrMap(p.UpperThresholdAttribute)
	c.LowerThresholdAttribute = cloneStrMap(p.LowerThresholdAttribute)
	c.AngleThresholdDeg = cloneLabelMap(p.AngleThresholdDeg)
	c.DistanceThreshold = cloneLabelMap(p.DistanceThreshold)
	c.AreaThreshold = cloneLabelMap(p.AreaThreshold)
	c.Strength = cloneLabelMap(p.Strength)
	return &c
}

func cloneIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStrMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneLabelMap(m map[string]map[simplex.Label]float64) map[string]map[simplex.Label]float64 {
	out := make(map[string]map[simplex.Label]float64, len(m))
	for k, inner := range m {
		cp := make(map[simplex.Label]float64, len(inner))
		for l, v := range inner {
			cp[l] = v
		}
		out[k] = cp
	}
	return out
}

// MaxIterationsFor returns the configured cap for the named batch (0 if
// unset, meaning the batch is skipped entirely).
func (p *Parameters) MaxIterationsFor(name string) int {
	return p.MaxIterations[name]
}

// AngleThreshold returns the configured angle (degrees) for
// (name, label), 0 if unset.
func (p *Parameters) AngleThreshold(name string, label simplex.Label) float64 {
	return p.AngleThresholdDeg[name][label]
}

// GetDistanceThreshold returns the configured distance for
// (name, label), 0 if unset.
func (p *Parameters) GetDistanceThreshold(name string, label simplex.Label) float64 {
	return p.DistanceThreshold[name][label]
}

// GetAreaThreshold returns the configured minimum admissible area for
// (name, label), 0 if unset.
func (p *Parameters) GetAreaThreshold(name string, label simplex.Label) float64 {
	return p.AreaThreshold[name][label]
}

// GetStrength returns the configured vertex-split offset magnitude for
// (name, label), 0 if unset.
func (p *Parameters) GetStrength(name string, label simplex.Label) float64 {
	return p.Strength[name][label]
}

// WithNumberOfSubdomains sets the slab count for decomposition.
func WithNumberOfSubdomains(n int) Option {
	return func(p *Parameters) { p.NumberOfSubdomains = n }
}

// WithAmbientLabel sets the phase treated as empty outside, and enables
// ambient filling.
func WithAmbientLabel(l simplex.Label) Option {
	return func(p *Parameters) { p.AmbientLabel = l; p.UseAmbient = true }
}

// WithUseAmbient explicitly toggles ambient filling independent of the
// label value.
func WithUseAmbient(enabled bool) Option {
	return func(p *Parameters) { p.UseAmbient = enabled }
}

// WithInputLabels sets the explicit phase relabelling map applied at
// load time.
func WithInputLabels(labels ...simplex.Label) Option {
	return func(p *Parameters) { p.InputLabels = append([]simplex.Label(nil), labels...) }
}

// WithSparseEdgeAttributes toggles whether new edges from split are
// parented.
func WithSparseEdgeAttributes(enabled bool) Option {
	return func(p *Parameters) { p.UseSparseEdgeAttributes = enabled }
}

// WithOnlyInterface toggles whether the move operation skips
// non-interface vertices.
func WithOnlyInterface(enabled bool) Option {
	return func(p *Parameters) { p.UseOnlyInterface = enabled }
}

// WithMaxIterations sets the per-operation batch cap; name "scheduler"
// sets the scheduler's own iteration cap.
func WithMaxIterations(name string, n int) Option {
	return func(p *Parameters) { p.MaxIterations[name] = n }
}

// WithUpperThresholdAttribute names the edge attribute carrying the
// upper length threshold for the named operation.
func WithUpperThresholdAttribute(name, attr string) Option {
	return func(p *Parameters) { p.UpperThresholdAttribute[name] = attr }
}

// WithLowerThresholdAttribute names the edge attribute carrying the
// lower length threshold for the named operation.
func WithLowerThresholdAttribute(name, attr string) Option {
	return func(p *Parameters) { p.LowerThresholdAttribute[name] = attr }
}

// WithAngleThreshold sets the angle (degrees) test for the named
// operation and label.
func WithAngleThreshold(name string, label simplex.Label, degrees float64) Option {
	return func(p *Parameters) { setLabelMap(&p.AngleThresholdDeg, name, label, degrees) }
}

// WithDistanceThreshold sets the proximity/vertex-split distance
// threshold for the named operation and label.
func WithDistanceThreshold(name string, label simplex.Label, dist float64) Option {
	return func(p *Parameters) { setLabelMap(&p.DistanceThreshold, name, label, dist) }
}

// WithAreaThreshold sets the minimum admissible triangle area for the
// named operation (typically "coarsening") and label.
func WithAreaThreshold(name string, label simplex.Label, area float64) Option {
	return func(p *Parameters) { setLabelMap(&p.AreaThreshold, name, label, area) }
}

// WithStrength sets the vertex-split offset magnitude for the named
// operation and label.
func WithStrength(name string, label simplex.Label, strength float64) Option {
	return func(p *Parameters) { setLabelMap(&p.Strength, name, label, strength) }
}

func setLabelMap(m *map[string]map[simplex.Label]float64, name string, label simplex.Label, v float64) {
	if *m == nil {
		*m = make(map[string]map[simplex.Label]float64)
	}
	if (*m)[name] == nil {
		(*m)[name] = make(map[simplex.Label]float64)
	}
	(*m)[name][label] = v
}

// WithVerbose, WithSilentThreads, WithProfiling toggle observability-only
// flags.
func WithVerbose(enabled bool) Option       { return func(p *Parameters) { p.Verbose = enabled } }
func WithSilentThreads(enabled bool) Option { return func(p *Parameters) { p.SilentThreads = enabled } }
func WithProfiling(enabled bool) Option     { return func(p *Parameters) { p.Profiling = enabled } }

// WithDebugRender enables SVG debug rendering at the given filename and
// level (consumed only by out-of-core collaborators; the engine itself
// never renders).
func WithDebugRender(filename string, level int) Option {
	return func(p *Parameters) {
		p.DebugRender = true
		p.DebugRenderFilename = filename
		p.DebugRenderLevel = level
	}
}
