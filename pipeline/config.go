package pipeline

import "github.com/katalvlaran/dxacore/lattice"

// IdentificationMode selects which structure-identification algorithm
// drives the pipeline, per spec.md §6's "identification mode
// (CNA|PTM|DIAMOND)".
type IdentificationMode int

const (
	ModeCNA IdentificationMode = iota
	ModePTM
	ModeDiamond
)

// Option customizes a Config before Analyze runs, mirroring the teacher's
// BuilderOption pattern (builder/config.go): each Option mutates a config
// in place, and later options override earlier ones.
type Option func(cfg *config)

// config holds Analyze's resolved, defaulted parameters.
type config struct {
	inputStructure           lattice.StructureType
	mode                     IdentificationMode
	rmsdCutoff               float64
	smoothingLevel           int
	pointInterval            float64
	maxTrialCircuitSize      int
	circuitStretchability    int
	onlyPerfectDislocations  bool
	markCoreAtoms            bool
	handleCoherentInterfaces bool
	minGrainAtomCount        int
	ghostLayerFactor         float64
	segmentGrains            bool
}

// Spec.md §6's numeric contract defaults.
const (
	DefaultRMSDCutoff            = 0.10
	DefaultSmoothingLevel        = 10
	DefaultPointInterval         = 2.5
	DefaultMaxTrialCircuitSize   = 14
	DefaultCircuitStretchability = 9
	DefaultMinGrainAtomCount     = 100
	DefaultGhostLayerFactor      = 3.5
)

func newConfig(opts ...Option) *config {
	cfg := &config{
		inputStructure:        lattice.FCC,
		mode:                  ModeCNA,
		rmsdCutoff:            DefaultRMSDCutoff,
		smoothingLevel:        DefaultSmoothingLevel,
		pointInterval:         DefaultPointInterval,
		maxTrialCircuitSize:   DefaultMaxTrialCircuitSize,
		circuitStretchability: DefaultCircuitStretchability,
		minGrainAtomCount:     DefaultMinGrainAtomCount,
		ghostLayerFactor:      DefaultGhostLayerFactor,
		segmentGrains:         false,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithInputStructure sets the expected/preferred crystal structure used to
// re-orient clusters (spec.md §4.3.1) and to select the diamond short path.
func WithInputStructure(s lattice.StructureType) Option {
	return func(cfg *config) { cfg.inputStructure = s }
}

// WithMode selects the structure-identification algorithm.
func WithMode(m IdentificationMode) Option {
	return func(cfg *config) { cfg.mode = m }
}

// WithRMSDCutoff overrides the PTM RMSD acceptance cutoff; values <= 0 are
// ignored (default retained).
func WithRMSDCutoff(cutoff float64) Option {
	return func(cfg *config) {
		if cutoff > 0 {
			cfg.rmsdCutoff = cutoff
		}
	}
}

// WithSmoothingLevel sets the Burgers polyline smoothing iteration count.
func WithSmoothingLevel(level int) Option {
	return func(cfg *config) { cfg.smoothingLevel = level }
}

// WithPointInterval sets the Burgers polyline resampling arc-length interval.
func WithPointInterval(interval float64) Option {
	return func(cfg *config) {
		if interval > 0 {
			cfg.pointInterval = interval
		}
	}
}

// WithMaxTrialCircuitSize bounds Burgers circuit growth (spec.md §4.5).
func WithMaxTrialCircuitSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxTrialCircuitSize = n
		}
	}
}

// WithCircuitStretchability sets the circuit growth's stretch budget.
func WithCircuitStretchability(n int) Option {
	return func(cfg *config) { cfg.circuitStretchability = n }
}

// WithOnlyPerfectDislocations sets burgers.Config.OnlyPerfectDislocations
// (spec.md §6). The circuit tracer does not read that flag, so traced
// Burgers vectors are not restricted to perfect lattice translations.
func WithOnlyPerfectDislocations(v bool) Option {
	return func(cfg *config) { cfg.onlyPerfectDislocations = v }
}

// WithMarkCoreAtoms enables dislocation-core atom tagging: each traced
// segment's CoreAtoms records the atoms whose mesh vertices lie on one of
// its traced faces (spec.md §4.5).
func WithMarkCoreAtoms(v bool) Option {
	return func(cfg *config) { cfg.markCoreAtoms = v }
}

// WithHandleCoherentInterfaces enables grain segmentation's step-2
// sibling-structure relabeling pass (spec.md §4.6).
func WithHandleCoherentInterfaces(v bool) Option {
	return func(cfg *config) { cfg.handleCoherentInterfaces = v }
}

// WithMinGrainAtomCount overrides the grain-assignment discard floor;
// values <= 0 are ignored (default retained).
func WithMinGrainAtomCount(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.minGrainAtomCount = n
		}
	}
}

// WithGhostLayerFactor overrides the interface-mesh ghost-layer
// multiplier; values <= 0 are ignored (default retained).
func WithGhostLayerFactor(factor float64) Option {
	return func(cfg *config) {
		if factor > 0 {
			cfg.ghostLayerFactor = factor
		}
	}
}

// WithGrainSegmentation enables the grain segmentation stage (spec.md
// §4.6); it is skipped by default since it requires a PTM-identified
// input and a bicrystal/polycrystal sample to be meaningful.
func WithGrainSegmentation(v bool) Option {
	return func(cfg *config) { cfg.segmentGrains = v }
}
