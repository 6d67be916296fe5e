package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/declutterhq/declutter/pkg/errors"
	"github.com/declutterhq/declutter/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultSeparationDistance is the minimum gap between node bounding
	// boxes, in pixels, for two nodes to count as collision-free.
	DefaultSeparationDistance = 20.0

	// DefaultMaxIterations is the detect→resolve→assess round budget.
	DefaultMaxIterations = 10

	// DefaultQualityThreshold is the overall score (0–100) required for
	// convergence in addition to zero overlaps. 100 keeps the strict
	// zero-overlap contract.
	DefaultQualityThreshold = 100.0

	// DefaultCanvasWidth is the frame width in pixels.
	DefaultCanvasWidth = 1920.0

	// DefaultCanvasHeight is the frame height in pixels.
	DefaultCanvasHeight = 1080.0

	// DefaultIndexThreshold is the node count above which balanced-mode
	// detection switches from brute force to the spatial index.
	DefaultIndexThreshold = 20

	// DefaultMinCellSize is the lower bound for spatial grid cells, in pixels.
	DefaultMinCellSize = 50.0

	// DefaultCellSizeFactor scales the mean node extent into a grid cell size.
	DefaultCellSizeFactor = 1.5

	// DefaultGridCell is the grid-snap quantization step, in pixels.
	DefaultGridCell = 50.0

	// DefaultSpiralStep is the radius increment between spiral rings, in pixels.
	DefaultSpiralStep = 30.0

	// DefaultSpiralMaxRadius is the spiral search budget, in pixels.
	DefaultSpiralMaxRadius = 200.0

	// DefaultSpiralSamples is the number of angular samples per spiral ring.
	DefaultSpiralSamples = 16

	// DefaultHybridForceShare is the fraction of worst overlaps handled by
	// the force tier of the adaptive-hybrid pipeline.
	DefaultHybridForceShare = 0.30

	// DefaultHybridGridShare is the fraction of remaining overlaps handled
	// by the grid-snap tier of the adaptive-hybrid pipeline.
	DefaultHybridGridShare = 0.50

	// DefaultAttractionMargin is the fixed margin added to the half-extent
	// sum when computing the ideal separation of connected nodes, in pixels.
	DefaultAttractionMargin = 50.0

	// DefaultIdealDistance is the pairwise node distance considered fully
	// readable, in pixels.
	DefaultIdealDistance = 150.0
)

// =============================================================================
// Detection Mode
// =============================================================================

// DetectionMode tunes the overlap detector's brute-force/indexed trade-off.
type DetectionMode string

// Detection modes.
const (
	ModeStrict      DetectionMode = "strict"      // prefer exhaustive brute force longer
	ModeBalanced    DetectionMode = "balanced"    // default threshold
	ModePerformance DetectionMode = "performance" // switch to the index early
)

// ValidModes is the set of supported detection modes.
var ValidModes = map[DetectionMode]bool{
	ModeStrict:      true,
	ModeBalanced:    true,
	ModePerformance: true,
}

// IndexThreshold returns the node count above which the detector switches
// from brute force to the spatial index for this mode.
func (m DetectionMode) IndexThreshold() int {
	switch m {
	case ModeStrict:
		return 40
	case ModePerformance:
		return 12
	default:
		return DefaultIndexThreshold
	}
}

// ParseMode validates a detection mode string.
func ParseMode(s string) (DetectionMode, error) {
	m := DetectionMode(s)
	if !ValidModes[m] {
		return "", errors.New(errors.ErrCodeInvalidMode,
			"invalid detection mode: %q (must be one of: strict, balanced, performance)", s)
	}
	return m, nil
}

// =============================================================================
// Options - Engine Configuration
// =============================================================================

// ProgressFunc receives one-way progress events: a stage name, a completion
// percentage, and a human-readable action. It is invoked synchronously on
// the engine's goroutine at fixed points (start, per iteration, end) and
// must not block or mutate engine state.
type ProgressFunc func(stage string, percent float64, action string)

// BaseLayoutFunc produces the base layout for a scene. The default adopts
// the scene's pre-assigned positions; callers with a diagram-type-specific
// layout provider can plug it in here. An error is the engine's single
// fatal failure (LAYOUT_GENERATION).
type BaseLayoutFunc func(s *scene.Scene) (*scene.Layout, error)

// Options contains all configuration for a layout run. This struct supports
// JSON serialization for tooling; runtime fields (logger, callbacks) are
// excluded.
//
// Use NewOptions for the documented defaults. ValidateAndSetDefaults fills
// zero-valued numeric and string fields but leaves booleans alone, so a
// hand-built Options literal keeps spatial indexing and adaptive selection
// off unless explicitly enabled.
type Options struct {
	// Detection options
	DetectionMode   DetectionMode `json:"detection_mode,omitempty"`
	SpatialIndexing bool          `json:"spatial_indexing"`

	// Resolution options
	Strategy           Strategy `json:"strategy,omitempty"`
	AdaptiveStrategy   bool     `json:"adaptive_strategy"`
	SeparationDistance float64  `json:"separation_distance,omitempty"`
	MaxIterations      int      `json:"max_iterations,omitempty"`
	QualityThreshold   float64  `json:"quality_threshold,omitempty"`

	// Canvas bounds; final positions are clamped inside with a half-extent margin.
	CanvasWidth  float64 `json:"canvas_width,omitempty"`
	CanvasHeight float64 `json:"canvas_height,omitempty"`

	// Tuning block. These are the heuristic constants of the resolution
	// strategies, lifted out of the code so no component carries hidden
	// process-wide state.
	MinCellSize      float64 `json:"min_cell_size,omitempty"`
	CellSizeFactor   float64 `json:"cell_size_factor,omitempty"`
	GridCell         float64 `json:"grid_cell,omitempty"`
	SpiralStep       float64 `json:"spiral_step,omitempty"`
	SpiralMaxRadius  float64 `json:"spiral_max_radius,omitempty"`
	SpiralSamples    int     `json:"spiral_samples,omitempty"`
	HybridForceShare float64 `json:"hybrid_force_share,omitempty"`
	HybridGridShare  float64 `json:"hybrid_grid_share,omitempty"`
	AttractionMargin float64 `json:"attraction_margin,omitempty"`
	IdealDistance    float64 `json:"ideal_distance,omitempty"`

	// Runtime options (not serialized)
	Logger     *log.Logger    `json:"-"`
	Progress   ProgressFunc   `json:"-"`
	BaseLayout BaseLayoutFunc `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// NewOptions returns Options with every documented default applied,
// including the boolean defaults (spatial indexing and adaptive strategy
// selection enabled).
func NewOptions() Options {
	return Options{
		DetectionMode:    ModeBalanced,
		SpatialIndexing:  true,
		Strategy:         StrategyAdaptive,
		AdaptiveStrategy: true,
	}
}

// ValidateAndSetDefaults checks enum fields and applies defaults for
// zero-valued fields. This method is idempotent - calling it multiple times
// has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.DetectionMode == "" {
		o.DetectionMode = ModeBalanced
	}
	if !ValidModes[o.DetectionMode] {
		return errors.New(errors.ErrCodeInvalidMode,
			"invalid detection mode: %q (must be one of: strict, balanced, performance)", o.DetectionMode)
	}

	if o.Strategy == "" {
		o.Strategy = StrategyAdaptive
	}
	if !ValidStrategies[o.Strategy] {
		return errors.New(errors.ErrCodeInvalidStrategy,
			"invalid strategy: %q (must be one of: force_directed, grid_snap, spiral_placement, adaptive)", o.Strategy)
	}

	if o.SeparationDistance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "separation distance must not be negative")
	}
	if o.SeparationDistance == 0 {
		o.SeparationDistance = DefaultSeparationDistance
	}
	if o.MaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max iterations must not be negative")
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.QualityThreshold < 0 || o.QualityThreshold > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "quality threshold must be in [0, 100]")
	}
	if o.QualityThreshold == 0 {
		o.QualityThreshold = DefaultQualityThreshold
	}

	if o.CanvasWidth <= 0 {
		o.CanvasWidth = DefaultCanvasWidth
	}
	if o.CanvasHeight <= 0 {
		o.CanvasHeight = DefaultCanvasHeight
	}

	if o.MinCellSize <= 0 {
		o.MinCellSize = DefaultMinCellSize
	}
	if o.CellSizeFactor <= 0 {
		o.CellSizeFactor = DefaultCellSizeFactor
	}
	if o.GridCell <= 0 {
		o.GridCell = DefaultGridCell
	}
	if o.SpiralStep <= 0 {
		o.SpiralStep = DefaultSpiralStep
	}
	if o.SpiralMaxRadius <= 0 {
		o.SpiralMaxRadius = DefaultSpiralMaxRadius
	}
	if o.SpiralSamples <= 0 {
		o.SpiralSamples = DefaultSpiralSamples
	}
	if o.HybridForceShare <= 0 || o.HybridForceShare > 1 {
		o.HybridForceShare = DefaultHybridForceShare
	}
	if o.HybridGridShare <= 0 || o.HybridGridShare > 1 {
		o.HybridGridShare = DefaultHybridGridShare
	}
	if o.AttractionMargin <= 0 {
		o.AttractionMargin = DefaultAttractionMargin
	}
	if o.IdealDistance <= 0 {
		o.IdealDistance = DefaultIdealDistance
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.BaseLayout == nil {
		o.BaseLayout = AdoptPositions
	}

	o.validated = true
	return nil
}

// AdoptPositions is the default base-layout provider: it validates the scene
// and adopts its pre-assigned node positions unchanged. An empty scene has
// no usable base layout and fails.
func AdoptPositions(s *scene.Scene) (*scene.Layout, error) {
	if len(s.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeLayoutGeneration, "scene has no nodes")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return scene.NewLayout(s), nil
}
