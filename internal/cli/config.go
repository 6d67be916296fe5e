package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/declutterhq/declutter/pkg/engine"
	"github.com/declutterhq/declutter/pkg/errors"
)

// =============================================================================
// Config File - declutter.toml
// =============================================================================

// fileConfig mirrors the [engine] table of declutter.toml. All fields are
// pointers so an absent key is distinguishable from an explicit zero; only
// keys present in the file override engine defaults.
type fileConfig struct {
	Engine engineConfig `toml:"engine"`
}

type engineConfig struct {
	DetectionMode      *string  `toml:"detection_mode"`
	SpatialIndexing    *bool    `toml:"spatial_indexing"`
	Strategy           *string  `toml:"strategy"`
	AdaptiveStrategy   *bool    `toml:"adaptive_strategy"`
	SeparationDistance *float64 `toml:"separation_distance"`
	MaxIterations      *int     `toml:"max_iterations"`
	QualityThreshold   *float64 `toml:"quality_threshold"`
	CanvasWidth        *float64 `toml:"canvas_width"`
	CanvasHeight       *float64 `toml:"canvas_height"`
	GridCell           *float64 `toml:"grid_cell"`
	SpiralStep         *float64 `toml:"spiral_step"`
	SpiralMaxRadius    *float64 `toml:"spiral_max_radius"`
	IdealDistance      *float64 `toml:"ideal_distance"`
}

// loadConfig reads a TOML config file and applies its [engine] keys on top
// of opts. A missing file is an error only when the path was given
// explicitly; the default declutter.toml is optional.
func loadConfig(path string, explicit bool, opts *engine.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}
	return cfg.Engine.apply(opts)
}

// apply copies the present keys onto opts, validating enum values.
func (c *engineConfig) apply(opts *engine.Options) error {
	if c.DetectionMode != nil {
		mode, err := engine.ParseMode(*c.DetectionMode)
		if err != nil {
			return err
		}
		opts.DetectionMode = mode
	}
	if c.Strategy != nil {
		strategy, err := engine.ParseStrategy(*c.Strategy)
		if err != nil {
			return err
		}
		opts.Strategy = strategy
	}
	if c.SpatialIndexing != nil {
		opts.SpatialIndexing = *c.SpatialIndexing
	}
	if c.AdaptiveStrategy != nil {
		opts.AdaptiveStrategy = *c.AdaptiveStrategy
	}
	if c.SeparationDistance != nil {
		opts.SeparationDistance = *c.SeparationDistance
	}
	if c.MaxIterations != nil {
		opts.MaxIterations = *c.MaxIterations
	}
	if c.QualityThreshold != nil {
		opts.QualityThreshold = *c.QualityThreshold
	}
	if c.CanvasWidth != nil {
		opts.CanvasWidth = *c.CanvasWidth
	}
	if c.CanvasHeight != nil {
		opts.CanvasHeight = *c.CanvasHeight
	}
	if c.GridCell != nil {
		opts.GridCell = *c.GridCell
	}
	if c.SpiralStep != nil {
		opts.SpiralStep = *c.SpiralStep
	}
	if c.SpiralMaxRadius != nil {
		opts.SpiralMaxRadius = *c.SpiralMaxRadius
	}
	if c.IdealDistance != nil {
		opts.IdealDistance = *c.IdealDistance
	}
	return nil
}
