package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/declutterhq/declutter/pkg/engine"
	"github.com/declutterhq/declutter/pkg/errors"
	"github.com/declutterhq/declutter/pkg/scene"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	output     string // output file path; defaults to <input>_resolved.json
	config     string // config file path (declutter.toml)
	strategy   string // resolution strategy override
	mode       string // detection mode override
	iterations int    // max iteration budget override
	separation float64
	quality    float64
	width      float64
	height     float64
	noIndex    bool // disable the spatial index
	noAdaptive bool // disable adaptive strategy selection
	showLog    bool // print the per-iteration log after the summary
}

// resolveCommand creates the resolve command, the engine's main entry point.
func (c *CLI) resolveCommand() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "resolve [scene file]",
		Short: "Resolve node collisions in a diagram scene",
		Long: `Resolve reads a scene JSON file, iteratively moves overlapping nodes apart
until the layout is collision-free or the iteration budget runs out, and
writes the result (layout, metrics, iteration log, quality assessment) as
JSON next to the input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>_resolved.json)")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: ./declutter.toml if present)")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "strategy: adaptive (default), force_directed, grid_snap, spiral_placement")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "detection mode: balanced (default), strict, performance")
	cmd.Flags().IntVar(&opts.iterations, "max-iterations", 0, "iteration budget (default 10)")
	cmd.Flags().Float64Var(&opts.separation, "separation", 0, "minimum gap between nodes in pixels (default 20)")
	cmd.Flags().Float64Var(&opts.quality, "quality", 0, "quality score required for convergence (default 100)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default 1920)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default 1080)")
	cmd.Flags().BoolVar(&opts.noIndex, "no-index", false, "always use brute-force overlap detection")
	cmd.Flags().BoolVar(&opts.noAdaptive, "no-adaptive", false, "disable per-iteration strategy selection")
	cmd.Flags().BoolVar(&opts.showLog, "iterations", false, "print the per-iteration log")

	return cmd
}

// buildOptions layers configuration: engine defaults, then the config file,
// then explicit flags.
func (c *CLI) buildOptions(cmd *cobra.Command, opts *resolveOpts) (engine.Options, error) {
	eopts := engine.NewOptions()
	eopts.Logger = c.Logger

	configPath := opts.config
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigFile
	}
	if err := loadConfig(configPath, explicit, &eopts); err != nil {
		return eopts, err
	}

	if opts.strategy != "" {
		strategy, err := engine.ParseStrategy(opts.strategy)
		if err != nil {
			return eopts, err
		}
		eopts.Strategy = strategy
		eopts.AdaptiveStrategy = strategy == engine.StrategyAdaptive
	}
	if opts.mode != "" {
		mode, err := engine.ParseMode(opts.mode)
		if err != nil {
			return eopts, err
		}
		eopts.DetectionMode = mode
	}
	if opts.iterations > 0 {
		eopts.MaxIterations = opts.iterations
	}
	if opts.separation > 0 {
		eopts.SeparationDistance = opts.separation
	}
	if cmd.Flags().Changed("quality") {
		eopts.QualityThreshold = opts.quality
	}
	if opts.width > 0 {
		eopts.CanvasWidth = opts.width
	}
	if opts.height > 0 {
		eopts.CanvasHeight = opts.height
	}
	if opts.noIndex {
		eopts.SpatialIndexing = false
	}
	if opts.noAdaptive {
		eopts.AdaptiveStrategy = false
	}

	return eopts, nil
}

// runResolve executes the resolve pipeline: read, resolve, write, summarize.
func (c *CLI) runResolve(cmd *cobra.Command, input string, opts *resolveOpts) error {
	eopts, err := c.buildOptions(cmd, opts)
	if err != nil {
		return err
	}

	s, err := scene.ReadSceneFile(input)
	if err != nil {
		return err
	}

	tracker := newProgress(c.Logger)
	spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Resolving %s...", filepath.Base(input)))
	eopts.Progress = func(stage string, percent float64, action string) {
		if stage == engine.StageResolving {
			spinner.UpdateMessage(fmt.Sprintf("[%3.0f%%] %s", percent, action))
		}
	}

	eng, err := engine.New(eopts)
	if err != nil {
		return err
	}

	spinner.Start()
	result, err := eng.Resolve(cmd.Context(), &s)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.Stop()

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "_resolved.json"
	}
	if err := engine.WriteResultFile(result, output); err != nil {
		return err
	}

	tracker.done(fmt.Sprintf("Resolved %d node(s) in %d iteration(s)",
		result.Layout.NodeCount(), result.Metrics.IterationsUsed))
	printResolveSummary(result, output)

	if opts.showLog {
		printIterationLog(result.Iterations)
	}
	return nil
}

// printResolveSummary renders the run outcome: headline, metrics, output
// path, and any remaining improvement hints.
func printResolveSummary(result *engine.Result, output string) {
	if result.Metrics.TotalOverlaps == 0 {
		printSuccess("Layout is collision-free")
	} else {
		printWarning("%d overlap(s) remain after the iteration budget", result.Metrics.TotalOverlaps)
	}
	printStats(result.Layout.NodeCount(), result.Layout.EdgeCount(), result.Metrics.TotalOverlaps)

	printKeyValue("quality", formatScore(result.Metrics.QualityScore))
	printKeyValue("overlap-free", formatScore(result.Assessment.OverlapFreePercent))
	printKeyValue("efficiency", formatScore(result.Assessment.LayoutEfficiency))
	printKeyValue("balance", formatScore(result.Assessment.VisualBalance))
	printKeyValue("readability", formatScore(result.Assessment.Readability))
	printKeyValue("duration", result.Metrics.ResolutionTime.String())
	printFile(output)

	if len(result.Assessment.Improvements) > 0 {
		printNewline()
		printInfo("Suggested improvements:")
		for _, hint := range result.Assessment.Improvements {
			printDetail("%s", hint)
		}
	}
}

// printIterationLog renders the per-iteration telemetry.
func printIterationLog(iterations []engine.IterationResult) {
	printNewline()
	printInfo("Iterations:")
	for _, it := range iterations {
		printDetail("#%d %s: %d→%d overlaps, quality %.1f (%s)",
			it.Iteration, it.Strategy, it.Overlaps, it.Overlaps-it.Resolved,
			it.Quality, it.Duration.Round(10*time.Microsecond))
	}
}
