package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/declutterhq/declutter/pkg/engine"
	"github.com/declutterhq/declutter/pkg/scene"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	config   string // config file path (declutter.toml)
	mode     string // detection mode override
	asJSON   bool   // emit the raw inspection as JSON on stdout
	overlaps bool   // list every overlapping pair
}

// inspectCommand creates the inspect command, a read-only scene diagnosis.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [scene file]",
		Short: "Report overlaps and layout quality without moving nodes",
		Long: `Inspect reads a scene JSON file and reports its collisions, complexity
score, and quality assessment exactly as a resolve run would see them on
its first iteration. No node is moved and no file is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: ./declutter.toml if present)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "detection mode: balanced (default), strict, performance")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit the inspection as JSON on stdout")
	cmd.Flags().BoolVar(&opts.overlaps, "overlaps", false, "list every overlapping node pair")

	return cmd
}

// runInspect executes the inspection and renders it.
func (c *CLI) runInspect(input string, opts *inspectOpts) error {
	eopts := engine.NewOptions()
	eopts.Logger = c.Logger

	configPath := opts.config
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigFile
	}
	if err := loadConfig(configPath, explicit, &eopts); err != nil {
		return err
	}
	if opts.mode != "" {
		mode, err := engine.ParseMode(opts.mode)
		if err != nil {
			return err
		}
		eopts.DetectionMode = mode
	}

	s, err := scene.ReadSceneFile(input)
	if err != nil {
		return err
	}

	inspection, err := engine.Inspect(&s, eopts)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(inspection)
	}

	printInspection(inspection, opts.overlaps)
	return nil
}

// printInspection renders a human-readable inspection report.
func printInspection(in *engine.Inspection, listOverlaps bool) {
	if len(in.Overlaps) == 0 {
		printSuccess("Scene is collision-free")
	} else {
		printWarning("%d overlapping pair(s) found", len(in.Overlaps))
	}
	printStats(in.NodeCount, in.EdgeCount, len(in.Overlaps))

	printKeyValue("complexity", fmt.Sprintf("%s (%.1f)", in.Complexity.Category, in.Complexity.Score))
	printKeyValue("quality", formatScore(in.Assessment.OverallScore))
	printKeyValue("overlap-free", formatScore(in.Assessment.OverlapFreePercent))
	printKeyValue("efficiency", formatScore(in.Assessment.LayoutEfficiency))
	printKeyValue("balance", formatScore(in.Assessment.VisualBalance))
	printKeyValue("readability", formatScore(in.Assessment.Readability))

	if listOverlaps && len(in.Overlaps) > 0 {
		printNewline()
		printInfo("Overlapping pairs (worst first):")
		for _, p := range in.Overlaps {
			printDetail("%s ↔ %s (%.0f px²)", p.NodeA, p.NodeB, p.Area)
		}
	}

	if len(in.Assessment.Improvements) > 0 {
		printNewline()
		printInfo("Suggested improvements:")
		for _, hint := range in.Assessment.Improvements {
			printDetail("%s", hint)
		}
	}
}
