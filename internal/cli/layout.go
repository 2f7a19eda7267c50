package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagemarks/pkg/measure"
	"github.com/matzehuels/pagemarks/pkg/pipeline"
	"github.com/matzehuels/pagemarks/pkg/scene"
	"github.com/matzehuels/pagemarks/pkg/server"
)

// layoutFlags are the flags of the layout command.
type layoutFlags struct {
	output   string
	noCache  bool
	refresh  bool
	passes   int
	scroll   float64
	vertical bool
	remote   string
	quiet    bool
}

// layoutCommand creates the layout command for placing markers of a scene.
func (c *CLI) layoutCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [scene.json|scene.toml|scene.yaml]",
		Short: "Place page-break markers for a scene",
		Long: `Place page-break markers for a scene.

The scene describes the viewport, the margin containers and the page breaks
of the document. One layout cycle runs against it and the placed markers are
printed as a table and written as JSON (default: <scene>.markers.json).

Results are cached; use --no-cache to skip the cache or --refresh to
overwrite it. With --remote the scene is sent to a pagemarks server instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], f, cmd.Flags().Changed("scroll"), cmd.Flags().Changed("vertical"))
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: <scene>.markers.json, - for stdout)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().IntVar(&f.passes, "passes", -1, "relaxation passes after the initial one (default from config)")
	cmd.Flags().Float64Var(&f.scroll, "scroll", 0, "override the scene's scroll offset")
	cmd.Flags().BoolVar(&f.vertical, "vertical", false, "override the scene's flow mode")
	cmd.Flags().StringVar(&f.remote, "remote", "", "lay out on the pagemarks server at this URL")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "do not print the marker table")

	return cmd
}

// runLayout loads the scene, runs one cycle and writes the result.
func (c *CLI) runLayout(ctx context.Context, input string, f layoutFlags, scrollSet, verticalSet bool) error {
	sc, err := scene.Load(input)
	if err != nil {
		reportProblems(err)
		return err
	}
	if scrollSet {
		sc.Scroll = f.scroll
	}
	if verticalSet {
		sc.Vertical = f.vertical
	}
	c.applySceneDefaults(sc)

	opts := c.runOptions(f.passes, f.refresh)
	prog := newProgress(c.Logger)

	spinner := newSpinner(ctx, fmt.Sprintf("Laying out %s...", sc.Name))
	spinner.Start()
	res, cacheHit, err := c.layout(ctx, sc, opts, f)
	if err != nil {
		spinner.StopWithError("Layout failed")
		reportProblems(err)
		return err
	}
	spinner.Stop()
	prog.done("placed markers", "scene", sc.Name, "markers", res.Count())

	outputPath := f.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".markers.json"
	}
	if err := writeResult(res, outputPath); err != nil {
		return err
	}

	if outputPath == "-" {
		return nil
	}
	printSuccess("Layout complete")
	if !f.quiet && res.Count() > 0 {
		fmt.Fprintln(out, markerTable(res))
	}
	printFile(outputPath)
	printStats(res, cacheHit)
	return nil
}

func (c *CLI) layout(ctx context.Context, sc *scene.Scene, opts pipeline.Options, f layoutFlags) (*pipeline.Result, bool, error) {
	if f.remote != "" {
		c.Logger.Debug("using remote server", "url", f.remote)
		return server.NewClient(f.remote).Layout(ctx, sc, opts)
	}
	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return nil, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	return runner.Run(ctx, sc, opts)
}

// reportProblems lists every scene validation problem when there are several.
func reportProblems(err error) {
	if problems := scene.Problems(err); len(problems) > 1 {
		for _, p := range problems {
			printDetail("%v", p)
		}
	}
}

// applySceneDefaults fills scene fields the config provides.
func (c *CLI) applySceneDefaults(sc *scene.Scene) {
	if sc.Measure == (measure.Config{}) {
		sc.Measure = c.Config.Measure
	}
}

// writeResult writes res as indented JSON to path, or stdout for "-".
func writeResult(res *pipeline.Result, path string) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
