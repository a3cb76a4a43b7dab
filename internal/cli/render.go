package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meshtools/meshcolor/pkg/pipeline"
)

// renderCommand creates the render command for visual output formats.
// It runs the same pipeline as 'color' but defaults to SVG output, so a
// previously cached coloring is reused rather than recomputed.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := c.newPipelineOptions()

	cmd := &cobra.Command{
		Use:   "render [mesh.json]",
		Short: "Render a mesh coloring as an image",
		Long: `Render a mesh coloring as an image.

The render command colors the mesh (reusing a cached coloring when one
exists) and draws the incidence graph with cells as nodes, colored by their
assigned class. Adjacent cells - those that would conflict during parallel
assembly - are connected by edges and always show different colors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr, pipeline.FormatSVG)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", opts.Algorithm, "coloring algorithm: zones (default), greedy")
	cmd.Flags().IntVar(&opts.Seed, "seed", opts.Seed, "zone seed cell (zones algorithm)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "include color ids in node labels")

	return cmd
}

// runRender executes the pipeline and writes the rendered artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.MeshPath = input
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Rendering coloring...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.CellCount, result.Stats.EdgeCount, result.Stats.ColorCount, result.CacheInfo.ColoringHit)
	printNewline()
	return nil
}
