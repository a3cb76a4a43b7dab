package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshtools/meshcolor/pkg/pipeline"
)

// colorCommand creates the color command for computing cell colorings.
func (c *CLI) colorCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		inspect    bool
	)
	opts := c.newPipelineOptions()

	cmd := &cobra.Command{
		Use:   "color [mesh.json]",
		Short: "Compute a conflict-free cell coloring for a mesh",
		Long: `Compute a conflict-free cell coloring for a mesh.

The color command reads a mesh file (see 'grid' for generating demo meshes)
and partitions its cells into color classes such that no two cells sharing a
node receive the same color. Cells within one class can then be assembled in
parallel without write conflicts.

Two algorithms are available:
  zones   partition the mesh into BFS zones first, color each zone
          independently, and merge zone colorings by parity (default)
  greedy  color cells in ascending order with the smallest free color

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr, pipeline.FormatJSON)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runColor(cmd.Context(), args[0], opts, output, noCache, inspect)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached coloring exists")

	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", opts.Algorithm, "coloring algorithm: zones (default), greedy")
	cmd.Flags().IntVar(&opts.Seed, "seed", opts.Seed, "zone seed cell (zones algorithm)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), csv, dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "include color ids in node labels (dot, svg, png)")
	cmd.Flags().BoolVar(&inspect, "inspect", false, "browse color classes interactively after coloring")

	return cmd
}

// runColor executes the pipeline and writes the requested artifacts.
func (c *CLI) runColor(ctx context.Context, input string, opts pipeline.Options, output string, noCache, inspect bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.MeshPath = input
	opts.Logger = logger

	prog := newProgress(logger)
	spinner := newSpinner(ctx, "Coloring mesh...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Coloring failed")
		return fmt.Errorf("color %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Colored %d cells with %d colors", result.Stats.CellCount, result.Stats.ColorCount))

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Coloring complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.CellCount, result.Stats.EdgeCount, result.Stats.ColorCount, result.CacheInfo.ColoringHit)
	for id, class := range result.Coloring.Classes() {
		printDetail("class %d: %d cells", id+1, len(class))
	}
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render %s", appName, input))

	if inspect {
		return c.runInspect(result.Coloring)
	}
	return nil
}

// newPipelineOptions seeds pipeline options from the user configuration.
func (c *CLI) newPipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		Algorithm: c.Config.Defaults.Algorithm,
		Seed:      c.Config.Defaults.Seed,
		TTL:       c.Config.Cache.CacheTTL(),
	}
	if opts.Algorithm == "" {
		opts.Algorithm = pipeline.DefaultAlgorithm
	}
	return opts
}

// writeArtifacts writes each requested format to disk and returns the
// written paths. With a single format, output names the file directly;
// otherwise output (or the input path with its extension stripped) is used
// as the base path, producing base.colors.<format> files.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	if len(formats) == 1 && output != "" {
		if err := writeFile(output, artifacts[formats[0]]); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return nil, fmt.Errorf("no artifact produced for format %q", format)
		}
		path := fmt.Sprintf("%s.colors.%s", base, format)
		if err := writeFile(path, data); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
