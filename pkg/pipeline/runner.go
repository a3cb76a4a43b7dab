package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/meshtools/meshcolor/pkg/cache"
	"github.com/meshtools/meshcolor/pkg/coloring"
	"github.com/meshtools/meshcolor/pkg/mesh"
	"github.com/meshtools/meshcolor/pkg/observability"
	"github.com/meshtools/meshcolor/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Close releases the runner's cache resources.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete load → color → export pipeline with caching.
// It either returns a result whose coloring has been validated against the
// mesh's incidence graph, or an error; never a partial result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	loadStart := time.Now()
	m, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Mesh = m
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.CellCount = m.NumCells()

	// Content hash for cache keys and API responses
	var meshData bytes.Buffer
	if err := mesh.WriteMesh(m, &meshData); err != nil {
		return nil, fmt.Errorf("hash mesh: %w", err)
	}
	result.MeshHash = cache.Hash(meshData.Bytes())

	opts.Logger.Info("loaded mesh",
		"cells", m.NumCells(),
		"nodes", m.NumNodes(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Color
	colorStart := time.Now()
	g := coloring.BuildIncidence(m)
	result.Stats.EdgeCount = g.EdgeCount()
	c, hit, err := r.colorWithCache(ctx, g, result.MeshHash, opts)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	result.Coloring = c
	result.Stats.ColorTime = time.Since(colorStart)
	result.Stats.ColorCount = c.NumColors()
	result.CacheInfo.ColoringHit = hit

	var coloringData bytes.Buffer
	if err := coloring.WriteColoring(c, &coloringData); err != nil {
		return nil, fmt.Errorf("hash coloring: %w", err)
	}
	result.ColoringHash = cache.Hash(coloringData.Bytes())

	opts.Logger.Info("computed coloring",
		"algorithm", opts.Algorithm,
		"colors", c.NumColors(),
		"cached", hit,
		"duration", result.Stats.ColorTime)

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, renderHit, err := r.export(ctx, g, c, coloringData.Bytes(), result.ColoringHash, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("exported artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Load reads the mesh from opts. An in-memory mesh short-circuits the read.
func (r *Runner) Load(ctx context.Context, opts Options) (*mesh.Mesh, error) {
	source := opts.MeshPath
	if opts.Mesh != nil {
		source = "memory"
	}
	observability.Pipeline().OnLoadStart(ctx, source)
	start := time.Now()

	m := opts.Mesh
	var err error
	if m == nil {
		m, err = mesh.ReadMeshFile(opts.MeshPath)
	}
	cells := 0
	if m != nil {
		cells = m.NumCells()
	}
	observability.Pipeline().OnLoadComplete(ctx, source, cells, time.Since(start), err)
	return m, err
}

// colorWithCache computes the coloring, consulting the cache first unless a
// refresh was requested. Cached entries are re-validated against the graph
// before use; a stale or corrupt entry falls back to recomputation.
func (r *Runner) colorWithCache(ctx context.Context, g *coloring.Incidence, meshHash string, opts Options) (*coloring.Coloring, bool, error) {
	algo, err := coloring.ParseAlgorithm(opts.Algorithm)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ColoringKey(meshHash, cache.ColoringKeyOpts{
		Algorithm: algo.String(),
		Seed:      opts.Seed,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if c, err := coloring.ReadColoring(bytes.NewReader(data)); err == nil && c.Validate(g) == nil {
				observability.Cache().OnCacheHit(ctx, "coloring")
				return c, true, nil
			}
			// Corrupt or mismatched entry: drop it and recompute.
			_ = r.Cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "coloring")
	}

	observability.Pipeline().OnColorStart(ctx, algo.String(), g.NumCells())
	start := time.Now()
	c, err := coloring.ComputeGraph(g, coloring.Options{Algorithm: algo, Seed: opts.Seed})
	colors := 0
	if c != nil {
		colors = c.NumColors()
	}
	observability.Pipeline().OnColorComplete(ctx, algo.String(), colors, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	if err := c.Validate(g); err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := coloring.WriteColoring(c, &buf); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), opts.TTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "coloring", buf.Len())
		}
	}
	return c, false, nil
}

// export produces the requested artifacts. SVG and PNG renderings are
// cached by coloring hash; JSON, CSV, and DOT are cheap enough to produce
// every time.
func (r *Runner) export(ctx context.Context, g *coloring.Incidence, c *coloring.Coloring, coloringJSON []byte, coloringHash string, opts Options) (map[string][]byte, bool, error) {
	observability.Pipeline().OnExportStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allRendersHit := true
	anyRender := false

	var dot string
	needDOT := false
	for _, f := range opts.Formats {
		if f == FormatDOT || f == FormatSVG || f == FormatPNG {
			needDOT = true
		}
	}
	if needDOT {
		dot = render.ToDOT(g, c, render.Options{Labels: opts.Labels})
	}

	var exportErr error
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			artifacts[FormatJSON] = coloringJSON
		case FormatCSV:
			artifacts[FormatCSV] = render.CSV(c)
		case FormatDOT:
			artifacts[FormatDOT] = []byte(dot)
		case FormatSVG, FormatPNG:
			anyRender = true
			data, hit, err := r.renderWithCache(ctx, dot, coloringHash, format, opts)
			if err != nil {
				exportErr = fmt.Errorf("render %s: %w", format, err)
			} else {
				artifacts[format] = data
				allRendersHit = allRendersHit && hit
			}
		}
		if exportErr != nil {
			break
		}
	}

	observability.Pipeline().OnExportComplete(ctx, opts.Formats, time.Since(start), exportErr)
	if exportErr != nil {
		return nil, false, exportErr
	}
	return artifacts, anyRender && allRendersHit, nil
}

// renderWithCache renders the DOT source to an image format, cached by
// coloring hash and format.
func (r *Runner) renderWithCache(ctx context.Context, dot, coloringHash, format string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.RenderKey(coloringHash, format)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	var data []byte
	var err error
	switch format {
	case FormatSVG:
		data, err = render.SVG(dot)
	case FormatPNG:
		data, err = render.PNG(dot)
	default:
		err = ValidateFormat(format)
	}
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, opts.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, false, nil
}

// applyLogger falls back to the runner's logger when options carry none.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
