// Package pipeline provides the core coloring pipeline for meshcolor.
//
// This package implements the complete load → color → export pipeline used
// by both the CLI and the HTTP API. Centralizing this logic keeps behavior
// and caching identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate the mesh (from a file or an in-memory mesh)
//  2. Color: Build the incidence graph and compute the coloring
//  3. Export: Produce output artifacts (JSON, CSV, DOT, SVG, PNG)
//
// Computed colorings and rendered images are cached by content hash, so
// recoloring an unchanged mesh with unchanged options is a cache hit.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    MeshPath: "bracket.json",
//	    Algorithm: "zones",
//	    Formats:  []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/meshtools/meshcolor/pkg/coloring"
	"github.com/meshtools/meshcolor/pkg/mesh"
)

// Default values shared by the CLI and the API.
const (
	// DefaultAlgorithm is the coloring algorithm used when none is named.
	DefaultAlgorithm = "zones"

	// DefaultTTL is how long cached colorings and artifacts live.
	DefaultTTL = 7 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatCSV:  true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, csv, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for the coloring pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of MeshPath or Mesh must be set; Mesh wins
	// when both are.
	MeshPath string     `json:"mesh_path,omitempty"`
	Mesh     *mesh.Mesh `json:"-"`

	// Color options
	Algorithm string `json:"algorithm,omitempty"` // "zones" (default) or "greedy"
	Seed      int    `json:"seed,omitempty"`      // zone seed cell; 0 selects cell 1
	Refresh   bool   `json:"refresh,omitempty"`   // bypass the coloring cache

	// Export options
	Formats []string `json:"formats,omitempty"` // default ["json"]
	Labels  bool     `json:"labels,omitempty"`  // include color ids in DOT node labels

	// Runtime options (not serialized)
	TTL    time.Duration `json:"-"`
	Logger *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mesh == nil && o.MeshPath == "" {
		return fmt.Errorf("mesh or mesh_path is required")
	}
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if _, err := coloring.ParseAlgorithm(o.Algorithm); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Mesh is the loaded mesh.
	Mesh *mesh.Mesh

	// MeshHash is the content hash of the mesh.
	MeshHash string

	// Coloring is the computed (or cache-restored) coloring.
	Coloring *coloring.Coloring

	// ColoringHash is the content hash of the coloring.
	ColoringHash string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CellCount  int
	EdgeCount  int
	ColorCount int
	LoadTime   time.Duration
	ColorTime  time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ColoringHit bool // Whether the coloring came from cache
	RenderHit   bool // Whether all rendered artifacts came from cache
}
