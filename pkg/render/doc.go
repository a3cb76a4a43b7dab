// Package render exports colorings for external inspection.
//
// # Overview
//
// The coloring core produces one scalar per cell - its color id - and this
// package turns that into files downstream tools consume:
//
//   - CSV (cell,color pairs) for spreadsheets and quick scripting
//   - Graphviz DOT of the colored cell-adjacency graph
//   - SVG and PNG renderings of the DOT via [github.com/goccy/go-graphviz]
//
// # Usage
//
// Convert a coloring to DOT, then render to SVG:
//
//	dot := render.ToDOT(g, c, render.Options{})
//	svg, err := render.SVG(dot)
//
// # Determinism
//
// All exports are deterministic: cells are emitted in index order and the
// color palette is a fixed cycle keyed by color id, so identical colorings
// produce byte-identical CSV and DOT output.
package render
