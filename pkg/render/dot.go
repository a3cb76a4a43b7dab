package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/meshtools/meshcolor/pkg/coloring"
)

// palette is the fill-color cycle for color classes. Class ids beyond the
// palette wrap around; hues are spaced so neighboring ids stay visually
// distinct.
var palette = []string{
	"#3b82f6", // blue
	"#f59e0b", // amber
	"#10b981", // green
	"#ec4899", // pink
	"#9333ea", // purple
	"#06b6d4", // cyan
	"#ef4444", // red
	"#6b7280", // gray
}

// classColor returns the palette entry for a color id (1-based).
func classColor(id int) string {
	return palette[(id-1)%len(palette)]
}

// Options configures DOT generation.
type Options struct {
	// Labels includes the color id in each node label in addition to the
	// cell index. When false, only the cell index is shown.
	Labels bool
}

// ToDOT converts a colored adjacency graph to Graphviz DOT format. Every
// cell becomes a node filled with its class's palette color; every
// adjacency becomes one undirected edge. The output can be rendered with
// [SVG] or [PNG], or processed with external Graphviz tools.
func ToDOT(g *coloring.Incidence, c *coloring.Coloring, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph mesh {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=12, fontcolor=white];\n")
	buf.WriteString("\n")

	for cell := 1; cell <= g.NumCells(); cell++ {
		id := c.ColorOf(cell)
		label := strconv.Itoa(cell)
		if opts.Labels {
			label = fmt.Sprintf("%d\\nc%d", cell, id)
		}
		fmt.Fprintf(&buf, "  %d [label=\"%s\", fillcolor=\"%s\"];\n", cell, label, classColor(id))
	}

	buf.WriteString("\n")
	for cell := 1; cell <= g.NumCells(); cell++ {
		for _, nb := range g.Neighbors(cell) {
			if cell < nb { // each undirected edge once
				fmt.Fprintf(&buf, "  %d -- %d;\n", cell, nb)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// PNG renders a DOT graph to PNG using Graphviz.
func PNG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg element so the image scales to its
// container instead of carrying Graphviz's fixed point dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
