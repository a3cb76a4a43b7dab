package coloring

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// coloringDoc is the canonical JSON format for colorings. Colors holds one
// color id per cell, for cells 1..N in order; Classes is redundant with
// Colors and included for direct consumption by assembly loops and
// visualization tools.
type coloringDoc struct {
	NumColors int     `json:"num_colors"`
	Colors    []int   `json:"colors"`
	Classes   [][]int `json:"classes"`
}

// WriteColoring encodes a coloring as indented JSON and writes it to w.
func WriteColoring(c *Coloring, w io.Writer) error {
	doc := coloringDoc{
		NumColors: c.NumColors(),
		Colors:    c.Colors(),
		Classes:   c.Classes(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode coloring: %w", err)
	}
	return nil
}

// WriteColoringFile writes a coloring to a JSON file.
// The file is created with 0644 permissions.
func WriteColoringFile(c *Coloring, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteColoring(c, f)
}

// ReadColoring decodes a JSON coloring from r. Classes are rebuilt from the
// per-cell colors, so a hand-edited document cannot smuggle in classes that
// disagree with the assignment. Color ids must be contiguous 1..K.
func ReadColoring(r io.Reader) (*Coloring, error) {
	var doc coloringDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode coloring: %w", err)
	}
	return fromColors(doc.Colors)
}

// ReadColoringFile reads a JSON file and returns the decoded coloring.
func ReadColoringFile(path string) (*Coloring, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadColoring(f)
}

// fromColors rebuilds a Coloring from per-cell color ids (cell i+1 colored
// perCell[i]), checking contiguity 1..K.
func fromColors(perCell []int) (*Coloring, error) {
	if len(perCell) == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrInvalid)
	}
	k := 0
	for _, c := range perCell {
		if c > k {
			k = c
		}
	}
	colors := make([]int, len(perCell)+1)
	classes := make([][]int, k)
	for i, c := range perCell {
		if c < 1 || c > k {
			return nil, fmt.Errorf("%w: cell %d has color %d outside 1..%d", ErrInvalid, i+1, c, k)
		}
		colors[i+1] = c
		classes[c-1] = append(classes[c-1], i+1)
	}
	for id, cls := range classes {
		if len(cls) == 0 {
			return nil, fmt.Errorf("%w: color ids not contiguous, %d unused", ErrInvalid, id+1)
		}
	}
	return &Coloring{colors: colors, classes: classes}, nil
}
