package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/meshtools/meshcolor/pkg/coloring"
)

// WriteCSV writes the per-cell color scalar as two-column CSV with a
// header, cells in index order.
func WriteCSV(c *coloring.Coloring, w io.Writer) error {
	if _, err := io.WriteString(w, "cell,color\n"); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for cell := 1; cell <= c.NumCells(); cell++ {
		if _, err := fmt.Fprintf(w, "%d,%d\n", cell, c.ColorOf(cell)); err != nil {
			return fmt.Errorf("write csv row %d: %w", cell, err)
		}
	}
	return nil
}

// CSV returns the per-cell color scalar as CSV bytes.
func CSV(c *coloring.Coloring) []byte {
	var buf bytes.Buffer
	_ = WriteCSV(c, &buf) // writes to memory, cannot fail
	return buf.Bytes()
}
