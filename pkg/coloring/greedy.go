package coloring

// greedyColor assigns colors to the cells listed in order, in sequence
// order: each cell receives the smallest positive color not already used by
// an already-colored neighbor, and a new color id is introduced only when
// every existing one is taken. Color ids come out contiguous, 1..K.
//
// When inSet is non-nil, only neighbors with inSet[n] true constrain the
// choice; this is how zones are colored in isolation, ignoring adjacency
// across zone boundaries. When inSet is nil the whole graph constrains.
//
// The result depends only on the graph and the traversal order, so callers
// must fix order for reproducible output.
func greedyColor(g *Incidence, order []int, inSet []bool) ([]int, [][]int) {
	colors := make([]int, g.NumCells()+1)
	numColors := 0

	// taken[c] == cell marks color c as occupied around the current cell.
	// Stamping with the cell index avoids clearing the slice per iteration.
	taken := make([]int, g.NumCells()+2)

	for _, cell := range order {
		for _, nb := range g.Neighbors(cell) {
			if inSet != nil && !inSet[nb] {
				continue
			}
			if c := colors[nb]; c > 0 {
				taken[c] = cell
			}
		}

		assigned := 0
		for c := 1; c <= numColors; c++ {
			if taken[c] != cell {
				assigned = c
				break
			}
		}
		if assigned == 0 {
			// All existing colors are blocked by neighbors; grow the palette.
			numColors++
			assigned = numColors
			if numColors > g.NumCells() {
				// More colors than cells is impossible for any input.
				panic("coloring: greedy produced more colors than cells")
			}
		}
		colors[cell] = assigned
	}

	classes := make([][]int, numColors)
	for _, cell := range order {
		c := colors[cell]
		classes[c-1] = append(classes[c-1], cell)
	}
	return colors, classes
}
