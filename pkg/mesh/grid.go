package mesh

import (
	"errors"
	"fmt"
)

// ErrGridSize is returned by the structured builders when a requested
// dimension is not positive.
var ErrGridSize = errors.New("mesh: grid dimensions must be positive")

// QuadGrid builds a conforming nx by ny grid of quadrilateral cells on a
// (nx+1) by (ny+1) lattice of nodes. Cells are numbered row-major starting
// at 1; each cell lists its four corner nodes counter-clockwise.
//
// Interior lattice nodes are shared by four cells, so the four cells around
// any interior node are mutually in conflict: the minimum conflict-free
// coloring of a grid with nx,ny >= 2 needs four colors.
func QuadGrid(nx, ny int) (*Mesh, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridSize, nx, ny)
	}
	node := func(i, j int) int { return j*(nx+1) + i + 1 }
	cells := make([][]int, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			cells = append(cells, []int{
				node(i, j), node(i+1, j), node(i+1, j+1), node(i, j+1),
			})
		}
	}
	return New(fmt.Sprintf("quadgrid-%dx%d", nx, ny), cells)
}

// QuadRing builds a closed ring of n cells in which consecutive cells share
// exactly one node and non-consecutive cells share none. Under node-sharing
// adjacency the result is the cycle graph C_n, which two colors suffice for
// whenever n is even.
//
// Rings are the smallest meshes on which edge-style adjacency differs from
// the clique-heavy conforming grids, which makes them useful regression
// inputs for the coloring heuristics.
func QuadRing(n int) (*Mesh, error) {
	if n < 3 {
		return nil, fmt.Errorf("%w: ring needs at least 3 cells, got %d", ErrGridSize, n)
	}
	// Node i+1 is the joint between cell i+1 and its successor; each cell
	// also owns a private node so no two joints collapse into one cell pair.
	cells := make([][]int, n)
	for i := 0; i < n; i++ {
		prev := i          // joint with predecessor (node ids are 1-based)
		next := (i + 1) % n // joint with successor
		private := n + i
		cells[i] = []int{prev + 1, next + 1, private + 1}
	}
	return New(fmt.Sprintf("quadring-%d", n), cells)
}
