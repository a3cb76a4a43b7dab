package coloring

import (
	"slices"

	"github.com/meshtools/meshcolor/pkg/mesh"
)

// Incidence is the cell-adjacency graph of a mesh: cells i and j are
// adjacent iff they share at least one node. Self-adjacency is excluded and
// the relation is symmetric. Cells are indexed 1..NumCells, matching the
// mesh convention.
//
// The graph is immutable once built and must be rebuilt if the mesh
// topology changes.
type Incidence struct {
	n   int
	adj [][]int // adj[i] lists the neighbors of cell i, sorted ascending; index 0 unused
}

// BuildIncidence constructs the cell-adjacency graph from mesh connectivity.
//
// For every node the builder collects the cells referencing it and records
// an edge between each pair. Work is proportional to the sum over nodes of
// the squared node valence, never to NumCells squared, and no dense matrix
// is materialized. An isolated cell simply ends up with no neighbors.
func BuildIncidence(m *mesh.Mesh) *Incidence {
	cells := m.Cells()
	n := len(cells)

	// Bucket cells by node. Iterating cells in index order keeps every
	// bucket sorted ascending for free.
	nodeCells := make(map[int][]int)
	for i, nodes := range cells {
		cell := i + 1
		for _, id := range nodes {
			nodeCells[id] = append(nodeCells[id], cell)
		}
	}

	adj := make([][]int, n+1)
	for _, bucket := range nodeCells {
		for _, a := range bucket {
			for _, b := range bucket {
				if a != b {
					adj[a] = append(adj[a], b)
				}
			}
		}
	}

	// Cells sharing several nodes were recorded once per shared node.
	for i := 1; i <= n; i++ {
		slices.Sort(adj[i])
		adj[i] = slices.Compact(adj[i])
	}

	return &Incidence{n: n, adj: adj}
}

// NumCells returns the number of cells in the graph.
func (g *Incidence) NumCells() int { return g.n }

// Neighbors returns the cells adjacent to the given cell, sorted ascending.
// The returned slice is owned by the graph and must not be modified.
// Cells outside 1..NumCells have no neighbors.
func (g *Incidence) Neighbors(cell int) []int {
	if cell < 1 || cell > g.n {
		return nil
	}
	return g.adj[cell]
}

// Degree returns the number of neighbors of the given cell.
func (g *Incidence) Degree(cell int) int { return len(g.Neighbors(cell)) }

// EdgeCount returns the number of undirected adjacency pairs.
func (g *Incidence) EdgeCount() int {
	total := 0
	for i := 1; i <= g.n; i++ {
		total += len(g.adj[i])
	}
	return total / 2
}

// MaxDegree returns the largest neighbor count over all cells.
func (g *Incidence) MaxDegree() int {
	maxD := 0
	for i := 1; i <= g.n; i++ {
		if d := len(g.adj[i]); d > maxD {
			maxD = d
		}
	}
	return maxD
}
