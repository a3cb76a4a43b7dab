package mesh

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrEmptyMesh is returned by [New] when the cell list is empty.
	// A mesh must contain at least one cell.
	ErrEmptyMesh = errors.New("mesh: must contain at least one cell")

	// ErrEmptyCell is returned by [New] when a cell has no nodes.
	// Every cell must reference at least one node id.
	ErrEmptyCell = errors.New("mesh: cell has no nodes")

	// ErrNodeID is returned by [New] when a cell references a non-positive
	// node id. Node ids are opaque but must be positive integers.
	ErrNodeID = errors.New("mesh: node ids must be positive")

	// ErrCellIndex is returned by [Mesh.Nodes] when the cell index is
	// outside 1..NumCells.
	ErrCellIndex = errors.New("mesh: cell index out of range")
)

// Mesh is an unstructured mesh reduced to its connectivity: for each cell,
// the ordered list of node ids the cell is incident to. Cells are indexed
// 1..NumCells by convention (index 0 is never a valid cell).
//
// The zero value is not usable - use New to create a valid Mesh instance.
// A Mesh is immutable after construction.
type Mesh struct {
	name  string
	cells [][]int // cells[i] holds the node ids of cell i+1
}

// New builds a Mesh from per-cell node lists. cells[i] becomes cell i+1.
// The node lists are copied, so the caller may reuse the input slices.
//
// Returns ErrEmptyMesh when cells is empty, ErrEmptyCell when any cell has
// no nodes, or ErrNodeID when any node id is not a positive integer.
func New(name string, cells [][]int) (*Mesh, error) {
	if len(cells) == 0 {
		return nil, ErrEmptyMesh
	}
	copied := make([][]int, len(cells))
	for i, nodes := range cells {
		if len(nodes) == 0 {
			return nil, fmt.Errorf("%w: cell %d", ErrEmptyCell, i+1)
		}
		for _, id := range nodes {
			if id <= 0 {
				return nil, fmt.Errorf("%w: cell %d references node %d", ErrNodeID, i+1, id)
			}
		}
		copied[i] = slices.Clone(nodes)
	}
	return &Mesh{name: name, cells: copied}, nil
}

// Name returns the optional mesh name (may be empty).
func (m *Mesh) Name() string { return m.name }

// NumCells returns the number of cells N. Valid cell indices are 1..N.
func (m *Mesh) NumCells() int { return len(m.cells) }

// NumNodes returns the number of distinct node ids referenced by the mesh.
func (m *Mesh) NumNodes() int {
	seen := make(map[int]struct{})
	for _, nodes := range m.cells {
		for _, id := range nodes {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}

// Nodes returns the ordered node-id list of the given cell (1-based).
// The returned slice is owned by the mesh and must not be modified.
func (m *Mesh) Nodes(cell int) ([]int, error) {
	if cell < 1 || cell > len(m.cells) {
		return nil, fmt.Errorf("%w: %d (mesh has %d cells)", ErrCellIndex, cell, len(m.cells))
	}
	return m.cells[cell-1], nil
}

// Cells returns all per-cell node lists in cell-index order, where entry i
// belongs to cell i+1. The returned slices are owned by the mesh and must
// not be modified.
func (m *Mesh) Cells() [][]int { return m.cells }

// MaxValence returns the largest number of cells incident to any single
// node. Every node induces a clique of that size in the cell-adjacency
// graph, so MaxValence is a lower bound on the chromatic number.
func (m *Mesh) MaxValence() int {
	counts := make(map[int]int)
	for _, nodes := range m.cells {
		for _, id := range nodes {
			counts[id]++
		}
	}
	maxV := 0
	for _, c := range counts {
		if c > maxV {
			maxV = c
		}
	}
	return maxV
}
