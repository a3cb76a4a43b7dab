package coloring

import (
	"errors"
	"fmt"

	"github.com/meshtools/meshcolor/pkg/mesh"
)

var (
	// ErrNilMesh is returned by [Compute] when the mesh is nil.
	ErrNilMesh = errors.New("coloring: mesh must not be nil")

	// ErrAlgorithm is returned by [ParseAlgorithm] for an unknown algorithm
	// name.
	ErrAlgorithm = errors.New("coloring: unknown algorithm")

	// ErrInvalid is returned by [Coloring.Validate] when the coloring
	// violates one of its invariants. This indicates a defect, not bad
	// input; it exists so tests and the pipeline can certify outputs.
	ErrInvalid = errors.New("coloring: invalid coloring")
)

// Algorithm selects how a coloring is computed.
type Algorithm int

const (
	// ZonePartitioned layers the graph into BFS zones from a seed cell,
	// colors each zone in isolation, and merges the zone colorings with
	// parity-based color reuse. The default; suited to large meshes.
	ZonePartitioned Algorithm = iota

	// DirectGreedy colors all cells in index order in a single greedy pass.
	DirectGreedy
)

// String returns the CLI/API name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case ZonePartitioned:
		return "zones"
	case DirectGreedy:
		return "greedy"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm converts a CLI/API name into an Algorithm.
// Recognized names are "zones" and "greedy"; "" selects the default.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", "zones":
		return ZonePartitioned, nil
	case "greedy":
		return DirectGreedy, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be one of: zones, greedy)", ErrAlgorithm, name)
	}
}

// DefaultSeed is the cell the zone partition starts from unless overridden.
const DefaultSeed = 1

// Options configures [Compute].
type Options struct {
	// Algorithm selects the coloring strategy. Zero value is ZonePartitioned.
	Algorithm Algorithm

	// Seed is the cell the zone partition starts from (ZonePartitioned
	// only). Zero selects DefaultSeed. Different seeds yield different but
	// equally valid colorings; fixing the seed fixes the output.
	Seed int
}

// Coloring is a conflict-free partition of cells into color classes.
// For every pair of adjacent cells the assigned colors differ, color ids
// are contiguous 1..NumColors, and every cell belongs to exactly one class.
//
// A Coloring is immutable once computed.
type Coloring struct {
	colors  []int   // colors[cell] for cell 1..n; index 0 unused
	classes [][]int // classes[k] lists the cells with color k+1, sorted ascending
}

// NumCells returns the number of colored cells.
func (c *Coloring) NumCells() int { return len(c.colors) - 1 }

// NumColors returns K, the number of color classes.
func (c *Coloring) NumColors() int { return len(c.classes) }

// ColorOf returns the color id of the given cell (1-based), or 0 when the
// cell index is out of range.
func (c *Coloring) ColorOf(cell int) int {
	if cell < 1 || cell >= len(c.colors) {
		return 0
	}
	return c.colors[cell]
}

// Colors returns the per-cell color ids for cells 1..NumCells, in cell
// order. The returned slice is a copy.
func (c *Coloring) Colors() []int {
	out := make([]int, len(c.colors)-1)
	copy(out, c.colors[1:])
	return out
}

// Class returns the cells assigned the given color id (1..NumColors),
// sorted ascending. The returned slice is owned by the coloring and must
// not be modified.
func (c *Coloring) Class(id int) []int {
	if id < 1 || id > len(c.classes) {
		return nil
	}
	return c.classes[id-1]
}

// Classes returns all color classes in id order. The returned slices are
// owned by the coloring and must not be modified.
func (c *Coloring) Classes() [][]int { return c.classes }

// Validate certifies the coloring against the adjacency graph it was
// computed from: every cell colored with an id in 1..NumColors, classes
// consistent with per-cell colors, every cell in exactly one class, and no
// adjacent pair sharing a color. Returns an error wrapping ErrInvalid on
// the first violation found.
func (c *Coloring) Validate(g *Incidence) error {
	if c.NumCells() != g.NumCells() {
		return fmt.Errorf("%w: covers %d cells, graph has %d", ErrInvalid, c.NumCells(), g.NumCells())
	}
	k := c.NumColors()
	for cell := 1; cell <= g.NumCells(); cell++ {
		col := c.colors[cell]
		if col < 1 || col > k {
			return fmt.Errorf("%w: cell %d has color %d outside 1..%d", ErrInvalid, cell, col, k)
		}
		for _, nb := range g.Neighbors(cell) {
			if c.colors[nb] == col {
				return fmt.Errorf("%w: adjacent cells %d and %d share color %d", ErrInvalid, cell, nb, col)
			}
		}
	}
	seen := 0
	for id, cls := range c.classes {
		if len(cls) == 0 {
			return fmt.Errorf("%w: color %d has an empty class", ErrInvalid, id+1)
		}
		for _, cell := range cls {
			if c.ColorOf(cell) != id+1 {
				return fmt.Errorf("%w: cell %d listed in class %d but colored %d",
					ErrInvalid, cell, id+1, c.ColorOf(cell))
			}
			seen++
		}
	}
	if seen != g.NumCells() {
		return fmt.Errorf("%w: classes list %d cells, graph has %d", ErrInvalid, seen, g.NumCells())
	}
	return nil
}

// Compute builds the incidence graph for the mesh and colors it with the
// selected algorithm. It either returns a fully valid coloring over every
// cell or an error; there is no partial-success mode.
//
// Returns ErrNilMesh for a nil mesh, ErrSeedRange for a seed outside
// 1..NumCells, and ErrDisconnected when ZonePartitioned is asked to color a
// mesh whose adjacency graph is not connected.
func Compute(m *mesh.Mesh, opts Options) (*Coloring, error) {
	if m == nil {
		return nil, ErrNilMesh
	}
	return ComputeGraph(BuildIncidence(m), opts)
}

// ComputeGraph colors an already-built incidence graph. Callers that color
// one mesh repeatedly (e.g. with several seeds) can build the graph once
// and reuse it; the graph is never mutated.
func ComputeGraph(g *Incidence, opts Options) (*Coloring, error) {
	switch opts.Algorithm {
	case DirectGreedy:
		return colorDirect(g), nil
	case ZonePartitioned:
		seed := opts.Seed
		if seed == 0 {
			seed = DefaultSeed
		}
		return colorZoned(g, seed)
	default:
		return nil, fmt.Errorf("%w: %d", ErrAlgorithm, int(opts.Algorithm))
	}
}

// colorDirect runs the greedy pass over all cells in index order.
func colorDirect(g *Incidence) *Coloring {
	order := make([]int, g.NumCells())
	for i := range order {
		order[i] = i + 1
	}
	colors, classes := greedyColor(g, order, nil)
	return &Coloring{colors: colors, classes: classes}
}

// colorZoned runs the three-phase pipeline: partition into BFS zones from
// seed, color every zone in isolation, merge with parity-based reuse.
func colorZoned(g *Incidence, seed int) (*Coloring, error) {
	zones, err := partitionZones(g, seed)
	if err != nil {
		return nil, err
	}

	inSet := make([]bool, g.NumCells()+1)
	zoneColorings := make([]zoneColoring, len(zones))
	for i, zone := range zones {
		for _, cell := range zone {
			inSet[cell] = true
		}
		_, classes := greedyColor(g, zone, inSet)
		zoneColorings[i] = zoneColoring{index: i + 1, classes: classes}
		for _, cell := range zone {
			inSet[cell] = false
		}
	}

	colors, classes := mergeZones(g.NumCells(), zoneColorings)
	return &Coloring{colors: colors, classes: classes}, nil
}
