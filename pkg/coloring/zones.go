package coloring

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDisconnected is returned by [Compute] and [partitionZones] when the
	// cell-adjacency graph is not connected: the breadth-first layering
	// cannot reach every cell from the seed, and an incomplete coloring must
	// never be produced silently.
	ErrDisconnected = errors.New("coloring: mesh adjacency graph is not connected")

	// ErrSeedRange is returned when the zone seed cell is outside
	// 1..NumCells.
	ErrSeedRange = errors.New("coloring: seed cell out of range")
)

// partitionZones layers the adjacency graph into zones by breadth-first
// traversal from the seed cell: zone 1 holds the seed alone, and zone k+1
// holds every unvisited neighbor of zone k. Zones are pairwise disjoint and
// together cover all cells. Within each zone, cells are listed ascending.
//
// The layering guarantees the property the merge phase relies on: any
// adjacency is either inside one zone or between consecutive zones, because
// a neighbor of zone k is captured in zone k+1 at the latest. Zones two or
// more levels apart therefore contain no adjacent cell pairs.
//
// Returns ErrSeedRange for an invalid seed and ErrDisconnected when the
// traversal does not reach every cell.
func partitionZones(g *Incidence, seed int) ([][]int, error) {
	n := g.NumCells()
	if seed < 1 || seed > n {
		return nil, fmt.Errorf("%w: %d (graph has %d cells)", ErrSeedRange, seed, n)
	}

	visited := make([]bool, n+1)
	visited[seed] = true
	zones := [][]int{{seed}}
	placed := 1

	for placed < n {
		prev := zones[len(zones)-1]
		var next []int
		for _, cell := range prev {
			for _, nb := range g.Neighbors(cell) {
				if !visited[nb] {
					visited[nb] = true
					next = append(next, nb)
				}
			}
		}
		if len(next) == 0 {
			return nil, fmt.Errorf("%w: %d of %d cells unreachable from seed %d",
				ErrDisconnected, n-placed, n, seed)
		}
		// Neighbor lists are sorted, but cells of the previous zone
		// interleave their discoveries.
		slices.Sort(next)
		zones = append(zones, next)
		placed += len(next)
	}
	return zones, nil
}
