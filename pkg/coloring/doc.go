// Package coloring computes conflict-free colorings of unstructured meshes.
//
// A coloring partitions the cells of a mesh into color classes such that no
// two cells sharing a mesh node receive the same color. Downstream assembly
// loops can then process the classes strictly in sequence and, within one
// class, process cells in parallel without locking: cells of one class never
// write to overlapping degrees of freedom.
//
// The package builds a cell-adjacency graph from mesh connectivity
// ([BuildIncidence]) and offers two algorithms through [Compute]:
//
//   - [DirectGreedy]: a single greedy pass over all cells in index order,
//     assigning each cell the smallest color unused by its neighbors.
//   - [ZonePartitioned]: a three-phase pipeline for large meshes. The graph
//     is layered into zones by breadth-first traversal from a seed cell,
//     each zone is greedily colored in isolation, and the per-zone colorings
//     are merged with cross-zone color reuse. Zones of equal parity are
//     never adjacent, so the merge shares color ids freely inside each
//     parity while keeping the odd and even id ranges disjoint.
//
// Both algorithms are deterministic: the result depends only on the mesh
// connectivity, the algorithm, and the seed cell. Neither guarantees the
// minimum possible number of colors; the zone merge heuristic packs the
// largest local classes into the smallest eligible global classes to keep
// the count low.
//
// Colorings are immutable outputs. The intermediate [Incidence] graph is
// read-only once built and may be shared across goroutines.
package coloring
