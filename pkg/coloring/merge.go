package coloring

import (
	"fmt"
	"slices"
)

// zoneColoring is the result of greedily coloring one zone in isolation:
// local color ids 1..len(classes), class k-1 holding the zone cells with
// local color k.
type zoneColoring struct {
	index   int     // 1-based zone index; parity decides the reusable id range
	classes [][]int // local classes, each sorted ascending, all non-empty
}

// odd reports whether the zone sits on an odd BFS level.
func (z zoneColoring) odd() bool { return z.index%2 == 1 }

// mergeState carries the global class bookkeeping threaded through the
// merge loop: the classes themselves, their running sizes, and the split of
// global ids into the odd-parity range 1..oddCount and the even-parity
// range oddCount+1..oddCount+evenCount.
type mergeState struct {
	classes   [][]int
	sizes     []int
	oddCount  int
	evenCount int
}

// rangeFor returns the half-open slice bounds of the global class ids a
// zone of the given parity may reuse.
func (s *mergeState) rangeFor(odd bool) (lo, hi int) {
	if odd {
		return 0, s.oddCount
	}
	return s.oddCount, s.oddCount + s.evenCount
}

// mergeZones combines independently colored zones into one global coloring.
//
// Two zones of the same parity are never adjacent - adjacency only occurs
// inside a zone or between consecutive BFS levels - so color ids may be
// shared freely among all odd zones and, independently, among all even
// zones. Ids are never shared across the parity boundary.
//
// The global palette is seeded from the odd zone and the even zone with the
// most local classes (N_odd and N_even classes); every other zone then maps
// its local classes, largest first, onto the smallest eligible global class
// in its parity range. Eligible means not yet used by another local class
// of the same zone during this merge pass: a zone's local classes must stay
// in distinct global classes or the zone's own internal validity would be
// destroyed. Packing large classes into small ones is a size-balancing
// heuristic, not a correctness requirement.
func mergeZones(n int, zones []zoneColoring) ([]int, [][]int) {
	oddSeed, evenSeed := -1, -1
	for i, z := range zones {
		if z.odd() {
			if oddSeed < 0 || len(z.classes) > len(zones[oddSeed].classes) {
				oddSeed = i
			}
		} else {
			if evenSeed < 0 || len(z.classes) > len(zones[evenSeed].classes) {
				evenSeed = i
			}
		}
	}

	st := &mergeState{}
	if oddSeed >= 0 {
		st.oddCount = len(zones[oddSeed].classes)
	}
	if evenSeed >= 0 {
		st.evenCount = len(zones[evenSeed].classes)
	}
	st.classes = make([][]int, 0, st.oddCount+st.evenCount)
	if oddSeed >= 0 {
		for _, cls := range zones[oddSeed].classes {
			st.classes = append(st.classes, slices.Clone(cls))
		}
	}
	if evenSeed >= 0 {
		for _, cls := range zones[evenSeed].classes {
			st.classes = append(st.classes, slices.Clone(cls))
		}
	}
	st.sizes = make([]int, len(st.classes))
	for i, cls := range st.classes {
		st.sizes[i] = len(cls)
	}

	for i, z := range zones {
		if i == oddSeed || i == evenSeed {
			continue
		}
		mergeZone(st, z)
	}

	// Class membership order carries no meaning; sort for determinism.
	colors := make([]int, n+1)
	for id, cls := range st.classes {
		slices.Sort(cls)
		for _, cell := range cls {
			colors[cell] = id + 1
		}
	}
	return colors, st.classes
}

// mergeZone folds one zone's local classes into the global state.
func mergeZone(st *mergeState, z zoneColoring) {
	lo, hi := st.rangeFor(z.odd())

	// Largest local class first; ties keep the lower local id first.
	order := make([]int, len(z.classes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return len(z.classes[b]) - len(z.classes[a])
	})

	used := make([]bool, len(st.classes))
	for _, local := range order {
		target := -1
		for id := lo; id < hi; id++ {
			if used[id] {
				continue
			}
			if target < 0 || st.sizes[id] < st.sizes[target] {
				target = id
			}
		}
		if target < 0 {
			// The parity range was sized to the largest zone of that
			// parity, so an eligible class always exists; reaching this
			// point means the merge bookkeeping itself is broken.
			panic(fmt.Sprintf("coloring: no eligible global class for zone %d (range %d..%d)",
				z.index, lo+1, hi))
		}
		used[target] = true
		st.classes[target] = append(st.classes[target], z.classes[local]...)
		st.sizes[target] += len(z.classes[local])
	}
}
