package coloring

import (
	"reflect"
	"testing"

	"github.com/meshtools/meshcolor/pkg/mesh"
)

func mustMesh(t *testing.T, cells [][]int) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New("test", cells)
	if err != nil {
		t.Fatalf("mesh.New() error: %v", err)
	}
	return m
}

func TestBuildIncidence(t *testing.T) {
	tests := []struct {
		name      string
		cells     [][]int
		wantAdj   map[int][]int
		wantEdges int
	}{
		{
			name:      "SingleCell",
			cells:     [][]int{{1, 2, 3}},
			wantAdj:   map[int][]int{1: nil},
			wantEdges: 0,
		},
		{
			name:  "SharedNode",
			cells: [][]int{{1, 2}, {2, 3}, {3, 4}},
			wantAdj: map[int][]int{
				1: {2},
				2: {1, 3},
				3: {2},
			},
			wantEdges: 2,
		},
		{
			name: "SharedEdgeCountsOnce",
			// Cells 1 and 2 share two nodes (a full edge) but must be
			// recorded as neighbors exactly once.
			cells: [][]int{{1, 2, 3, 4}, {2, 3, 5, 6}},
			wantAdj: map[int][]int{
				1: {2},
				2: {1},
			},
			wantEdges: 1,
		},
		{
			name:  "IsolatedCell",
			cells: [][]int{{1, 2}, {2, 3}, {7, 8}},
			wantAdj: map[int][]int{
				1: {2},
				2: {1},
				3: nil,
			},
			wantEdges: 1,
		},
		{
			name: "CommonNodeClique",
			// Node 9 is shared by all four cells: a 4-clique.
			cells: [][]int{{1, 9}, {2, 9}, {3, 9}, {4, 9}},
			wantAdj: map[int][]int{
				1: {2, 3, 4},
				2: {1, 3, 4},
				3: {1, 2, 4},
				4: {1, 2, 3},
			},
			wantEdges: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := BuildIncidence(mustMesh(t, tt.cells))
			if g.NumCells() != len(tt.cells) {
				t.Fatalf("NumCells() = %d, want %d", g.NumCells(), len(tt.cells))
			}
			for cell, want := range tt.wantAdj {
				got := g.Neighbors(cell)
				if len(got) == 0 && len(want) == 0 {
					continue
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("Neighbors(%d) = %v, want %v", cell, got, want)
				}
			}
			if got := g.EdgeCount(); got != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", got, tt.wantEdges)
			}
		})
	}
}

func TestIncidenceSymmetry(t *testing.T) {
	m, err := mesh.QuadGrid(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	g := BuildIncidence(m)

	for cell := 1; cell <= g.NumCells(); cell++ {
		for _, nb := range g.Neighbors(cell) {
			if nb == cell {
				t.Fatalf("cell %d is its own neighbor", cell)
			}
			back := g.Neighbors(nb)
			found := false
			for _, b := range back {
				if b == cell {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("adjacency not symmetric: %d->%d recorded, %d->%d missing", cell, nb, nb, cell)
			}
		}
	}
}

func TestIncidenceNeighborsSorted(t *testing.T) {
	m, err := mesh.QuadGrid(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	g := BuildIncidence(m)

	for cell := 1; cell <= g.NumCells(); cell++ {
		nbs := g.Neighbors(cell)
		for i := 1; i < len(nbs); i++ {
			if nbs[i-1] >= nbs[i] {
				t.Fatalf("Neighbors(%d) = %v not strictly ascending", cell, nbs)
			}
		}
	}
}

func TestIncidenceOutOfRange(t *testing.T) {
	g := BuildIncidence(mustMesh(t, [][]int{{1, 2}, {2, 3}}))
	if nbs := g.Neighbors(0); nbs != nil {
		t.Errorf("Neighbors(0) = %v, want nil", nbs)
	}
	if nbs := g.Neighbors(3); nbs != nil {
		t.Errorf("Neighbors(3) = %v, want nil", nbs)
	}
}

func TestQuadGridIsClique(t *testing.T) {
	// The center node of a conforming 2x2 grid ties all four cells together.
	m, err := mesh.QuadGrid(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	g := BuildIncidence(m)
	if got := g.EdgeCount(); got != 6 {
		t.Errorf("EdgeCount() = %d, want 6 (complete graph on 4 cells)", got)
	}
	if got := g.MaxDegree(); got != 3 {
		t.Errorf("MaxDegree() = %d, want 3", got)
	}
}
