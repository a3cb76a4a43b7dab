package coloring

import (
	"errors"
	"reflect"
	"testing"

	"github.com/meshtools/meshcolor/pkg/mesh"
)

// checkColoring asserts the three output invariants shared by both
// algorithms: validity, completeness, and color-id contiguity.
func checkColoring(t *testing.T, g *Incidence, c *Coloring) {
	t.Helper()
	if err := c.Validate(g); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	seen := make(map[int]bool)
	for _, cls := range c.Classes() {
		if len(cls) == 0 {
			t.Fatal("empty color class")
		}
		for _, cell := range cls {
			if seen[cell] {
				t.Fatalf("cell %d appears in more than one class", cell)
			}
			seen[cell] = true
		}
	}
	if len(seen) != g.NumCells() {
		t.Fatalf("classes cover %d cells, want %d", len(seen), g.NumCells())
	}
}

func TestComputeBothAlgorithms(t *testing.T) {
	build := map[string]func() (*mesh.Mesh, error){
		"Grid2x2": func() (*mesh.Mesh, error) { return mesh.QuadGrid(2, 2) },
		"Grid5x3": func() (*mesh.Mesh, error) { return mesh.QuadGrid(5, 3) },
		"Grid8x8": func() (*mesh.Mesh, error) { return mesh.QuadGrid(8, 8) },
		"Ring4":   func() (*mesh.Mesh, error) { return mesh.QuadRing(4) },
		"Ring9":   func() (*mesh.Mesh, error) { return mesh.QuadRing(9) },
		"Single":  func() (*mesh.Mesh, error) { return mesh.New("single", [][]int{{1, 2, 3}}) },
	}

	for name, mk := range build {
		for _, algo := range []Algorithm{DirectGreedy, ZonePartitioned} {
			t.Run(name+"/"+algo.String(), func(t *testing.T) {
				m, err := mk()
				if err != nil {
					t.Fatal(err)
				}
				c, err := Compute(m, Options{Algorithm: algo})
				if err != nil {
					t.Fatalf("Compute() error: %v", err)
				}
				checkColoring(t, BuildIncidence(m), c)
			})
		}
	}
}

func TestDirectGreedyRing(t *testing.T) {
	// Four cells in a ring: only edge-style adjacency, so the greedy pass
	// alternates two colors around the cycle.
	m, err := mesh.QuadRing(4)
	if err != nil {
		t.Fatal(err)
	}
	c, err := Compute(m, Options{Algorithm: DirectGreedy})
	if err != nil {
		t.Fatal(err)
	}
	if c.NumColors() != 2 {
		t.Fatalf("NumColors() = %d, want 2", c.NumColors())
	}
	if got := c.Class(1); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Class(1) = %v, want [1 3]", got)
	}
	if got := c.Class(2); !reflect.DeepEqual(got, []int{2, 4}) {
		t.Errorf("Class(2) = %v, want [2 4]", got)
	}
}

func TestZonePartitionedRing(t *testing.T) {
	// Regression: the parity merge also reaches the two-color optimum on
	// the 4-ring (zones [1], [2 4], [3]; zone 3 reuses zone 1's class).
	m, err := mesh.QuadRing(4)
	if err != nil {
		t.Fatal(err)
	}
	c, err := Compute(m, Options{Algorithm: ZonePartitioned})
	if err != nil {
		t.Fatal(err)
	}
	if c.NumColors() != 2 {
		t.Fatalf("NumColors() = %d, want 2", c.NumColors())
	}
	if got := c.Class(1); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Class(1) = %v, want [1 3]", got)
	}
	if got := c.Class(2); !reflect.DeepEqual(got, []int{2, 4}) {
		t.Errorf("Class(2) = %v, want [2 4]", got)
	}
}

func TestGrid2x2IsFourColors(t *testing.T) {
	// All four cells of a conforming 2x2 grid share the center node, so
	// four colors are unavoidable for both algorithms.
	m, err := mesh.QuadGrid(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, algo := range []Algorithm{DirectGreedy, ZonePartitioned} {
		c, err := Compute(m, Options{Algorithm: algo})
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
		if c.NumColors() != 4 {
			t.Errorf("%s: NumColors() = %d, want 4", algo, c.NumColors())
		}
	}
}

func TestGreedyBound(t *testing.T) {
	// Greedy never needs more than MaxDegree+1 colors, and on conforming
	// grids it stays within MaxValence+1.
	m, err := mesh.QuadGrid(7, 5)
	if err != nil {
		t.Fatal(err)
	}
	g := BuildIncidence(m)
	c, err := Compute(m, Options{Algorithm: DirectGreedy})
	if err != nil {
		t.Fatal(err)
	}
	if k := c.NumColors(); k > g.MaxDegree()+1 {
		t.Errorf("NumColors() = %d exceeds MaxDegree+1 = %d", k, g.MaxDegree()+1)
	}
	if k := c.NumColors(); k > m.MaxValence()+1 {
		t.Errorf("NumColors() = %d exceeds MaxValence+1 = %d", k, m.MaxValence()+1)
	}
}

func TestDeterminism(t *testing.T) {
	m, err := mesh.QuadGrid(6, 6)
	if err != nil {
		t.Fatal(err)
	}
	for _, algo := range []Algorithm{DirectGreedy, ZonePartitioned} {
		first, err := Compute(m, Options{Algorithm: algo})
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 3; i++ {
			again, err := Compute(m, Options{Algorithm: algo})
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(again.Colors(), first.Colors()) {
				t.Fatalf("%s: run %d differs from first run", algo, i+2)
			}
			if !reflect.DeepEqual(again.Classes(), first.Classes()) {
				t.Fatalf("%s: run %d classes differ from first run", algo, i+2)
			}
		}
	}
}

func TestSingleCell(t *testing.T) {
	m, err := mesh.New("single", [][]int{{1, 2, 3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	for _, algo := range []Algorithm{DirectGreedy, ZonePartitioned} {
		c, err := Compute(m, Options{Algorithm: algo})
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
		if c.NumColors() != 1 {
			t.Errorf("%s: NumColors() = %d, want 1", algo, c.NumColors())
		}
		if got := c.ColorOf(1); got != 1 {
			t.Errorf("%s: ColorOf(1) = %d, want 1", algo, got)
		}
	}
}

func TestIsolatedCell(t *testing.T) {
	// Cell 3 shares no node with anyone. The greedy pass gives it color 1
	// regardless of the other cells; the zoned pipeline must refuse the
	// disconnected graph rather than color it partially.
	m, err := mesh.New("island", [][]int{{1, 2}, {2, 3}, {7, 8}})
	if err != nil {
		t.Fatal(err)
	}

	c, err := Compute(m, Options{Algorithm: DirectGreedy})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.ColorOf(3); got != 1 {
		t.Errorf("ColorOf(3) = %d, want 1", got)
	}
	checkColoring(t, BuildIncidence(m), c)

	if _, err := Compute(m, Options{Algorithm: ZonePartitioned}); !errors.Is(err, ErrDisconnected) {
		t.Errorf("ZonePartitioned error = %v, want ErrDisconnected", err)
	}
}

func TestComputeSeeds(t *testing.T) {
	// Any seed yields a valid coloring; fixing the seed fixes the output.
	m, err := mesh.QuadGrid(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	g := BuildIncidence(m)
	for seed := 1; seed <= m.NumCells(); seed++ {
		c, err := ComputeGraph(g, Options{Algorithm: ZonePartitioned, Seed: seed})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		checkColoring(t, g, c)

		again, err := ComputeGraph(g, Options{Algorithm: ZonePartitioned, Seed: seed})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(c.Colors(), again.Colors()) {
			t.Fatalf("seed %d: repeated run differs", seed)
		}
	}
}

func TestComputeErrors(t *testing.T) {
	m, err := mesh.QuadGrid(2, 2)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Compute(nil, Options{}); !errors.Is(err, ErrNilMesh) {
		t.Errorf("Compute(nil) error = %v, want ErrNilMesh", err)
	}
	if _, err := Compute(m, Options{Seed: 99}); !errors.Is(err, ErrSeedRange) {
		t.Errorf("Compute(seed=99) error = %v, want ErrSeedRange", err)
	}
	if _, err := Compute(m, Options{Algorithm: Algorithm(42)}); !errors.Is(err, ErrAlgorithm) {
		t.Errorf("Compute(bad algorithm) error = %v, want ErrAlgorithm", err)
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{input: "", want: ZonePartitioned},
		{input: "zones", want: ZonePartitioned},
		{input: "greedy", want: DirectGreedy},
		{input: "rainbow", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrAlgorithm) {
				t.Errorf("ParseAlgorithm(%q) error = %v, want ErrAlgorithm", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAlgorithm(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidateRejectsConflicts(t *testing.T) {
	m, err := mesh.QuadRing(4)
	if err != nil {
		t.Fatal(err)
	}
	g := BuildIncidence(m)

	// Adjacent cells 1 and 2 share a color.
	bad, err := fromColors([]int{1, 1, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := bad.Validate(g); !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate() error = %v, want ErrInvalid", err)
	}
}
