package mesh

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cells   [][]int
		wantErr error
	}{
		{
			name:  "Single",
			cells: [][]int{{1, 2, 3}},
		},
		{
			name:  "TwoSharing",
			cells: [][]int{{1, 2, 3}, {3, 4, 5}},
		},
		{
			name:    "Empty",
			cells:   nil,
			wantErr: ErrEmptyMesh,
		},
		{
			name:    "EmptyCell",
			cells:   [][]int{{1, 2}, {}},
			wantErr: ErrEmptyCell,
		},
		{
			name:    "ZeroNodeID",
			cells:   [][]int{{1, 0}},
			wantErr: ErrNodeID,
		},
		{
			name:    "NegativeNodeID",
			cells:   [][]int{{1, -4}},
			wantErr: ErrNodeID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New("test", tt.cells)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if m.NumCells() != len(tt.cells) {
				t.Errorf("NumCells() = %d, want %d", m.NumCells(), len(tt.cells))
			}
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	cells := [][]int{{1, 2, 3}}
	m, err := New("", cells)
	if err != nil {
		t.Fatal(err)
	}
	cells[0][0] = 99

	nodes, err := m.Nodes(1)
	if err != nil {
		t.Fatal(err)
	}
	if nodes[0] != 1 {
		t.Errorf("mesh shares storage with caller: nodes[0] = %d, want 1", nodes[0])
	}
}

func TestNodesRange(t *testing.T) {
	m, err := New("", [][]int{{1, 2}, {2, 3}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Nodes(0); !errors.Is(err, ErrCellIndex) {
		t.Errorf("Nodes(0) error = %v, want ErrCellIndex", err)
	}
	if _, err := m.Nodes(3); !errors.Is(err, ErrCellIndex) {
		t.Errorf("Nodes(3) error = %v, want ErrCellIndex", err)
	}
	nodes, err := m.Nodes(2)
	if err != nil {
		t.Fatalf("Nodes(2) unexpected error: %v", err)
	}
	if len(nodes) != 2 || nodes[0] != 2 || nodes[1] != 3 {
		t.Errorf("Nodes(2) = %v, want [2 3]", nodes)
	}
}

func TestNumNodes(t *testing.T) {
	m, err := New("", [][]int{{1, 2, 3}, {3, 4}, {4, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.NumNodes(); got != 4 {
		t.Errorf("NumNodes() = %d, want 4", got)
	}
}

func TestMaxValence(t *testing.T) {
	// Node 5 appears in all four cells.
	m, err := New("", [][]int{{1, 2, 5}, {2, 3, 5}, {3, 4, 5}, {4, 1, 5}})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.MaxValence(); got != 4 {
		t.Errorf("MaxValence() = %d, want 4", got)
	}
}
