package mesh

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// meshDoc is the canonical JSON format for meshes.
//
// The format is human-readable and designed for round-trip fidelity:
// read -> color -> export -> re-read produces identical connectivity.
type meshDoc struct {
	Name  string  `json:"name,omitempty"`
	Cells [][]int `json:"cells"`
}

// WriteMesh encodes a mesh as indented JSON and writes it to w.
func WriteMesh(m *Mesh, w io.Writer) error {
	doc := meshDoc{Name: m.Name(), Cells: m.Cells()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode mesh: %w", err)
	}
	return nil
}

// WriteMeshFile writes a mesh to a JSON file.
// The file is created with 0644 permissions.
func WriteMeshFile(m *Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteMesh(m, f)
}

// ReadMesh decodes a JSON mesh from r. The decoded connectivity passes
// through the same validation as [New].
func ReadMesh(r io.Reader) (*Mesh, error) {
	var doc meshDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode mesh: %w", err)
	}
	return New(doc.Name, doc.Cells)
}

// ReadMeshFile reads a JSON file and returns the decoded mesh.
func ReadMeshFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadMesh(f)
}
