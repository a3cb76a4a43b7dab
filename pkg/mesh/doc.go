// Package mesh defines the unstructured-mesh model consumed by the coloring
// pipeline.
//
// A Mesh is a list of cells indexed 1..N, each cell holding the ordered list
// of node ids it is incident to. The package deliberately knows nothing about
// geometry: node ids are opaque positive integers whose only role is to
// decide which cells touch each other. Two cells sharing at least one node
// are considered in conflict for the purposes of parallel assembly.
//
// The package provides:
//   - Construction and validation (New)
//   - JSON serialization (ReadMesh, WriteMesh and the *File variants)
//   - Deterministic builders for structured test meshes (QuadGrid, QuadRing)
//
// Meshes are immutable once built and safe for concurrent reads.
package mesh
