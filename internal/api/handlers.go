package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/meshtools/meshcolor/pkg/coloring"
	"github.com/meshtools/meshcolor/pkg/mesh"
	"github.com/meshtools/meshcolor/pkg/pipeline"
)

// coloringRequest is the body of POST /v1/colorings.
type coloringRequest struct {
	// Name labels the mesh in logs and artifacts; optional.
	Name string `json:"name,omitempty"`

	// Cells lists each cell's node ids. Node ids are positive integers;
	// cells sharing at least one node are assigned different colors.
	Cells [][]int `json:"cells"`

	Algorithm string   `json:"algorithm,omitempty"`
	Seed      int      `json:"seed,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`
	Formats   []string `json:"formats,omitempty"`
	Labels    bool     `json:"labels,omitempty"`
}

// coloringResponse is the body of a successful coloring.
// Artifacts other than "json" are base64-encoded by the JSON encoder.
type coloringResponse struct {
	RequestID    string            `json:"request_id"`
	MeshHash     string            `json:"mesh_hash"`
	ColoringHash string            `json:"coloring_hash"`
	NumColors    int               `json:"num_colors"`
	Colors       []int             `json:"colors"`
	Classes      [][]int           `json:"classes"`
	Stats        statsResponse     `json:"stats"`
	Cache        cacheResponse     `json:"cache"`
	Artifacts    map[string][]byte `json:"artifacts,omitempty"`
}

type statsResponse struct {
	Cells      int    `json:"cells"`
	Edges      int    `json:"edges"`
	LoadTime   string `json:"load_time"`
	ColorTime  string `json:"color_time"`
	ExportTime string `json:"export_time"`
}

type cacheResponse struct {
	ColoringHit bool `json:"coloring_hit"`
	RenderHit   bool `json:"render_hit"`
}

// errorResponse is the body of any non-2xx response.
type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleColoring(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req coloringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	if err := pipeline.ValidateFormats(req.Formats); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	m, err := mesh.New(req.Name, req.Cells)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.Execute(ctx, pipeline.Options{
		Mesh:      m,
		Algorithm: req.Algorithm,
		Seed:      req.Seed,
		Refresh:   req.Refresh,
		Formats:   req.Formats,
		Labels:    req.Labels,
		Logger:    s.logger,
	})
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	// The "json" artifact duplicates the Colors/Classes fields; drop it.
	artifacts := result.Artifacts
	delete(artifacts, pipeline.FormatJSON)
	if len(artifacts) == 0 {
		artifacts = nil
	}

	s.logger.Info("colored mesh",
		"request_id", reqID(ctx),
		"cells", result.Stats.CellCount,
		"colors", result.Stats.ColorCount,
		"cached", result.CacheInfo.ColoringHit,
		"duration", time.Since(start))

	writeJSON(w, http.StatusOK, coloringResponse{
		RequestID:    reqID(ctx),
		MeshHash:     result.MeshHash,
		ColoringHash: result.ColoringHash,
		NumColors:    result.Coloring.NumColors(),
		Colors:       result.Coloring.Colors(),
		Classes:      result.Coloring.Classes(),
		Stats: statsResponse{
			Cells:      result.Stats.CellCount,
			Edges:      result.Stats.EdgeCount,
			LoadTime:   result.Stats.LoadTime.String(),
			ColorTime:  result.Stats.ColorTime.String(),
			ExportTime: result.Stats.ExportTime.String(),
		},
		Cache: cacheResponse{
			ColoringHit: result.CacheInfo.ColoringHit,
			RenderHit:   result.CacheInfo.RenderHit,
		},
		Artifacts: artifacts,
	})
}

// statusFor maps pipeline errors to HTTP status codes. Caller mistakes map
// to 4xx; everything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, coloring.ErrDisconnected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, coloring.ErrSeedRange),
		errors.Is(err, coloring.ErrAlgorithm),
		errors.Is(err, mesh.ErrEmptyMesh),
		errors.Is(err, mesh.ErrEmptyCell),
		errors.Is(err, mesh.ErrNodeID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := reqID(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", id, "err", err)
	} else {
		s.logger.Debug("request rejected", "request_id", id, "status", status, "err", err)
	}
	writeJSON(w, status, errorResponse{RequestID: id, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
