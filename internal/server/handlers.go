package server

import (
	"encoding/json"
	"net/http"

	"github.com/mycofab/imprint/pkg/errors"
	"github.com/mycofab/imprint/pkg/imposition/label"
	"github.com/mycofab/imprint/pkg/imposition/seal"
	"github.com/mycofab/imprint/pkg/pipeline"
	"github.com/mycofab/imprint/pkg/qr/dotmatrix"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// renderRequest is the body for POST /api/v1/qr/render.
type renderRequest struct {
	Tokens        []string `json:"tokens"`
	Diameter      float64  `json:"diameter_in,omitempty"`
	Spacing       float64  `json:"spacing_in,omitempty"`
	Margin        float64  `json:"margin_in,omitempty"`
	Paper         string   `json:"paper,omitempty"`
	Radius        float64  `json:"radius,omitempty"`
	ContrastBoost float64  `json:"contrast_boost,omitempty"`
	Format        string   `json:"format,omitempty"`
	Refresh       bool     `json:"refresh,omitempty"`
}

// renderResponse is the body for a successful render.
type renderResponse struct {
	JobID          string                        `json:"job_id"`
	Layout         seal.GridLayout               `json:"layout"`
	Positions      []seal.Position               `json:"positions"`
	SheetsRequired int                           `json:"sheets_required"`
	ClampedCount   int                           `json:"clamped_count"`
	Artifacts      map[string]string             `json:"artifacts"`
	Geometries     map[string]dotmatrix.Geometry `json:"geometries"`
	CacheHits      int                           `json:"cache_hits"`
}

// labelsRequest is the body for POST /api/v1/labels/validate.
type labelsRequest struct {
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
	MarginIn float64 `json:"margin_in"`
	Quantity int     `json:"quantity"`
	Paper    string  `json:"paper,omitempty"`
}

// sealsRequest is the body for POST /api/v1/seals/validate.
type sealsRequest struct {
	DiameterIn float64 `json:"diameter_in"`
	SpacingIn  float64 `json:"spacing_in"`
	MarginIn   float64 `json:"margin_in"`
	Paper      string  `json:"paper,omitempty"`
}

// sealsResponse is the body for a seal validation.
type sealsResponse struct {
	Valid    bool             `json:"valid"`
	Problems []string         `json:"problems"`
	Layout   *seal.GridLayout `json:"layout,omitempty"`
}

// errorResponse carries a structured error back to the client.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender runs the full pipeline for a batch of tokens and returns the
// sheet plan plus one artifact per token.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decode(w, r, &req) {
		return
	}

	paper, err := s.cfg.ResolvePaper(req.Paper)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Tokens:        req.Tokens,
		Diameter:      req.Diameter,
		Spacing:       req.Spacing,
		Margin:        req.Margin,
		Paper:         paper,
		Radius:        req.Radius,
		ContrastBoost: req.ContrastBoost,
		Format:        req.Format,
		Refresh:       req.Refresh,
		Logger:        s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	artifacts := make(map[string]string, len(result.Artifacts))
	for token, artifact := range result.Artifacts {
		artifacts[token] = string(artifact)
	}

	writeJSON(w, http.StatusOK, renderResponse{
		JobID:          result.JobID,
		Layout:         result.Layout,
		Positions:      result.Positions,
		SheetsRequired: result.SheetsRequired,
		ClampedCount:   result.ClampedCount,
		Artifacts:      artifacts,
		Geometries:     result.Geometries,
		CacheHits:      result.CacheInfo.RenderHits,
	})
}

// handleLabelsValidate exposes the label validator. The report is returned
// with 200 even when invalid: the validation itself succeeded, and the
// structured errors are the payload.
func (s *Server) handleLabelsValidate(w http.ResponseWriter, r *http.Request) {
	var req labelsRequest
	if !s.decode(w, r, &req) {
		return
	}

	paper, err := s.cfg.ResolvePaper(req.Paper)
	if err != nil {
		s.writeError(w, err)
		return
	}

	report := label.ValidateOn(paper, req.WidthIn, req.HeightIn, req.MarginIn, req.Quantity)
	writeJSON(w, http.StatusOK, report)
}

// handleSealsValidate exposes the seal validator, returning every violated
// constraint plus the layout when the configuration is printable.
func (s *Server) handleSealsValidate(w http.ResponseWriter, r *http.Request) {
	var req sealsRequest
	if !s.decode(w, r, &req) {
		return
	}

	paper, err := s.cfg.ResolvePaper(req.Paper)
	if err != nil {
		s.writeError(w, err)
		return
	}

	cfg := seal.Config{
		DiameterIn: req.DiameterIn,
		SpacingIn:  req.SpacingIn,
		MarginIn:   req.MarginIn,
		Paper:      paper,
	}

	resp := sealsResponse{Problems: []string{}}
	if problems := seal.Validate(cfg); len(problems) > 0 {
		resp.Problems = problems
	} else {
		resp.Valid = true
		layout := seal.Layout(cfg)
		resp.Layout = &layout
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

// decode reads a JSON request body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

// writeError maps structured error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOrInternal(err)
	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

// statusForCode maps error codes to HTTP statuses. Validation failures are
// client errors; geometry that cannot be produced is unprocessable.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDimension,
		errors.ErrCodeInvalidMargin, errors.ErrCodeInvalidSpacing,
		errors.ErrCodeInvalidQuantity, errors.ErrCodeInvalidPaper,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidToken:
		return http.StatusBadRequest
	case errors.ErrCodeInfeasible, errors.ErrCodeRenderEmpty,
		errors.ErrCodeInvalidMatrix, errors.ErrCodeEncodeFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON serializes v with an appropriate content type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
