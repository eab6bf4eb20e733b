package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/service"
)

type PerceptionHandler struct {
	svc *service.PerceptionService
}

func NewPerceptionHandler(svc *service.PerceptionService) *PerceptionHandler {
	return &PerceptionHandler{svc: svc}
}

type applyPerceptionRequest struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Facing  string `json:"facing"`
	Reading string `json:"reading"`
}

type applyPerceptionResponse struct {
	*service.PerceptionOutcome
	Error string `json:"error,omitempty"`
}

// Apply handles POST /v1/agents/{id}/perceptions.
func (h *PerceptionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id, ok := agentIDParam(w, r)
	if !ok {
		return
	}

	var req applyPerceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Reading == "" {
		writeError(w, http.StatusBadRequest, "reading is required")
		return
	}

	out, err := h.svc.ApplyRaw(r.Context(), id, service.RawPerception{
		Position: domain.Position{X: req.X, Y: req.Y},
		Facing:   req.Facing,
		Reading:  req.Reading,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAgentNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case service.IsPerceptionError(err):
			// Report how far the cycle got; those writes were kept.
			writeJSON(w, http.StatusUnprocessableEntity, applyPerceptionResponse{PerceptionOutcome: out, Error: err.Error()})
		default:
			writeError(w, http.StatusInternalServerError, "failed to apply perception")
		}
		return
	}

	writeJSON(w, http.StatusOK, applyPerceptionResponse{PerceptionOutcome: out})
}
