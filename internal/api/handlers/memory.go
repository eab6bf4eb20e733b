package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/service"
	"github.com/go-chi/chi/v5"
)

type MemoryHandler struct {
	svc *service.MemoryService
}

func NewMemoryHandler(svc *service.MemoryService) *MemoryHandler {
	return &MemoryHandler{svc: svc}
}

func (h *MemoryHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAgentNotFound), errors.Is(err, service.ErrTileOutOfRange):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "failed to read belief memory")
	}
}

// Tiles handles GET /v1/agents/{id}/tiles with an optional ?state= filter.
func (h *MemoryHandler) Tiles(w http.ResponseWriter, r *http.Request) {
	id, ok := agentIDParam(w, r)
	if !ok {
		return
	}

	var filter *domain.BeliefState
	if s := r.URL.Query().Get("state"); s != "" {
		st, err := domain.ParseBeliefState(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter = &st
	}

	tiles, err := h.svc.Tiles(r.Context(), id, filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tiles": tiles, "count": len(tiles)})
}

func (h *MemoryHandler) Tile(w http.ResponseWriter, r *http.Request) {
	id, ok := agentIDParam(w, r)
	if !ok {
		return
	}

	x, errX := strconv.Atoi(chi.URLParam(r, "x"))
	y, errY := strconv.Atoi(chi.URLParam(r, "y"))
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "x and y must be integers")
		return
	}

	tile, err := h.svc.Tile(r.Context(), id, x, y)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tile)
}

func (h *MemoryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := agentIDParam(w, r)
	if !ok {
		return
	}

	sum, err := h.svc.Summary(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// Map returns the plain-text rendering, one line per x.
func (h *MemoryHandler) Map(w http.ResponseWriter, r *http.Request) {
	id, ok := agentIDParam(w, r)
	if !ok {
		return
	}

	out, err := h.svc.Render(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func (h *MemoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id, ok := agentIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Clear(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
