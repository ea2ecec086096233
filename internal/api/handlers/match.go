package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pitchproc/pitchproc/internal/service"
)

type MatchHandler struct {
	svc *service.MatchService
}

func NewMatchHandler(svc *service.MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

type simulateRequest struct {
	Minutes int   `json:"minutes"`
	Seed    int64 `json:"seed"`
	Persist *bool `json:"persist"`
}

func (h *MatchHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Minutes == 0 {
		req.Minutes = 90
	}
	persist := true
	if req.Persist != nil {
		persist = *req.Persist
	}

	result, err := h.svc.Simulate(r.Context(), service.SimulateRequest{
		Minutes: req.Minutes,
		Seed:    req.Seed,
		Persist: persist,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidDuration) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to simulate match")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"match":      result.Match,
		"stats":      result.Stats,
		"events":     len(result.Events),
		"violations": len(result.Violations),
		"reports":    result.Reports,
	})
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	matches, err := h.svc.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list matches")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	match, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get match")
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (h *MatchHandler) Events(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	events, err := h.svc.Events(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *MatchHandler) Verdicts(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	verdicts, err := h.svc.Verdicts(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list verdicts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"verdicts": verdicts})
}

func (h *MatchHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	summary, err := h.svc.Summary(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *MatchHandler) SimilarPossessions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	caseID := chi.URLParam(r, "case")
	if caseID == "" {
		writeError(w, http.StatusBadRequest, "case id is required")
		return
	}

	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	similar, err := h.svc.SimilarPossessions(r.Context(), id, caseID, limit)
	if err != nil {
		if errors.Is(err, service.ErrCaseNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to find similar possessions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"similar": similar})
}
