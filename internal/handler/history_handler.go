package handler

import (
	"net/http"
	"strconv"

	"github.com/freeeve/gridclash/internal/logger"
	"github.com/freeeve/gridclash/internal/repository"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// HistoryHandler serves finished-game history. A nil repository means
// history is disabled.
type HistoryHandler struct {
	resultRepo repository.ResultRepository
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(resultRepo repository.ResultRepository) *HistoryHandler {
	return &HistoryHandler{resultRepo: resultRepo}
}

// Recent handles GET /api/v1/games/recent?limit=
func (h *HistoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if h.resultRepo == nil {
		writeError(w, http.StatusServiceUnavailable, "game history is disabled")
		return
	}
	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRecentLimit)
	}

	results, err := h.resultRepo.ListRecent(r.Context(), limit)
	if err != nil {
		l := logger.ForRequest(r.Context())
		l.Error().Err(err).Msg("Failed to list game results")
		writeError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}
	if results == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Stats handles GET /api/v1/stats
func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.resultRepo == nil {
		writeError(w, http.StatusServiceUnavailable, "game history is disabled")
		return
	}
	stats, err := h.resultRepo.Stats(r.Context())
	if err != nil {
		l := logger.ForRequest(r.Context())
		l.Error().Err(err).Msg("Failed to compute game stats")
		writeError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
