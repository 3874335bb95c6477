package handler

import (
	"net/http"

	"github.com/freeeve/gridclash/internal/service"
	"github.com/freeeve/gridclash/pkg/battle"
)

// RoundHandler serves the two round submissions.
type RoundHandler struct {
	roundSvc *service.RoundService
}

// NewRoundHandler creates a RoundHandler.
func NewRoundHandler(roundSvc *service.RoundService) *RoundHandler {
	return &RoundHandler{roundSvc: roundSvc}
}

func malformedBody() error {
	return battle.NewError(battle.MalformedRequest, "Invalid request, no JSON data received.")
}

// SubmitRoundOne handles POST /submit_round_1
func (h *RoundHandler) SubmitRoundOne(w http.ResponseWriter, r *http.Request) {
	var req service.RoundOneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRoundError(w, r, malformedBody())
		return
	}
	resp, err := h.roundSvc.ResolveRoundOne(r.Context(), &req)
	if err != nil {
		writeRoundError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SubmitRoundTwo handles POST /submit_round_2
func (h *RoundHandler) SubmitRoundTwo(w http.ResponseWriter, r *http.Request) {
	var req service.RoundTwoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRoundError(w, r, malformedBody())
		return
	}
	resp, err := h.roundSvc.ResolveRoundTwo(r.Context(), &req)
	if err != nil {
		writeRoundError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
