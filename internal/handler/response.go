package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/gridclash/internal/logger"
	"github.com/freeeve/gridclash/pkg/battle"
)

const serverErrorMessage = "An unexpected error occurred on the server."

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeRoundError maps a resolution error to its response: validation
// errors are the caller's to fix, anything else is reported generically.
func writeRoundError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *battle.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Message,
			"kind":  verr.Kind.String(),
		})
		return
	}
	l := logger.ForRequest(r.Context())
	l.Error().Err(err).Str("path", r.URL.Path).Msg("Round resolution failed")
	writeError(w, http.StatusInternalServerError, serverErrorMessage)
}

// decodeJSON reads and decodes JSON from a request body.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
