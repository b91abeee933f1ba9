package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/at-ishikawa/penguins/internal/store"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}

func writeBadRequest(w http.ResponseWriter, message string, details ...string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message, Details: details})
}

// writeError maps a catalog error to a status with a generic message and logs the cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	switch {
	case errors.Is(err, store.ErrValidation):
		status = http.StatusBadRequest
		message = "invalid request"
	case errors.Is(err, store.ErrUnavailable):
		status = http.StatusServiceUnavailable
		message = "service unavailable"
	}

	event := hlog.FromRequest(r).Error()
	if status < http.StatusInternalServerError {
		event = hlog.FromRequest(r).Warn()
	}
	event.Err(err).Int("status", status).Msg("request failed")
	writeJSON(w, status, errorResponse{Error: message})
}

// decode reads a JSON body into dst and validates it. It writes the 400 response
// itself and reports false when the body is unusable.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("invalid request body")
		writeBadRequest(w, "invalid request body")
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		writeBadRequest(w, "invalid request", h.validationMessages(err)...)
		return false
	}
	return true
}
