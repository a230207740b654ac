package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/WillCS/uqplanner/internal/engine"
	"github.com/WillCS/uqplanner/internal/ingest"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger zerolog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, logger zerolog.Logger, status int, message string) {
	writeJSON(w, logger, status, ErrorResponse{Error: message})
}

// statusFor maps an engine or feed error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrValidation),
		errors.Is(err, ingest.ErrUnknownDeliveryMode),
		errors.Is(err, ingest.ErrUnknownCampus):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNotFound),
		errors.Is(err, ingest.ErrCourseNotFound),
		errors.Is(err, ingest.ErrNoMatchingCourses):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, ingest.ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
