package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Agora/internal/core/errs"
)

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	WriteJSON(w, statusCode, map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}

// WriteJSON writes body as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// StatusFor maps an error kind to its HTTP status
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindAuthRequired:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteServiceError converts a core service error to an HTTP response.
// Internal errors are logged and answered with a generic message.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errs.KindOf(err)
	if kind == errs.KindInternal {
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
	}
	WriteError(w, StatusFor(kind), kind.String(), errs.Message(err))
}

// DecodeJSON decodes the request body into dst, writing a 400 on failure.
// Returns false when a response has already been written.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, errs.KindValidation.String(), "Invalid request body")
		return false
	}
	return true
}
