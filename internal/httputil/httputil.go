// Package httputil provides the small set of JSON response helpers every
// cloudpulse HTTP handler shares.
package httputil

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponse is the shape every handler error returns: handlers never
// leak stack traces, only {error, message, timestamp}.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// WriteJSON writes data as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON {error, message, timestamp} body.
func WriteError(w http.ResponseWriter, status int, errCode, message string) {
	WriteJSON(w, status, ErrorResponse{Error: errCode, Message: message, Timestamp: time.Now().UTC()})
}

// ServiceUnavailable writes a 503, used when the cloud client was never
// configured or the audit orchestrator cannot run.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusServiceUnavailable, "service_unavailable", message)
}

// InternalError writes a 500 for any handler-caught panic or unexpected
// failure that is not one of the categorised cloud/config errors.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message)
}

// BadRequest writes a 400 for malformed query parameters.
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message)
}
