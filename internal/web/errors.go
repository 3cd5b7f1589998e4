package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/southswell/backoffice/internal/logging"
)

// errorResponse is the JSON structure for API error responses.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError logs the error with the request id and returns a JSON error
// body. Messages passed here are already operator-safe; internal detail
// stays in the log.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", message,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// writeJSON encodes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left but to log it.
		slog.Error("json encode error", "error", err)
	}
}
