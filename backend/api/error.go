package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kvisle/taskbridge/backend/gateway"
)

type errorResponse struct {
	Error      string    `json:"error"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{
		Error:      message,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
	})
}

// gatewayError maps a gateway failure to its HTTP status. Malformed
// upstream responses look like upstream failures to the caller; the
// gateway already logged them distinguishably.
func gatewayError(w http.ResponseWriter, operation string, err error) {
	switch {
	case gateway.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case gateway.IsMalformedResponse(err), gateway.IsUpstreamUnavailable(err):
		slog.Error("upstream failure", "operation", operation, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		slog.Error("unexpected gateway failure", "operation", operation, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
