// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON writes data as a JSON body with the given status code.
// Values that fail to encode are logged and answered with a 500.
func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logger.Error("encode response", "status", status, "error", err)
		writeJSON(w, http.StatusInternalServerError, []byte(`{"error":"failed to encode response"}`))
		return
	}
	writeJSON(w, status, body)
}

// RespondError logs err and writes it as {"error": "..."} with the given status code.
// Server errors are logged at error level, client errors at warn level.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}
	RespondJSON(w, logger, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
