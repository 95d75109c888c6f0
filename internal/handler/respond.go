package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// detail wraps an error message in the {"detail": ...} envelope used
// across every error response of the API.
func detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}
