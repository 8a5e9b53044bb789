package common

import (
	"encoding/json"
	"net/http"

	"global-healthops/nexus/internal/logging"
	"global-healthops/nexus/internal/models/dtos"
)

// RespondJSON sends data as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, data)
}

// RespondError sends {"detail": detail}.
func RespondError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, dtos.ErrorResponse{Detail: detail})
}

// writeJSON marshals data and writes it to the HTTP response.
func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err)
	}
}
