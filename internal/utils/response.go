package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"sensor-api/internal/models"
)

// RespondWithError sends a JSON error response using the APIError model.
// The status code comes from the APIError; only the error message and
// details are written to the body.
func RespondWithError(writer http.ResponseWriter, apiErr models.APIError) {
	RespondWithJSON(writer, apiErr.StatusCode, apiErr)
}

// RespondWithJSON sends a JSON response with the given status code.
func RespondWithJSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		// Headers are already sent; all that is left is to record it.
		slog.Error("Failed to encode JSON response", "error", err.Error())
	}
}
