package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mkarev/go-note-keeper/models"
)

// WriteJSON serializes data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes the
// provided status code before sending the body. If marshaling fails, it
// responds with 500 Internal Server Error and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes a uniform JSON failure body {"error": reason} with the
// given status code. The reason string is the only detail exposed to the
// client.
func WriteError(w http.ResponseWriter, reason string, statusCode int) {
	_, _ = WriteJSON(w, models.ErrorResponse{Error: reason}, statusCode)
}
