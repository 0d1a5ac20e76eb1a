package utils

import (
	"encoding/json"
	"net/http"
	"strings"
)

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JoinLines joins subtitle lines into the single text block sent to the
// generation endpoint.
func JoinLines(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
