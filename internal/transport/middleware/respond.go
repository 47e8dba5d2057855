package middleware

import (
	"encoding/json"
	"net/http"
)

// writeFault writes the failure envelope editor scripts expect from every /api route.
func writeFault(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"success": false,
		"data":    map[string]string{"message": message, "code": code},
	})
}
