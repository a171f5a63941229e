package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes {"error": msg}, the body shape every endpoint uses.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
