package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code. It sets
// Content-Type and no-store cache headers (responses may carry session
// material).
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes the canonical {"message": ...} error/status body.
func WriteMessage(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, map[string]string{"message": message})
}
