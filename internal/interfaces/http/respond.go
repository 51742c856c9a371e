package http

import (
	"encoding/json"
	"log"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondStorageError logs the underlying error with full detail and
// sends the client only a generic message. Raw storage errors never
// reach the wire.
func respondStorageError(w http.ResponseWriter, msg string, err error) {
	log.Printf("%s: %v", msg, err)
	respondError(w, http.StatusInternalServerError, msg)
}
