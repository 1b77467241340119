package handler

import (
	"encoding/json"
	"net/http"
)

// StatusEnvelope wraps login and mutation acknowledgements.
type StatusEnvelope struct {
	Status string `json:"status"`
	Role   string `json:"role,omitempty"`
}

// SnapshotEnvelope wraps take-photo responses.
type SnapshotEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
