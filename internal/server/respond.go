package server

import (
	"encoding/json"
	"net/http"
)

// statusPayload mirrors the session/callback response envelope.
type statusPayload struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Authenticated *bool  `json:"authenticated,omitempty"`
	Data          any    `json:"data,omitempty"`
}

// errorPayload mirrors the media/profile error envelope.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.Logger.Error("Failed to encode response", "error", err)
	}
}

func boolPtr(b bool) *bool { return &b }
