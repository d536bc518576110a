package server

import (
	"net/http"

	"github.com/vinifbn/instagram-insights-api/pkg/formatter"
)

type sessionData struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getSession(w, r)
	case http.MethodDelete:
		s.deleteSession(w, r)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Get(r)
	if err != nil {
		s.writeJSON(w, http.StatusUnauthorized, statusPayload{
			Status:        "error",
			Message:       "Instagram session not found",
			Authenticated: boolPtr(false),
		})
		return
	}

	s.Logger.Debug("Session found",
		"user_id", sess.UserID,
		"access_token", formatter.TokenPreview(sess.AccessToken, 10),
	)

	s.writeJSON(w, http.StatusOK, statusPayload{
		Status:        "success",
		Message:       "Instagram session found",
		Authenticated: boolPtr(true),
		Data: sessionData{
			UserID:      sess.UserID,
			AccessToken: sess.AccessToken,
		},
	})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	s.Sessions.Clear(w)
	s.writeJSON(w, http.StatusOK, statusPayload{
		Status:        "success",
		Message:       "Instagram session cleared",
		Authenticated: boolPtr(false),
	})
}
