package server

import (
	"net/http"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	apperrors "github.com/vinifbn/instagram-insights-api/pkg/errors"
	"github.com/vinifbn/instagram-insights-api/pkg/formatter"
)

type profileResponse struct {
	Success bool            `json:"success"`
	Data    *domain.Profile `json:"data"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	sess, err := s.Sessions.Get(r)
	if err != nil {
		s.writeJSON(w, http.StatusUnauthorized, errorPayload{
			Error:   "Sessão Instagram não encontrada",
			Message: "Você precisa estar logado no Instagram para acessar este recurso",
		})
		return
	}

	if !s.Limiter.Allow(sess.UserID) {
		s.writeJSON(w, http.StatusTooManyRequests, errorPayload{
			Error:   "Too many requests",
			Message: "Aguarde alguns segundos antes de tentar novamente",
		})
		return
	}

	profile, err := s.Instagram.GetProfile(r.Context(), sess.AccessToken)
	if err != nil {
		var apiErr *instagram.APIError
		if apperrors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnauthorized) {
			s.writeJSON(w, http.StatusUnauthorized, errorPayload{
				Error:   "Token de acesso inválido ou expirado",
				Message: "Faça login novamente no Instagram",
			})
			return
		}

		s.Logger.Error("Failed to fetch profile", "user_id", sess.UserID, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorPayload{
			Error:   "Erro interno do servidor",
			Message: "Falha ao processar requisição do perfil Instagram",
		})
		return
	}

	s.Logger.Info("Profile fetched",
		"username", profile.Username,
		"followers", formatter.FormatNumber(profile.FollowersCount),
	)

	s.writeJSON(w, http.StatusOK, profileResponse{Success: true, Data: profile})
}
