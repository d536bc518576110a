package server

import (
	"net/http"
	"strconv"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
	apperrors "github.com/vinifbn/instagram-insights-api/pkg/errors"
)

const defaultMediaLimit = 25

type mediaResponse struct {
	Success bool               `json:"success"`
	Data    []domain.MediaItem `json:"data"`
	Paging  *mediaPaging       `json:"paging"`
}

type mediaPaging struct {
	Next string `json:"next,omitempty"`
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
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

	limit := defaultMediaLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil && parsed > 0 {
			limit = parsed
		}
	}
	cursor := r.URL.Query().Get("after")

	page, err := s.Aggregator.FetchPage(r.Context(), sess, limit, cursor)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			s.writeJSON(w, http.StatusUnauthorized, errorPayload{
				Error:   "Token de acesso inválido ou expirado",
				Message: "Faça login novamente no Instagram",
			})
			return
		}

		s.Logger.Error("Failed to fetch media page", "user_id", sess.UserID, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorPayload{
			Error:   "Erro interno do servidor",
			Message: "Falha ao processar requisição de mídia Instagram",
		})
		return
	}

	response := mediaResponse{
		Success: true,
		Data:    page.Items,
	}
	if response.Data == nil {
		response.Data = []domain.MediaItem{}
	}
	if page.NextCursor != "" {
		response.Paging = &mediaPaging{Next: page.NextCursor}
	}
	s.writeJSON(w, http.StatusOK, response)
}
