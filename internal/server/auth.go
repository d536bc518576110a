package server

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	apperrors "github.com/vinifbn/instagram-insights-api/pkg/errors"
	"github.com/vinifbn/instagram-insights-api/pkg/formatter"
)

// Business scopes required for profile, media and insight reads.
const authScopes = "instagram_business_basic,instagram_business_manage_messages,instagram_business_manage_insights"

// handleAuthorize redirects the browser to the Instagram consent screen
// with a fresh state value.
func (s *Server) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	params := url.Values{}
	params.Set("client_id", s.Config.Instagram.ClientID)
	params.Set("redirect_uri", s.Config.Instagram.RedirectURI)
	params.Set("scope", authScopes)
	params.Set("response_type", "code")
	params.Set("state", uuid.NewString())

	http.Redirect(w, r, s.Config.Instagram.AuthURL+"?"+params.Encode(), http.StatusFound)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")

	// State is expected to be a UUID v4. An unexpected format is logged
	// but does not fail the flow.
	if state != "" {
		if parsed, err := uuid.Parse(state); err != nil || parsed.Version() != 4 {
			s.Logger.Warn("Callback state is not a UUID v4", "state", state)
		}
	}

	if code == "" {
		s.Logger.Error("No code received in callback")
		s.writeJSON(w, http.StatusBadRequest, statusPayload{
			Status:  "error",
			Message: "Authorization code not received",
		})
		return
	}

	if s.Config.Instagram.ClientSecret == "" {
		s.Logger.Error("Instagram client secret not configured")
		s.writeJSON(w, http.StatusInternalServerError, statusPayload{
			Status:  "error",
			Message: "Instagram client secret not configured",
		})
		return
	}

	s.Logger.Info("Exchanging code for token", "code", formatter.TokenPreview(code, 10))

	sess, err := s.Instagram.ExchangeCode(r.Context(), code)
	if err != nil {
		var apiErr *instagram.APIError
		if apperrors.As(err, &apiErr) {
			s.Logger.Error("Token exchange rejected upstream",
				"status", apiErr.StatusCode,
				"message", apiErr.Message,
			)
			s.writeJSON(w, apiErr.StatusCode, statusPayload{
				Status:  "error",
				Message: "Instagram API error: " + apiErr.Message,
			})
			return
		}

		s.Logger.Error("Token exchange failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, statusPayload{
			Status:  "error",
			Message: "Internal server error",
		})
		return
	}

	s.Sessions.Set(w, sess)

	s.Logger.Info("Instagram session established",
		"user_id", sess.UserID,
		"access_token", formatter.TokenPreview(sess.AccessToken, 20),
	)

	http.Redirect(w, r, s.Config.App.DashboardURL, http.StatusTemporaryRedirect)
}
