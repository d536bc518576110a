package instagramimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	"github.com/vinifbn/instagram-insights-api/pkg/formatter"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
}

// oauthError is the token endpoint error shape, which differs from the
// Graph API envelope.
type oauthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (g *GraphImpl) ExchangeCode(ctx context.Context, code string) (domain.Session, error) {
	form := url.Values{}
	form.Set("client_id", g.Config.Instagram.ClientID)
	form.Set("client_secret", g.Config.Instagram.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", g.Config.Instagram.RedirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.Config.Instagram.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domain.Session{}, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var oe oauthError
		if err := json.Unmarshal(body, &oe); err == nil && oe.Error != "" {
			return domain.Session{}, &instagram.APIError{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("%s - %s", oe.Error, oe.ErrorDescription),
				Type:       oe.Error,
			}
		}
		return domain.Session{}, apiErrorFromBody(resp.StatusCode, body)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return domain.Session{}, fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return domain.Session{}, fmt.Errorf("token response missing access_token")
	}

	g.Logger.Info("Token exchange successful",
		"user_id", token.UserID,
		"access_token", formatter.TokenPreview(token.AccessToken, 20),
	)

	return domain.Session{
		UserID:      strconv.FormatInt(token.UserID, 10),
		AccessToken: token.AccessToken,
	}, nil
}
