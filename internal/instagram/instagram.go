package instagram

import (
	"context"
	"fmt"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go -package=mocks

type Client interface {
	// ExchangeCode trades an OAuth authorization code for a session.
	ExchangeCode(ctx context.Context, code string) (domain.Session, error)
	GetProfile(ctx context.Context, accessToken string) (*domain.Profile, error)
	// GetMedia fetches one page of the account's media. An empty after
	// cursor fetches the first page.
	GetMedia(ctx context.Context, accessToken string, limit int, after string) (*domain.MediaPage, error)
	// GetInsights fetches the requested metrics for one media item.
	GetInsights(ctx context.Context, accessToken string, mediaID string, metrics []string) (map[string]int64, error)
}

// APIError is a non-2xx answer from the Graph API, carrying enough of the
// upstream payload to classify the failure.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Code       int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("instagram api error (status %d): %s", e.StatusCode, e.Message)
}
