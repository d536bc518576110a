package aggregator

import (
	"context"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=aggregator.go -destination=mocks/mock.go -package=mocks

// Client fetches one page of media with insight outcomes attached to every
// item. Item-level insight failures never surface here; only session and
// media-listing failures do.
type Client interface {
	FetchPage(ctx context.Context, sess domain.Session, limit int, cursor string) (*domain.MediaPage, error)
}
