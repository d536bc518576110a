package insights

import (
	"context"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=insights.go -destination=mocks/mock.go -package=mocks

// Resolver produces exactly one InsightOutcome per media item. It is total:
// every failure is folded into a classified outcome, never returned as an
// error.
type Resolver interface {
	Resolve(ctx context.Context, accessToken string, item domain.MediaItem) domain.InsightOutcome
}
