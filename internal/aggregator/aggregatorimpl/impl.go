package aggregatorimpl

import (
	"context"
	"sync"

	"github.com/vinifbn/instagram-insights-api/internal/aggregator"
	"github.com/vinifbn/instagram-insights-api/internal/domain"
	"github.com/vinifbn/instagram-insights-api/internal/insights"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	apperrors "github.com/vinifbn/instagram-insights-api/pkg/errors"
	"github.com/vinifbn/instagram-insights-api/pkg/logger"
	"go.uber.org/fx"
)

type AggregatorImpl struct {
	Instagram instagram.Client
	Resolver  insights.Resolver
	Logger    logger.Logger
}

type Opts struct {
	fx.In

	Instagram instagram.Client
	Resolver  insights.Resolver
	Logger    logger.Logger
}

func New(opts Opts) *AggregatorImpl {
	return &AggregatorImpl{
		Instagram: opts.Instagram,
		Resolver:  opts.Resolver,
		Logger:    opts.Logger,
	}
}

var _ aggregator.Client = (*AggregatorImpl)(nil)

// FetchPage lists one page of media and resolves insights for every item
// concurrently, preserving the listing order regardless of completion order.
func (a *AggregatorImpl) FetchPage(ctx context.Context, sess domain.Session, limit int, cursor string) (*domain.MediaPage, error) {
	if !sess.Valid() {
		return nil, apperrors.ErrUnauthorized
	}

	page, err := a.Instagram.GetMedia(ctx, sess.AccessToken, limit, cursor)
	if err != nil {
		var apiErr *instagram.APIError
		if apperrors.As(err, &apiErr) &&
			(apiErr.StatusCode == 400 || apiErr.StatusCode == 401) {
			a.Logger.Warn("Media listing rejected the access token",
				"user_id", sess.UserID,
				"status", apiErr.StatusCode,
				"message", apiErr.Message,
			)
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "instagram rejected the access token")
		}
		return nil, apperrors.Wrap(err, "failed to fetch instagram media")
	}

	// One goroutine per item; each writes only its own slot, so no locking
	// is needed and the join restores listing order.
	outcomes := make([]domain.InsightOutcome, len(page.Items))
	var wg sync.WaitGroup
	for i := range page.Items {
		wg.Add(1)
		go func(i int, item domain.MediaItem) {
			defer wg.Done()
			outcomes[i] = a.Resolver.Resolve(ctx, sess.AccessToken, item)
		}(i, page.Items[i])
	}
	wg.Wait()

	available := 0
	for i := range page.Items {
		page.Items[i].AttachOutcome(outcomes[i])
		if outcomes[i].Available() {
			available++
		}
	}

	a.Logger.Info("Resolved insights for media page",
		"user_id", sess.UserID,
		"items", len(page.Items),
		"with_insights", available,
	)
	return page, nil
}
