package insightsimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vinifbn/instagram-insights-api/internal/domain"
	"github.com/vinifbn/instagram-insights-api/internal/insights"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	"github.com/vinifbn/instagram-insights-api/pkg/logger"
	"go.uber.org/fx"
)

// Insights only become available upstream a day after publication.
const insightsAvailableAfter = 24 * time.Hour

// Minimal per-type metric set for the first request.
var primaryMetrics = map[domain.MediaType][]string{
	domain.MediaTypeVideo:    {"video_views"},
	domain.MediaTypeReels:    {"plays"},
	domain.MediaTypeCarousel: {"impressions"},
	domain.MediaTypeImage:    {"impressions"},
}

// Engagement metrics are fetched best-effort in a second round.
var engagementMetrics = []string{"likes", "comments", "shares", "saved"}

type ResolverImpl struct {
	Instagram instagram.Client
	Logger    logger.Logger
	Clock     clockwork.Clock
}

type Opts struct {
	fx.In

	Instagram instagram.Client
	Logger    logger.Logger
	Clock     clockwork.Clock
}

func New(opts Opts) *ResolverImpl {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ResolverImpl{
		Instagram: opts.Instagram,
		Logger:    opts.Logger,
		Clock:     clock,
	}
}

var _ insights.Resolver = (*ResolverImpl)(nil)

// Resolve runs the per-item decision flow: recency advisory, primary metric
// request, optional engagement round, failure classification. Specific
// failure reasons win over the recency heuristic.
func (r *ResolverImpl) Resolve(ctx context.Context, accessToken string, item domain.MediaItem) (outcome domain.InsightOutcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.Logger.Error("Insight resolution panicked", "media_id", item.ID, "panic", rec)
			outcome = domain.UnavailableOutcome(domain.InsightsError{
				Reason:  domain.ReasonGeneralError,
				Message: "Erro inesperado ao buscar insights",
				Details: fmt.Sprint(rec),
			})
		}
	}()

	primary, supported := primaryMetrics[item.MediaType]
	if !supported {
		return domain.UnavailableOutcome(domain.InsightsError{
			Reason:  domain.ReasonUnsupportedMediaType,
			Message: "Tipo de mídia não suportado",
			Details: fmt.Sprintf("Insights não estão disponíveis para mídia do tipo %s.", item.MediaType),
		})
	}

	// Advisory only: the call below still decides the final outcome.
	var recent *domain.InsightsError
	if age := r.Clock.Since(item.Timestamp); age < insightsAvailableAfter {
		recent = &domain.InsightsError{
			Reason:  domain.ReasonRecentPost,
			Message: "Post muito recente",
			Details: fmt.Sprintf("Publicado há %.1f horas. Insights ficam disponíveis após 24h.", age.Hours()),
		}
	}

	metrics, err := r.Instagram.GetInsights(ctx, accessToken, item.ID, primary)
	if err != nil {
		classified := classify(err)
		if recent != nil && !classified.Reason.Specific() {
			return domain.UnavailableOutcome(*recent)
		}
		return domain.UnavailableOutcome(classified)
	}

	if len(metrics) > 0 {
		engagement, engErr := r.Instagram.GetInsights(ctx, accessToken, item.ID, engagementMetrics)
		if engErr != nil {
			r.Logger.Debug("Engagement metrics unavailable", "media_id", item.ID, "error", engErr)
		} else {
			for name, value := range engagement {
				metrics[name] = value
			}
		}
	}

	return domain.AvailableOutcome(metrics)
}
