package instagramimpl

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
)

// GetInsights fetches the requested metrics for one media item. There is
// deliberately no retry here: a failed insight fetch is classified by the
// resolver instead of repeated.
func (g *GraphImpl) GetInsights(ctx context.Context, accessToken string, mediaID string, metrics []string) (map[string]int64, error) {
	params := url.Values{}
	params.Set("metric", strings.Join(metrics, ","))
	params.Set("access_token", accessToken)
	insightsURL := fmt.Sprintf("%s/%s/insights?%s", g.Config.Instagram.GraphURL, mediaID, params.Encode())

	var response domain.Insights
	if err := g.getJSON(ctx, insightsURL, &response); err != nil {
		return nil, err
	}

	values := make(map[string]int64, len(response.Data))
	for _, metric := range response.Data {
		if len(metric.Values) == 0 {
			continue
		}
		// Last write wins on duplicate names.
		values[metric.Name] = metric.Values[0].Value
	}
	return values, nil
}
