package aggregatorimpl

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinifbn/instagram-insights-api/internal/domain"
	insightmocks "github.com/vinifbn/instagram-insights-api/internal/insights/mocks"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	igmocks "github.com/vinifbn/instagram-insights-api/internal/instagram/mocks"
	apperrors "github.com/vinifbn/instagram-insights-api/pkg/errors"
	"github.com/vinifbn/instagram-insights-api/pkg/logger"
	"go.uber.org/mock/gomock"
)

var testSession = domain.Session{UserID: "17841400000000000", AccessToken: "test-token"}

func newTestAggregator(t *testing.T) (*AggregatorImpl, *igmocks.MockClient, *insightmocks.MockResolver) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ig := igmocks.NewMockClient(ctrl)
	resolver := insightmocks.NewMockResolver(ctrl)
	agg := New(Opts{
		Instagram: ig,
		Resolver:  resolver,
		Logger:    logger.NewNop(),
	})
	return agg, ig, resolver
}

func TestFetchPageRequiresValidSession(t *testing.T) {
	agg, _, _ := newTestAggregator(t)

	tests := []domain.Session{
		{},
		{UserID: "123"},
		{AccessToken: "tok"},
	}
	for _, sess := range tests {
		_, err := agg.FetchPage(context.Background(), sess, 25, "")
		assert.True(t, apperrors.IsUnauthorized(err))
	}
}

func TestFetchPageMapsListingAuthFailures(t *testing.T) {
	for _, status := range []int{400, 401} {
		t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
			agg, ig, _ := newTestAggregator(t)

			ig.EXPECT().
				GetMedia(gomock.Any(), testSession.AccessToken, 25, "").
				Return(nil, &instagram.APIError{StatusCode: status, Message: "Invalid OAuth access token"})

			_, err := agg.FetchPage(context.Background(), testSession, 25, "")
			assert.True(t, apperrors.IsUnauthorized(err))
		})
	}
}

func TestFetchPageWrapsOtherListingFailures(t *testing.T) {
	agg, ig, _ := newTestAggregator(t)

	ig.EXPECT().
		GetMedia(gomock.Any(), testSession.AccessToken, 25, "").
		Return(nil, errors.New("dial tcp: i/o timeout"))

	_, err := agg.FetchPage(context.Background(), testSession, 25, "")
	require.Error(t, err)
	assert.False(t, apperrors.IsUnauthorized(err))
}

func TestFetchPagePreservesItemOrder(t *testing.T) {
	agg, ig, resolver := newTestAggregator(t)

	items := make([]domain.MediaItem, 5)
	for i := range items {
		items[i] = domain.MediaItem{
			ID:        fmt.Sprintf("media-%d", i),
			MediaType: domain.MediaTypeImage,
			Timestamp: time.Now().Add(-48 * time.Hour),
		}
	}

	ig.EXPECT().
		GetMedia(gomock.Any(), testSession.AccessToken, 5, "cursor-1").
		Return(&domain.MediaPage{Items: items, NextCursor: "cursor-2"}, nil)

	// Earlier items finish last, so completion order is the reverse of
	// listing order.
	resolver.EXPECT().
		Resolve(gomock.Any(), testSession.AccessToken, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, item domain.MediaItem) domain.InsightOutcome {
			var idx int
			fmt.Sscanf(item.ID, "media-%d", &idx)
			time.Sleep(time.Duration(len(items)-idx) * 10 * time.Millisecond)
			return domain.AvailableOutcome(map[string]int64{"impressions": int64(idx)})
		}).
		Times(len(items))

	page, err := agg.FetchPage(context.Background(), testSession, 5, "cursor-1")
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "cursor-2", page.NextCursor)

	for i, item := range page.Items {
		assert.Equal(t, fmt.Sprintf("media-%d", i), item.ID)
		require.NotNil(t, item.Insights)
		require.Len(t, item.Insights.Data, 1)
		assert.Equal(t, int64(i), item.Insights.Data[0].Values[0].Value)
	}
}

func TestFetchPageAbsorbsInsightFailures(t *testing.T) {
	agg, ig, resolver := newTestAggregator(t)

	items := []domain.MediaItem{
		{ID: "ok", MediaType: domain.MediaTypeVideo},
		{ID: "broken", MediaType: domain.MediaTypeVideo},
	}

	ig.EXPECT().
		GetMedia(gomock.Any(), testSession.AccessToken, 25, "").
		Return(&domain.MediaPage{Items: items}, nil)

	resolver.EXPECT().
		Resolve(gomock.Any(), testSession.AccessToken, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, item domain.MediaItem) domain.InsightOutcome {
			if item.ID == "broken" {
				return domain.UnavailableOutcome(domain.InsightsError{
					Reason:  domain.ReasonPersonalAccount,
					Message: "Conta pessoal",
				})
			}
			return domain.AvailableOutcome(map[string]int64{"video_views": 10})
		}).
		Times(2)

	page, err := agg.FetchPage(context.Background(), testSession, 25, "")
	require.NoError(t, err)

	assert.NotNil(t, page.Items[0].Insights)
	assert.Nil(t, page.Items[0].InsightsError)

	assert.Nil(t, page.Items[1].Insights)
	require.NotNil(t, page.Items[1].InsightsError)
	assert.Equal(t, domain.ReasonPersonalAccount, page.Items[1].InsightsError.Reason)
}
