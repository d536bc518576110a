package insightsimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinifbn/instagram-insights-api/internal/domain"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	"github.com/vinifbn/instagram-insights-api/internal/instagram/mocks"
	"github.com/vinifbn/instagram-insights-api/pkg/logger"
	"go.uber.org/mock/gomock"
)

const testToken = "test-token"

func newTestResolver(t *testing.T, now time.Time) (*ResolverImpl, *mocks.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ig := mocks.NewMockClient(ctrl)
	resolver := New(Opts{
		Instagram: ig,
		Logger:    logger.NewNop(),
		Clock:     clockwork.NewFakeClockAt(now),
	})
	return resolver, ig
}

func mediaItem(id string, mediaType domain.MediaType, ts time.Time) domain.MediaItem {
	return domain.MediaItem{
		ID:        id,
		MediaType: mediaType,
		Permalink: "https://instagram.com/p/" + id,
		Timestamp: ts,
	}
}

func TestResolveUnsupportedMediaTypeMakesNoCalls(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	resolver, _ := newTestResolver(t, now)

	// No EXPECT on the client: any network call fails the test.
	outcome := resolver.Resolve(context.Background(), testToken,
		mediaItem("m1", "STORY", now.Add(-72*time.Hour)))

	require.NotNil(t, outcome.Err)
	assert.Equal(t, domain.ReasonUnsupportedMediaType, outcome.Err.Reason)
	assert.False(t, outcome.Available())
}

func TestResolveRecentPostWinsOverGenericFailure(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		err  error
	}{
		{name: "network failure", err: errors.New("connection refused")},
		{
			name: "ambiguous 400",
			err:  &instagram.APIError{StatusCode: 400, Message: "Invalid parameter"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver, ig := newTestResolver(t, now)
			item := mediaItem("m2", domain.MediaTypeImage, now.Add(-2*time.Hour))

			ig.EXPECT().
				GetInsights(gomock.Any(), testToken, "m2", []string{"impressions"}).
				Return(nil, tc.err)

			outcome := resolver.Resolve(context.Background(), testToken, item)

			require.NotNil(t, outcome.Err)
			assert.Equal(t, domain.ReasonRecentPost, outcome.Err.Reason)
			assert.Contains(t, outcome.Err.Details, "2.0")
		})
	}
}

func TestResolveSpecificReasonWinsOverRecency(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	resolver, ig := newTestResolver(t, now)
	item := mediaItem("m3", domain.MediaTypeVideo, now.Add(-2*time.Hour))

	ig.EXPECT().
		GetInsights(gomock.Any(), testToken, "m3", []string{"video_views"}).
		Return(nil, &instagram.APIError{
			StatusCode: 400,
			Message:    "Unsupported get request for this metric",
		})

	outcome := resolver.Resolve(context.Background(), testToken, item)

	require.NotNil(t, outcome.Err)
	assert.Equal(t, domain.ReasonUnsupportedMetric, outcome.Err.Reason)
}

func TestResolveMergesEngagementMetrics(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	resolver, ig := newTestResolver(t, now)
	item := mediaItem("m4", domain.MediaTypeReels, now.Add(-48*time.Hour))

	ig.EXPECT().
		GetInsights(gomock.Any(), testToken, "m4", []string{"plays"}).
		Return(map[string]int64{"plays": 100}, nil)
	ig.EXPECT().
		GetInsights(gomock.Any(), testToken, "m4", []string{"likes", "comments", "shares", "saved"}).
		Return(map[string]int64{"likes": 5}, nil)

	outcome := resolver.Resolve(context.Background(), testToken, item)

	require.True(t, outcome.Available())
	assert.Equal(t, map[string]int64{"plays": 100, "likes": 5}, outcome.Metrics)
}

func TestResolveEngagementFailureKeepsPrimaryOutcome(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	resolver, ig := newTestResolver(t, now)
	item := mediaItem("m5", domain.MediaTypeVideo, now.Add(-48*time.Hour))

	ig.EXPECT().
		GetInsights(gomock.Any(), testToken, "m5", []string{"video_views"}).
		Return(map[string]int64{"video_views": 1250}, nil)
	ig.EXPECT().
		GetInsights(gomock.Any(), testToken, "m5", []string{"likes", "comments", "shares", "saved"}).
		Return(nil, &instagram.APIError{StatusCode: 400, Message: "Invalid parameter"})

	outcome := resolver.Resolve(context.Background(), testToken, item)

	require.True(t, outcome.Available())
	assert.Equal(t, map[string]int64{"video_views": 1250}, outcome.Metrics)
}

func TestResolveEmptyPrimarySkipsEngagementRound(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	resolver, ig := newTestResolver(t, now)
	item := mediaItem("m6", domain.MediaTypeImage, now.Add(-48*time.Hour))

	ig.EXPECT().
		GetInsights(gomock.Any(), testToken, "m6", []string{"impressions"}).
		Return(map[string]int64{}, nil)

	outcome := resolver.Resolve(context.Background(), testToken, item)

	require.True(t, outcome.Available())
	assert.Empty(t, outcome.Metrics)
}

func TestResolveClassifiesOldPostFailures(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		err    error
		reason domain.Reason
	}{
		{
			name:   "forbidden",
			err:    &instagram.APIError{StatusCode: 403, Message: "Access denied"},
			reason: domain.ReasonAccessDenied,
		},
		{
			name:   "network failure",
			err:    errors.New("dial tcp: i/o timeout"),
			reason: domain.ReasonUnknownError,
		},
		{
			name:   "server error",
			err:    &instagram.APIError{StatusCode: 503, Message: "Service temporarily unavailable"},
			reason: domain.ReasonAPIError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver, ig := newTestResolver(t, now)
			item := mediaItem("m7", domain.MediaTypeCarousel, now.Add(-30*24*time.Hour))

			ig.EXPECT().
				GetInsights(gomock.Any(), testToken, "m7", []string{"impressions"}).
				Return(nil, tc.err)

			outcome := resolver.Resolve(context.Background(), testToken, item)

			require.NotNil(t, outcome.Err)
			assert.Equal(t, tc.reason, outcome.Err.Reason)
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	resolver, ig := newTestResolver(t, now)
	item := mediaItem("m8", domain.MediaTypeReels, now.Add(-48*time.Hour))

	ig.EXPECT().
		GetInsights(gomock.Any(), testToken, "m8", []string{"plays"}).
		DoAndReturn(func(context.Context, string, string, []string) (map[string]int64, error) {
			return map[string]int64{"plays": 3420}, nil
		}).
		Times(2)
	ig.EXPECT().
		GetInsights(gomock.Any(), testToken, "m8", []string{"likes", "comments", "shares", "saved"}).
		DoAndReturn(func(context.Context, string, string, []string) (map[string]int64, error) {
			return map[string]int64{"likes": 156, "saved": 45}, nil
		}).
		Times(2)

	first := resolver.Resolve(context.Background(), testToken, item)
	second := resolver.Resolve(context.Background(), testToken, item)

	assert.Equal(t, first, second)
}
