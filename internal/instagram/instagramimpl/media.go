package instagramimpl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	"github.com/vinifbn/instagram-insights-api/pkg/retry"
)

const mediaFields = "id,media_type,media_url,thumbnail_url,permalink,caption,timestamp"

// The Graph API emits ISO 8601 with a colon-less zone offset.
const graphTimeLayout = "2006-01-02T15:04:05-0700"

type mediaListResponse struct {
	Data   []mediaEntry `json:"data"`
	Paging struct {
		Cursors struct {
			After string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next"`
	} `json:"paging"`
}

type mediaEntry struct {
	ID           string `json:"id"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Permalink    string `json:"permalink"`
	Caption      string `json:"caption"`
	Timestamp    string `json:"timestamp"`
}

func (g *GraphImpl) GetMedia(ctx context.Context, accessToken string, limit int, after string) (*domain.MediaPage, error) {
	params := url.Values{}
	params.Set("fields", mediaFields)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("access_token", accessToken)
	if after != "" {
		params.Set("after", after)
	}
	mediaURL := fmt.Sprintf("%s/me/media?%s", g.Config.Instagram.GraphURL, params.Encode())

	var listing mediaListResponse
	err := retry.Do(ctx, g.Logger, "instagram.GetMedia", func() error {
		listing = mediaListResponse{}
		if err := g.getJSON(ctx, mediaURL, &listing); err != nil {
			var apiErr *instagram.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
				return retry.Permanent(err)
			}
			return err
		}
		return nil
	}, retry.DefaultConfig())
	if err != nil {
		return nil, err
	}

	page := &domain.MediaPage{
		Items:      make([]domain.MediaItem, 0, len(listing.Data)),
		NextCursor: listing.Paging.Cursors.After,
	}
	if listing.Paging.Next == "" {
		// Upstream repeats the cursor on the last page; only a present
		// "next" link means there is more to fetch.
		page.NextCursor = ""
	}

	for _, entry := range listing.Data {
		item, err := entry.toDomain()
		if err != nil {
			g.Logger.Warn("Skipping malformed media entry", "media_id", entry.ID, "error", err)
			continue
		}
		page.Items = append(page.Items, item)
	}

	g.Logger.Info("Fetched instagram media page",
		"items", len(page.Items),
		"has_next", page.NextCursor != "",
	)
	return page, nil
}

func (e mediaEntry) toDomain() (domain.MediaItem, error) {
	ts, err := parseGraphTime(e.Timestamp)
	if err != nil {
		return domain.MediaItem{}, fmt.Errorf("invalid timestamp %q: %w", e.Timestamp, err)
	}
	return domain.MediaItem{
		ID:           e.ID,
		MediaType:    domain.MediaType(e.MediaType),
		MediaURL:     e.MediaURL,
		ThumbnailURL: e.ThumbnailURL,
		Permalink:    e.Permalink,
		Caption:      e.Caption,
		Timestamp:    ts,
	}, nil
}

func parseGraphTime(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse(graphTimeLayout, value)
}
