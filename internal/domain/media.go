package domain

import "time"

type MediaType string

const (
	MediaTypeImage    MediaType = "IMAGE"
	MediaTypeVideo    MediaType = "VIDEO"
	MediaTypeReels    MediaType = "REELS"
	MediaTypeCarousel MediaType = "CAROUSEL_ALBUM"
)

// Supported reports whether insights can be requested for this media type.
func (t MediaType) Supported() bool {
	switch t {
	case MediaTypeImage, MediaTypeVideo, MediaTypeReels, MediaTypeCarousel:
		return true
	}
	return false
}

type MediaItem struct {
	ID            string         `json:"id"`
	MediaType     MediaType      `json:"media_type"`
	MediaURL      string         `json:"media_url"`
	ThumbnailURL  string         `json:"thumbnail_url,omitempty"`
	Permalink     string         `json:"permalink"`
	Caption       string         `json:"caption,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
	Insights      *Insights      `json:"insights,omitempty"`
	InsightsError *InsightsError `json:"insightsError,omitempty"`
}

// AttachOutcome records the result of insight resolution on the item.
// Exactly one of Insights / InsightsError ends up set.
func (m *MediaItem) AttachOutcome(o InsightOutcome) {
	if o.Available() {
		m.Insights = o.ToInsights()
		m.InsightsError = nil
		return
	}
	m.Insights = nil
	m.InsightsError = o.Err
}

// MediaPage is one page of media items in producer order. An empty
// NextCursor means the last page.
type MediaPage struct {
	Items      []MediaItem
	NextCursor string
}
