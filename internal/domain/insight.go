package domain

import "sort"

type Reason string

const (
	ReasonRecentPost           Reason = "RECENT_POST"
	ReasonPersonalAccount      Reason = "PERSONAL_ACCOUNT"
	ReasonUnsupportedMetric    Reason = "UNSUPPORTED_METRIC"
	ReasonPermissions          Reason = "PERMISSIONS"
	ReasonAccessDenied         Reason = "ACCESS_DENIED"
	ReasonAPIError             Reason = "API_ERROR"
	ReasonUnknownError         Reason = "UNKNOWN_ERROR"
	ReasonGeneralError         Reason = "GENERAL_ERROR"
	ReasonUnsupportedMediaType Reason = "UNSUPPORTED_MEDIA_TYPE"
)

// Specific reports whether the reason pins down an actual upstream refusal.
// Generic reasons lose to the recency advisory; specific ones win over it.
func (r Reason) Specific() bool {
	switch r {
	case ReasonUnsupportedMetric, ReasonPermissions, ReasonAccessDenied, ReasonAPIError:
		return true
	}
	return false
}

type InsightsError struct {
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Insights is the wire shape the Graph API uses for metric data.
type Insights struct {
	Data []Metric `json:"data"`
}

type Metric struct {
	Name   string        `json:"name"`
	Values []MetricValue `json:"values"`
}

type MetricValue struct {
	Value int64 `json:"value"`
}

// InsightOutcome is the result of resolving insights for a single media
// item: either a metric set or a classified reason why none is available.
// Immutable once computed.
type InsightOutcome struct {
	Metrics map[string]int64
	Err     *InsightsError
}

func AvailableOutcome(metrics map[string]int64) InsightOutcome {
	return InsightOutcome{Metrics: metrics}
}

func UnavailableOutcome(err InsightsError) InsightOutcome {
	return InsightOutcome{Err: &err}
}

func (o InsightOutcome) Available() bool {
	return o.Err == nil
}

// ToInsights renders the metric map in the Graph API wire shape, with
// names sorted so the output is deterministic.
func (o InsightOutcome) ToInsights() *Insights {
	if o.Err != nil {
		return nil
	}
	names := make([]string, 0, len(o.Metrics))
	for name := range o.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	insights := &Insights{Data: make([]Metric, 0, len(names))}
	for _, name := range names {
		insights.Data = append(insights.Data, Metric{
			Name:   name,
			Values: []MetricValue{{Value: o.Metrics[name]}},
		})
	}
	return insights
}
