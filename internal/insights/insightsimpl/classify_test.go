package insightsimpl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vinifbn/instagram-insights-api/internal/domain"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		reason  domain.Reason
	}{
		{
			name:    "unsupported get request",
			status:  400,
			message: "Unsupported get request. Object with ID '123' does not exist",
			reason:  domain.ReasonUnsupportedMetric,
		},
		{
			name:    "missing permissions",
			status:  400,
			message: "(#200) Missing Permissions",
			reason:  domain.ReasonPermissions,
		},
		{
			name:    "ambiguous bad request",
			status:  400,
			message: "Invalid parameter",
			reason:  domain.ReasonPersonalAccount,
		},
		{
			name:    "forbidden",
			status:  403,
			message: "Access denied",
			reason:  domain.ReasonAccessDenied,
		},
		{
			name:    "server error",
			status:  500,
			message: "An unknown error occurred",
			reason:  domain.ReasonAPIError,
		},
		{
			name:   "rate limited",
			status: 429,
			reason: domain.ReasonAPIError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyStatus(tc.status, tc.message)
			assert.Equal(t, tc.reason, got.Reason)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestClassifyStatusAPIErrorDetails(t *testing.T) {
	got := classifyStatus(502, "Bad gateway")
	assert.Equal(t, domain.ReasonAPIError, got.Reason)
	assert.Equal(t, "HTTP 502: Bad gateway", got.Details)
}

func TestClassifyNonAPIError(t *testing.T) {
	got := classify(errors.New("dial tcp: connection refused"))
	assert.Equal(t, domain.ReasonUnknownError, got.Reason)
	assert.Contains(t, got.Details, "connection refused")
}

func TestClassifyUnwrapsAPIError(t *testing.T) {
	wrapped := &instagram.APIError{StatusCode: 403, Message: "Access denied"}
	got := classify(wrapped)
	assert.Equal(t, domain.ReasonAccessDenied, got.Reason)
}

func TestReasonSpecificity(t *testing.T) {
	specific := []domain.Reason{
		domain.ReasonUnsupportedMetric,
		domain.ReasonPermissions,
		domain.ReasonAccessDenied,
		domain.ReasonAPIError,
	}
	generic := []domain.Reason{
		domain.ReasonRecentPost,
		domain.ReasonPersonalAccount,
		domain.ReasonUnknownError,
		domain.ReasonGeneralError,
		domain.ReasonUnsupportedMediaType,
	}

	for _, r := range specific {
		assert.True(t, r.Specific(), "%s should be specific", r)
	}
	for _, r := range generic {
		assert.False(t, r.Specific(), "%s should be generic", r)
	}
}
