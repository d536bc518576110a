package instagramimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	"github.com/vinifbn/instagram-insights-api/pkg/config"
	"github.com/vinifbn/instagram-insights-api/pkg/logger"
	"go.uber.org/fx"
)

type GraphImpl struct {
	httpClient *http.Client
	Config     *config.Config
	Logger     logger.Logger
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *GraphImpl {
	timeout := time.Duration(opts.Config.Instagram.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &GraphImpl{
		httpClient: &http.Client{Timeout: timeout},
		Config:     opts.Config,
		Logger:     opts.Logger,
	}
}

var _ instagram.Client = (*GraphImpl)(nil)

// graphError is the Graph API error envelope.
type graphError struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FbtraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

// getJSON performs a GET and decodes the body into out. Non-2xx answers are
// returned as *instagram.APIError with the upstream message attached.
func (g *GraphImpl) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return apiErrorFromBody(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func apiErrorFromBody(status int, body []byte) *instagram.APIError {
	var envelope graphError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &instagram.APIError{
			StatusCode: status,
			Message:    envelope.Error.Message,
			Type:       envelope.Error.Type,
			Code:       envelope.Error.Code,
		}
	}
	return &instagram.APIError{
		StatusCode: status,
		Message:    string(body),
	}
}
