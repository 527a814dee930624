package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fundilink/internal/config"
	"fundilink/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Client is the authenticated JSON REST adapter both stores call. Every
// request carries the bearer token and a correlation id, goes through the
// client-side rate limiter, and honors context cancellation.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zerolog.Logger
}

func NewClient(cfg config.APIConfig, logger *zerolog.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	burst := cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 5
	}
	rps := cfg.RateLimit.RPS
	if rps <= 0 {
		rps = 10
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// serverError is the body shape the backend uses for rejections.
type serverError struct {
	Message string `json:"message"`
}

// do issues one request and decodes a 2xx JSON body into out (skipped when
// out is nil). endpoint is a stable label for logs and metrics, not the path.
func (c *Client) do(ctx context.Context, method, path, endpoint string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if IsCancelled(err) {
			metrics.IncAPIRequest(endpoint, "cancelled")
			return err
		}
		metrics.IncAPIRequest(endpoint, "error")
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("request failed")
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.IncAPIRequest(endpoint, "error")
		var se serverError
		_ = json.NewDecoder(resp.Body).Decode(&se)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: se.Message, Endpoint: endpoint}
		c.logger.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Str("message", se.Message).Msg("server rejected request")
		return apiErr
	}

	metrics.IncAPIRequest(endpoint, "ok")
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
