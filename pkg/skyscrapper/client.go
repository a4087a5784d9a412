// Package skyscrapper is a thin client for the Sky Scrapper flight-data API
// served through RapidAPI. Every operation issues exactly one GET and hands
// back the decoded body; failures are returned as-is, never retried.
package skyscrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"skytrip/pkg/logger"
)

const (
	DefaultBaseURL = "https://sky-scrapper.p.rapidapi.com"

	DefaultLocale      = "en-US"
	DefaultMarket      = "en-US"
	DefaultCurrency    = "USD"
	DefaultCountryCode = "US"
	DefaultCabinClass  = "economy"
	DefaultSortBy      = "best"

	maxErrorBody = 4 << 10
)

type Config struct {
	BaseURL string
	APIKey  string
	APIHost string

	// RequestsPerSecond paces outgoing calls to stay inside the RapidAPI plan.
	// Zero disables pacing.
	RequestsPerSecond float64
	Burst             int
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiHost    string
	limiter    *rate.Limiter
	tracer     trace.Tracer
	logger     logger.Client
}

func NewClient(httpClient *http.Client, cfg Config, log logger.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		apiHost:    cfg.APIHost,
		limiter:    limiter,
		tracer:     otel.Tracer("skytrip/skyscrapper"),
		logger:     log,
	}
}

// APIError is returned for any non-2xx answer from the API.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("skyscrapper %s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "skyscrapper."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("skyscrapper %s: rate limit wait: %w", op, err)
		}
	}

	endpoint := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("failed to build skyscrapper request", logger.Field{Key: "op", Value: op}, logger.Field{Key: "err", Value: err})
		return fmt.Errorf("skyscrapper %s: failed to build request: %w", op, err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("skyscrapper call failed", logger.Field{Key: "op", Value: op}, logger.Field{Key: "err", Value: err})
		return fmt.Errorf("skyscrapper %s: %w", op, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		c.logger.Warn("skyscrapper returned non-2xx",
			logger.Field{Key: "op", Value: op},
			logger.Field{Key: "status", Value: resp.StatusCode},
		)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("skyscrapper %s: failed to decode response: %w", op, err)
	}

	c.logger.Debug("skyscrapper call ok", logger.Field{Key: "op", Value: op})
	return nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
