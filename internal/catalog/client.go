// Package catalog is a client for the TMDB media catalog API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/metrics"
)

const (
	maxRetries      = 3
	retryDelay      = 500 * time.Millisecond
	maxResponseSize = 5 * 1024 * 1024
	userAgent       = "cineshelf/1.0"
	breakerName     = "tmdb-api"
)

// Config configures a Client.
type Config struct {
	APIKey            string
	BaseURL           string
	ImageBaseURL      string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// Client fetches catalog data. Requests are paced by a token bucket, retried
// on transient failures and guarded by a circuit breaker. Any failure to get
// a usable answer surfaces as apperr.ErrUpstreamUnavailable, except a 404
// which surfaces as a NotFoundError.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     zerolog.Logger
	retryDelay time.Duration
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.ImageBaseURL = strings.TrimRight(cfg.ImageBaseURL, "/")
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 20
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(1, int(cfg.RequestsPerSecond))),
		logger:     logger.With().Str("component", "catalog").Logger(),
		retryDelay: retryDelay,
	}
	c.breaker = newBreaker(c.logger)
	return c
}

func newBreaker(logger zerolog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.6
		},
		// Missing titles are answers, not upstream failures.
		IsSuccessful: func(err error) bool {
			return err == nil || apperr.IsNotFound(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	}
	return -1
}

// errPermanent marks a response that retrying will not fix.
type errPermanent struct{ err error }

func (e *errPermanent) Error() string { return e.err.Error() }
func (e *errPermanent) Unwrap() error { return e.err }

// get performs a GET on endpoint and returns the raw body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, endpoint, params)
	})
	metrics.CatalogDuration.Observe(time.Since(start).Seconds())

	label := endpointLabel(endpoint)
	switch {
	case err == nil:
		metrics.CatalogRequests.WithLabelValues(label, "success").Inc()
		return body, nil
	case apperr.IsNotFound(err):
		metrics.CatalogRequests.WithLabelValues(label, "not_found").Inc()
		return nil, err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CatalogRequests.WithLabelValues(label, "rejected").Inc()
		return nil, fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
	default:
		metrics.CatalogRequests.WithLabelValues(label, "failure").Inc()
		c.logger.Error().Err(err).Str("endpoint", label).Msg("catalog request failed")
		return nil, fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
	}
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.cfg.APIKey)
	target := c.cfg.BaseURL + endpoint + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.do(ctx, target)
		if err == nil {
			c.logger.Debug().Str("endpoint", endpoint).Int("attempt", attempt+1).Int("bytes", len(body)).
				Msg("catalog request ok")
			return body, nil
		}

		var perm *errPermanent
		if errors.As(err, &perm) || apperr.IsNotFound(err) {
			return nil, err
		}
		lastErr = err
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Int("attempt", attempt+1).
			Msg("catalog request failed, retrying")

		if attempt < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt+1) * c.retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &errPermanent{fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound("Title")
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	default:
		return nil, &errPermanent{fmt.Errorf("catalog returned status %d", resp.StatusCode)}
	}

	if resp.ContentLength > maxResponseSize {
		return nil, &errPermanent{fmt.Errorf("response too large: %d bytes", resp.ContentLength)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxResponseSize {
		return nil, &errPermanent{fmt.Errorf("response too large: exceeded %d bytes", maxResponseSize)}
	}
	return body, nil
}

// endpointLabel keeps metric cardinality bounded by dropping numeric ids.
func endpointLabel(endpoint string) string {
	parts := strings.Split(endpoint, "/")
	for i, p := range parts {
		if p != "" && strings.Trim(p, "0123456789") == "" {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
