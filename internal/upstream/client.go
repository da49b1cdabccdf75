// Package upstream holds the HTTP plumbing shared by every third-party API
// client: a bounded timeout, a token bucket and retry with exponential backoff.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxBodySize = 4 << 20

type Config struct {
	Name       string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryWait  time.Duration
	RateLimit  float64 // requests per second, 0 disables limiting
	UserAgent  string
}

type Client struct {
	name       string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      RetryConfig
	logger     *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "QuranVerseAPI/1.0"
	}
	if log == nil {
		log = zap.NewNop()
	}

	retry := DefaultRetryConfig()
	retry.MaxRetries = cfg.MaxRetries
	if cfg.RetryWait > 0 {
		retry.InitialWait = cfg.RetryWait
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		name:      cfg.Name,
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: limiter,
		retry:   retry,
		logger:  log.With(zap.String("upstream", cfg.Name)),
	}
}

func (c *Client) Name() string {
	return c.name
}

// GetJSON issues a GET against baseURL+path and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := c.Get(ctx, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUpstreamMalformed, c.name, path, err)
	}
	return nil
}

// Get returns the raw body of a successful GET.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return c.doRequestWithRetry(ctx, target, path)
}

func (c *Client) doRequestWithRetry(ctx context.Context, target, path string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := c.retry.CalculateBackoff(attempt)
			c.logger.Debug("retrying request",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
			)

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, c.name, ctx.Err())
			}
		}

		// every attempt, retries included, counts against the limit
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s rate limit wait: %v", ErrUpstreamUnavailable, c.name, err)
		}

		body, err := c.doRequest(ctx, target)
		if err == nil {
			if attempt > 0 {
				c.logger.Info("request succeeded after retry", zap.String("path", path), zap.Int("attempt", attempt))
			}
			return body, nil
		}

		lastErr = err
		if !shouldRetry(ctx, err) {
			break
		}
	}

	c.logger.Warn("request failed",
		zap.String("path", path),
		zap.Int("max_retries", c.retry.MaxRetries),
		zap.Error(lastErr),
	)

	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, c.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", ErrUpstreamUnavailable, c.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Upstream: c.name, Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func shouldRetry(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}

	// transport failures and client timeouts
	return errors.Is(err, ErrUpstreamUnavailable)
}
