package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/observability"
)

// DefaultTimeout bounds a single HTTP attempt.
const DefaultTimeout = 30 * time.Second

// maxBody caps response bodies read into memory.
const maxBody = 32 << 20

// Client performs JSON GET requests with rate limiting and retry.
type Client struct {
	HTTP      *http.Client
	Limiter   *Limiter
	UserAgent string
	Attempts  int
	Delay     time.Duration
}

// NewClient returns a client with the default timeout and retry settings
// and no rate limit.
func NewClient() *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: DefaultTimeout},
		Limiter:  NewLimiter(0, 0),
		Attempts: DefaultAttempts,
		Delay:    DefaultDelay,
	}
}

// GetJSON fetches url and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	return Retry(ctx, c.Attempts, c.Delay, func() error {
		body, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, v); err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode %s", url)
		}
		return nil
	})
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, url); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(apperr.Wrap(apperr.ErrCodeNetwork, err, "fetch %s", url))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return nil, Retryable(&apperr.RateLimitedError{Host: req.URL.Host, RetryAfter: retryAfter})
	case resp.StatusCode >= 500:
		return nil, Retryable(apperr.New(apperr.ErrCodeNetwork, "fetch %s: %s", url, resp.Status))
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperr.New(apperr.ErrCodeNotFound, "fetch %s: %s", url, resp.Status)
	case resp.StatusCode >= 400:
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "fetch %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, Retryable(fmt.Errorf("read %s: %w", url, err))
	}
	return body, nil
}
