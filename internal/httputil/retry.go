// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the resilient HTTP client shared by the fetch
// and enrichment stages: retry with exponential backoff, rate-limiter
// pacing, and robots.txt compliance.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// RetryBaseDelay is the starting backoff delay. It doubles on each failed
// attempt: 1 s, 2 s, 4 s, ... Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

const defaultMaxRetries = 3

// ErrRobotsDisallowed is returned when robots.txt forbids fetching a URL.
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// Client issues GET requests with timeout, retry, and politeness pacing.
// Construct one per run and pass it to every component that touches the
// network; it holds no per-request state.
type Client struct {
	HTTP       *http.Client
	Limiter    *rate.Limiter
	Robots     *RobotsChecker
	UserAgent  string
	MaxRetries int
}

// NewClient builds a Client with the given timeout and steady request
// rate. A rateLimit of 0 disables pacing. robots may be nil to skip
// robots.txt checks.
func NewClient(timeout time.Duration, maxRetries int, rateLimit float64, robots *RobotsChecker, userAgent string) *Client {
	var limiter *rate.Limiter
	if rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(rateLimit), 1)
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		Limiter:    limiter,
		Robots:     robots,
		UserAgent:  userAgent,
		MaxRetries: maxRetries,
	}
}

// Get fetches rawURL with params appended to its query string. It retries
// on transport errors and non-2xx statuses with exponential backoff
// starting at RetryBaseDelay, up to MaxRetries attempts total, and returns
// the response body on the first 2xx. After exhausting retries it returns
// the last error; callers treat that as "source unavailable" and move on
// rather than aborting the run.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	maxRetries := c.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	target := rawURL
	if len(params) > 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parsing URL %q: %w", rawURL, err)
		}
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	if c.Robots != nil && !c.Robots.CanFetch(c.HTTP, target, c.UserAgent) {
		return nil, fmt.Errorf("%s: %w", target, ErrRobotsDisallowed)
	}

	delay := RetryBaseDelay
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		body, err := c.getOnce(ctx, target)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("GET %s exhausted %d attempts: %w", target, maxRetries, lastErr)
}

func (c *Client) getOnce(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
