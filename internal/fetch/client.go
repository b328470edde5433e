// internal/fetch/client.go
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/toolindex/enrich/internal/retry"
)

// Result holds a fetched page body plus response bookkeeping
type Result struct {
	StatusCode   int
	Status       string
	Body         string
	ResponseTime int64 // milliseconds
}

// Client issues single-page GET requests with a bounded per-request timeout
type Client struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// NewClient creates a new fetch Client
func NewClient(timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = "ToolIndexBot/1.0 (https://github.com/toolindex/enrich)"
	}

	client := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Client{
		client:    client,
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// Get fetches the URL and reads the full body as text. The request carries
// the bot User-Agent and is cancelled after the client timeout; a non-2xx
// response is returned as a retry.HTTPError.
func (c *Client) Get(ctx context.Context, pageURL string) (*Result, error) {
	start := time.Now()

	if ctx == nil {
		ctx = context.Background()
	}
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, retry.NewHTTPError(resp.StatusCode, resp.Status, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	result := &Result{
		StatusCode:   resp.StatusCode,
		Status:       resp.Status,
		Body:         string(body),
		ResponseTime: time.Since(start).Milliseconds(),
	}

	log.Debug().
		Str("url", pageURL).
		Int("status", result.StatusCode).
		Int64("response_time_ms", result.ResponseTime).
		Int("bytes", len(result.Body)).
		Msg("Fetch completed")

	return result, nil
}
