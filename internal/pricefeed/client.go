// Package pricefeed fetches raw token prices over HTTPS and caches the
// normalized result for the lifetime of a session.
package pricefeed

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"

	"github.com/swapdesk/swapdesk/internal/token"
)

const (
	// DefaultTimeout bounds a single feed request.
	DefaultTimeout = 10 * time.Second

	// maxTries: one automatic retry on failure, then the error surfaces.
	maxTries   = 2
	retryDelay = 300 * time.Millisecond

	// maxPayloadBytes guards against a misbehaving feed; the real payload
	// is a few kilobytes.
	maxPayloadBytes = 4 << 20
)

// Client fetches raw price records from the feed endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a price feed client for the given endpoint.
func NewClient(url string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	return &Client{
		url:        url,
		httpClient: httpClient,
		logger:     logger.Named("pricefeed"),
	}
}

// Fetch retrieves the raw record list, retrying the whole request at most
// once. Transport failures and non-2xx statuses come back as *FetchError,
// malformed payloads as *ParseError. Parse errors are not retried: a
// malformed payload will not fix itself within a retry window.
func (c *Client) Fetch(ctx context.Context) ([]token.PriceRecord, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryDelay
	policy.MaxInterval = retryDelay * 10

	notify := func(err error, duration time.Duration) {
		c.logger.Info("retrying price fetch after failure",
			zap.Error(err), zap.Duration("backoff", duration))
	}

	operation := func() ([]token.PriceRecord, error) {
		records, err := c.fetchOnce(ctx)
		if err != nil {
			if _, malformed := err.(*ParseError); malformed {
				return nil, backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return records, nil
	}

	records, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(maxTries),
		backoff.WithNotify(notify))
	if err != nil {
		c.logger.Error("price fetch failed", zap.String("url", c.url), zap.Error(err))
		return nil, err
	}

	c.logger.Debug("price fetch completed", zap.Int("records", len(records)))
	return records, nil
}

func (c *Client) fetchOnce(ctx context.Context) ([]token.PriceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayloadBytes))
		return nil, &FetchError{URL: c.url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}

	var records []token.PriceRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &ParseError{URL: c.url, Err: err}
	}

	return records, nil
}
