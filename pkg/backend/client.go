package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

const maxErrorBody = 4 << 10

// Client talks to the remote store API. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	logger    *slog.Logger
	attempts  uint64
	baseDelay time.Duration
	products  *cache.LRUCache[string, Product]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// New creates a Client for cfg.BaseURL.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	size := cfg.ProductCacheSize
	if size <= 0 {
		size = 512
	}

	c := &Client{
		base: base,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:    logger.Discard(),
		attempts:  cfg.RetryAttempts,
		baseDelay: cfg.RetryBaseDelay,
		products:  cache.NewLRUCache[string, Product](size, cache.WithTTL(cfg.ProductCacheTTL)),
	}
	if c.baseDelay <= 0 {
		c.baseDelay = 200 * time.Millisecond
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// read performs an idempotent call, retrying while the API is unavailable.
func (c *Client) read(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c.attempts <= 1 {
		return c.do(ctx, method, path, query, in, out)
	}

	backoff := retry.WithMaxRetries(c.attempts-1, retry.WithJitterPercent(10, retry.NewExponential(c.baseDelay)))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := c.do(ctx, method, path, query, in, out)
		if err != nil && errors.Is(err, ErrUnavailable) {
			c.logger.WarnContext(ctx, "backend call failed, retrying",
				logger.Component("backend"),
				slog.String("path", path),
				slog.Int("attempt", attempt),
				logger.Error(err),
			)
			return retry.RetryableError(err)
		}
		return err
	})
}

// do performs a single JSON call.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "backend call",
		logger.Component("backend"),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	if err := statusError(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrInvalidResponse, err)
	}
	return nil
}

// statusError maps non-2xx responses to package errors, keeping the API message.
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := apiMessage(raw)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	var kind error
	switch {
	case resp.StatusCode == http.StatusNotFound:
		kind = ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		kind = ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		kind = ErrUnavailable
	default:
		kind = ErrRejected
	}
	return &APIError{Kind: kind, Status: resp.StatusCode, Message: msg}
}

// apiMessage extracts a human message from an error body.
func apiMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Alert   string `json:"alert"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Message, body.Error, body.Alert} {
			if m != "" {
				return m
			}
		}
		return ""
	}
	return strings.TrimSpace(string(raw))
}
