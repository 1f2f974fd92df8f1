// Package client submits code to the review backend. When the backend cannot
// be reached at all it falls back to a local reviewer so the user still gets
// a review; an error answered by the backend is reported as is.
package client

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
	"sync/atomic"
	"time"

	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/render"
)

const (
	DefaultBackendURL = "http://localhost:3000/ai"
	DefaultTimeout    = 100 * time.Second

	reviewPath         = "/get-review"
	maxResponseBytes   = 4 << 20
	defaultFailMessage = "API request failed"
	offlineNotice      = "Using offline review: API unavailable - showing mock review"
)

// ErrReviewInFlight is returned when a review is requested while another one
// from the same client has not finished.
var ErrReviewInFlight = errors.New("a review is already in progress")

// Source tells where a review came from.
type Source string

const (
	SourceRemote  Source = "remote"
	SourceOffline Source = "offline"
)

// Outcome is a review ready to display. Notice is set when the user should be
// told how the review was produced.
type Outcome struct {
	Review core.Review
	Source Source
	Notice string
}

// ServerError is an error status answered by the backend.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("review backend returned %d: %s", e.Status, e.Message)
}

// RequestError means the request could not be built or its answer not read.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return "failed to request review: " + e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

// Config holds the client settings.
type Config struct {
	BackendURL string
	Timeout    time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its Timeout is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client talks to the review backend.
type Client struct {
	endpoint string
	http     *http.Client
	fallback core.Reviewer
	logger   *slog.Logger
	busy     atomic.Bool
}

// New creates a client for the backend at cfg.BackendURL. fallback produces
// the review shown when the backend is unreachable.
func New(cfg Config, fallback core.Reviewer, logger *slog.Logger, opts ...Option) (*Client, error) {
	if fallback == nil {
		return nil, errors.New("a fallback reviewer is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	base := cfg.BackendURL
	if base == "" {
		base = DefaultBackendURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", base)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		endpoint: strings.TrimRight(u.String(), "/") + reviewPath,
		http:     &http.Client{Timeout: timeout},
		fallback: fallback,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the URL reviews are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Busy reports whether a review is in flight.
func (c *Client) Busy() bool { return c.busy.Load() }

// SubmitReview asks the backend to review code. Only one review may be in
// flight at a time; a concurrent call fails with ErrReviewInFlight.
func (c *Client) SubmitReview(ctx context.Context, code string, lang core.Language) (*Outcome, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrReviewInFlight
	}
	defer c.busy.Store(false)

	start := time.Now()
	c.logger.Info("requesting review", "endpoint", c.endpoint, "language", lang, "chars", len(code))

	body, err := json.Marshal(core.ReviewRequest{Code: code, Language: lang})
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/markdown, application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The caller gave up; that is not the backend being offline.
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, ctxErr
		}
		c.logger.Warn("review backend unreachable, using offline review", "endpoint", c.endpoint, "error", err)
		return c.offline(ctx, code, lang)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &ServerError{Status: resp.StatusCode, Message: errorMessage(data)}
		c.logger.Error("review backend returned an error", "status", resp.StatusCode, "message", serr.Message)
		return nil, serr
	}

	c.logger.Info("review received", "status", resp.StatusCode, "bytes", len(data), "duration", time.Since(start))
	return &Outcome{Review: render.Parse(string(data)), Source: SourceRemote}, nil
}

func (c *Client) offline(ctx context.Context, code string, lang core.Language) (*Outcome, error) {
	markdown, err := c.fallback.Review(ctx, code, lang)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("offline review failed: %w", err)}
	}
	return &Outcome{
		Review: render.Parse(markdown),
		Source: SourceOffline,
		Notice: offlineNotice,
	}, nil
}

// errorMessage extracts the message field of an error body.
func errorMessage(data []byte) string {
	var body core.ErrorResponse
	if err := json.Unmarshal(data, &body); err != nil || strings.TrimSpace(body.Message) == "" {
		return defaultFailMessage
	}
	return body.Message
}
