// Package api is the authenticated client for the Svitlogram REST API.
// One Client instance, parameterized by base URL and session store, is
// shared by every aggregation entry point.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/svitlogram/feedgate/internal/session"
)

const (
	// DefaultTimeout is the total upstream request timeout.
	DefaultTimeout = 15 * time.Second
	// dialTimeout is the connection timeout.
	dialTimeout = 5 * time.Second
	// responseHeaderTimeout is the time to wait for response headers.
	responseHeaderTimeout = 10 * time.Second
)

// NewHTTPClient creates an http.Client tuned for upstream API calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   dialTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			MaxIdleConns:          50,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// TokenSource provides the bearer token attached to outbound requests
// and reacts to session invalidation.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Client issues authenticated requests against the upstream API and
// classifies responses into typed outcomes.
type Client struct {
	http     *http.Client
	baseURL  string
	sessions TokenSource
	logger   *slog.Logger
}

// New creates a Client. httpClient may be nil, in which case a client
// with default timeouts is used.
func New(baseURL string, httpClient *http.Client, sessions TokenSource, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	return &Client{
		http:     httpClient,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		sessions: sessions,
		logger:   logger.With("component", "api.client"),
	}
}

// get issues an authenticated GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", "", out)
}

// postForm issues a form-encoded POST. No bearer token is attached
// beyond what the session store currently holds.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, nil, body, "application/x-www-form-urlencoded", "", out)
}

// postJSON issues a JSON POST.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return &ServerError{Err: fmt.Errorf("encode request body: %w", err)}
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(data), "application/json", "", out)
}

// do builds the request, attaches the bearer token, executes the call and
// classifies the response. A non-empty overrideToken replaces the stored
// access token (used by the refresh flow, which authenticates with the
// refresh token).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType, overrideToken string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return &ServerError{Err: fmt.Errorf("build request: %w", err)}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	token := overrideToken
	if token == "" {
		stored, err := c.sessions.Token(ctx)
		switch {
		case err == nil:
			token = stored
		case errors.Is(err, session.ErrAnonymous):
			// anonymous: no Authorization header
		default:
			return &ServerError{Err: fmt.Errorf("read session: %w", err)}
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Surface cancellation as-is so callers can distinguish an
		// abandoned pass from an upstream failure.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ServerError{Err: err}
	}
	defer resp.Body.Close()

	return c.classify(ctx, resp, out)
}

// classify maps the HTTP status to a typed outcome and decodes the body
// on success.
func (c *Client) classify(ctx context.Context, resp *http.Response, out any) error {
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &ServerError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// Session invalid: transition to anonymous before surfacing.
		if err := c.sessions.Clear(ctx); err != nil {
			c.logger.Warn("failed to clear invalid session", "error", err)
		}
		return ErrUnauthorized

	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound

	case resp.StatusCode == http.StatusConflict:
		return ErrConflict

	default:
		return &ServerError{Status: resp.StatusCode}
	}
}
