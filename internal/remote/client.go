// Package remote talks to the REST-like JSON collections backing tada.
//
// Every call is issued once. Failures wrap errs.ErrTransport; a 404 on an
// addressed item additionally matches errs.ErrNotFound.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/errs"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Code)
}

// Is lets callers match every status error as a transport failure and a 404
// as not found.
func (e *StatusError) Is(target error) bool {
	switch target {
	case errs.ErrTransport:
		return true
	case errs.ErrNotFound:
		return e.Code == http.StatusNotFound
	}
	return false
}

// Client issues JSON requests against one collection base URL.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient validates base and returns a client for that collection.
func NewClient(base string, opts ...Option) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: collection url %q is not absolute", errs.ErrValidation, base)
	}
	c := &Client{
		base: strings.TrimRight(base, "/"),
		http: http.DefaultClient,
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Client) itemURL(id string) string {
	return c.base + "/" + url.PathEscape(id)
}

// do sends body (if non-nil) as JSON and decodes the response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", errs.ErrTransport, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", errs.ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s %s: %v", errs.ErrTransport, method, target, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, URL: target, Code: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", errs.ErrTransport, method, target, err)
	}
	return nil
}
