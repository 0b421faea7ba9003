// Package apiclient is the single gateway to the remote coupon API.
//
// Every call resolves a path against the configured base URL, attaches the
// signed-in user's bearer token from the request context, and decodes the
// JSON reply. Non-2xx replies become *Error carrying the status and the
// server's message; transport failures wrap ErrNetwork. Calls are never
// retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/dalemusser/couponadmin/apiclient"

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Client calls the remote API.
type Client struct {
	base    *url.URL
	http    *http.Client
	log     *zap.Logger
	tracer  trace.Tracer
	uploads *Uploads
}

// New builds a Client for baseURL (e.g. "http://localhost:8000/api").
// A zero timeout leaves the http.Client without one; callers bound each
// call with a context deadline instead.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, logger)
}

// NewWithHTTPClient is New with a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q must be http or https", baseURL)
	}
	return &Client{
		base:    u,
		http:    hc,
		log:     logger,
		tracer:  otel.Tracer(tracerName),
		uploads: NewUploads(),
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Uploads returns the registry of cancellable uploads.
func (c *Client) Uploads() *Uploads {
	return c.uploads
}

// Get fetches path with query parameters q and decodes the reply into out.
func (c *Client) Get(ctx context.Context, path string, q url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, q, nil, out)
}

// Post sends body to path. body may be a *Form, any JSON-marshalable value, or nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put sends body to path.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE for path.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do performs one request. out may be nil to discard the reply.
func (c *Client) Do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	ctx, span := c.tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	err := c.do(ctx, span, method, path, q, body, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) do(ctx context.Context, span trace.Span, method, path string, q url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, q, body)
	if err != nil {
		return err
	}
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.full", req.URL.String()),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, raw),
			Method:  method,
			Path:    path,
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrNetwork, method, path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, q url.Values, body any) (*http.Request, error) {
	u := c.base.JoinPath(strings.TrimLeft(path, "/"))
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	var (
		reader      io.Reader
		contentType string
	)
	switch b := body.(type) {
	case nil:
	case *Form:
		r, ct, err := b.encode()
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader, contentType = r, ct
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader, contentType = bytes.NewReader(raw), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if user, ok := auth.FromContext(ctx); ok {
		user.OAuthToken().SetAuthHeader(req)
	}
	return req, nil
}

// Ping reports whether the API answers at all. Any HTTP response counts as
// reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	resp.Body.Close()
	return nil
}

// Cancelled reports whether err came from a cancelled context.
func Cancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
