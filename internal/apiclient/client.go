package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/brisa-edu/brisa-client/internal/logger"
	"github.com/brisa-edu/brisa-client/internal/models"
)

// ConnectionErrorMessage is the message of errors raised when no HTTP
// response was received.
const ConnectionErrorMessage = "connection error, check your network connection"

// BaseClient performs JSON requests against the backend. It attaches the
// bearer token from its token source, turns non-2xx responses into
// *models.APIError and notifies the unauthorized handler on 401.
type BaseClient struct {
	BaseURL    string
	HTTPClient *http.Client

	tokens oauth2.TokenSource
	log    *zap.Logger

	mu             sync.RWMutex
	onUnauthorized func(ctx context.Context)
}

type Option func(*BaseClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *BaseClient) { c.HTTPClient = hc }
}

// WithTokenSource sets where bearer tokens come from. A source that errors
// or yields an empty token leaves the request unauthenticated.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *BaseClient) { c.tokens = ts }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *BaseClient) { c.log = l }
}

func NewBaseClient(baseURL string, opts ...Option) *BaseClient {
	c := &BaseClient{BaseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(c)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if c.log == nil {
		c.log = logger.Get()
	}
	return c
}

// SetUnauthorizedHandler registers fn to run whenever a response has status 401.
func (c *BaseClient) SetUnauthorizedHandler(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *BaseClient) Get(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out, nil)
}

func (c *BaseClient) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPost, endpoint, body, out, nil)
}

func (c *BaseClient) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPut, endpoint, body, out, nil)
}

func (c *BaseClient) Patch(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, endpoint, body, out, nil)
}

func (c *BaseClient) Delete(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, out, nil)
}

// Do sends one request. body is JSON-encoded when non-nil; out receives the
// decoded response unless it is nil or the status is 204. Headers in extra
// override the defaults.
func (c *BaseClient) Do(ctx context.Context, method, endpoint string, body, out any, extra http.Header) error {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reader)
	if err != nil {
		return &models.APIError{Message: ConnectionErrorMessage, Details: err, Status: 0}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if tok, err := c.tokens.Token(); err == nil && tok.AccessToken != "" {
			tok.SetAuthHeader(req)
		}
	}
	for k, vs := range extra {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return &models.APIError{Message: ConnectionErrorMessage, Details: err, Status: 0}
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized(ctx)
		}
		return decodeError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, endpoint, err)
	}
	return nil
}

func (c *BaseClient) unauthorized(ctx context.Context) {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
}

// decodeError builds the APIError for a non-2xx response. The message comes
// from the body's "message", then a string "detail", then the status code.
func decodeError(resp *http.Response) error {
	apiErr := &models.APIError{
		Message: fmt.Sprintf("HTTP Error: %d", resp.StatusCode),
		Details: map[string]any{},
		Status:  resp.StatusCode,
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apiErr
	}
	apiErr.Details = payload
	if obj, ok := payload.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			apiErr.Message = msg
		} else if detail, ok := obj["detail"].(string); ok && detail != "" {
			apiErr.Message = detail
		}
	}
	return apiErr
}

// StatusOf returns the HTTP status carried by err, 0 for transport failures
// and -1 when err is not an *models.APIError.
func StatusOf(err error) int {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// unwrap returns the data of an auth envelope, or an APIError unless the
// envelope reports success.
func unwrap[T any](env *models.Envelope[T]) (T, error) {
	if env.Status != models.StatusSuccess {
		var zero T
		msg := env.Message
		if msg == "" {
			msg = "request rejected"
		}
		return zero, &models.APIError{Message: msg, Details: env.ErrorDetails, Status: http.StatusOK}
	}
	return env.Data, nil
}
