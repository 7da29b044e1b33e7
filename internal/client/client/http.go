package client

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

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/google/uuid"
)

const maxResponseBytes = 1 << 20

// HTTPClient talks to the authentication service over HTTP.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	log          logging.Logger
	newRequestID func() string
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithRequestIDs overrides the X-Request-ID generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *HTTPClient) { c.newRequestID = fn }
}

// NewHTTPClient returns a client for the service at baseURL. timeout bounds
// each request end to end; zero means no client-side limit.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: missing host", baseURL)
	}

	c := &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: timeout},
		log:          logging.Nop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Register posts the registration as JSON.
func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.Account, error) {
	body, err := json.Marshal(reg)
	if err != nil {
		return nil, fmt.Errorf("encode registration: %w", err)
	}

	var acc models.Account
	if err := c.do(ctx, http.MethodPost, "/register", common.ContentTypeJSON, body, nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// Login posts the credentials as a urlencoded form.
func (c *HTTPClient) Login(ctx context.Context, cred models.Credentials) (*models.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", cred.Username)
	form.Set("password", cred.Password)

	var tr models.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/login", common.ContentTypeForm, []byte(form.Encode()), nil, &tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

// Profile fetches the profile of the token's owner.
func (c *HTTPClient) Profile(ctx context.Context, token string) (*models.ProfileResponse, error) {
	headers := map[string]string{common.AuthorizationHeaderName: common.BearerValue(token)}

	var pr models.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/profile", "", nil, headers, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// Close drops idle keep-alive connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body []byte, headers map[string]string, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := c.newRequestID()
	req.Header.Set(common.AcceptHeaderName, common.ContentTypeJSON)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if contentType != "" {
		req.Header.Set(common.ContentTypeHeaderName, contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.mapError(ctx, err)
	}
	log.Debug(ctx, "response received", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode/100 != 2 {
		return newAPIError(resp.StatusCode, data)
	}
	if apiErr := embeddedError(data); apiErr != nil {
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// mapError converts transport failures. Caller cancellation is passed
// through untouched; everything else means the service could not be reached.
func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
