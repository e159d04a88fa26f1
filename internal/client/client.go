// Package client talks to the Planeja Mais REST API. Every endpoint has one
// method; bearer auth is injected from the stored token when one exists.
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
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// DefaultBaseURL points at a locally running backend.
const DefaultBaseURL = "http://localhost:8080/api"

// TokenGetter yields the current auth token. storage.TokenStore satisfies it.
type TokenGetter interface {
	Get() (string, bool)
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying client. Its transport is still wrapped
// with bearer auth.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New builds a client for baseURL. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenGetter, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *c.http
	wrapped.Transport = &bearerTransport{tokens: tokens, base: base}
	c.http = &wrapped
	return c
}

// bearerTransport adds the stored token through an oauth2.Transport. Requests
// that already carry an Authorization header (reset and confirmation tokens)
// and requests made while logged out go through untouched.
type bearerTransport struct {
	tokens TokenGetter
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") != "" || t.tokens == nil {
		return t.base.RoundTrip(req)
	}
	token, ok := t.tokens.Get()
	if !ok || token == "" {
		return t.base.RoundTrip(req)
	}
	ot := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   t.base,
	}
	return ot.RoundTrip(req)
}

type requestOptions struct {
	query  url.Values
	bearer string
}

type requestOption func(*requestOptions)

func withQuery(q url.Values) requestOption {
	return func(o *requestOptions) { o.query = q }
}

func withBearer(token string) requestOption {
	return func(o *requestOptions) { o.bearer = token }
}

// send performs the request and returns the raw body of a 2xx response.
// Anything else is an *APIError.
func (c *Client) send(ctx context.Context, method, path string, body any, opts ...requestOption) ([]byte, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	u := c.baseURL + path
	if len(o.query) > 0 {
		u += "?" + o.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json, text/plain")
	if o.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+o.bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("Request failed", "method", method, "path", path, "error", err)
		return nil, &APIError{Status: 0, Message: "network error", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: 0, Message: "failed to read response", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, respBody)
		c.logger.Debug("Request rejected", "method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}
	return respBody, nil
}

// sendJSON performs the request and decodes a JSON response into out.
func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any, opts ...requestOption) error {
	raw, err := c.send(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// ExtractID finds the identifier of a created record in a response body. It
// tries id, _id and transactionId at the top level, then id and _id under data.
func ExtractID(body []byte) string {
	var top map[string]any
	if err := json.Unmarshal(body, &top); err != nil {
		return ""
	}
	if id := firstID(top, "id", "_id", "transactionId"); id != "" {
		return id
	}
	if data, ok := top["data"].(map[string]any); ok {
		return firstID(data, "id", "_id")
	}
	return ""
}

func firstID(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

var errEmptyToken = errors.New("empty token")
