// Package upstream is the HTTP client for the back-office REST API.
package upstream

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

	"github.com/foodsales/dashboard/internal/core/domain"
	"github.com/foodsales/dashboard/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20

	loginPath       = "/accounts/login/"
	currentUserPath = "/accounts/users/current/"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the upstream API. It performs no retries; an expired access
// token surfaces as domain.ErrUnauthenticated.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.Tokens, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("upstream login: encode: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, loginPath, "", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	raw, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnauthorized:
		return nil, domain.ErrInvalidCredentials
	case status != http.StatusOK:
		return nil, upstreamError(loginPath, status)
	}

	var resp loginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("upstream login: decode: %w", err)
	}
	if resp.Access == "" {
		return nil, fmt.Errorf("upstream login: %w: empty access token", domain.ErrUpstream)
	}
	return &ports.Tokens{Access: resp.Access, Refresh: resp.Refresh}, nil
}

// CurrentUser fetches the identity behind accessToken.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*domain.Identity, error) {
	req, err := c.newRequest(ctx, http.MethodGet, currentUserPath, accessToken, nil)
	if err != nil {
		return nil, err
	}

	raw, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if err := statusError(currentUserPath, status); err != nil {
		return nil, err
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("upstream current user: decode: %w", err)
	}
	return &identity, nil
}

// List GETs path with query and returns the JSON body as is.
func (c *Client) List(ctx context.Context, accessToken, path string, query url.Values) (json.RawMessage, error) {
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, target, accessToken, nil)
	if err != nil {
		return nil, err
	}

	raw, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if err := statusError(path, status); err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("upstream %s: %w: body is not json", path, domain.ErrUpstream)
	}
	return json.RawMessage(raw), nil
}

func (c *Client) newRequest(ctx context.Context, method, path, accessToken string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("upstream %s: build request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("upstream %s: %w: %v", req.URL.Path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("upstream %s: read body: %w", req.URL.Path, err)
	}
	return raw, resp.StatusCode, nil
}

func statusError(path string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case status == http.StatusForbidden:
		return domain.ErrForbidden
	default:
		return upstreamError(path, status)
	}
}

func upstreamError(path string, status int) error {
	return fmt.Errorf("upstream %s: %w: status %d", path, domain.ErrUpstream, status)
}
