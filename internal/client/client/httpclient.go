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
)

// HTTPClient implements Client against a running server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for baseURL. timeout bounds each request.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Login posts the credentials to /login. The password is sent as is;
// the caller owns and wipes the slice.
func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*Session, error) {
	body := map[string]string{"username": username, "password": string(password)}
	var s Session
	if err := c.post(ctx, "/login", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Refresh exchanges a refresh token for a new pair.
func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	var s Session
	if err := c.post(ctx, "/refresh-token", map[string]string{"refresh_token": refreshToken}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Ping checks /healthz, which also covers the server's database.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *HTTPClient) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
