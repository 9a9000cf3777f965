// Package api is the typed HTTP client for the Capacinator REST server.
// All calls take a context; per-request timeouts come from Config. Idempotent
// GETs are retried up to MaxRetries; mutating calls are never retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Client talks to a Capacinator server.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// New creates a Client for the given server configuration.
func New(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// Available checks whether the server is reachable.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// get issues a GET with bounded retries and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		err := c.call(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout or a definitive
		// server answer.
		if ctx.Err() != nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) {
			return err
		}
	}
	return lastErr
}

// post, put, and del issue mutating calls exactly once.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPut, path, body, out)
}

func (c *Client) del(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}

// call performs one HTTP round trip with the configured timeout, decoding a
// JSON response into out when non-nil.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()
	err := c.doRequest(ctx, method, path, body, out)
	latency := time.Since(start).Milliseconds()

	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Path:      path,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ErrTimeout
		}
		if isConnectionError(err) {
			return ErrUnavailable
		}
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &StatusError{Code: resp.StatusCode, Message: serverErrText(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// serverErrText extracts the server's {"error": "..."} message, falling back
// to the raw body trimmed to a reasonable length.
func serverErrText(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	s := string(body)
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
