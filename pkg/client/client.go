/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package client is a Go client for the handset daemon API. Every request other
// than Health is signed with the shared secret.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ohmyphone/daemon/pkg/auth"
	"github.com/ohmyphone/daemon/pkg/models"
)

const (
	defaultTimeout   = 15 * time.Second
	maxErrorBodySize = 4 << 10
)

var (
	errBaseURLRequired = errors.New("base URL is required")
	errSecretRequired  = errors.New("shared secret is required")
)

// APIError is a non-2xx response from the daemon.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("daemon returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("daemon returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to a single daemon.
type Client struct {
	baseURL    *url.URL
	secret     []byte
	httpClient *http.Client
	now        func() time.Time

	// lastMillis is the last X-Time sent; every request is signed strictly after it.
	mu         sync.Mutex
	lastMillis int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 15s-timeout client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithInsecureSkipVerify disables TLS certificate checks, for daemons behind a self-signed proxy.
func WithInsecureSkipVerify() Option {
	return func(cl *Client) {
		if transport, ok := http.DefaultTransport.(*http.Transport); ok {
			clone := transport.Clone()
			if clone.TLSClientConfig == nil {
				clone.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
			}

			clone.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // intentional for CLI flag
			cl.httpClient.Transport = clone
		}
	}
}

// WithClock sets the time source used for X-Time.
func WithClock(now func() time.Time) Option {
	return func(cl *Client) {
		cl.now = now
	}
}

// New creates a Client for the daemon at baseURL.
func New(baseURL string, secret []byte, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errBaseURLRequired
	}

	if len(secret) == 0 {
		return nil, errSecretRequired
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	c := &Client{
		baseURL:    u,
		secret:     secret,
		httpClient: &http.Client{Timeout: defaultTimeout},
		now:        time.Now,
	}

	for _, o := range opts {
		o(c)
	}

	return c, nil
}

// Health calls the unauthenticated liveness endpoint.
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var out models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, false, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Status fetches a device snapshot.
func (c *Client) Status(ctx context.Context) (*models.DeviceStatus, error) {
	var out models.DeviceStatus
	if err := c.do(ctx, http.MethodGet, "/status", nil, true, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// SetMobileData toggles mobile data.
func (c *Client) SetMobileData(ctx context.Context, enable bool) (*models.ActionResponse, error) {
	return c.action(ctx, "/radio/data", models.ToggleRequest{Enable: &enable})
}

// SetAirplaneMode toggles airplane mode.
func (c *Client) SetAirplaneMode(ctx context.Context, enable bool) (*models.ActionResponse, error) {
	return c.action(ctx, "/radio/airplane", models.ToggleRequest{Enable: &enable})
}

// SetCallForwarding enables forwarding to number, or disables it. number is
// ignored when disabling.
func (c *Client) SetCallForwarding(ctx context.Context, enable bool, number string) (*models.ActionResponse, error) {
	req := models.CallForwardRequest{Enable: &enable}
	if enable {
		req.Number = &number
	}

	return c.action(ctx, "/call/forward", req)
}

// Dial places a call.
func (c *Client) Dial(ctx context.Context, number string) (*models.DialResponse, error) {
	var out models.DialResponse
	if err := c.do(ctx, http.MethodPost, "/call/dial", models.DialRequest{Number: number}, true, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) action(ctx context.Context, path string, payload interface{}) (*models.ActionResponse, error) {
	var out models.ActionResponse
	if err := c.do(ctx, http.MethodPost, path, payload, true, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}, signed bool, out interface{}) error {
	var body []byte

	if payload != nil {
		var err error

		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	endpoint := c.baseURL.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if signed {
		auth.SignRequest(req.Header, c.secret, body, c.nextTimestamp())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorBody(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// nextTimestamp returns the signing time for the next request, strictly after the previous one.
func (c *Client) nextTimestamp() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.now().UnixMilli()
	if ms <= c.lastMillis {
		ms = c.lastMillis + 1
	}

	c.lastMillis = ms

	return time.UnixMilli(ms)
}

// readErrorBody pulls "message" out of an error or action body, falling back to the raw text.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return ""
	}

	var msg struct {
		Message string `json:"message"`
	}

	if json.Unmarshal(data, &msg) == nil && msg.Message != "" {
		return msg.Message
	}

	return strings.TrimSpace(string(data))
}
