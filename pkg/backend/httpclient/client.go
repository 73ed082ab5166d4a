// Package httpclient implements backend.Backend as JSON over HTTP. Each
// command is a POST to <base>/invoke/<command> whose body is {"args": {...}}
// and whose response body is the command result.
package httpclient

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

	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/model"
)

// Option customises the client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// Client talks to a backend over HTTP.
type Client struct {
	base    *url.URL
	http    *http.Client
	headers http.Header
}

var _ backend.Backend = (*Client)(nil)

// New parses base and returns a client rooted there.
func New(base string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(base) == "" {
		return nil, errors.New("httpclient: base url is required")
	}
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("httpclient: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("httpclient: unsupported scheme %q", u.Scheme)
	}
	c := &Client{base: u, http: http.DefaultClient, headers: http.Header{}}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

func (c *Client) ListModels(ctx context.Context) ([]model.Summary, error) {
	var out []model.Summary
	if err := c.call(ctx, backend.CommandListModels, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetModel(ctx context.Context, project string) (*backend.ModelDetails, error) {
	var out backend.ModelDetails
	if err := c.call(ctx, backend.CommandGetModel, map[string]any{"projectName": project}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) InvokeModel(ctx context.Context, project string, inputs map[string]any) (*backend.InvokeResult, error) {
	var out backend.InvokeResult
	args := map[string]any{"projectName": project, "inputs": inputs}
	if err := c.call(ctx, backend.CommandInvokeModel, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WarmupModel(ctx context.Context, project string) (*backend.WarmupResult, error) {
	var out backend.WarmupResult
	if err := c.call(ctx, backend.CommandWarmupModel, map[string]any{"projectName": project}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSettings(ctx context.Context) (*backend.Settings, error) {
	var out backend.Settings
	if err := c.call(ctx, backend.CommandGetSettings, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetProjectsDirectory(ctx context.Context, path string) error {
	return c.call(ctx, backend.CommandSetProjectsDir, map[string]any{"path": path}, nil)
}

func (c *Client) OpenDirectoryDialog(ctx context.Context) (string, bool, error) {
	var out *string
	if err := c.call(ctx, backend.CommandOpenDirectoryDialog, nil, &out); err != nil {
		return "", false, err
	}
	if out == nil || *out == "" {
		return "", false, nil
	}
	return *out, true, nil
}

func (c *Client) endpoint(command string) string {
	return c.base.JoinPath("invoke", command).String()
}

func (c *Client) call(ctx context.Context, command string, args map[string]any, out any) error {
	if args == nil {
		args = map[string]any{}
	}
	body, err := json.Marshal(map[string]any{"args": args})
	if err != nil {
		return fmt.Errorf("httpclient: %s: encode args: %w", command, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(command), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", command, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", command, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: %s: read response: %w", command, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return backend.NewError(command, errorMessage(payload, resp.StatusCode), resp.StatusCode)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("httpclient: %s: decode response: %w", command, err)
	}
	return nil
}

// errorMessage extracts the message from the shapes a failing backend sends:
// a JSON string, {"error": ...}, {"message": ...} or plain text.
func errorMessage(payload []byte, status int) string {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return fmt.Sprintf("server error (status code = %d)", status)
	}

	var asString string
	if err := json.Unmarshal(trimmed, &asString); err == nil && asString != "" {
		return asString
	}

	var asObject struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &asObject); err == nil {
		if asObject.Error != "" {
			return asObject.Error
		}
		if asObject.Message != "" {
			return asObject.Message
		}
	}
	return string(trimmed)
}
