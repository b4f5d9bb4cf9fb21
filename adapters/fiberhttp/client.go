// Package fiberhttp implements the transport port on top of the Fiber v3
// HTTP client. One configured client, pointed at the backend base URL, is
// shared by every domain API module.
package fiberhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mireles/vecino/core"
)

const defaultTimeout = 10 * time.Second

// Options configures the transport.
type Options struct {
	BaseURL string
	Timeout time.Duration

	// TokenSource returns the current credential, or "" when anonymous.
	// Called on every request so the transport always carries the live
	// session token.
	TokenSource func() string

	// OnUnauthorized runs whenever the backend answers 401, before the
	// error is returned to the caller. The session layer hooks its
	// expiry policy here.
	OnUnauthorized func()

	Logger *zerolog.Logger
}

// Client is a core.Transport over the Fiber client.
type Client struct {
	cc             *client.Client
	tokenSource    func() string
	onUnauthorized func()
	log            zerolog.Logger
}

var _ core.Transport = (*Client)(nil)

// New builds a transport for the given backend.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cc := client.New()
	cc.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	cc.SetTimeout(timeout)
	cc.SetHeader("Content-Type", "application/json")

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Client{
		cc:             cc,
		tokenSource:    opts.TokenSource,
		onUnauthorized: opts.OnUnauthorized,
		log:            log,
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	cfg := client.Config{
		Ctx:    ctx,
		Header: map[string]string{"X-Request-ID": uuid.NewString()},
	}

	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			cfg.Header["Authorization"] = "Bearer " + token
		}
	}

	if len(query) > 0 {
		cfg.Param = make(map[string]string, len(query))
		for name := range query {
			cfg.Param[name] = query.Get(name)
		}
	}

	if body != nil {
		cfg.Body = body
	}

	var (
		resp *client.Response
		err  error
	)
	switch method {
	case http.MethodGet:
		resp, err = c.cc.Get(path, cfg)
	case http.MethodPost:
		resp, err = c.cc.Post(path, cfg)
	case http.MethodPut:
		resp, err = c.cc.Put(path, cfg)
	case http.MethodDelete:
		resp, err = c.cc.Delete(path, cfg)
	default:
		return fmt.Errorf("unsupported method %q", method)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Close()

	status := resp.StatusCode()
	c.log.Debug().Str("method", method).Str("path", path).Int("status", status).Msg("request")

	if status == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return &core.APIError{Status: status, Detail: errorDetail(resp.Body())}
	}

	if out != nil {
		if err := resp.JSON(out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// errorDetail extracts the backend's error reason. The backend reports
// failures as {"detail": ...} where detail is usually a string; anything
// else is passed through raw.
func errorDetail(body []byte) string {
	var wrapped struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil || wrapped.Detail == nil {
		return strings.TrimSpace(string(body))
	}

	var detail string
	if err := json.Unmarshal(wrapped.Detail, &detail); err == nil {
		return detail
	}
	return string(wrapped.Detail)
}
