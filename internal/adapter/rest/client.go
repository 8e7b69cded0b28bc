// Package rest implements the remote service gateways over HTTP.
package rest

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

	"taskflow/internal/domain"

	"golang.org/x/oauth2"
)

// Client talks to the TaskFlow REST backend. Authenticated calls attach
// the current bearer token through an oauth2 transport; the login call
// goes out bare.
type Client struct {
	base   *url.URL
	authed *http.Client
	plain  *http.Client
}

// Ensure the gateway ports are met.
var _ domain.AuthGateway = (*Client)(nil)
var _ domain.ProjectGateway = (*Client)(nil)
var _ domain.TaskGateway = (*Client)(nil)
var _ domain.UserGateway = (*Client)(nil)

// NewClient creates a Client for the given base URL. tokens supplies
// the bearer credential per request; a zero timeout disables the client
// timeout (the caller's context still applies).
func NewClient(baseURL string, tokens oauth2.TokenSource, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	return &Client{
		base: u,
		authed: &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: tokens,
				Base:   http.DefaultTransport,
			},
		},
		plain: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return err
	}
	return c.do(c.authed, req, dst)
}

func (c *Client) post(ctx context.Context, hc *http.Client, path string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(hc, req, dst)
}

func (c *Client) do(hc *http.Client, req *http.Request, dst any) error {
	resp, err := hc.Do(req)
	if err != nil {
		// The oauth2 transport wraps token-source failures; surface the
		// auth error itself when that's what happened.
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			return authErr
		}
		return &domain.RemoteError{Message: "Network error. Please try again."}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &domain.RemoteError{Status: resp.StatusCode, Message: "Invalid response from server."}
	}
	return nil
}

// decodeError maps a non-2xx response to the error taxonomy. The server
// puts human-readable messages in a "detail" field.
func decodeError(resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(body, &payload)

	if resp.StatusCode == http.StatusUnauthorized {
		msg := payload.Detail
		if msg == "" {
			msg = "Authentication required"
		}
		return &domain.AuthError{Message: msg}
	}
	return &domain.RemoteError{Status: resp.StatusCode, Message: payload.Detail}
}
