package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BHAVY1503/eventease-client/internal/shared/config"
	"github.com/BHAVY1503/eventease-client/internal/shared/session"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

// envelope mirrors the backend's standard response shape.
type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	Errors     json.RawMessage `json:"errors,omitempty"`
}

// Client is the REST transport shared by every feature package. It attaches
// the bearer token from the session, decodes the standard response envelope
// and classifies failures per the error taxonomy.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
	log     *logger.Logger
}

// NewClient creates a Client for the configured backend.
func NewClient(cfg config.APIConfig, sess *session.Session, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		session: sess,
		log:     log,
	}
}

// Get issues a GET request and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the envelope data into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body and decodes the envelope data into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	start := time.Now()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if token, err := c.session.Token(); err == nil {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.LogAPIError(ctx, method, path, err)
		return &Error{Kind: KindTransport, Message: "backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	c.log.LogAPIRequest(ctx, method, path, resp.StatusCode, time.Since(start))

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return c.statusError(ctx, resp.StatusCode, "")
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return c.statusError(ctx, resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}

	return nil
}

// statusError builds a classified error and, for 401s, resets the session so
// callers fall back to the sign-in path.
func (c *Client) statusError(ctx context.Context, status int, message string) error {
	kind := classify(status, message)
	if kind == KindAuth {
		c.session.Clear()
		c.log.LogSessionExpired(ctx)
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Kind: kind, StatusCode: status, Message: message}
}
