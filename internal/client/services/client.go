package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Envelope mirrors the server's uniform response shape.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message *string         `json:"message"`
	Code    int             `json:"code"`
}

// DecodeData unmarshals the data field into v. Null data leaves v untouched.
func (e *Envelope) DecodeData(v interface{}) error {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// MessageText returns the message or the empty string.
func (e *Envelope) MessageText() string {
	if e.Message == nil {
		return ""
	}
	return *e.Message
}

// Client is the shared HTTP transport for the typed services. The cookie jar
// carries the session across calls.
type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}, nil
}

func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, body)
}

// do performs the request and decodes the envelope regardless of the HTTP
// status; the server sends one on failures too.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*Envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 204 carries no body; synthesize the envelope.
	if resp.StatusCode == http.StatusNoContent {
		return &Envelope{Success: true, Code: http.StatusNoContent}, nil
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("malformed response from %s %s: %w", method, path, err)
	}
	return &env, nil
}
