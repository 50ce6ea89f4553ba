package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Client posts JSON to a remote service and normalizes every failure into an
// *Error tagged with the service name.
type Client struct {
	service string
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(service, baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Service returns the name used in errors.
func (c *Client) Service() string { return c.service }

// PostJSON sends body (nil for an empty body) to path and decodes a 200
// response into out. Extra headers are added as given.
func (c *Client) PostJSON(ctx context.Context, path string, body any, headers map[string]string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return NewError(ErrorInternal, c.service, "marshal request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return NewError(ErrorInternal, c.service, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FromStatus(c.service, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewError(ErrorBadData, c.service, fmt.Sprintf("decode %s response", path), err)
	}
	return nil
}

func (c *Client) classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewError(ErrorTimeout, c.service, "request timed out", err)
	}
	return NewError(ErrorOutage, c.service, "request failed", err)
}
