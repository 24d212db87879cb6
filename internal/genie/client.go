package genie

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	// Token is sent as a bearer token on every request.
	Token string
	// Timeout is the per-request timeout (default: 30s). Ignored when HTTPClient is set.
	Timeout time.Duration
	// HTTPClient replaces the default client, e.g. to inject a transport in tests.
	HTTPClient *http.Client
}

// Client talks to the Genie spaces REST API of one workspace.
type Client struct {
	host       string
	token      string
	httpClient *http.Client
}

// NewClient returns a client for the workspace at host (scheme optional, https assumed).
func NewClient(host string, opts Options) *Client {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host != "" && !strings.Contains(host, "://") {
		host = "https://" + host
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{host: host, token: opts.Token, httpClient: httpClient}
}

// Host returns the normalised workspace URL.
func (c *Client) Host() string { return c.host }

// do sends one request and returns the raw response body. Status codes >= 400
// are turned into *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	u := c.host + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Method: method, URL: u, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, parseErrorResponse(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// parseErrorResponse reads the {"error_code", "message"} body the REST API
// returns on failure, falling back to the raw body or status text.
func parseErrorResponse(statusCode int, body []byte) error {
	e := &APIError{StatusCode: statusCode}
	if gjson.ValidBytes(body) {
		e.ErrorCode = gjson.GetBytes(body, "error_code").String()
		e.Message = gjson.GetBytes(body, "message").String()
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	if e.Message == "" {
		e.Message = http.StatusText(statusCode)
	}
	return e
}
