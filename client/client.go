// Package client calls a go-pdd server's generation endpoint and saves the
// returned document.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pdd "github.com/alnah/go-pdd"
	"github.com/alnah/go-pdd/internal/fileutil"
	"github.com/alnah/go-pdd/internal/transport"
)

// Endpoint paths relative to the base URL.
const (
	GeneratePath = "/api/generate-docx"
	HealthPath   = "/healthz"
)

// FallbackMessage is used when an error response carries no message.
const FallbackMessage = "Failed to generate document"

const (
	defaultTimeout   = 60 * time.Second
	maxErrorBodySize = 1 << 20
)

// Sentinel errors.
var (
	ErrRequest  = errors.New("request failed")
	ErrResponse = errors.New("invalid response")
	ErrDownload = errors.New("saving document failed")
)

// Payload is the request body sent to the server.
type Payload = pdd.Request

// Result is the decoded success response.
type Result = pdd.Response

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Panics if hc is nil.
func WithHTTPClient(hc *http.Client) Option {
	if hc == nil {
		panic("client: WithHTTPClient requires a non-nil client")
	}
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the overall request timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("client: WithTimeout duration must be positive")
	}
	return func(c *Client) {
		c.timeout = d
	}
}

// Client talks to one server. Safe for concurrent use. Requests are never retried.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// New creates a Client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks that the server answers its health endpoint with 200.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+HealthPath, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrResponse, HealthPath, resp.StatusCode)
	}
	return nil
}

// GenerateDocx posts p as JSON and returns the generated document.
// Non-2xx responses return *APIError.
func (c *Client) GenerateDocx(ctx context.Context, p Payload) (*Result, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding payload: %v", ErrRequest, err)
	}
	return c.GenerateDocxJSON(ctx, body)
}

// GenerateDocxJSON posts a raw JSON body as-is, leaving validation to the server.
func (c *Client) GenerateDocxJSON(ctx context.Context, body []byte) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GeneratePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponse, err)
	}
	if res.FileName == "" || res.FileBase64 == "" {
		return nil, fmt.Errorf("%w: missing fileName or fileBase64", ErrResponse)
	}
	return &res, nil
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: FallbackMessage}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return apiErr
	}
	var body pdd.ErrorResponse
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}

// DownloadFile decodes fileBase64 and writes it to dir under the base name of
// fileName. The data goes through a temporary file in dir that is either
// renamed into place or removed. Returns the written path.
func DownloadFile(dir, fileName, fileBase64 string) (string, error) {
	data, err := transport.Decode(fileBase64)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownload, err)
	}
	path, err := fileutil.WriteFileAtomic(dir, fileName, data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownload, err)
	}
	return path, nil
}
