package executor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"sort"
	"strings"
	"time"

	"github.com/studiowebux/paceman/internal/types"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
)

// Call is a request that has been built and is ready to run.
// Execute blocks for the whole network round trip.
type Call interface {
	Method() types.Method
	URL() string
	Execute(ctx context.Context) (*RawResponse, error)
}

// RawResponse is the response as received, before the body is read
type RawResponse struct {
	Status        int
	ContentLength *int64
	Headers       []types.Header
	body          io.ReadCloser
}

// NewRawResponse builds a RawResponse around an unread body.
// A nil body reads as empty text.
func NewRawResponse(status int, contentLength *int64, headers []types.Header, body io.ReadCloser) *RawResponse {
	return &RawResponse{
		Status:        status,
		ContentLength: contentLength,
		Headers:       headers,
		body:          body,
	}
}

// Text reads the whole body and closes it
func (r *RawResponse) Text() (string, error) {
	if r.body == nil {
		return "", nil
	}
	defer r.body.Close()

	data, err := io.ReadAll(r.body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(data), nil
}

// Close releases the body without reading it
func (r *RawResponse) Close() error {
	if r.body == nil {
		return nil
	}
	return r.body.Close()
}

// Client builds and executes HTTP calls
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

type ClientOption func(*Client)

// NewClient creates a client with the given options
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// WithTimeout sets the per-call timeout of the underlying http.Client
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every call
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying http.Client (timeout option is then ignored)
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Build validates the method and URL and prepares a call.
// Params, headers and body of the composed request are not part of the call yet.
func (c *Client) Build(method types.Method, rawURL string) (Call, error) {
	httpMethod, err := ToHTTPMethod(method)
	if err != nil {
		return nil, err
	}

	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(httpMethod, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return &httpCall{
		client: c.httpClient,
		req:    req,
		method: method,
	}, nil
}

type httpCall struct {
	client *http.Client
	req    *http.Request
	method types.Method
}

func (c *httpCall) Method() types.Method {
	return c.method
}

func (c *httpCall) URL() string {
	return c.req.URL.String()
}

// Execute sends the request and returns status, headers and the unread body
func (c *httpCall) Execute(ctx context.Context) (*RawResponse, error) {
	resp, err := c.client.Do(c.req.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	raw := &RawResponse{
		Status:  resp.StatusCode,
		Headers: convertHeaders(resp.Header),
		body:    resp.Body,
	}
	if resp.ContentLength >= 0 {
		length := resp.ContentLength
		raw.ContentLength = &length
	}

	return raw, nil
}

// convertHeaders flattens http.Header into one entry per value, sorted by name
func convertHeaders(h http.Header) []types.Header {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	headers := make([]types.Header, 0, len(h))
	for _, name := range names {
		for _, value := range h[name] {
			headers = append(headers, types.Header{
				Name:  name,
				Value: headerValue(value),
			})
		}
	}
	return headers
}

// headerValue keeps values made of visible ASCII as text, anything else as bytes
func headerValue(v string) types.HeaderValue {
	for i := 0; i < len(v); i++ {
		b := v[i]
		if b != '\t' && (b < 0x20 || b > 0x7e) {
			return types.BytesValue([]byte(v))
		}
	}
	return types.StringValue(v)
}

// ValidateURL checks that the URL is absolute http(s) with a host
func ValidateURL(rawURL string) error {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL: unsupported scheme %q (only http and https are allowed)", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("invalid URL: %q has no host", rawURL)
	}

	return nil
}

// ToHTTPMethod maps a method to its net/http name. Every valid method has a mapping.
func ToHTTPMethod(m types.Method) (string, error) {
	switch m {
	case types.MethodGet:
		return http.MethodGet, nil
	case types.MethodPost:
		return http.MethodPost, nil
	case types.MethodPut:
		return http.MethodPut, nil
	case types.MethodPatch:
		return http.MethodPatch, nil
	case types.MethodDelete:
		return http.MethodDelete, nil
	case types.MethodHead:
		return http.MethodHead, nil
	case types.MethodOptions:
		return http.MethodOptions, nil
	case types.MethodTrace:
		return http.MethodTrace, nil
	case types.MethodConnect:
		return http.MethodConnect, nil
	}
	return "", fmt.Errorf("invalid method value %d", int(m))
}

// FromHTTPMethod maps a net/http method name back to a method
func FromHTTPMethod(s string) (types.Method, error) {
	switch s {
	case http.MethodGet:
		return types.MethodGet, nil
	case http.MethodPost:
		return types.MethodPost, nil
	case http.MethodPut:
		return types.MethodPut, nil
	case http.MethodPatch:
		return types.MethodPatch, nil
	case http.MethodDelete:
		return types.MethodDelete, nil
	case http.MethodHead:
		return types.MethodHead, nil
	case http.MethodOptions:
		return types.MethodOptions, nil
	case http.MethodTrace:
		return types.MethodTrace, nil
	case http.MethodConnect:
		return types.MethodConnect, nil
	}
	return 0, fmt.Errorf("unsupported HTTP method %q", s)
}

// StatusLine renders "<code> <reason> <ms> ms <n> B".
// The reason is omitted for codes without canonical text and the size when the length is unknown.
func StatusLine(resp *types.Response) string {
	parts := []string{fmt.Sprintf("%d", resp.Status)}
	if reason := http.StatusText(resp.Status); reason != "" {
		parts = append(parts, reason)
	}
	parts = append(parts, fmt.Sprintf("%d ms", resp.Duration().Milliseconds()))
	if resp.ContentLength != nil {
		parts = append(parts, fmt.Sprintf("%d B", *resp.ContentLength))
	}
	return strings.Join(parts, " ")
}

// FormatDuration formats a duration to a human-readable string
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.2fs", float64(ms)/1000.0)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

// IsClientErrorStatus returns true if status code is 4xx
func IsClientErrorStatus(status int) bool {
	return status >= 400 && status < 500
}

// IsServerErrorStatus returns true if status code is 5xx
func IsServerErrorStatus(status int) bool {
	return status >= 500 && status < 600
}
