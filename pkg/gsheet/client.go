package gsheet

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Version is the current semantic version of the sheet-capture module.
const Version = "1.0.0"

const (
	// DefaultConnectTimeout bounds establishing the TCP connection.
	DefaultConnectTimeout = 10 * time.Second
	// DefaultReadTimeout bounds the whole request, headers and body included.
	DefaultReadTimeout = 30 * time.Second
)

// Document is a fetched export payload together with the content type the
// server declared for it. It is consumed once by the rasterizer.
type Document struct {
	Data        []byte
	ContentType string
}

// Client downloads sheet exports from the Google Sheets export endpoint.
// An optional session cookie authenticates requests for private sheets; the
// cookie is attached per request and never logged.
type Client struct {
	cookie     string
	httpClient *http.Client
}

// NewClient creates an export client. cookie may be empty for public sheets.
// The client dials with a 10 second connect timeout and caps the full
// request at 30 seconds.
func NewClient(cookie string) *Client {
	return NewClientTimeout(cookie, DefaultConnectTimeout, DefaultReadTimeout)
}

// NewClientTimeout is NewClient with explicit connect and read timeouts.
func NewClientTimeout(cookie string, connectTimeout, readTimeout time.Duration) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}

	return &Client{
		cookie: cookie,
		httpClient: &http.Client{
			Timeout:   readTimeout,
			Transport: transport,
		},
	}
}

// Fetch downloads the document at exportURL and validates the response.
// See FetchContext for the classification rules.
func (c *Client) Fetch(exportURL string) (*Document, error) {
	return c.FetchContext(context.Background(), exportURL)
}

// FetchContext downloads the document at exportURL. The response is
// classified before any bytes are accepted:
//
//   - HTTP 429 returns ErrRateLimited so the caller can back off; the
//     client itself never retries.
//   - Any other non-2xx status returns a *FetchError carrying the status.
//   - A 2xx response declaring an HTML content type returns ErrAuthRequired:
//     Google serves a login or "request access" page instead of a PDF when
//     the cookie is missing, expired, or the sheet was never shared.
func (c *Client) FetchContext(ctx context.Context, exportURL string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Status: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") {
		return nil, ErrAuthRequired
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Document{Data: data, ContentType: contentType}, nil
}
