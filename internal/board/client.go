package board

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// Client fetches the board listing page over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
	userAgent  string
}

// NewClient returns a Client for the given listing URL.
func NewClient(url, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		userAgent:  userAgent,
	}
}

// URL returns the listing URL the client fetches.
func (c *Client) URL() string {
	return c.url
}

// Fetch retrieves the listing page and returns its HTML decoded to UTF-8.
// BitcoinTalk serves ISO-8859-1, so the body is run through a charset
// reader before use.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("building board request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching board page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("board returned HTTP %d", resp.StatusCode)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding board page: %w", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading board page: %w", err)
	}

	return string(body), nil
}
