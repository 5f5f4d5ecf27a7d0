package adventofcode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultBaseURL   = "https://adventofcode.com"
	DefaultUserAgent = "aoc-inputs/1.0 (puzzle input cache)"

	sessionCookie = "session"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

type Option func(*Client)

// WithBaseURL points the client at another host, mostly for tests
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InputURL returns the address of the input for year/day
func (c *Client) InputURL(year, day int) string {
	return fmt.Sprintf("%s/%d/day/%d/input", c.baseURL, year, day)
}

// FetchInput downloads the puzzle input for year/day using the given session.
// Any status other than 200 is returned as a *FetchError.
func (c *Client) FetchInput(ctx context.Context, year, day int, session string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.InputURL(year, day), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: session})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch input: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewFetchError(year, day, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return string(body), nil
}
