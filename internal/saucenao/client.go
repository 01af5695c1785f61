package saucenao

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/net/http2"

	"searchbyimage/internal/domain"
)

const (
	// DefaultBaseURL is the public SauceNAO endpoint.
	DefaultBaseURL = "https://saucenao.com"

	// DefaultConnectTimeout bounds dialing the backend.
	DefaultConnectTimeout = 15 * time.Second
	// DefaultReadTimeout bounds waiting for the response.
	DefaultReadTimeout = 60 * time.Second

	// allIndexes selects every SauceNAO database.
	allIndexes = 999
	// jsonOutput asks for the JSON API output.
	jsonOutput = 2
	// DefaultNumResults is how many hits the backend is asked for.
	DefaultNumResults = 16

	maxBodyBytes = 4 << 20
)

var (
	ErrNoAPIKey          = errors.New("saucenao: no api key configured")
	ErrRateLimited       = errors.New("saucenao: rate limit exceeded")
	ErrUnauthorized      = errors.New("saucenao: api key rejected")
	ErrMalformedResponse = errors.New("saucenao: malformed response")
)

// Client queries the SauceNAO search API.
type Client struct {
	base       string
	numResults int
	http       *http.Client

	mu     sync.RWMutex
	apiKey string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint (tests, mirrors).
func WithBaseURL(base string) Option {
	return func(c *Client) { c.base = base }
}

// WithHTTPClient replaces the HTTP client built by New.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithNumResults sets how many hits the backend returns.
func WithNumResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.numResults = n
		}
	}
}

// New returns a client using apiKey and an HTTP/2 capable transport with the
// given connect and read timeouts.
func New(apiKey string, connectTimeout, readTimeout time.Duration, opts ...Option) (*Client, error) {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	c := &Client{
		base:       DefaultBaseURL,
		numResults: DefaultNumResults,
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		hc, err := NewHTTPClient(connectTimeout, readTimeout)
		if err != nil {
			return nil, err
		}
		c.http = hc
	}
	return c, nil
}

// NewHTTPClient builds the transport used against the backend.
func NewHTTPClient(connectTimeout, readTimeout time.Duration) (*http.Client, error) {
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}
	if err := http2.ConfigureTransport(tr); err != nil {
		return nil, fmt.Errorf("configure http2: %w", err)
	}
	return &http.Client{Transport: tr, Timeout: connectTimeout + readTimeout}, nil
}

// SetAPIKey swaps the key used by subsequent searches.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	c.apiKey = key
	c.mu.Unlock()
}

func (c *Client) key() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// Search asks the backend for sources of the image at imageURL.
func (c *Client) Search(ctx context.Context, imageURL string) (domain.SearchResponse, error) {
	key := c.key()
	if key == "" {
		return domain.SearchResponse{}, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("db", strconv.Itoa(allIndexes))
	q.Set("output_type", strconv.Itoa(jsonOutput))
	q.Set("numres", strconv.Itoa(c.numResults))
	q.Set("api_key", key)
	q.Set("url", imageURL)
	u := c.base + "/search.php?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.SearchResponse{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("saucenao get: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.SearchResponse{}, ErrRateLimited
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return domain.SearchResponse{}, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return domain.SearchResponse{}, fmt.Errorf("saucenao get: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("saucenao read: %w", err)
	}
	return Parse(body)
}

var _ domain.SearchEngine = (*Client)(nil)
