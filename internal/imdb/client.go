// Package imdb fetches upcoming theatrical releases from the RapidAPI IMDb feed.
package imdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"bingeboard/internal/metrics"
)

const (
	defaultHost    = "imdb236.p.rapidapi.com"
	defaultTimeout = 15 * time.Second
	upcomingPath   = "/api/imdb/getUpcomingMovies"
)

// ErrMissingAPIKey is returned when no RapidAPI key is configured.
var ErrMissingAPIKey = errors.New("rapidapi imdb key required")

// UpcomingMovie is a single entry of the upcoming-releases feed.
type UpcomingMovie struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Image        string   `json:"image"`
	ReleaseState string   `json:"releaseState"`
	Year         string   `json:"year"`
	Plot         string   `json:"plot"`
	Genres       []string `json:"genres"`
}

// Client calls the RapidAPI IMDb endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	host       string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New constructs a client. An empty host defaults to the imdb236 RapidAPI host.
func New(apiKey, baseURL, host string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	host = strings.TrimSpace(host)
	if host == "" {
		host = defaultHost
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://" + host
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		host:       host,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Upcoming returns the raw upcoming movie feed.
func (c *Client) Upcoming(ctx context.Context) ([]UpcomingMovie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+upcomingPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)

	start := time.Now()
	movies, err := c.decode(req, start)
	metrics.RecordUpstream("imdb", "upcoming", time.Since(start), err)
	return movies, err
}

func (c *Client) decode(req *http.Request, start time.Time) ([]UpcomingMovie, error) {
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("imdb upcoming returned %d (latency=%v)", resp.StatusCode, latency)
	}
	var payload []UpcomingMovie
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode imdb response: %w", err)
	}
	return payload, nil
}
