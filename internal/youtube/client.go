// Package youtube looks up trailer videos through the YouTube Data API.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"bingeboard/internal/logging"
	"bingeboard/internal/metrics"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	defaultTimeout = 10 * time.Second
)

// Client searches YouTube for trailers.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
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

// New constructs a client. An empty key is allowed; lookups then report no
// trailer and log a warning.
func New(apiKey, baseURL string, logger *slog.Logger, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NewComponentLogger(logger, "youtube"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// FindTrailer returns the video id of the top "<query> official trailer"
// result. ok is false when no key is configured, the API fails, or nothing
// matches.
func (c *Client) FindTrailer(ctx context.Context, query string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}
	if !c.Configured() {
		logging.WarnWithContext(c.logger, "youtube api key not configured; trailer lookup skipped", "youtube_key_missing",
			logging.String(logging.FieldErrorHint, "set youtube.api_key or YOUTUBE_API_KEY"),
			logging.String(logging.FieldImpact, "no trailer shown"),
		)
		return "", false
	}

	start := time.Now()
	videoID, err := c.search(ctx, query+" official trailer")
	metrics.RecordUpstream("youtube", "search", time.Since(start), err)
	if err != nil {
		logging.WarnWithContext(c.logger, "trailer search failed", "youtube_search_failed",
			logging.String("query", query),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no trailer shown"),
		)
		return "", false
	}
	if videoID == "" {
		c.logger.Debug("no trailer found", logging.String("query", query))
		return "", false
	}
	return videoID, true
}

func (c *Client) search(ctx context.Context, q string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", q)
	params.Set("type", "video")
	params.Set("maxResults", "1")
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.baseURL + "/search"
		}
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	var payload searchResponse
	decodeErr := json.Unmarshal(body, &payload)
	if resp.StatusCode != http.StatusOK {
		message := strings.TrimSpace(string(body))
		if decodeErr == nil && payload.Error != nil {
			message = payload.Error.Message
		}
		return "", fmt.Errorf("youtube search returned %d: %s", resp.StatusCode, message)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode youtube response: %w", decodeErr)
	}
	if len(payload.Items) == 0 {
		return "", nil
	}
	return payload.Items[0].ID.VideoID, nil
}

// WatchURL returns the watch page for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}
