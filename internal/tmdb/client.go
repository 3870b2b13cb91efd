package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"bingeboard/internal/media"
	"bingeboard/internal/metrics"
)

const (
	defaultTimeout           = 15 * time.Second
	defaultRequestsPerSecond = 20
	breakerName              = "tmdb"
)

// ErrMissingAPIKey is returned by New when no key is configured.
var ErrMissingAPIKey = errors.New("tmdb api key required")

// StatusError reports a non-200 TMDB response.
type StatusError struct {
	Op         string
	StatusCode int
	Latency    time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s returned %d (latency=%v)", e.Op, e.StatusCode, e.Latency)
}

// NotFound reports whether the resource does not exist.
func (e *StatusError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
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

// WithRequestsPerSecond sets the client-side rate limit. Zero or negative disables it.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTimeout sets the HTTP timeout of the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultRequestsPerSecond),
		breaker:    newBreaker(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func newBreaker() *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// 4xx responses are answers, not outages.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.StatusCode < http.StatusInternalServerError
			}
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

// Genres returns the genre list for mediaType.
func (c *Client) Genres(ctx context.Context, mediaType media.MediaType) ([]media.Genre, error) {
	var payload genreList
	if err := c.get(ctx, "genres", "/genre/"+string(mediaType)+"/list", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Genres, nil
}

// Trending returns the weekly trending page for mediaType.
func (c *Client) Trending(ctx context.Context, mediaType media.MediaType) (*Page, error) {
	params := url.Values{}
	params.Set("page", "1")
	var payload Page
	if err := c.get(ctx, "trending", "/trending/"+string(mediaType)+"/week", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NowPlaying returns movies currently in theatres in region.
func (c *Client) NowPlaying(ctx context.Context, region string) (*Page, error) {
	params := url.Values{}
	params.Set("page", "1")
	if region = strings.TrimSpace(region); region != "" {
		params.Set("region", region)
	}
	var payload Page
	if err := c.get(ctx, "now playing", "/movie/now_playing", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Discover runs a discover query for mediaType.
func (c *Client) Discover(ctx context.Context, mediaType media.MediaType, opts DiscoverOptions) (*Page, error) {
	params := url.Values{}
	params.Set("page", "1")
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	params.Set("sort_by", sortBy)
	if opts.OriginalLanguage != "" {
		params.Set("with_original_language", opts.OriginalLanguage)
	}
	if opts.Genres != "" {
		params.Set("with_genres", opts.Genres)
	}
	if opts.Keywords != "" {
		params.Set("with_keywords", opts.Keywords)
	}
	if opts.Companies != "" {
		params.Set("with_companies", opts.Companies)
	}
	var payload Page
	if err := c.get(ctx, "discover", "/discover/"+string(mediaType), params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SearchMulti searches movies, TV and people in one request.
func (c *Client) SearchMulti(ctx context.Context, query string) (*Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("include_adult", "false")
	var payload Page
	if err := c.get(ctx, "multi search", "/search/multi", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SearchCompany searches production companies by name.
func (c *Client) SearchCompany(ctx context.Context, query string) (*CompanyPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	var payload CompanyPage
	if err := c.get(ctx, "company search", "/search/company", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Details fetches movie or TV details by TMDB id.
func (c *Client) Details(ctx context.Context, mediaType media.MediaType, id string) (*Details, error) {
	path, err := itemPath(mediaType, id)
	if err != nil {
		return nil, err
	}
	var payload Details
	if err := c.get(ctx, string(mediaType)+" details", path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Credits fetches the cast. TV uses aggregate credits across all seasons.
func (c *Client) Credits(ctx context.Context, mediaType media.MediaType, id string) (*Credits, error) {
	path, err := itemPath(mediaType, id)
	if err != nil {
		return nil, err
	}
	suffix := "/credits"
	if mediaType == media.TV {
		suffix = "/aggregate_credits"
	}
	var payload Credits
	if err := c.get(ctx, "credits", path+suffix, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SeasonDetails fetches the full season metadata for a TV show, including episodes.
func (c *Client) SeasonDetails(ctx context.Context, showID string, seasonNumber int) (*SeasonDetails, error) {
	path, err := itemPath(media.TV, showID)
	if err != nil {
		return nil, err
	}
	if seasonNumber < 0 {
		return nil, errors.New("season number must not be negative")
	}
	var payload SeasonDetails
	if err := c.get(ctx, "season", path+"/season/"+strconv.Itoa(seasonNumber), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// WatchProviders fetches streaming availability for all regions.
func (c *Client) WatchProviders(ctx context.Context, mediaType media.MediaType, id string) (*WatchProviders, error) {
	path, err := itemPath(mediaType, id)
	if err != nil {
		return nil, err
	}
	var payload WatchProviders
	if err := c.getWithoutLanguage(ctx, "watch providers", path+"/watch/providers", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Images fetches backdrops and posters. Language is omitted so untagged images are included.
func (c *Client) Images(ctx context.Context, mediaType media.MediaType, id string) (*Images, error) {
	path, err := itemPath(mediaType, id)
	if err != nil {
		return nil, err
	}
	var payload Images
	if err := c.getWithoutLanguage(ctx, "images", path+"/images", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func itemPath(mediaType media.MediaType, id string) (string, error) {
	if !mediaType.Valid() {
		return "", fmt.Errorf("unsupported media type %q", mediaType)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("id must not be empty")
	}
	return "/" + string(mediaType) + "/" + url.PathEscape(id), nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, target any) error {
	if params == nil {
		params = url.Values{}
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	return c.do(ctx, op, path, params, target)
}

func (c *Client) getWithoutLanguage(ctx context.Context, op, path string, target any) error {
	return c.do(ctx, op, path, url.Values{}, target)
}

func (c *Client) do(ctx context.Context, op, path string, params url.Values, target any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	params.Set("api_key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("tmdb %s: rate limit wait: %w", op, err)
		}
	}

	requestStart := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, op, endpoint.String(), requestStart)
	})
	metrics.RecordUpstream("tmdb", op, time.Since(requestStart), err)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("tmdb %s: %w", op, err)
		}
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode tmdb %s response: %w", op, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, op, endpoint string, start time.Time) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("execute tmdb %s request (latency=%v): %w", op, latency, redactQuery(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Latency: latency}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tmdb %s response: %w", op, err)
	}
	return body, nil
}

// redactQuery strips the query string, which carries api_key, from the URL
// that transport errors repeat.
func redactQuery(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
			u.RawQuery = ""
			urlErr.URL = u.String()
		}
	}
	return err
}
