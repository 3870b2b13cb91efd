package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bingeboard/internal/media"
	"bingeboard/internal/tmdb"
)

func newClient(t *testing.T, handler http.HandlerFunc) *tmdb.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := tmdb.New("key", server.URL, "en-US", tmdb.WithRequestsPerSecond(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New(" ", "https://example.com", "en-US"); !errors.Is(err, tmdb.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestTrendingSendsKeyAndLanguage(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trending/movie/week" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "key" || r.URL.Query().Get("language") != "en-US" {
			t.Fatalf("missing auth or language: %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":27205,"title":"Inception","poster_path":"/p.jpg","genre_ids":[28,878]}]}`))
	})

	page, err := client.Trending(context.Background(), media.Movie)
	if err != nil {
		t.Fatalf("Trending returned error: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].Title != "Inception" || len(page.Results[0].GenreIDs) != 2 {
		t.Fatalf("unexpected page: %#v", page)
	}
}

func TestDiscoverParams(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/discover/tv" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if q.Get("with_genres") != "16" || q.Get("with_keywords") != "210024" || q.Get("sort_by") != "popularity.desc" {
			t.Fatalf("unexpected query %q", r.URL.RawQuery)
		}
		if q.Has("with_companies") {
			t.Fatalf("empty filters must be omitted: %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	if _, err := client.Discover(context.Background(), media.TV, tmdb.DiscoverOptions{Genres: "16", Keywords: "210024"}); err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
}

func TestCreditsUsesAggregateForTV(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1399/aggregate_credits" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":1399,"cast":[{"id":1,"name":"A","roles":[{"character":"Jon"}],"total_episode_count":60}]}`))
	})
	credits, err := client.Credits(context.Background(), media.TV, "1399")
	if err != nil {
		t.Fatalf("Credits returned error: %v", err)
	}
	if len(credits.Cast) != 1 || credits.Cast[0].Roles[0].Character != "Jon" || credits.Cast[0].Order != nil {
		t.Fatalf("unexpected credits: %#v", credits)
	}
}

func TestWatchProvidersOmitsLanguage(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("language") {
			t.Fatalf("watch providers must not send language: %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"id":1,"results":{"IN":{"link":"https://x","flatrate":[{"provider_id":8,"provider_name":"Netflix","display_priority":2}]}}}`))
	})
	providers, err := client.WatchProviders(context.Background(), media.Movie, "1")
	if err != nil {
		t.Fatalf("WatchProviders returned error: %v", err)
	}
	if providers.Results["IN"].Flatrate[0].ProviderName != "Netflix" {
		t.Fatalf("unexpected providers: %#v", providers)
	}
}

func TestHTTPErrorIsStatusError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34}`))
	})
	_, err := client.Details(context.Background(), media.Movie, "999")
	var statusErr *tmdb.StatusError
	if !errors.As(err, &statusErr) || !statusErr.NotFound() {
		t.Fatalf("expected not-found StatusError, got %v", err)
	}
}

func TestRejectsInvalidInput(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected, got %s", r.URL.Path)
	})
	ctx := context.Background()
	if _, err := client.SearchMulti(ctx, "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
	if _, err := client.Details(ctx, media.MediaType("person"), "1"); err == nil {
		t.Fatal("expected error for unsupported media type")
	}
	if _, err := client.Images(ctx, media.Movie, ""); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestTransportErrorOmitsAPIKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := tmdb.New("secret-key-123", baseURL, "en-US", tmdb.WithRequestsPerSecond(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.Trending(context.Background(), media.Movie)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if strings.Contains(err.Error(), "secret-key-123") {
		t.Fatalf("api key leaked into error: %v", err)
	}
	if !strings.Contains(err.Error(), "/trending/movie/week") {
		t.Fatalf("expected request path in error, got %v", err)
	}
}
