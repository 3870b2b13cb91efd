package youtube_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bingeboard/internal/youtube"
)

func TestFindTrailerQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if q.Get("q") != "Inception official trailer" || q.Get("part") != "snippet" ||
			q.Get("type") != "video" || q.Get("maxResults") != "1" || q.Get("key") != "yt" {
			t.Fatalf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"items":[{"id":{"kind":"youtube#video","videoId":"YoHD9XEInc0"}}]}`))
	}))
	t.Cleanup(server.Close)

	client := youtube.New("yt", server.URL, nil)
	id, ok := client.FindTrailer(context.Background(), "Inception")
	if !ok || id != "YoHD9XEInc0" {
		t.Fatalf("expected video id, got %q ok=%v", id, ok)
	}
}

func TestFindTrailerNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	t.Cleanup(server.Close)

	if _, ok := youtube.New("yt", server.URL, nil).FindTrailer(context.Background(), "Obscure"); ok {
		t.Fatal("expected no trailer")
	}
}

func TestFindTrailerAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	t.Cleanup(server.Close)

	if _, ok := youtube.New("yt", server.URL, nil).FindTrailer(context.Background(), "Inception"); ok {
		t.Fatal("expected failure to report not found")
	}
}

func TestFindTrailerWithoutKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected without api key")
	}))
	t.Cleanup(server.Close)

	client := youtube.New("", server.URL, nil)
	if client.Configured() {
		t.Fatal("expected unconfigured client")
	}
	if _, ok := client.FindTrailer(context.Background(), "Inception"); ok {
		t.Fatal("expected not found without key")
	}
}

func TestFindTrailerFailureLogOmitsKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	var buf bytes.Buffer
	client := youtube.New("yt-secret", baseURL, slog.New(slog.NewJSONHandler(&buf, nil)))
	if _, ok := client.FindTrailer(context.Background(), "Inception"); ok {
		t.Fatal("expected failure to report not found")
	}
	if !strings.Contains(buf.String(), "youtube_search_failed") {
		t.Fatalf("expected failure to be logged, got %s", buf.String())
	}
	if strings.Contains(buf.String(), "yt-secret") {
		t.Fatalf("api key leaked into log: %s", buf.String())
	}
}
