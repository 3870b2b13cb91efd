package imdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bingeboard/internal/imdb"
)

func TestNewRequiresKey(t *testing.T) {
	if _, err := imdb.New("", "", ""); !errors.Is(err, imdb.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestUpcomingSendsRapidAPIHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/imdb/getUpcomingMovies" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-rapidapi-key") != "secret" || r.Header.Get("x-rapidapi-host") != "imdb236.p.rapidapi.com" {
			t.Fatalf("missing rapidapi headers: %v", r.Header)
		}
		_, _ = w.Write([]byte(`[{"id":"tt1","title":"Future","image":"https://img/1.jpg","releaseState":"2030-05-01","genres":["Drama"]}]`))
	}))
	t.Cleanup(server.Close)

	client, err := imdb.New("secret", server.URL, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	movies, err := client.Upcoming(context.Background())
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(movies) != 1 || movies[0].ID != "tt1" || movies[0].Genres[0] != "Drama" {
		t.Fatalf("unexpected movies: %#v", movies)
	}
}

func TestUpcomingHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client, _ := imdb.New("secret", server.URL, "")
	if _, err := client.Upcoming(context.Background()); err == nil {
		t.Fatal("expected error on 429")
	}
}
