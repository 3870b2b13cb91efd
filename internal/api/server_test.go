package api_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofrs/flock"

	"bingeboard/internal/api"
	"bingeboard/internal/assistant"
	"bingeboard/internal/catalog"
	"bingeboard/internal/config"
	"bingeboard/internal/feedback"
	"bingeboard/internal/lists"
	"bingeboard/internal/logging"
	"bingeboard/internal/profile"
	"bingeboard/internal/testsupport"
)

type stubCommander struct {
	outcome assistant.Outcome
	got     string
}

func (s *stubCommander) Execute(_ context.Context, text string) (assistant.Outcome, error) {
	s.got = text
	return s.outcome, nil
}

type stubCurator struct{}

func (stubCurator) CurateTrending(context.Context, string) []assistant.CuratedRecommendation {
	return []assistant.CuratedRecommendation{{Title: "Arcane", PosterURL: assistant.PosterPlaceholder, Genre: "Animation"}}
}

type stubTrailers struct{}

func (stubTrailers) FindTrailer(_ context.Context, query string) (string, bool) {
	if query == "Inception" {
		return "YoHD9XEInc0", true
	}
	return "", false
}

type harness struct {
	cfg       *config.Config
	handler   http.Handler
	lists     *lists.Service
	commander *stubCommander
}

func newHarness(t *testing.T, opts ...testsupport.ConfigOption) *harness {
	t.Helper()
	tmdbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/genre/movie/list", "/genre/tv/list":
			_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":18,"name":"Drama"}]}`))
		case "/trending/movie/week":
			_, _ = w.Write([]byte(`{"results":[{"id":27205,"title":"Inception","poster_path":"/inc.jpg","genre_ids":[28]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(tmdbServer.Close)

	opts = append([]testsupport.ConfigOption{testsupport.WithTMDB(tmdbServer.URL, "key")}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.TMDB.RequestsPerSecond = 1000
	st := testsupport.MustOpenStore(t)
	logger := logging.NewNop()

	h := &harness{
		cfg:       cfg,
		lists:     lists.NewStoreService(st, logger),
		commander: &stubCommander{},
	}
	srv := api.New(cfg, api.Services{
		Lists:     h.lists,
		Catalog:   catalog.NewService(cfg, logger),
		Commander: h.commander,
		Curator:   stubCurator{},
		Trailers:  stubTrailers{},
		Profile:   profile.NewService(st),
		Feedback:  feedback.NewService(st, logger),
		Store:     st,
	}, logger)
	h.handler = srv.Handler()
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestListLifecycle(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/api/lists", map[string]string{"name": "Horror"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decode[api.ListsResponse](t, w)
	if len(created.Lists) != 1 || created.Lists[0].Name != "Horror" {
		t.Fatalf("unexpected lists %+v", created.Lists)
	}
	id := created.Lists[0].ID

	item := testsupport.Movie("27205", "Inception")
	w = h.do(t, http.MethodPut, "/api/lists/"+id+"/items/movie/27205", map[string]any{"item": item, "rating": 4})
	if w.Code != http.StatusOK {
		t.Fatalf("put item: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	stored := decode[lists.ListItem](t, w)
	if stored.UserRating == nil || *stored.UserRating != 4 {
		t.Fatalf("expected rating 4, got %+v", stored.UserRating)
	}

	w = h.do(t, http.MethodGet, "/api/lists/"+id+"?search=incep", nil)
	got := decode[api.ListResponse](t, w)
	if len(got.Items) != 1 || len(got.Ratings) != 1 {
		t.Fatalf("unexpected filtered list %+v", got)
	}

	w = h.do(t, http.MethodGet, "/api/items/movie/27205/presence", nil)
	presence := decode[lists.Presence](t, w)
	if !presence.InList || presence.ListID != id {
		t.Fatalf("unexpected presence %+v", presence)
	}

	w = h.do(t, http.MethodPatch, "/api/lists/"+id, map[string]string{"name": "Scary"})
	if renamed := decode[api.ListResponse](t, w); renamed.List.Name != "Scary" {
		t.Fatalf("rename failed: %s", w.Body.String())
	}

	w = h.do(t, http.MethodGet, "/api/lists/"+id+"/export", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Disposition"), "scary_bboard_export.json") {
		t.Fatalf("unexpected export response %d %v", w.Code, w.Header())
	}
	exported := w.Body.String()

	w = h.do(t, http.MethodPost, "/api/lists/import", map[string]string{"payload": exported})
	if w.Code != http.StatusCreated {
		t.Fatalf("import: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if imported := decode[api.ListResponse](t, w); imported.List.Name != "Imported: Scary" || len(imported.List.Items) != 1 {
		t.Fatalf("unexpected import %+v", imported.List)
	}

	w = h.do(t, http.MethodDelete, "/api/lists/"+id+"/items/movie/27205", nil)
	if after := decode[api.ListResponse](t, w); len(after.List.Items) != 0 {
		t.Fatalf("expected item removed, got %+v", after.List.Items)
	}
}

func TestListNotFoundAndValidation(t *testing.T) {
	h := newHarness(t)

	if w := h.do(t, http.MethodGet, "/api/lists/list-missing", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := h.do(t, http.MethodPost, "/api/lists/list-missing/pin", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for pin, got %d", w.Code)
	}
	w := h.do(t, http.MethodPut, "/api/lists/x/items/movie/1", map[string]any{"rating": 9})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := decode[api.ErrorResponse](t, w)
	if len(resp.Fields) == 0 {
		t.Fatalf("expected field errors, got %+v", resp)
	}
	if w := h.do(t, http.MethodGet, "/api/items/book/1/presence", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad media type, got %d", w.Code)
	}
	w = h.do(t, http.MethodPost, "/api/lists/import", map[string]string{"payload": "{not json"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(decode[api.ErrorResponse](t, w).Error, "Invalid JSON format") {
		t.Fatalf("unexpected import error %s", w.Body.String())
	}
}

func TestInterestedListIsNotEditable(t *testing.T) {
	h := newHarness(t)

	upcoming := testsupport.Movie("900", "Soon")
	upcoming.ReleaseDate = "2099-05-01"
	w := h.do(t, http.MethodPost, "/api/interested", map[string]any{"item": upcoming})
	if w.Code != http.StatusOK {
		t.Fatalf("toggle interested: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[api.InterestedResponse](t, w)
	if !resp.Added || len(resp.Lists) != 1 {
		t.Fatalf("unexpected toggle response %+v", resp)
	}
	id := resp.Lists[0].ID

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"create", http.MethodPost, "/api/lists", map[string]string{"name": "interested"}},
		{"rename", http.MethodPatch, "/api/lists/" + id, map[string]string{"name": "Later"}},
		{"pin", http.MethodPost, "/api/lists/" + id + "/pin", nil},
		{"delete", http.MethodDelete, "/api/lists/" + id, nil},
		{"export", http.MethodGet, "/api/lists/" + id + "/export", nil},
		{"put item", http.MethodPut, "/api/lists/" + id + "/items/movie/901", map[string]any{"item": testsupport.Movie("901", "Other"), "rating": 2}},
		{"delete item", http.MethodDelete, "/api/lists/" + id + "/items/movie/900", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := h.do(t, tt.method, tt.path, tt.body); w.Code != http.StatusConflict {
				t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	w = h.do(t, http.MethodGet, "/api/lists/"+id, nil)
	got := decode[api.ListResponse](t, w)
	if got.List.Name != lists.InterestedListName || got.List.IsPinned || len(got.List.Items) != 1 {
		t.Fatalf("Interested list changed: %+v", got.List)
	}
}

func TestPutItemWithSparseRecordKeepsCatalogFields(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodPost, "/api/lists", map[string]string{"name": "Films"})
	id := decode[api.ListsResponse](t, w).Lists[0].ID

	path := "/api/lists/" + id + "/items/movie/27205"
	if w := h.do(t, http.MethodPut, path, map[string]any{"item": testsupport.Movie("27205", "Inception")}); w.Code != http.StatusOK {
		t.Fatalf("put item: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = h.do(t, http.MethodPut, path, map[string]any{"item": map[string]any{}, "rating": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("rate: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	item := decode[lists.ListItem](t, w)
	if item.Title != "Inception" || item.PosterURL == "" || item.ReleaseDate == "" {
		t.Fatalf("catalog fields lost: %+v", item.Recommendation)
	}
	if item.UserRating == nil || *item.UserRating != 3 {
		t.Fatalf("expected rating 3, got %v", item.UserRating)
	}
}

func TestBearerAuth(t *testing.T) {
	h := newHarness(t, testsupport.WithAPIToken("secret"))

	if w := h.do(t, http.MethodGet, "/api/lists", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w := h.do(t, http.MethodGet, "/api/lists", nil, "Authorization", "Bearer wrong"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong token, got %d", w.Code)
	}
	if w := h.do(t, http.MethodGet, "/api/lists", nil, "Authorization", "Bearer secret"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := h.do(t, http.MethodGet, "/healthz", nil); w.Code != http.StatusOK {
		t.Fatalf("healthz should not require auth, got %d", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodGet, "/healthz", nil, "X-Request-ID", "abc-123")
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
	w = h.do(t, http.MethodGet, "/healthz", nil)
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated request id")
	}
}

func TestCatalogRoutes(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodGet, "/api/catalog/trending/movie", nil)
	results := decode[api.RecommendationsResponse](t, w)
	if len(results.Results) != 1 || results.Results[0].Title != "Inception" {
		t.Fatalf("unexpected trending %+v", results)
	}
	if w := h.do(t, http.MethodGet, "/api/catalog/category/westerns", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown category, got %d", w.Code)
	}
	if w := h.do(t, http.MethodGet, "/api/catalog/movie/1/seasons", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for movie seasons, got %d", w.Code)
	}
	if w := h.do(t, http.MethodGet, "/api/catalog/movie/404", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for failed details, got %d", w.Code)
	}
	w = h.do(t, http.MethodGet, "/api/catalog/status", nil)
	if status := decode[config.TMDBKeyStatus](t, w); status.IsKeyMissing {
		t.Fatalf("unexpected key status %+v", status)
	}
}

func TestAssistantRoutes(t *testing.T) {
	h := newHarness(t)
	h.commander.outcome = assistant.Outcome{
		Action:  assistant.ListAction{ActionType: assistant.CreateList, ListName: "Later"},
		Message: `List "Later" has been successfully created.`,
	}

	w := h.do(t, http.MethodPost, "/api/assistant/command", map[string]string{"command": "create a list called Later"})
	if w.Code != http.StatusOK || h.commander.got != "create a list called Later" {
		t.Fatalf("unexpected command response %d %q", w.Code, h.commander.got)
	}
	if w := h.do(t, http.MethodPost, "/api/assistant/command", map[string]string{}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty command, got %d", w.Code)
	}

	w = h.do(t, http.MethodGet, "/api/trailer?q=Inception", nil)
	if trailer := decode[api.TrailerResponse](t, w); !trailer.Found || trailer.VideoID != "YoHD9XEInc0" {
		t.Fatalf("unexpected trailer %+v", trailer)
	}
	w = h.do(t, http.MethodGet, "/api/trailer?q=Unknown", nil)
	if trailer := decode[api.TrailerResponse](t, w); trailer.Found {
		t.Fatalf("expected no trailer, got %+v", trailer)
	}

	w = h.do(t, http.MethodPost, "/api/assistant/curate", map[string]string{"category": "anime"})
	if !strings.Contains(w.Body.String(), "Arcane") {
		t.Fatalf("unexpected curate body %s", w.Body.String())
	}
}

func TestProfileAndFeedback(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPut, "/api/profile", map[string]any{"bio": "Film nerd", "presetCoverKey": "default_cover"})
	p := decode[profile.Profile](t, w)
	if p.Bio != "Film nerd" || p.PresetCoverKey != "default_cover" || p.EffectiveCoverURL == "" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if w := h.do(t, http.MethodPut, "/api/profile", map[string]any{"presetCoverKey": "nope"}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown preset, got %d", w.Code)
	}

	w = h.do(t, http.MethodPost, "/api/feedback", map[string]string{"feedbackText": "   "})
	if w.Code != http.StatusBadRequest || decode[api.ErrorResponse](t, w).Error != "Feedback text cannot be empty." {
		t.Fatalf("unexpected empty feedback response %d %s", w.Code, w.Body.String())
	}
	if w := h.do(t, http.MethodPost, "/api/feedback", map[string]string{"feedbackText": "Great app"}); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
}

func TestRunRefusesSecondInstance(t *testing.T) {
	h := newHarness(t)
	if err := h.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	lock := flock.New(h.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	defer func() { _ = lock.Unlock() }()

	srv := api.New(h.cfg, api.Services{}, logging.NewNop())
	err = srv.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "already running") {
		t.Fatalf("expected lock conflict, got %v", err)
	}
}
