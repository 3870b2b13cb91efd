package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"

	"bingeboard/internal/config"
	"bingeboard/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	llmReplies []string
}

var tmdbRoutes = map[string]string{
	"/genre/movie/list":    `{"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}`,
	"/genre/tv/list":       `{"genres":[{"id":18,"name":"Drama"}]}`,
	"/trending/movie/week": `{"results":[{"id":27205,"title":"Inception","poster_path":"/inc.jpg","genre_ids":[878,28],"release_date":"2010-07-16","vote_average":8.4}]}`,
	"/search/multi":        `{"results":[{"id":27205,"media_type":"movie","title":"Inception","poster_path":"/inc.jpg","genre_ids":[28],"popularity":80}]}`,
	"/movie/27205": `{"id":27205,"title":"Inception","poster_path":"/inc.jpg","overview":"Dreams within dreams.",
		"genres":[{"id":28,"name":"Action"}],"release_date":"2010-07-16","original_language":"en","runtime":148}`,
	"/tv/1399": `{"id":1399,"name":"Game of Thrones","poster_path":"/got.jpg","genres":[{"id":18,"name":"Drama"}],
		"first_air_date":"2011-04-17","number_of_seasons":8,"number_of_episodes":73}`,
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", base)

	env := &cliTestEnv{baseDir: base}

	tmdbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := tmdbRoutes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status_message":"not found"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(tmdbServer.Close)

	llmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := `{"actionType":"NO_ACTION_INFO","llmResponse":"I can help with your lists."}`
		if len(env.llmReplies) > 0 {
			content = env.llmReplies[0]
			env.llmReplies = env.llmReplies[1:]
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
		})
	}))
	t.Cleanup(llmServer.Close)

	opts = append([]testsupport.ConfigOption{
		testsupport.WithTMDB(tmdbServer.URL, "cli-test-key"),
		testsupport.WithLLM(llmServer.URL, "llm-test-key"),
	}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.TMDB.RequestsPerSecond = 1000
	cfg.Logging.Level = "error"

	env.cfg = cfg
	env.configPath = filepath.Join(base, "config.toml")
	writeTestConfig(t, env.configPath, cfg)
	return env
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n%s", needle, haystack)
	}
}

func decodeJSON(t *testing.T, data string, target any) {
	t.Helper()
	if err := json.Unmarshal([]byte(data), target); err != nil {
		t.Fatalf("decode json: %v\n%s", err, data)
	}
}
