package preflight

import (
	"context"

	"bingeboard/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
	// Warning marks a passing check whose feature is disabled.
	Warning bool `json:"warning,omitempty"`
}

// Options selects the checks that make network calls.
type Options struct {
	// Remote enables the TMDB, LLM, and ntfy round trips.
	Remote bool
}

// RunAll executes the preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
	}
	if cfg.Paths.LogDir != "" && cfg.Paths.LogDir != cfg.Paths.DataDir {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	if opts.Remote {
		results = append(results, CheckTMDB(ctx, cfg))
	} else {
		results = append(results, tmdbKeyOnly(cfg))
	}

	llmCfg := cfg.GetLLM()
	if opts.Remote {
		results = append(results, CheckLLM(ctx, "Assistant LLM", llmCfg))
	} else {
		results = append(results, CheckAPIKey("Assistant LLM", llmCfg.APIKey, "OPENROUTER_API_KEY", "the assistant"))
	}

	results = append(results,
		CheckAPIKey("YouTube", cfg.YouTube.APIKey, "YOUTUBE_API_KEY", "trailers"),
		CheckAPIKey("RapidAPI IMDb", cfg.IMDb.APIKey, "RAPIDAPI_IMDB_KEY", "upcoming releases"),
		CheckNotifications(ctx, cfg, opts.Remote),
	)
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func tmdbKeyOnly(cfg *config.Config) Result {
	status := cfg.TMDBKey()
	switch {
	case status.IsKeyMissing:
		return Result{Name: "TMDB", Detail: "API key missing (set TMDB_API_KEY)"}
	case status.IsExampleKey:
		return Result{Name: "TMDB", Detail: "example API key configured; replace it with your own"}
	}
	return Result{Name: "TMDB", Passed: true, Detail: "API key configured"}
}
