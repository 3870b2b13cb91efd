package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"bingeboard/internal/config"
	"bingeboard/internal/llm"
	"bingeboard/internal/media"
	"bingeboard/internal/notifications"
	"bingeboard/internal/tmdb"
)

// CheckLLM verifies that the LLM API is reachable and the key is valid.
// It uses a 30-second timeout and a single attempt (no retries).
func CheckLLM(ctx context.Context, name string, cfg config.LLMConfig) Result {
	if cfg.APIKey == "" {
		return Result{Name: name, Detail: "API key missing (set OPENROUTER_API_KEY)"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	llmCfg := llm.FromConfig(cfg)
	llmCfg.Attempts = 1
	if err := llm.NewClient(llmCfg).HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeRemoteError("LLM API", err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckTMDB reports the TMDB key status and, when a real key is set, makes
// one genre request to confirm it is accepted.
func CheckTMDB(ctx context.Context, cfg *config.Config) Result {
	const name = "TMDB"

	status := cfg.TMDBKey()
	switch {
	case status.IsKeyMissing:
		return Result{Name: name, Detail: "API key missing (set TMDB_API_KEY)"}
	case status.IsExampleKey:
		return Result{Name: name, Detail: "example API key configured; replace it with your own"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, tmdb.WithRequestsPerSecond(0))
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if _, err := client.Genres(checkCtx, media.Movie); err != nil {
		var statusErr *tmdb.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 401 {
			return Result{Name: name, Detail: "API key rejected (401)"}
		}
		return Result{Name: name, Detail: summarizeRemoteError("TMDB API", err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("API reachable (key length %d)", status.KeyLength)}
}

// CheckAPIKey reports whether an optional service key is configured.
// Missing keys pass with a note because the feature degrades to empty results.
func CheckAPIKey(name, key, envVar, feature string) Result {
	if strings.TrimSpace(key) == "" {
		return Result{Name: name, Passed: true, Warning: true, Detail: fmt.Sprintf("not configured (set %s to enable %s)", envVar, feature)}
	}
	return Result{Name: name, Passed: true, Detail: "API key configured"}
}

// CheckNotifications reports whether feedback alerts are configured. With
// send set it posts a low-priority test message to the topic.
func CheckNotifications(ctx context.Context, cfg *config.Config, send bool) Result {
	const name = "Notifications"
	svc := notifications.NewService(cfg)
	if !notifications.Enabled(svc) {
		return Result{Name: name, Passed: true, Warning: true, Detail: "not configured (set notifications.ntfy_topic to forward feedback)"}
	}
	if !send {
		return Result{Name: name, Passed: true, Detail: "ntfy topic configured"}
	}
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := svc.TestNotification(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeRemoteError("ntfy", err)}
	}
	return Result{Name: name, Passed: true, Detail: "test notification sent"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeRemoteError(service string, err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("health check timed out (%s unresponsive)", service)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Sprintf("health check timed out (%s unreachable)", service)
	}
	return err.Error()
}
