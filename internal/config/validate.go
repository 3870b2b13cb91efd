package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. A missing TMDB key is not an
// error; it is reported through TMDBKey so browse features degrade to empty
// results instead of refusing to start.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEndpoints(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if _, _, err := net.SplitHostPort(c.Paths.APIBind); err != nil {
		return fmt.Errorf("paths.api_bind %q: %w", c.Paths.APIBind, err)
	}
	return nil
}

func (c *Config) validateEndpoints() error {
	endpoints := []struct {
		name  string
		value string
	}{
		{"tmdb.base_url", c.TMDB.BaseURL},
		{"tmdb.image_base_url", c.TMDB.ImageBaseURL},
		{"youtube.base_url", c.YouTube.BaseURL},
		{"imdb.base_url", c.IMDb.BaseURL},
		{"llm.base_url", c.LLM.BaseURL},
	}
	for _, endpoint := range endpoints {
		parsed, err := url.Parse(endpoint.value)
		if err != nil {
			return fmt.Errorf("%s: %w", endpoint.name, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", endpoint.name, endpoint.value)
		}
	}
	if topic := c.Notifications.NtfyTopic; topic != "" {
		parsed, err := url.Parse(topic)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("notifications.ntfy_topic must be a full topic URL such as https://ntfy.sh/bingeboard, got %q", topic)
		}
	}
	for _, origin := range c.API.CORSOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("api.cors_origins entry %q must be an http(s) origin", origin)
		}
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if len(c.TMDB.WatchRegion) != 2 {
		return fmt.Errorf("tmdb.watch_region must be a two-letter country code, got %q", c.TMDB.WatchRegion)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
