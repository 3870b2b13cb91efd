package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bingeboard/internal/config"
	"bingeboard/internal/imdb"
	"bingeboard/internal/logging"
	"bingeboard/internal/media"
	"bingeboard/internal/tmdb"
)

// Service is the catalog facade used by the CLI, the HTTP API and the assistant.
type Service struct {
	tmdb      *tmdb.Client
	imdb      *imdb.Client
	logger    *slog.Logger
	images    imageURLs
	region    string
	keyStatus config.TMDBKeyStatus
	genres    *GenreCache
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the clock used to decide what is upcoming.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds the catalog from configuration. Missing API keys leave the
// corresponding client unset; lookups that need it return empty results.
func NewService(cfg *config.Config, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Service{
		logger:    logging.NewComponentLogger(logger, "catalog"),
		images:    imageURLs{base: cfg.TMDB.ImageBaseURL},
		region:    cfg.TMDB.WatchRegion,
		keyStatus: cfg.TMDBKey(),
		now:       time.Now,
	}
	if s.region == "" {
		s.region = "IN"
	}

	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithRequestsPerSecond(cfg.TMDB.RequestsPerSecond),
		tmdb.WithTimeout(time.Duration(cfg.TMDB.TimeoutSeconds)*time.Second),
	)
	switch {
	case errors.Is(err, tmdb.ErrMissingAPIKey):
		s.logger.Warn("tmdb api key not configured; catalog lookups return no results",
			logging.String(logging.FieldEventType, "tmdb_key_missing"),
			logging.String(logging.FieldErrorHint, "set tmdb.api_key or TMDB_API_KEY"),
		)
	case err != nil:
		logging.WarnWithContext(s.logger, "tmdb client unavailable", "tmdb_client_init_failed", logging.Error(err))
	default:
		s.tmdb = client
	}

	if upcoming, err := imdb.New(cfg.IMDb.APIKey, cfg.IMDb.BaseURL, cfg.IMDb.Host); err == nil {
		s.imdb = upcoming
	}

	for _, opt := range opts {
		opt(s)
	}
	var source GenreSource
	if s.tmdb != nil {
		source = s.tmdb
	}
	s.genres = NewGenreCache(source)
	return s
}

// Init warms the genre cache for both media types.
func (s *Service) Init(ctx context.Context) {
	if s.keyStatus.IsExampleKey {
		logging.WarnWithContext(s.logger, "tmdb api key is the sample placeholder", "tmdb_key_placeholder",
			logging.String(logging.FieldErrorHint, "replace tmdb.api_key with a personal key from themoviedb.org"),
			logging.String(logging.FieldImpact, "catalog requests will likely fail"),
		)
	}
	s.ensureGenres(ctx, media.Movie)
	s.ensureGenres(ctx, media.TV)
	s.logger.Info("genre cache warmed",
		logging.Bool("movie", s.genres.Loaded(media.Movie)),
		logging.Bool("tv", s.genres.Loaded(media.TV)),
	)
}

// KeyStatus reports whether a usable TMDB key is configured.
func (s *Service) KeyStatus() config.TMDBKeyStatus {
	return s.keyStatus
}

// MovieGenres returns the TMDB movie genre list.
func (s *Service) MovieGenres(ctx context.Context) []media.Genre {
	return s.ensureGenres(ctx, media.Movie)
}

// TVGenres returns the TMDB TV genre list.
func (s *Service) TVGenres(ctx context.Context) []media.Genre {
	return s.ensureGenres(ctx, media.TV)
}

func (s *Service) ensureGenres(ctx context.Context, mediaType media.MediaType) []media.Genre {
	genres, err := s.genres.Load(ctx, mediaType)
	if err != nil {
		s.warn("genre list fetch failed", "genres", err, logging.MediaType(mediaType))
		return nil
	}
	return genres
}

func (s *Service) available() bool {
	return s.tmdb != nil
}

func (s *Service) warn(msg, op string, err error, attrs ...logging.Attr) {
	attrs = append(attrs,
		logging.String("operation", op),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check TMDB connectivity and api key"),
		logging.String(logging.FieldImpact, "lookup returns no results"),
	)
	logging.WarnWithContext(s.logger, msg, "catalog_lookup_failed", attrs...)
}
