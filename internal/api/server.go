package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gofrs/flock"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bingeboard/internal/assistant"
	"bingeboard/internal/catalog"
	"bingeboard/internal/config"
	"bingeboard/internal/feedback"
	"bingeboard/internal/lists"
	"bingeboard/internal/logging"
	"bingeboard/internal/profile"
)

// CommandExecutor runs assistant list commands.
type CommandExecutor interface {
	Execute(ctx context.Context, text string) (assistant.Outcome, error)
}

// TrendingCurator returns model-curated picks.
type TrendingCurator interface {
	CurateTrending(ctx context.Context, category string) []assistant.CuratedRecommendation
}

// TrailerFinder looks up trailer video ids.
type TrailerFinder interface {
	FindTrailer(ctx context.Context, query string) (string, bool)
}

// Pinger reports store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the dependencies handlers call into.
type Services struct {
	Lists     *lists.Service
	Catalog   *catalog.Service
	Commander CommandExecutor
	Curator   TrendingCurator
	Trailers  TrailerFinder
	Profile   *profile.Service
	Feedback  *feedback.Service
	Store     Pinger
}

// Server is the HTTP front end.
type Server struct {
	bind     string
	lockPath string
	logger   *slog.Logger
	svc      Services
	handler  http.Handler
	server   *http.Server
}

// New builds the router for cfg and svc.
func New(cfg *config.Config, svc Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		bind:     strings.TrimSpace(cfg.Paths.APIBind),
		lockPath: cfg.LockPath(),
		logger:   logging.NewComponentLogger(logger, "api-server"),
		svc:      svc,
	}
	s.handler = s.routes(cfg)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes(cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(instrument(s.logger))
	r.Use(middleware.Recoverer)
	if origins := cfg.API.CORSOrigins; len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
			ExposedHeaders:   []string{requestIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(authenticate(strings.TrimSpace(cfg.Paths.APIToken), s.logger))

		r.Route("/lists", func(r chi.Router) {
			r.Get("/", s.handleListLists)
			r.Post("/", s.handleCreateList)
			r.Post("/import", s.handleImportList)
			r.Route("/{listID}", func(r chi.Router) {
				r.Get("/", s.handleGetList)
				r.Patch("/", s.handleRenameList)
				r.Delete("/", s.handleDeleteList)
				r.Post("/pin", s.handleTogglePin)
				r.Get("/export", s.handleExportList)
				r.Get("/categories", s.handleListCategories)
				r.Put("/items/{mediaType}/{itemID}", s.handlePutItem)
				r.Delete("/items/{mediaType}/{itemID}", s.handleDeleteItem)
			})
		})
		r.Get("/items/recent", s.handleRecentItems)
		r.Get("/items/genres", s.handleListGenres)
		r.Get("/items/{mediaType}/{itemID}/presence", s.handlePresence)
		r.Post("/interested", s.handleToggleInterested)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/status", s.handleCatalogStatus)
			r.Get("/feeds", s.handleHomeFeeds)
			r.Get("/genres/{mediaType}", s.handleCatalogGenres)
			r.Get("/trending/{mediaType}", s.handleTrending)
			r.Get("/category/{name}", s.handleCategory)
			r.Get("/search", s.handleSearch)
			r.Get("/upcoming", s.handleUpcoming)
			r.Get("/{mediaType}/{id}", s.handleDetails)
			r.Get("/{mediaType}/{id}/credits", s.handleCredits)
			r.Get("/{mediaType}/{id}/images", s.handleImages)
			r.Get("/{mediaType}/{id}/providers", s.handleProviders)
			r.Get("/{mediaType}/{id}/seasons", s.handleSeasons)
			r.Get("/{mediaType}/{id}/seasons/{season}", s.handleSeasonEpisodes)
		})

		r.Group(func(r chi.Router) {
			if limit := cfg.API.AssistantRequestsPerMinute; limit > 0 {
				r.Use(httprate.LimitByIP(limit, time.Minute))
			}
			r.Post("/assistant/command", s.handleAssistantCommand)
			r.Post("/assistant/curate", s.handleCurate)
			r.Get("/trailer", s.handleTrailer)
		})

		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handlePutProfile)
		r.Get("/profile/presets", s.handlePresets)
		r.Post("/feedback", s.handleFeedback)
	})
	return r
}

// Run serves until ctx is cancelled. It holds the store lock for its lifetime.
func (s *Server) Run(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("api bind address not configured")
	}
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}
	lock := flock.New(s.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another bingeboard server instance is already running")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release server lock", logging.Error(err))
		}
	}()

	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("lock", s.lockPath),
	)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	s.logger.Info("api server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Store: "ok"}
	status := http.StatusOK
	if s.svc.Store != nil {
		if err := s.svc.Store.Ping(r.Context()); err != nil {
			resp = HealthResponse{Status: "degraded", Store: err.Error()}
			status = http.StatusServiceUnavailable
		}
	}
	writeJSON(s.logger, w, status, resp)
}
