// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/youreview/youreview/internal/api"
	"github.com/youreview/youreview/internal/config"
	"github.com/youreview/youreview/internal/db"
	"github.com/youreview/youreview/internal/list"
	"github.com/youreview/youreview/internal/logger"
	"github.com/youreview/youreview/internal/middleware"
	"github.com/youreview/youreview/internal/profile"
	"github.com/youreview/youreview/internal/providers/googlebooks"
	"github.com/youreview/youreview/internal/providers/naverbooks"
	"github.com/youreview/youreview/internal/providers/spotify"
	"github.com/youreview/youreview/internal/providers/tmdb"
	"github.com/youreview/youreview/internal/providers/youtube"
	"github.com/youreview/youreview/internal/recap"
	"github.com/youreview/youreview/internal/search"
)

// Server represents the HTTP server
type Server struct {
	config         *config.Config
	db             *db.DB
	repos          *db.Repositories
	searchService  *search.Service
	listService    *list.Service
	profileService *profile.Service
	recapService   *recap.Service
	router         *gin.Engine
	server         *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, database *db.DB) *Server {
	repos := db.NewRepositories(database)

	return &Server{
		config:         cfg,
		db:             database,
		repos:          repos,
		searchService:  buildSearchService(cfg),
		listService:    list.NewService(database, repos),
		profileService: profile.NewService(repos),
		recapService:   recap.NewService(repos),
	}
}

// buildSearchService wires the provider adapters into the search aggregator.
// Providers with missing credentials register anyway and report themselves
// unavailable, so the aggregator can tell "not configured" from "unknown".
// YouTube registers before Spotify to stay the default music provider.
func buildSearchService(cfg *config.Config) *search.Service {
	httpClient := search.NewHTTPClient(cfg.Search.Timeout)

	providers := []search.Provider{
		tmdb.New(cfg.Providers.TMDBToken, httpClient),
		youtube.New(cfg.Providers.YouTubeKey, httpClient),
		spotify.New(cfg.Providers.SpotifyClientID, cfg.Providers.SpotifyClientSecret, httpClient),
		naverbooks.New(cfg.Providers.NaverClientID, cfg.Providers.NaverClientSecret, httpClient),
		googlebooks.New(cfg.Providers.GoogleBooksKey, httpClient),
	}

	retryCfg := search.DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.Search.MaxRetries + 1

	cache := search.NewTTLCache[[]search.UnifiedResult](cfg.Search.CacheSize)

	return search.NewService(providers, cache, cfg.Search.CacheTTL, search.WithRetryConfig(retryCfg))
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	s.router.Use(middleware.RequestLogger())
	s.router.Use(gin.Recovery())
	s.router.Use(cors.Default())

	apiGroup := s.router.Group("/api")

	// Public routes; search and availability personalize when a token is
	// present but never require one.
	api.SetupHealthRoutes(apiGroup, s.db)
	api.SetupUserRoutes(apiGroup, s.profileService, s.listService, s.recapService)

	optional := apiGroup.Group("")
	optional.Use(middleware.OptionalAuth(s.config.Auth.Secret))
	api.SetupSearchRoutes(optional, s.searchService, s.config.Search.Timeout)
	api.SetupAvailabilityRoutes(optional, s.profileService)

	authed := apiGroup.Group("")
	authed.Use(middleware.RequireAuth(s.config.Auth.Secret))
	api.SetupItemRoutes(authed, s.listService)
	api.SetupListRoutes(authed, s.listService)
	api.SetupProfileRoutes(authed, s.profileService)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.setupRouter()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Msg("Starting HTTP server")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
	}
	return nil
}

// Router returns the underlying gin engine. Used by tests.
func (s *Server) Router() *gin.Engine {
	if s.router == nil {
		s.setupRouter()
	}
	return s.router
}
