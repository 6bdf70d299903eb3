// Package server provides the HTTP server and routing for the leverage engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/apartmentiq/leverage/internal/config"
	"github.com/apartmentiq/leverage/internal/database"
	"github.com/apartmentiq/leverage/internal/modules/insights"
	insightshandlers "github.com/apartmentiq/leverage/internal/modules/insights/handlers"
	"github.com/apartmentiq/leverage/internal/modules/intelligence"
	intelligencehandlers "github.com/apartmentiq/leverage/internal/modules/intelligence/handlers"
	"github.com/apartmentiq/leverage/internal/modules/market"
	markethandlers "github.com/apartmentiq/leverage/internal/modules/market/handlers"
	"github.com/apartmentiq/leverage/internal/modules/scenarios"
	scenarioshandlers "github.com/apartmentiq/leverage/internal/modules/scenarios/handlers"
	"github.com/apartmentiq/leverage/internal/modules/whatif"
	whatifhandlers "github.com/apartmentiq/leverage/internal/modules/whatif/handlers"
)

// Config holds server configuration
type Config struct {
	Log                 zerolog.Logger
	Config              *config.Config
	CacheDB             *database.DB
	ScenarioDB          *database.DB
	MarketService       *market.Service
	InsightGenerator    *insights.Generator
	IntelligenceService *intelligence.Service
	IntelligenceCache   *intelligence.Cache
	ScenarioRepo        *scenarios.Repository
	ScenarioEngine      *scenarios.Engine
	WhatIfEngine        *whatif.Engine
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg.Config,
		systemHandlers: NewSystemHandlers(
			cfg.Log,
			cfg.Config.DataDir,
			cfg.CacheDB,
			cfg.ScenarioDB,
			cfg.IntelligenceCache,
		),
	}

	s.setupMiddleware(cfg.Config.DevMode)
	s.setupRoutes(cfg)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(cfg Config) {
	s.router.Get("/health", s.handleHealth)

	marketHandler := markethandlers.NewHandler(cfg.MarketService, cfg.Log)
	insightsHandler := insightshandlers.NewHandler(cfg.InsightGenerator, cfg.MarketService, cfg.Log)
	intelligenceHandler := intelligencehandlers.NewHandler(cfg.IntelligenceService, cfg.Log)
	scenariosHandler := scenarioshandlers.NewHandler(cfg.ScenarioRepo, cfg.ScenarioEngine, cfg.Log)
	whatifHandler := whatifhandlers.NewHandler(cfg.WhatIfEngine, cfg.Log)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/system/status", s.systemHandlers.HandleSystemStatus)

		marketHandler.RegisterRoutes(r)
		insightsHandler.RegisterRoutes(r)
		intelligenceHandler.RegisterRoutes(r)
		scenariosHandler.RegisterRoutes(r)
		whatifHandler.RegisterRoutes(r)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
