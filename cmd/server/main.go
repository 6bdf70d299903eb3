// Package main is the entry point for the leverage engine: a rental
// market intelligence service that turns market observations, ownership
// economics, and scenario simulations into negotiation-ready
// recommendations.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/apartmentiq/leverage/internal/config"
	"github.com/apartmentiq/leverage/internal/database"
	"github.com/apartmentiq/leverage/internal/modules/insights"
	"github.com/apartmentiq/leverage/internal/modules/intelligence"
	"github.com/apartmentiq/leverage/internal/modules/market"
	"github.com/apartmentiq/leverage/internal/modules/scenarios"
	"github.com/apartmentiq/leverage/internal/modules/whatif"
	"github.com/apartmentiq/leverage/internal/scheduler"
	"github.com/apartmentiq/leverage/internal/server"
	"github.com/apartmentiq/leverage/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("data_dir", cfg.DataDir).
		Int("port", cfg.Port).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting leverage engine")

	// Databases: scenario definitions need durability, market snapshots
	// are rebuildable cache data.
	scenarioDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "scenarios.db"),
		Profile: database.ProfileStandard,
		Name:    "scenarios",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open scenarios database")
	}
	defer scenarioDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "market_cache.db"),
		Profile: database.ProfileCache,
		Name:    "market_cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open market cache database")
	}
	defer cacheDB.Close()

	// Market module: feed -> normalizer -> snapshot fallback chain.
	snapshots, err := market.NewSnapshotRepository(cacheDB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize snapshot repository")
	}

	var feed market.Feed
	if cfg.FeedBaseURL != "" {
		feed = market.NewHTTPFeed(cfg.FeedBaseURL, cfg.FeedTimeout, log)
	} else {
		log.Warn().Msg("No feed URL configured, running on synthetic market data")
	}
	marketService := market.NewService(feed, snapshots, log)

	// Intelligence stack.
	generator := insights.NewGenerator(log)
	cache := intelligence.NewCache(cfg.CacheTTL)
	intelligenceService := intelligence.NewService(marketService, generator, cache, log)

	// Scenario planning stack.
	scenarioRepo, err := scenarios.NewRepository(scenarioDB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scenario repository")
	}
	scenarioEngine := scenarios.NewEngine(scenarioRepo, cfg.RefreshLocations, log)
	whatifEngine := whatif.NewEngine(log)

	// Background jobs.
	sched := scheduler.New(log)
	refreshJob := scheduler.NewMarketRefreshJob(marketService, cfg.RefreshLocations, cfg.FeedTimeout, log)
	if err := sched.AddJob(cfg.RefreshSchedule, refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register market refresh job")
	}
	sweepJob := scheduler.NewCacheSweepJob(cache, log)
	if err := sched.AddJob("@hourly", sweepJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache sweep job")
	}
	sched.Start()
	defer sched.Stop()

	// Prime snapshots so the first requests don't wait on the feed.
	go func() {
		if err := sched.RunNow(refreshJob); err != nil {
			log.Warn().Err(err).Msg("Initial market refresh failed")
		}
	}()

	srv := server.New(server.Config{
		Log:                 log,
		Config:              cfg,
		CacheDB:             cacheDB,
		ScenarioDB:          scenarioDB,
		MarketService:       marketService,
		InsightGenerator:    generator,
		IntelligenceService: intelligenceService,
		IntelligenceCache:   cache,
		ScenarioRepo:        scenarioRepo,
		ScenarioEngine:      scenarioEngine,
		WhatIfEngine:        whatifEngine,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	// Wait for shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Leverage engine stopped")
}
