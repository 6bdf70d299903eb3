package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apartmentiq/leverage/internal/config"
	"github.com/apartmentiq/leverage/internal/database"
	"github.com/apartmentiq/leverage/internal/modules/insights"
	"github.com/apartmentiq/leverage/internal/modules/intelligence"
	"github.com/apartmentiq/leverage/internal/modules/market"
	"github.com/apartmentiq/leverage/internal/modules/scenarios"
	"github.com/apartmentiq/leverage/internal/modules/whatif"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := zerolog.Nop()
	dataDir := t.TempDir()

	scenarioDB, err := database.New(database.Config{
		Path:    filepath.Join(dataDir, "scenarios.db"),
		Profile: database.ProfileStandard,
		Name:    "scenarios",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = scenarioDB.Close() })

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(dataDir, "market_cache.db"),
		Profile: database.ProfileCache,
		Name:    "market_cache",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cacheDB.Close() })

	snapshots, err := market.NewSnapshotRepository(cacheDB, log)
	require.NoError(t, err)
	marketService := market.NewService(nil, snapshots, log)

	generator := insights.NewGenerator(log)
	cache := intelligence.NewCache(time.Hour)

	scenarioRepo, err := scenarios.NewRepository(scenarioDB, log)
	require.NoError(t, err)

	return New(Config{
		Log: log,
		Config: &config.Config{
			DataDir:     dataDir,
			Port:        0,
			DevMode:     true,
			CacheTTL:    time.Hour,
			FeedTimeout: time.Second,
		},
		CacheDB:             cacheDB,
		ScenarioDB:          scenarioDB,
		MarketService:       marketService,
		InsightGenerator:    generator,
		IntelligenceService: intelligence.NewService(marketService, generator, cache, log),
		IntelligenceCache:   cache,
		ScenarioRepo:        scenarioRepo,
		ScenarioEngine:      scenarios.NewEngine(scenarioRepo, []string{"Austin, TX"}, log),
		WhatIfEngine:        whatif.NewEngine(log),
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "leverage", body["service"])
	}
}

func TestModuleRoutesMounted(t *testing.T) {
	srv := newTestServer(t)

	paths := []string{
		"/api/market/austin",
		"/api/market/austin/trends",
		"/api/insights/austin",
		"/api/scenarios",
		"/api/scenarios/economic-recession",
		"/api/system/status",
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
