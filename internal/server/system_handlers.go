package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/apartmentiq/leverage/internal/database"
	"github.com/apartmentiq/leverage/internal/modules/intelligence"
)

// SystemHandlers serves process and storage diagnostics.
type SystemHandlers struct {
	log        zerolog.Logger
	dataDir    string
	cacheDB    *database.DB
	scenarioDB *database.DB
	cache      *intelligence.Cache
	startedAt  time.Time
}

// NewSystemHandlers creates system diagnostic handlers.
func NewSystemHandlers(
	log zerolog.Logger,
	dataDir string,
	cacheDB *database.DB,
	scenarioDB *database.DB,
	cache *intelligence.Cache,
) *SystemHandlers {
	return &SystemHandlers{
		log:        log.With().Str("handler", "system").Logger(),
		dataDir:    dataDir,
		cacheDB:    cacheDB,
		scenarioDB: scenarioDB,
		cache:      cache,
		startedAt:  time.Now(),
	}
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPct, memPct := h.getSystemStats()

	response := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"cpu_percent":    cpuPct,
		"memory_percent": memPct,
		"data_dir_mb":    h.getDirSize(h.dataDir),
		"cache_entries":  h.cache.Len(),
		"databases": map[string]interface{}{
			"cache":     h.databaseStatus(h.cacheDB),
			"scenarios": h.databaseStatus(h.scenarioDB),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode system status")
	}
}

func (h *SystemHandlers) databaseStatus(db *database.DB) map[string]interface{} {
	if db == nil {
		return map[string]interface{}{"status": "absent"}
	}

	status := "ok"
	if err := db.Conn().Ping(); err != nil {
		status = "error"
	}
	return map[string]interface{}{
		"name":   db.Name(),
		"status": status,
	}
}

// getDirSize calculates total size of a directory in MB
func (h *SystemHandlers) getDirSize(dirPath string) float64 {
	var totalSize int64

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})

	if err != nil {
		h.log.Warn().Err(err).Str("dir", dirPath).Msg("Failed to calculate directory size")
		return 0
	}

	return float64(totalSize) / 1024 / 1024
}

// getSystemStats calculates CPU and RAM usage percentages. Uses a short
// 100ms sampling interval so the endpoint responds quickly.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
