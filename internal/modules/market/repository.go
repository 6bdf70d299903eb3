package market

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/apartmentiq/leverage/internal/database"
)

// SnapshotSchema is the market snapshot table definition.
const SnapshotSchema = `
CREATE TABLE IF NOT EXISTS market_snapshots (
    location    TEXT PRIMARY KEY,
    captured_at TEXT NOT NULL,
    metrics     BLOB NOT NULL
);
`

// SnapshotRepository persists the latest normalized metric history per
// location. Histories are stored as msgpack blobs: they are read and
// written whole, never queried field-by-field.
type SnapshotRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewSnapshotRepository creates a snapshot repository and ensures its schema.
func NewSnapshotRepository(db *database.DB, log zerolog.Logger) (*SnapshotRepository, error) {
	if err := db.Migrate(SnapshotSchema); err != nil {
		return nil, err
	}
	return &SnapshotRepository{
		db:  db,
		log: log.With().Str("repository", "market_snapshots").Logger(),
	}, nil
}

// Save stores the metric history for a location, replacing any previous
// snapshot.
func (r *SnapshotRepository) Save(location string, metrics []MarketMetric, capturedAt time.Time) error {
	blob, err := msgpack.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot for %s: %w", location, err)
	}

	_, err = r.db.Conn().Exec(
		`INSERT INTO market_snapshots (location, captured_at, metrics) VALUES (?, ?, ?)
		 ON CONFLICT(location) DO UPDATE SET captured_at = excluded.captured_at, metrics = excluded.metrics`,
		snapshotKey(location), capturedAt.UTC().Format(time.RFC3339), blob,
	)
	if err != nil {
		return fmt.Errorf("failed to store snapshot for %s: %w", location, err)
	}

	r.log.Debug().Str("location", location).Int("metrics", len(metrics)).Msg("Stored market snapshot")
	return nil
}

// Latest returns the stored metric history for a location, or nil if no
// snapshot exists.
func (r *SnapshotRepository) Latest(location string) ([]MarketMetric, error) {
	var blob []byte
	err := r.db.Conn().QueryRow(
		`SELECT metrics FROM market_snapshots WHERE location = ?`,
		snapshotKey(location),
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot for %s: %w", location, err)
	}

	var metrics []MarketMetric
	if err := msgpack.Unmarshal(blob, &metrics); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot for %s: %w", location, err)
	}

	return metrics, nil
}

func snapshotKey(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}
