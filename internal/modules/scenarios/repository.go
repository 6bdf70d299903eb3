package scenarios

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/apartmentiq/leverage/internal/database"
)

// Schema is the scenario definition table. Parameters and assumptions
// travel as msgpack blobs: the engine always loads a definition whole.
const Schema = `
CREATE TABLE IF NOT EXISTS scenario_definitions (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL,
    category    TEXT NOT NULL,
    timeframe   TEXT NOT NULL,
    probability REAL NOT NULL,
    severity    TEXT NOT NULL,
    parameters  BLOB NOT NULL,
    assumptions BLOB NOT NULL,
    created_by  TEXT NOT NULL,
    created_at  TEXT NOT NULL,
    is_active   INTEGER NOT NULL DEFAULT 1
);
`

// Repository stores scenario definitions in SQLite and completed
// analyses in memory. Analyses are derived data and cheap to recompute,
// so they do not survive restarts.
type Repository struct {
	db  *database.DB
	log zerolog.Logger

	mu       sync.RWMutex
	analyses map[string]*Analysis
}

// NewRepository creates a scenario repository, ensures its schema, and
// installs the built-in scenario library if absent.
func NewRepository(db *database.DB, log zerolog.Logger) (*Repository, error) {
	if err := db.Migrate(Schema); err != nil {
		return nil, err
	}

	r := &Repository{
		db:       db,
		log:      log.With().Str("repository", "scenarios").Logger(),
		analyses: make(map[string]*Analysis),
	}

	if err := r.seed(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) seed() error {
	for _, def := range SeedDefinitions(time.Now()) {
		existing, err := r.Get(def.ID)
		if err != nil && !errors.Is(err, ErrScenarioNotFound) {
			return err
		}
		if existing != nil {
			continue
		}
		if err := r.Save(def); err != nil {
			return err
		}
		r.log.Debug().Str("scenario_id", def.ID).Msg("Installed built-in scenario")
	}
	return nil
}

// Save inserts or replaces a scenario definition.
func (r *Repository) Save(def Definition) error {
	params, err := msgpack.Marshal(def.Parameters)
	if err != nil {
		return fmt.Errorf("failed to encode parameters for %s: %w", def.ID, err)
	}
	assumptions, err := msgpack.Marshal(def.Assumptions)
	if err != nil {
		return fmt.Errorf("failed to encode assumptions for %s: %w", def.ID, err)
	}

	active := 0
	if def.IsActive {
		active = 1
	}

	_, err = r.db.Conn().Exec(
		`INSERT INTO scenario_definitions
		 (id, name, description, category, timeframe, probability, severity, parameters, assumptions, created_by, created_at, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   description = excluded.description,
		   category = excluded.category,
		   timeframe = excluded.timeframe,
		   probability = excluded.probability,
		   severity = excluded.severity,
		   parameters = excluded.parameters,
		   assumptions = excluded.assumptions,
		   is_active = excluded.is_active`,
		def.ID, def.Name, def.Description, string(def.Category), string(def.Timeframe),
		def.Probability, string(def.Severity), params, assumptions,
		def.CreatedBy, def.CreatedAt.UTC().Format(time.RFC3339), active,
	)
	if err != nil {
		return fmt.Errorf("failed to store scenario %s: %w", def.ID, err)
	}
	return nil
}

// Get returns the scenario definition with the given id, or
// ErrScenarioNotFound.
func (r *Repository) Get(id string) (*Definition, error) {
	row := r.db.Conn().QueryRow(
		`SELECT id, name, description, category, timeframe, probability, severity,
		        parameters, assumptions, created_by, created_at, is_active
		 FROM scenario_definitions WHERE id = ?`, id,
	)
	def, err := scanDefinition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
	}
	return def, err
}

// List returns every stored scenario definition.
func (r *Repository) List() ([]Definition, error) {
	rows, err := r.db.Conn().Query(
		`SELECT id, name, description, category, timeframe, probability, severity,
		        parameters, assumptions, created_by, created_at, is_active
		 FROM scenario_definitions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	return defs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDefinition(row rowScanner) (*Definition, error) {
	var (
		def         Definition
		category    string
		timeframe   string
		severity    string
		params      []byte
		assumptions []byte
		createdAt   string
		active      int
	)

	err := row.Scan(
		&def.ID, &def.Name, &def.Description, &category, &timeframe,
		&def.Probability, &severity, &params, &assumptions,
		&def.CreatedBy, &createdAt, &active,
	)
	if err != nil {
		return nil, err
	}

	def.Category = Category(category)
	def.Timeframe = Timeframe(timeframe)
	def.Severity = Severity(severity)
	def.IsActive = active != 0

	if err := msgpack.Unmarshal(params, &def.Parameters); err != nil {
		return nil, fmt.Errorf("failed to decode parameters for %s: %w", def.ID, err)
	}
	if err := msgpack.Unmarshal(assumptions, &def.Assumptions); err != nil {
		return nil, fmt.Errorf("failed to decode assumptions for %s: %w", def.ID, err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		def.CreatedAt = t
	}

	return &def, nil
}

// SaveAnalysis keeps a completed analysis in memory.
func (r *Repository) SaveAnalysis(a *Analysis) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses[a.ID] = a
}

// GetAnalysis returns a previously stored analysis, or nil.
func (r *Repository) GetAnalysis(id string) *Analysis {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.analyses[id]
}
