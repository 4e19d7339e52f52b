package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/alessiogreco/weekblocks/internal/core/domain"
)

var _ domain.TrackerStore = (*PostgresTrackerStore)(nil)

// PostgresTrackerStore keeps the aggregate as a single JSONB document in a
// key/value table. Every save replaces the whole document; there are no
// per-goal rows because the aggregate is the unit of persistence.
type PostgresTrackerStore struct {
	db  *sqlx.DB
	key string
}

func NewPostgresTrackerStore(db *sqlx.DB, key string) *PostgresTrackerStore {
	return &PostgresTrackerStore{
		db:  db,
		key: key,
	}
}

// EnsureSchema creates the document table when it does not exist yet.
func (s *PostgresTrackerStore) EnsureSchema(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS tracker_state (
            key        TEXT PRIMARY KEY,
            document   JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure tracker_state table: %w", err)
	}
	return nil
}

func (s *PostgresTrackerStore) Load(ctx context.Context) (*domain.TrackerState, error) {
	query := `SELECT document FROM tracker_state WHERE key = $1`

	var doc []byte
	if err := s.db.QueryRowContext(ctx, query, s.key).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("tracker state query failed: %w", err)
	}

	var state domain.TrackerState
	if err := json.Unmarshal(doc, &state); err != nil {
		log.Printf("[STORE] Corrupted document for key %s, falling back to defaults: %v", s.key, err)
		return nil, domain.ErrStateNotFound
	}

	return &state, nil
}

func (s *PostgresTrackerStore) Save(ctx context.Context, state *domain.TrackerState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal tracker state: %w", err)
	}

	query := `
        INSERT INTO tracker_state (key, document, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE
        SET document = EXCLUDED.document, updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, s.key, data); err != nil {
		return fmt.Errorf("tracker state upsert failed: %w", err)
	}
	return nil
}
