package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/wilsonhazen/bidroom/internal/model"
)

// PostgresStore keeps each record as a JSONB document keyed by id.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS contractors (
	id TEXT PRIMARY KEY,
	trade TEXT NOT NULL DEFAULT '',
	doc JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contractors_trade ON contractors(trade);

CREATE TABLE IF NOT EXISTS snapshots (
	owner_id TEXT PRIMARY KEY,
	doc JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpsertContractor(ctx context.Context, c model.Contractor) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal contractor: %w", err)
	}
	const q = `
INSERT INTO contractors (id, trade, doc, updated_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET trade = EXCLUDED.trade, doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, q, c.ID, c.Trade, doc, c.UpdatedAt.UTC()); err != nil {
		return fmt.Errorf("upsert contractor: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetContractor(ctx context.Context, id string) (*model.Contractor, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM contractors WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contractor: %w", err)
	}
	var c model.Contractor
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("decode contractor: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) ListContractors(ctx context.Context, limit int) ([]model.Contractor, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	q := `SELECT doc FROM contractors ORDER BY id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list contractors: %w", err)
	}
	defer rows.Close()

	out := []model.Contractor{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan contractor: %w", err)
		}
		var c model.Contractor
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("decode contractor: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contractors: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	const q = `
INSERT INTO snapshots (owner_id, doc, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (owner_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, q, snap.OwnerID, doc, snap.UpdatedAt.UTC()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSnapshot(ctx context.Context, ownerID string) (*model.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM snapshots WHERE owner_id = $1`, ownerID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(doc, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
