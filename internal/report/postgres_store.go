package report

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"autoinspect/internal/analysis"
)

// PostgresStore persists result blobs in a single table, one row per
// (report, kind). Re-saving replaces the previous blob.
type PostgresStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS analysis_results (
    report_id  TEXT        NOT NULL,
    kind       TEXT        NOT NULL,
    payload    JSONB       NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (report_id, kind)
)`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Save(ctx context.Context, reportID string, kind analysis.Kind, blob []byte) error {
	if _, err := blobKey(reportID, kind); err != nil {
		return err
	}
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	if blob == nil {
		blob = []byte("{}")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO analysis_results (report_id, kind, payload, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (report_id, kind)
DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		strings.TrimSpace(reportID), string(kind), blob)
	return err
}

func (s *PostgresStore) Load(ctx context.Context, reportID string, kind analysis.Kind) ([]byte, error) {
	if _, err := blobKey(reportID, kind); err != nil {
		return nil, err
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
SELECT payload FROM analysis_results WHERE report_id = $1 AND kind = $2`,
		strings.TrimSpace(reportID), string(kind)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}
