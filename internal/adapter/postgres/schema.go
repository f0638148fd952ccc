package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/filmdata-service/internal/adapter/sqlrows"
)

const failedFetchesSchema = `
CREATE TABLE IF NOT EXISTS failed_fetches (
	id BIGSERIAL PRIMARY KEY,
	kind TEXT NOT NULL,
	input TEXT NOT NULL,
	error_code TEXT NOT NULL DEFAULT '',
	failure_reason TEXT NOT NULL DEFAULT '',
	http_status_code INTEGER NOT NULL DEFAULT 0,
	last_attempt_timestamp TIMESTAMPTZ NOT NULL,
	retry_count INTEGER NOT NULL DEFAULT 1,
	next_retry_at TIMESTAMPTZ NOT NULL,
	UNIQUE (kind, input)
);
CREATE INDEX IF NOT EXISTS failed_fetches_next_retry_idx ON failed_fetches (kind, next_retry_at);`

// EnsureSchema creates the dataset tables and the failed fetch table.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, t := range sqlrows.All {
		if _, err := db.Exec(ctx, t.CreateSQL()); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
	}
	if _, err := db.Exec(ctx, failedFetchesSchema); err != nil {
		return fmt.Errorf("create table failed_fetches: %w", err)
	}
	return nil
}
