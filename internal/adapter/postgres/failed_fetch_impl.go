package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/filmdata-service/internal/entity"
)

const (
	initialBackoff = 5 * time.Minute
	// Inputs that failed this many times are no longer offered for retry.
	maxRetries = 5
)

// FailedFetchRepoImpl provides a concrete implementation for the FailedFetchRepository interface using PostgreSQL.
type FailedFetchRepoImpl struct {
	db *pgxpool.Pool
}

func NewFailedFetchRepo(db *pgxpool.Pool) *FailedFetchRepoImpl {
	return &FailedFetchRepoImpl{db: db}
}

// saveFailedFetchSQL upserts one failed input. Each parameter appears once so
// Postgres deduces a single type for it: $7 is the first next_retry_at and $8
// the base backoff in seconds, doubled per earlier failure.
const saveFailedFetchSQL = `
	INSERT INTO failed_fetches (kind, input, error_code, failure_reason, http_status_code, last_attempt_timestamp, retry_count, next_retry_at)
	VALUES ($1, $2, $3, $4, $5, $6, 1, $7)
	ON CONFLICT (kind, input) DO UPDATE SET
		error_code = EXCLUDED.error_code,
		failure_reason = EXCLUDED.failure_reason,
		http_status_code = EXCLUDED.http_status_code,
		last_attempt_timestamp = EXCLUDED.last_attempt_timestamp,
		retry_count = failed_fetches.retry_count + 1,
		next_retry_at = EXCLUDED.last_attempt_timestamp
			+ make_interval(secs => $8::double precision * power(2, LEAST(failed_fetches.retry_count, 10)));
`

// SaveOrUpdate creates or updates a record for a failed input.
// It increments retry_count on conflict and doubles the wait before the next retry.
func (r *FailedFetchRepoImpl) SaveOrUpdate(ctx context.Context, f *entity.FailedFetch) error {
	last := f.LastAttemptTimestamp
	if last.IsZero() {
		last = time.Now()
	}
	_, err := r.db.Exec(ctx, saveFailedFetchSQL, saveFailedFetchArgs(f, last)...)
	return err
}

func saveFailedFetchArgs(f *entity.FailedFetch, last time.Time) []any {
	return []any{
		string(f.Kind),
		f.Input,
		f.ErrorCode,
		f.FailureReason,
		f.HTTPStatusCode,
		last,
		last.Add(initialBackoff),
		initialBackoff.Seconds(),
	}
}

// FindRetryable retrieves a batch of inputs that are due for a retry.
func (r *FailedFetchRepoImpl) FindRetryable(ctx context.Context, kind entity.Kind, limit int) ([]*entity.FailedFetch, error) {
	query := `
		SELECT id, kind, input, error_code, failure_reason, http_status_code, last_attempt_timestamp, retry_count, next_retry_at
		FROM failed_fetches
		WHERE kind = $1 AND next_retry_at <= NOW() AND retry_count < $2
		ORDER BY next_retry_at ASC
		LIMIT $3;
	`
	rows, err := r.db.Query(ctx, query, string(kind), maxRetries, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.FailedFetch
	for rows.Next() {
		var (
			f       entity.FailedFetch
			rowKind string
		)
		if err := rows.Scan(
			&f.ID,
			&rowKind,
			&f.Input,
			&f.ErrorCode,
			&f.FailureReason,
			&f.HTTPStatusCode,
			&f.LastAttemptTimestamp,
			&f.RetryCount,
			&f.NextRetryAt,
		); err != nil {
			return nil, err
		}
		f.Kind = entity.Kind(rowKind)
		out = append(out, &f)
	}

	return out, rows.Err()
}

// Delete removes a failed input record, typically after a successful fetch.
func (r *FailedFetchRepoImpl) Delete(ctx context.Context, kind entity.Kind, input string) error {
	query := `DELETE FROM failed_fetches WHERE kind = $1 AND input = $2;`
	_, err := r.db.Exec(ctx, query, string(kind), input)
	return err
}
