package entity

import "time"

// FailedFetch mirrors the `failed_fetches` PostgreSQL table schema.
type FailedFetch struct {
	ID                   int64
	Input                string
	Kind                 Kind
	ErrorCode            string
	FailureReason        string
	HTTPStatusCode       int
	LastAttemptTimestamp time.Time
	RetryCount           int
	NextRetryAt          time.Time
}
