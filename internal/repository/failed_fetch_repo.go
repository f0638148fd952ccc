package repository

import (
	"context"

	"github.com/user/filmdata-service/internal/entity"
)

// FailedFetchRepository defines the interface for managing inputs whose
// document could not be obtained.
type FailedFetchRepository interface {
	// SaveOrUpdate creates or updates a record for a failed input.
	SaveOrUpdate(ctx context.Context, f *entity.FailedFetch) error
	// FindRetryable retrieves inputs of kind that are due for a retry.
	FindRetryable(ctx context.Context, kind entity.Kind, limit int) ([]*entity.FailedFetch, error)
	// Delete removes a record, typically after the input succeeded.
	Delete(ctx context.Context, kind entity.Kind, input string) error
}
