package repository

import (
	"context"

	"github.com/user/filmdata-service/internal/entity"
)

// JobRepository stores job documents.
type JobRepository interface {
	Save(ctx context.Context, job *entity.Job) error
	// Get returns ErrNotFound for unknown or expired jobs.
	Get(ctx context.Context, id string) (*entity.Job, error)
}
