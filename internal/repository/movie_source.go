package repository

import (
	"context"

	"github.com/user/filmdata-service/internal/entity"
)

// MovieSource defines the contract for the structured movie API.
type MovieSource interface {
	// Movie looks up one film. A non-2xx upstream status is reported through
	// the response, not as an error.
	Movie(ctx context.Context, id string) (entity.MovieResponse, error)
}
