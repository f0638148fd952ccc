package repository

import (
	"context"

	"github.com/user/filmdata-service/internal/entity"
)

// RowRepository defines the interface for persisting assembled rows. Rows are
// upserted by film id; rows without an id are skipped.
type RowRepository interface {
	SaveFilms(ctx context.Context, rows []entity.FilmRow) error
	SaveRatings(ctx context.Context, rows []entity.RatingsRow) error
	SaveCrew(ctx context.Context, rows []entity.CrewRow) error
}
