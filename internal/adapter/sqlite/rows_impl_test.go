package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/filmdata-service/internal/entity"
)

func setup(t *testing.T) (*sql.DB, *RowRepoImpl) {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, NewRowRepo(db)
}

func TestSaveCrewUpserts(t *testing.T) {
	db, repo := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveCrew(ctx, []entity.CrewRow{
		{ID: entity.Value("tt0133093"), Editor: entity.Value("Zach Staenberg")},
		{Editor: entity.Value("no id, skipped")},
	}))
	require.NoError(t, repo.SaveCrew(ctx, []entity.CrewRow{
		{ID: entity.Value("tt0133093"), Editor: entity.Value("Zach Staenberg"), Composer: entity.Value("Don Davis")},
	}))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM crew").Scan(&count))
	assert.Equal(t, 1, count)

	var composer, actors sql.NullString
	require.NoError(t, db.QueryRow("SELECT composer, actors FROM crew WHERE id = ?", "tt0133093").Scan(&composer, &actors))
	assert.Equal(t, "Don Davis", composer.String)
	assert.False(t, actors.Valid)
}

func TestSaveFilmsAndRatings(t *testing.T) {
	db, repo := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveFilms(ctx, []entity.FilmRow{
		{ID: entity.Value("tt0133093"), Title: entity.Value("The Matrix"), Budget: entity.Value("63000000")},
	}))
	require.NoError(t, repo.SaveRatings(ctx, []entity.RatingsRow{
		{ID: entity.Value("tt0133093"), IMDbRating: entity.Value("8.7"), LastUpdated: entity.Value("2024-05-01")},
	}))
	require.NoError(t, repo.SaveRatings(ctx, nil))

	var title string
	require.NoError(t, db.QueryRow("SELECT title FROM films WHERE id = ?", "tt0133093").Scan(&title))
	assert.Equal(t, "The Matrix", title)

	var rating, updated string
	require.NoError(t, db.QueryRow("SELECT imdb_rating, last_updated FROM ratings WHERE id = ?", "tt0133093").Scan(&rating, &updated))
	assert.Equal(t, "8.7", rating)
	assert.Equal(t, "2024-05-01", updated)
}
