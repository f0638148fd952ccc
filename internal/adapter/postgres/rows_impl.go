package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/filmdata-service/internal/adapter/sqlrows"
	"github.com/user/filmdata-service/internal/entity"
)

// RowRepoImpl provides a concrete implementation for the RowRepository interface using PostgreSQL.
type RowRepoImpl struct {
	db *pgxpool.Pool
}

func NewRowRepo(db *pgxpool.Pool) *RowRepoImpl {
	return &RowRepoImpl{db: db}
}

func (r *RowRepoImpl) SaveFilms(ctx context.Context, rows []entity.FilmRow) error {
	return upsert(ctx, r.db, sqlrows.Films, sqlrows.Keyed(rows))
}

func (r *RowRepoImpl) SaveRatings(ctx context.Context, rows []entity.RatingsRow) error {
	return upsert(ctx, r.db, sqlrows.Ratings, sqlrows.Keyed(rows))
}

func (r *RowRepoImpl) SaveCrew(ctx context.Context, rows []entity.CrewRow) error {
	return upsert(ctx, r.db, sqlrows.Crew, sqlrows.Keyed(rows))
}

// upsert writes all rows in one transaction using a single batch.
func upsert[R entity.Row](ctx context.Context, db *pgxpool.Pool, t sqlrows.Table, rows []R) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := t.UpsertSQL(sqlrows.Postgres)
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(query, sqlrows.Args(row)...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
