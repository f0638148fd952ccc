// Package sqlite stores dataset rows in a local SQLite file for the CLI.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/user/filmdata-service/internal/adapter/sqlrows"
	"github.com/user/filmdata-service/internal/entity"
)

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// OpenDB opens (creating when needed) the database at path and ensures the
// dataset tables exist. ":memory:" gives a private in-memory database.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
			return nil, wrapOpenDB(err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	// One connection keeps writers serialised and an in-memory db shared.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, wrapOpenDB(err)
		}
	}
	for _, t := range sqlrows.All {
		if _, err := db.Exec(t.CreateSQL()); err != nil {
			db.Close()
			return nil, wrapOpenDB(err)
		}
	}
	return db, nil
}

// RowRepoImpl provides a concrete implementation for the RowRepository interface using SQLite.
type RowRepoImpl struct {
	db *sql.DB
}

func NewRowRepo(db *sql.DB) *RowRepoImpl {
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

func upsert[R entity.Row](ctx context.Context, db *sql.DB, t sqlrows.Table, rows []R) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, t.UpsertSQL(sqlrows.SQLite))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, sqlrows.Args(row)...); err != nil {
			return fmt.Errorf("upsert %s %s: %w", t.Name, row.Key(), err)
		}
	}
	return tx.Commit()
}
