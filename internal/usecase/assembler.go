package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/user/filmdata-service/internal/builder"
	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/extractor"
	"github.com/user/filmdata-service/internal/repository"
	"github.com/user/filmdata-service/pkg/metrics"
)

var tracer = otel.Tracer("filmdata/usecase")

var errNoMovieSource = errors.New("movie source is not configured")

// UpstreamStatusError reports a movie API answer outside the 2xx range. The
// record keeps its row, carrying only the requested id.
type UpstreamStatusError struct {
	ID         string
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("movie %s: upstream status %d", e.ID, e.StatusCode)
}

// Assembler drives fetch and build across a batch of inputs. Inputs are
// processed one at a time and every input yields exactly one record.
type Assembler struct {
	Movies  repository.MovieSource
	Pages   repository.PageFetcher
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Now stamps ratings rows; defaults to time.Now.
	Now func() time.Time
}

// buildFunc produces the row for one input. A non-nil error marks the input
// failed unless it is an *UpstreamStatusError.
type buildFunc[R entity.Row] func(ctx context.Context, input string) (R, error)

// seedFunc returns the row a failed input is reported with: whatever is known
// from the input alone.
type seedFunc[R entity.Row] func(input string) R

func filmSeed(id string) entity.FilmRow {
	return entity.FilmRow{ID: entity.Value(id)}
}

func ratingsSeed(string) entity.RatingsRow {
	return entity.RatingsRow{}
}

func crewSeed(url string) entity.CrewRow {
	row := entity.CrewRow{}
	if id, ok := entity.FilmIDFromURL(url); ok {
		row.ID = entity.Value(string(id))
	}
	return row
}

// Films looks every id up in the movie API.
func (a *Assembler) Films(ctx context.Context, ids []string) *entity.Table[entity.FilmRow] {
	return assemble(ctx, a, entity.KindFilms, entity.FilmColumns, ids, filmSeed,
		func(ctx context.Context, id string) (entity.FilmRow, error) {
			if a.Movies == nil {
				return filmSeed(id), errNoMovieSource
			}
			resp, err := a.Movies.Movie(ctx, id)
			if err != nil {
				return filmSeed(id), err
			}
			row := builder.FilmRow(id, resp)
			if !resp.OK() {
				return row, &UpstreamStatusError{ID: id, StatusCode: resp.StatusCode}
			}
			return row, nil
		})
}

// Ratings fetches and reads every title page.
func (a *Assembler) Ratings(ctx context.Context, urls []string) *entity.Table[entity.RatingsRow] {
	now := a.now()
	return assemble(ctx, a, entity.KindRatings, entity.RatingsColumns, urls, ratingsSeed,
		func(ctx context.Context, url string) (entity.RatingsRow, error) {
			doc, err := a.page(ctx, url)
			if err != nil {
				return ratingsSeed(url), err
			}
			return builder.RatingsRow(doc, now), nil
		})
}

// Crew fetches and reads every full credits page.
func (a *Assembler) Crew(ctx context.Context, urls []string) *entity.Table[entity.CrewRow] {
	return assemble(ctx, a, entity.KindCrew, entity.CrewColumns, urls, crewSeed,
		func(ctx context.Context, url string) (entity.CrewRow, error) {
			doc, err := a.page(ctx, url)
			if err != nil {
				return crewSeed(url), err
			}
			return builder.CrewRow(doc, url), nil
		})
}

func (a *Assembler) page(ctx context.Context, url string) (*extractor.Document, error) {
	if a.Pages == nil {
		return nil, errors.New("page fetcher is not configured")
	}
	body, err := a.Pages.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return extractor.Parse(body)
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Assembler) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

func assemble[R entity.Row](
	ctx context.Context,
	a *Assembler,
	kind entity.Kind,
	columns []string,
	inputs []string,
	seed seedFunc[R],
	build buildFunc[R],
) *entity.Table[R] {
	log := a.logger().With(zap.String("kind", string(kind)))
	ctx, span := tracer.Start(ctx, "assemble."+string(kind))
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(inputs)))

	table := entity.NewTable[R](kind, columns, len(inputs))
	table.StartedAt = a.now()

	for _, input := range inputs {
		var rec entity.Record[R]
		if err := ctx.Err(); err != nil {
			rec = entity.Record[R]{
				Input:     input,
				Row:       seed(input),
				Status:    entity.StatusFailed,
				ErrorCode: entity.ErrCodeCanceled,
				ErrorMsg:  err.Error(),
			}
		} else {
			rec = assembleOne(ctx, input, build)
		}

		if rec.Status == entity.StatusFailed && rec.ErrorCode != entity.ErrCodeCanceled {
			log.Warn("Input failed", zap.String("input", input),
				zap.String("error_code", rec.ErrorCode), zap.String("error", rec.ErrorMsg))
		}
		a.Metrics.IncRow(string(kind), string(rec.Status))
		table.Append(rec)
	}

	table.FinishedAt = a.now()
	a.Metrics.ObserveBatch(string(kind), table.FinishedAt.Sub(table.StartedAt))

	report := table.Report()
	span.SetAttributes(
		attribute.Int("batch.failed", report.Failed),
		attribute.Int("batch.missing", report.Missing),
	)
	log.Info("Batch assembled",
		zap.Int("total", report.Total),
		zap.Int("complete", report.Complete),
		zap.Int("partial", report.Partial),
		zap.Int("missing", report.Missing),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", table.FinishedAt.Sub(table.StartedAt)),
	)
	return table
}

func assembleOne[R entity.Row](ctx context.Context, input string, build buildFunc[R]) entity.Record[R] {
	ctx, span := tracer.Start(ctx, "assemble.input")
	defer span.End()
	span.SetAttributes(attribute.String("input", input))

	row, err := build(ctx, input)
	rec := entity.Record[R]{Input: input, Row: row}

	var upstream *UpstreamStatusError
	switch {
	case err == nil:
		rec.Status = builder.Status(row)
	case errors.As(err, &upstream):
		rec.Status = builder.Status(row)
		rec.ErrorCode = entity.ErrCodeUpstreamStatus
		rec.ErrorMsg = err.Error()
		rec.HTTPStatus = upstream.StatusCode
	default:
		rec.Status = entity.StatusFailed
		rec.ErrorCode, rec.HTTPStatus = classifyError(ctx, err)
		rec.ErrorMsg = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, rec.ErrorCode)
	}
	span.SetAttributes(attribute.String("row.status", string(rec.Status)))
	return rec
}

// classifyError maps a document-level failure to its error code. Only the
// batch context ending counts as canceled; request timeouts are fetch failures.
func classifyError(ctx context.Context, err error) (string, int) {
	var status *repository.StatusError
	switch {
	case errors.As(err, &status):
		return entity.ErrCodeHTTPStatus, status.StatusCode
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return entity.ErrCodeCanceled, 0
	default:
		return entity.ErrCodeFetchFailed, 0
	}
}
