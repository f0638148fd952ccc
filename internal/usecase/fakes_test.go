package usecase

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/repository"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "extractor", "testdata", name))
	require.NoError(t, err)
	return b
}

type fakeMovies struct {
	responses map[string]entity.MovieResponse
	errs      map[string]error
	calls     []string
}

func (f *fakeMovies) Movie(_ context.Context, id string) (entity.MovieResponse, error) {
	f.calls = append(f.calls, id)
	if err := f.errs[id]; err != nil {
		return entity.MovieResponse{}, err
	}
	if resp, ok := f.responses[id]; ok {
		return resp, nil
	}
	return entity.MovieResponse{StatusCode: 404}, nil
}

type fakePages struct {
	bodies map[string][]byte
	errs   map[string]error
	calls  []string
	// cancel, when set, is invoked after the first fetch.
	cancel context.CancelFunc
}

func (f *fakePages) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	if f.cancel != nil {
		f.cancel()
	}
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	return f.bodies[url], nil
}

type memQueue struct {
	mu    sync.Mutex
	items []string
}

func (q *memQueue) Push(_ context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, id)
	return nil
}

func (q *memQueue) Pop(context.Context) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return "", repository.ErrNotFound
	}
	id := q.items[0]
	q.items = q.items[1:]
	return id, nil
}

func (q *memQueue) Size(context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.items)), nil
}

type memJobs struct {
	mu   sync.Mutex
	jobs map[string]entity.Job
	// saveErr is the context error seen by the latest Save.
	saveErr error
}

func newMemJobs() *memJobs {
	return &memJobs{jobs: make(map[string]entity.Job)}
}

func (r *memJobs) Save(ctx context.Context, job *entity.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveErr = ctx.Err()
	r.jobs[job.ID] = *job
	return nil
}

func (r *memJobs) Get(_ context.Context, id string) (*entity.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &job, nil
}

type memRows struct {
	films   []entity.FilmRow
	ratings []entity.RatingsRow
	crew    []entity.CrewRow
	err     error
	// ctxErrs holds the context error seen by every save.
	ctxErrs []error
}

func (r *memRows) SaveFilms(ctx context.Context, rows []entity.FilmRow) error {
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	r.films = append(r.films, rows...)
	return r.err
}

func (r *memRows) SaveRatings(ctx context.Context, rows []entity.RatingsRow) error {
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	r.ratings = append(r.ratings, rows...)
	return r.err
}

func (r *memRows) SaveCrew(ctx context.Context, rows []entity.CrewRow) error {
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	r.crew = append(r.crew, rows...)
	return r.err
}

type memFailed struct {
	entries map[string]entity.FailedFetch
	deleted []string
}

func newMemFailed() *memFailed {
	return &memFailed{entries: make(map[string]entity.FailedFetch)}
}

func (r *memFailed) key(kind entity.Kind, input string) string {
	return string(kind) + "|" + input
}

func (r *memFailed) SaveOrUpdate(ctx context.Context, f *entity.FailedFetch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k := r.key(f.Kind, f.Input)
	prev, ok := r.entries[k]
	if ok {
		f.RetryCount = prev.RetryCount + 1
	}
	r.entries[k] = *f
	return nil
}

func (r *memFailed) FindRetryable(_ context.Context, kind entity.Kind, limit int) ([]*entity.FailedFetch, error) {
	var out []*entity.FailedFetch
	for _, f := range r.entries {
		if f.Kind != kind || len(out) == limit {
			continue
		}
		f := f
		out = append(out, &f)
	}
	return out, nil
}

func (r *memFailed) Delete(ctx context.Context, kind entity.Kind, input string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.deleted = append(r.deleted, input)
	delete(r.entries, r.key(kind, input))
	return nil
}

type memPageCache struct {
	pages map[string][]byte
}

func (c *memPageCache) Get(_ context.Context, url string) ([]byte, error) {
	b, ok := c.pages[url]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (c *memPageCache) Put(_ context.Context, url string, body []byte) error {
	c.pages[url] = body
	return nil
}
