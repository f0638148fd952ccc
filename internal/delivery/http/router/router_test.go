package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/user/filmdata-service/internal/delivery/http/handler"
	"github.com/user/filmdata-service/internal/delivery/http/response"
	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/repository"
	"github.com/user/filmdata-service/internal/usecase"
	"github.com/user/filmdata-service/pkg/metrics"
)

type stubJobs struct {
	jobs       map[string]*entity.Job
	submitted  []string
	retryLimit int
	retryJob   *entity.Job
	err        error
}

func (s *stubJobs) Submit(_ context.Context, kind entity.Kind, inputs []string) (*entity.Job, error) {
	if s.err != nil {
		return nil, s.err
	}
	if !kind.Valid() {
		return nil, usecase.ErrUnknownKind
	}
	if len(inputs) == 0 {
		return nil, usecase.ErrEmptyBatch
	}
	s.submitted = inputs
	return &entity.Job{ID: "job-1", Kind: kind, Inputs: inputs, Status: entity.JobQueued}, nil
}

func (s *stubJobs) Get(_ context.Context, id string) (*entity.Job, error) {
	if job, ok := s.jobs[id]; ok {
		return job, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubJobs) RetryFailed(_ context.Context, _ entity.Kind, limit int) (*entity.Job, error) {
	s.retryLimit = limit
	return s.retryJob, nil
}

func newTestServer(t *testing.T, jobs *stubJobs, checks map[string]handler.HealthCheck) (*httptest.Server, *metrics.Metrics) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	logger := zaptest.NewLogger(t)
	srv := httptest.NewServer(New(handler.NewHandler(jobs, checks, logger), logger, m, reg))
	t.Cleanup(srv.Close)
	return srv, m
}

func TestSubmitJob(t *testing.T) {
	jobs := &stubJobs{}
	srv, m := newTestServer(t, jobs, nil)

	resp, err := http.Post(srv.URL+"/api/jobs", "application/json",
		strings.NewReader(`{"kind":"crew","inputs":["https://www.imdb.com/title/tt0133093/fullcredits"]}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	var body response.SubmitJobResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "job-1", body.JobID)
	assert.Equal(t, []string{"https://www.imdb.com/title/tt0133093/fullcredits"}, jobs.submitted)

	// The middleware records after the response is flushed.
	assert.Eventually(t, func() bool {
		return testutil.CollectAndCount(m.HTTPRequestsTotal) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSubmitJobRejectsBadInput(t *testing.T) {
	srv, _ := newTestServer(t, &stubJobs{}, nil)

	cases := map[string]string{
		"malformed":    `{"kind":`,
		"unknown kind": `{"kind":"posters","inputs":["x"]}`,
		"no inputs":    `{"kind":"films","inputs":[]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/jobs", "application/json", strings.NewReader(payload))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSubmitJobInternalError(t *testing.T) {
	srv, _ := newTestServer(t, &stubJobs{err: errors.New("redis down")}, nil)

	resp, err := http.Post(srv.URL+"/api/jobs", "application/json", strings.NewReader(`{"kind":"films","inputs":["603"]}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetJob(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	jobs := &stubJobs{jobs: map[string]*entity.Job{
		"abc": {
			ID:        "abc",
			Kind:      entity.KindRatings,
			Inputs:    []string{"a", "b"},
			Status:    entity.JobDone,
			Report:    &entity.BatchReport{Kind: entity.KindRatings, Total: 2, Complete: 1, Failed: 1, FailedInputs: []string{"b"}},
			CreatedAt: created,
			UpdatedAt: created,
		},
	}}
	srv, m := newTestServer(t, jobs, nil)

	resp, err := http.Get(srv.URL + "/api/jobs/abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body response.JobStatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "done", body.Status)
	assert.Equal(t, 2, body.Inputs)
	require.NotNil(t, body.Report)
	assert.Equal(t, []string{"b"}, body.Report.FailedInputs)

	resp, err = http.Get(srv.URL + "/api/jobs/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/jobs/{id}", "404")) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRetryJobs(t *testing.T) {
	jobs := &stubJobs{}
	srv, _ := newTestServer(t, jobs, nil)

	resp, err := http.Post(srv.URL+"/api/jobs/retry", "application/json", strings.NewReader(`{"kind":"crew"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 100, jobs.retryLimit)

	jobs.retryJob = &entity.Job{ID: "retry-1"}
	resp, err = http.Post(srv.URL+"/api/jobs/retry", "application/json", strings.NewReader(`{"kind":"crew","limit":5}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, 5, jobs.retryLimit)
}

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	srv, _ := newTestServer(t, &stubJobs{}, map[string]handler.HealthCheck{"postgres": ok, "redis": ok})
	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	srv, _ = newTestServer(t, &stubJobs{}, map[string]handler.HealthCheck{"postgres": ok, "redis": down})
	resp, err = http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "unhealthy", body["redis"])
	assert.Equal(t, "healthy", body["postgres"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, m := newTestServer(t, &stubJobs{}, nil)
	m.IncRow("films", "complete")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
