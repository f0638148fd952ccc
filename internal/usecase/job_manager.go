package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/repository"
	"github.com/user/filmdata-service/pkg/metrics"
	"github.com/user/filmdata-service/pkg/utils"
)

var (
	ErrUnknownKind = errors.New("unknown dataset kind")
	ErrEmptyBatch  = errors.New("batch has no inputs")
)

// JobManager defines the interface for submitting and inspecting jobs.
type JobManager interface {
	Submit(ctx context.Context, kind entity.Kind, inputs []string) (*entity.Job, error)
	Get(ctx context.Context, id string) (*entity.Job, error)
	// RetryFailed resubmits inputs whose retry is due. It returns a nil job
	// when nothing is due.
	RetryFailed(ctx context.Context, kind entity.Kind, limit int) (*entity.Job, error)
}

type jobManagerUseCase struct {
	queueRepo  repository.QueueRepository
	jobRepo    repository.JobRepository
	failedRepo repository.FailedFetchRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewJobManager creates a new JobManager use case.
func NewJobManager(
	queueRepo repository.QueueRepository,
	jobRepo repository.JobRepository,
	failedRepo repository.FailedFetchRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) JobManager {
	return &jobManagerUseCase{
		queueRepo:  queueRepo,
		jobRepo:    jobRepo,
		failedRepo: failedRepo,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *jobManagerUseCase) Submit(ctx context.Context, kind entity.Kind, inputs []string) (*entity.Job, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	cleaned := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in = strings.TrimSpace(in); in != "" {
			cleaned = append(cleaned, in)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrEmptyBatch
	}

	now := uc.now().UTC()
	job := &entity.Job{
		ID:        jobID(kind, cleaned, now),
		Kind:      kind,
		Inputs:    cleaned,
		Status:    entity.JobQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.jobRepo.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}
	if err := uc.queueRepo.Push(ctx, job.ID); err != nil {
		return nil, fmt.Errorf("failed to queue job %s: %w", job.ID, err)
	}

	if size, err := uc.queueRepo.Size(ctx); err == nil {
		uc.metrics.SetJobsInQueue(size)
	}
	uc.logger.Info("Job queued", zap.String("job_id", job.ID),
		zap.String("kind", string(kind)), zap.Int("inputs", len(cleaned)))
	return job, nil
}

func (uc *jobManagerUseCase) Get(ctx context.Context, id string) (*entity.Job, error) {
	return uc.jobRepo.Get(ctx, id)
}

func (uc *jobManagerUseCase) RetryFailed(ctx context.Context, kind entity.Kind, limit int) (*entity.Job, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	due, err := uc.failedRepo.FindRetryable(ctx, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find retryable inputs: %w", err)
	}
	if len(due) == 0 {
		return nil, nil
	}
	inputs := make([]string, len(due))
	for i, f := range due {
		inputs[i] = f.Input
	}
	return uc.Submit(ctx, kind, inputs)
}

// jobID derives a short id from the batch and its submission time.
func jobID(kind entity.Kind, inputs []string, at time.Time) string {
	seed := string(kind) + "|" + strconv.FormatInt(at.UnixNano(), 10) + "|" + strings.Join(inputs, "\n")
	return utils.HashURL(seed)[:16]
}
