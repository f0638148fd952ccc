package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/repository"
	"github.com/user/filmdata-service/pkg/metrics"
)

// finalizeTimeout bounds the writes that record a job's outcome once its
// context has ended.
const finalizeTimeout = 30 * time.Second

// JobWorker defines the interface for the background job loop.
type JobWorker interface {
	// ProcessNext runs one queued job. It reports false when the queue was empty.
	ProcessNext(ctx context.Context) (bool, error)
	// Run drains the queue every interval until ctx is done.
	Run(ctx context.Context, interval time.Duration)
}

type jobWorkerUseCase struct {
	queueRepo  repository.QueueRepository
	jobRepo    repository.JobRepository
	rowRepo    repository.RowRepository
	failedRepo repository.FailedFetchRepository
	assembler  *Assembler
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewJobWorker creates a new instance of the job worker use case.
func NewJobWorker(
	queueRepo repository.QueueRepository,
	jobRepo repository.JobRepository,
	rowRepo repository.RowRepository,
	failedRepo repository.FailedFetchRepository,
	assembler *Assembler,
	m *metrics.Metrics,
	logger *zap.Logger,
) JobWorker {
	return &jobWorkerUseCase{
		queueRepo:  queueRepo,
		jobRepo:    jobRepo,
		rowRepo:    rowRepo,
		failedRepo: failedRepo,
		assembler:  assembler,
		metrics:    m,
		logger:     logger,
	}
}

func (uc *jobWorkerUseCase) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	uc.logger.Info("Job worker started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("Job worker stopped")
			return
		case <-ticker.C:
			for {
				ok, err := uc.ProcessNext(ctx)
				if err != nil {
					uc.logger.Error("Failed to process job", zap.Error(err))
				}
				if !ok || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

func (uc *jobWorkerUseCase) ProcessNext(ctx context.Context) (bool, error) {
	id, err := uc.queueRepo.Pop(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Queue is empty, which is a normal state.
			return false, nil
		}
		return false, fmt.Errorf("failed to pop job from queue: %w", err)
	}
	defer func() {
		finalCtx, cancel := finalizeContext(ctx)
		defer cancel()
		uc.updateQueueGauge(finalCtx)
	}()

	job, err := uc.jobRepo.Get(ctx, id)
	if err != nil {
		return true, fmt.Errorf("failed to load job %s: %w", id, err)
	}

	log := uc.logger.With(zap.String("job_id", job.ID), zap.String("kind", string(job.Kind)))
	log.Info("Processing job", zap.Int("inputs", len(job.Inputs)))

	job.Status = entity.JobRunning
	job.UpdatedAt = time.Now().UTC()
	if err := uc.jobRepo.Save(ctx, job); err != nil {
		log.Warn("Failed to mark job running", zap.Error(err))
	}

	report, runErr := uc.run(ctx, job)
	if runErr == nil && ctx.Err() != nil {
		// Rows fetched before the interruption are stored; the rest are
		// reported as canceled.
		runErr = fmt.Errorf("job interrupted: %w", ctx.Err())
	}
	job.Report = report
	job.UpdatedAt = time.Now().UTC()
	if runErr != nil {
		job.Status = entity.JobFailed
		job.Error = runErr.Error()
		log.Error("Job failed", zap.Error(runErr))
	} else {
		job.Status = entity.JobDone
		log.Info("Job finished", zap.Int("failed", report.Failed), zap.Int("missing", report.Missing))
	}

	finalCtx, cancel := finalizeContext(ctx)
	defer cancel()
	if err := uc.jobRepo.Save(finalCtx, job); err != nil {
		return true, fmt.Errorf("failed to save job %s: %w", job.ID, err)
	}
	return true, runErr
}

func (uc *jobWorkerUseCase) run(ctx context.Context, job *entity.Job) (*entity.BatchReport, error) {
	switch job.Kind {
	case entity.KindFilms:
		t := uc.assembler.Films(ctx, job.Inputs)
		return persist(ctx, uc, t, uc.rowRepo.SaveFilms)
	case entity.KindRatings:
		t := uc.assembler.Ratings(ctx, job.Inputs)
		return persist(ctx, uc, t, uc.rowRepo.SaveRatings)
	case entity.KindCrew:
		t := uc.assembler.Crew(ctx, job.Inputs)
		return persist(ctx, uc, t, uc.rowRepo.SaveCrew)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, job.Kind)
	}
}

// finalizeContext keeps ctx's values but not its cancellation, so a job
// interrupted by shutdown still records what it obtained.
func finalizeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
}

// persist saves the obtained rows and updates the failed fetch bookkeeping.
// It runs on a finalize context since the assembler has already finished.
func persist[R entity.Row](
	ctx context.Context,
	uc *jobWorkerUseCase,
	t *entity.Table[R],
	save func(context.Context, []R) error,
) (*entity.BatchReport, error) {
	ctx, cancel := finalizeContext(ctx)
	defer cancel()
	report := t.Report()

	rows, unkeyed := t.Storable()
	for _, input := range unkeyed {
		uc.logger.Warn("Row has no film id, not stored",
			zap.String("kind", string(t.Kind)), zap.String("input", input))
	}
	if err := save(ctx, rows); err != nil {
		return &report, fmt.Errorf("failed to save %s rows: %w", t.Kind, err)
	}

	for _, rec := range t.Records {
		if rec.Status == entity.StatusFailed {
			if rec.ErrorCode == entity.ErrCodeCanceled {
				continue
			}
			uc.handleFailure(ctx, t.Kind, rec.Input, rec.ErrorCode, rec.ErrorMsg, rec.HTTPStatus)
			continue
		}
		if err := uc.failedRepo.Delete(ctx, t.Kind, rec.Input); err != nil {
			// This is not a critical error, just log it.
			uc.logger.Warn("Failed to delete failed fetch after success",
				zap.String("input", rec.Input), zap.Error(err))
		}
	}
	return &report, nil
}

func (uc *jobWorkerUseCase) handleFailure(ctx context.Context, kind entity.Kind, input, code, reason string, status int) {
	f := &entity.FailedFetch{
		Input:                input,
		Kind:                 kind,
		ErrorCode:            code,
		FailureReason:        reason,
		HTTPStatusCode:       status,
		LastAttemptTimestamp: time.Now().UTC(),
		// NextRetryAt is handled by the repository's SaveOrUpdate method
	}
	if err := uc.failedRepo.SaveOrUpdate(ctx, f); err != nil {
		uc.logger.Error("Failed to record failed fetch", zap.String("input", input), zap.Error(err))
	}
}

func (uc *jobWorkerUseCase) updateQueueGauge(ctx context.Context) {
	if size, err := uc.queueRepo.Size(ctx); err == nil {
		uc.metrics.SetJobsInQueue(size)
	}
}
