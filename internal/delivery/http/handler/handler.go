package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/user/filmdata-service/internal/delivery/http/request"
	"github.com/user/filmdata-service/internal/delivery/http/response"
	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/repository"
	"github.com/user/filmdata-service/internal/usecase"
)

// HealthCheck pings one backing service.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	jobs   usecase.JobManager
	checks map[string]HealthCheck
	logger *zap.Logger
}

func NewHandler(jobs usecase.JobManager, checks map[string]HealthCheck, logger *zap.Logger) *Handler {
	return &Handler{
		jobs:   jobs,
		checks: checks,
		logger: logger,
	}
}

func (h *Handler) HandleSubmitJob(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	job, err := h.jobs.Submit(r.Context(), entity.Kind(req.Kind), req.Inputs)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownKind) || errors.Is(err, usecase.ErrEmptyBatch) {
			h.writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("Failed to submit job", zap.String("kind", req.Kind), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusAccepted, response.SubmitJobResponse{
		Status:  "success",
		Message: "Job submitted",
		JobID:   job.ID,
	})
}

func (h *Handler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeJSONError(w, "Job not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to get job", zap.String("job_id", id), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.FromJob(job))
}

func (h *Handler) HandleRetryJobs(w http.ResponseWriter, r *http.Request) {
	var req request.RetryJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Limit <= 0 {
		req.Limit = request.DefaultRetryLimit
	}

	job, err := h.jobs.RetryFailed(r.Context(), entity.Kind(req.Kind), req.Limit)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownKind) {
			h.writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("Failed to retry failed fetches", zap.String("kind", req.Kind), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if job == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusAccepted, response.SubmitJobResponse{
		Status:  "success",
		Message: "Retry job submitted",
		JobID:   job.ID,
	})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			status[name] = "unhealthy"
			healthy = false
			h.logger.Error("Health check failed", zap.String("service", name), zap.Error(err))
			continue
		}
		status[name] = "healthy"
	}

	if !healthy {
		h.writeJSON(w, http.StatusServiceUnavailable, status)
		return
	}
	h.writeJSON(w, http.StatusOK, status)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
