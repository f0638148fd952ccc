package response

import (
	"time"

	"github.com/user/filmdata-service/internal/entity"
)

type SubmitJobResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

// JobStatusResponse is a DTO for job status, mirroring entity.Job
type JobStatusResponse struct {
	JobID     string              `json:"job_id"`
	Kind      string              `json:"kind"`
	Status    string              `json:"status"` // "queued", "running", "done", "failed"
	Inputs    int                 `json:"inputs"`
	Report    *entity.BatchReport `json:"report,omitempty"`
	Error     string              `json:"error,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func FromJob(job *entity.Job) JobStatusResponse {
	return JobStatusResponse{
		JobID:     job.ID,
		Kind:      string(job.Kind),
		Status:    string(job.Status),
		Inputs:    len(job.Inputs),
		Report:    job.Report,
		Error:     job.Error,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}
