package entity

import "time"

type JobStatus string

const (
	JobQueued  JobStatus = "queued"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Job is one submitted batch of inputs for a single dataset.
type Job struct {
	ID        string       `json:"id"`
	Kind      Kind         `json:"kind"`
	Inputs    []string     `json:"inputs"`
	Status    JobStatus    `json:"status"`
	Report    *BatchReport `json:"report,omitempty"`
	Error     string       `json:"error,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
