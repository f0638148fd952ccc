package repository

import "context"

// QueueRepository defines the interface for a FIFO queue of job ids.
type QueueRepository interface {
	// Push adds a job id to the end of the queue.
	Push(ctx context.Context, jobID string) error
	// Pop removes and returns a job id from the front of the queue.
	// It returns ErrNotFound when the queue is empty.
	Pop(ctx context.Context) (string, error)
	// Size returns the current number of items in the queue.
	Size(ctx context.Context) (int64, error)
}
