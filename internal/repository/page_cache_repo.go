package repository

import "context"

// PageCache keeps recently fetched page bodies so a retried job does not
// download them again.
type PageCache interface {
	// Get returns ErrNotFound on a miss.
	Get(ctx context.Context, url string) ([]byte, error)
	Put(ctx context.Context, url string, body []byte) error
}
