package repository

import "context"

// PageFetcher defines the contract for obtaining the raw markup of a page.
type PageFetcher interface {
	// Fetch returns the body of a 2xx response for url.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
