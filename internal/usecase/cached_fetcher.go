package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/user/filmdata-service/internal/repository"
)

// CachedFetcher serves page bodies from a PageCache before asking the
// underlying fetcher. Cache errors never fail a fetch.
type CachedFetcher struct {
	next   repository.PageFetcher
	cache  repository.PageCache
	logger *zap.Logger
}

func NewCachedFetcher(next repository.PageFetcher, cache repository.PageCache, logger *zap.Logger) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache, logger: logger}
}

func (f *CachedFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := f.cache.Get(ctx, url)
	if err == nil {
		f.logger.Debug("Page cache hit", zap.String("url", url))
		return body, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		f.logger.Warn("Page cache lookup failed", zap.String("url", url), zap.Error(err))
	}

	body, err = f.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := f.cache.Put(ctx, url, body); err != nil {
		f.logger.Warn("Failed to cache page", zap.String("url", url), zap.Error(err))
	}
	return body, nil
}
