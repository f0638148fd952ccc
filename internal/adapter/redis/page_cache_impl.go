package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/filmdata-service/internal/repository"
	"github.com/user/filmdata-service/pkg/utils"
)

const pageKeyPrefix = "filmdata:page:"

// PageCacheImpl provides a concrete implementation for the PageCache interface using Redis.
type PageCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPageCache(client *redis.Client, ttl time.Duration) *PageCacheImpl {
	return &PageCacheImpl{client: client, ttl: ttl}
}

// generateKey hashes the URL so arbitrary query strings make safe keys.
func (r *PageCacheImpl) generateKey(url string) string {
	return fmt.Sprintf("%s%s", pageKeyPrefix, utils.HashURL(url))
}

func (r *PageCacheImpl) Get(ctx context.Context, url string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.generateKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	return b, err
}

func (r *PageCacheImpl) Put(ctx context.Context, url string, body []byte) error {
	return r.client.Set(ctx, r.generateKey(url), body, r.ttl).Err()
}
