package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/filmdata-service/internal/entity"
	"github.com/user/filmdata-service/internal/repository"
)

const jobKeyPrefix = "filmdata:job:"

// JobRepoImpl stores job documents as JSON strings that expire after ttl.
type JobRepoImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewJobRepo(client *redis.Client, ttl time.Duration) *JobRepoImpl {
	return &JobRepoImpl{client: client, ttl: ttl}
}

func (r *JobRepoImpl) Save(ctx context.Context, job *entity.Job) error {
	b, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, jobKeyPrefix+job.ID, b, r.ttl).Err()
}

func (r *JobRepoImpl) Get(ctx context.Context, id string) (*entity.Job, error) {
	b, err := r.client.Get(ctx, jobKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var job entity.Job
	if err := json.Unmarshal(b, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
