// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"job_portal_backend/internal/feature/jobs/domain/entity"
	"job_portal_backend/internal/feature/jobs/usecase"
)

// CachingJobRepository decorates a JobRepository with Redis caching.
// Reads (List, FindByID) are cached; every write drops the whole namespace,
// since a single job can appear under any list key.
type CachingJobRepository struct {
	inner     usecase.JobRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.JobRepository = (*CachingJobRepository)(nil)

// NewCachingJobRepository decorates a JobRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "jobs".
func NewCachingJobRepository(rdb *redis.Client, ttl time.Duration, inner usecase.JobRepository, namespace string) *CachingJobRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "jobs"
	}
	return &CachingJobRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create stores the job and invalidates cached listings.
func (c *CachingJobRepository) Create(ctx context.Context, job *entity.Job) error {
	if err := c.inner.Create(ctx, job); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update saves the job and invalidates cached entries.
func (c *CachingJobRepository) Update(ctx context.Context, job *entity.Job) error {
	if err := c.inner.Update(ctx, job); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes the job and invalidates cached entries.
func (c *CachingJobRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID retrieves a job, checking cache first then falling back to the database.
// Misses (ErrJobNotFound) are not cached.
func (c *CachingJobRepository) FindByID(ctx context.Context, id uint) (*entity.Job, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := fmt.Sprintf("%s:id:%d", c.namespace, id)
	var cached entity.Job
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	job, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, job)
	return job, nil
}

// List retrieves jobs, checking cache first then falling back to the database.
func (c *CachingJobRepository) List(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error) {
	if c.rdb == nil {
		return c.inner.List(ctx, filter)
	}

	key := c.listKey(filter)
	var cached []entity.Job
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	out, err := c.inner.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// load reads and decodes a cache entry. Corrupted entries are deleted.
func (c *CachingJobRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store writes a cache entry (best effort).
func (c *CachingJobRepository) store(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate drops every key in the namespace (best effort).
func (c *CachingJobRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// listKey generates a cache key for a list query. Title and location match
// case-insensitively, so they are folded to lower case.
func (c *CachingJobRepository) listKey(f entity.JobFilter) string {
	return fmt.Sprintf("%s:list:%s:%s:%s:%d",
		c.namespace,
		safe(strings.ToLower(strings.TrimSpace(f.Title))),
		safe(strings.ToLower(strings.TrimSpace(f.Location))),
		safe(strings.TrimSpace(f.Category)),
		f.EmployerID,
	)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingJobRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
