// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	jobadapters "job_portal_backend/internal/feature/jobs/adapters"
	jobusecase "job_portal_backend/internal/feature/jobs/usecase"
	"job_portal_backend/internal/platform/cache"
)

// NewJobRepository creates a JobRepository implementation.
// If Redis is available, the gorm repository is wrapped with the Redis cache.
func NewJobRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) jobusecase.JobRepository {
	repo := jobadapters.NewJobRepository(db)
	if rdb == nil {
		logrus.Info("job cache disabled")
		return repo
	}
	return cache.NewCachingJobRepository(rdb, ttl, repo, "jobs")
}
