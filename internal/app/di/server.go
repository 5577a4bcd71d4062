package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"job_portal_backend/internal/app/router"
	appadapters "job_portal_backend/internal/feature/applications/adapters"
	apphandler "job_portal_backend/internal/feature/applications/transport/handler"
	appusecase "job_portal_backend/internal/feature/applications/usecase"
	authadapters "job_portal_backend/internal/feature/auth/adapters"
	authhandler "job_portal_backend/internal/feature/auth/transport/handler"
	authusecase "job_portal_backend/internal/feature/auth/usecase"
	jobhandler "job_portal_backend/internal/feature/jobs/transport/handler"
	jobusecase "job_portal_backend/internal/feature/jobs/usecase"
	uploadhandler "job_portal_backend/internal/feature/uploads/transport/handler"
	uploadusecase "job_portal_backend/internal/feature/uploads/usecase"
	"job_portal_backend/internal/platform/config"
	"job_portal_backend/internal/platform/events"
	platformhandler "job_portal_backend/internal/platform/http/handler"
	"job_portal_backend/internal/platform/http/middleware"
	jwtmw "job_portal_backend/internal/platform/jwt"
	"job_portal_backend/internal/shared/ratelimiter"
)

// Infra holds the shared clients the HTTP server is built from.
// Redis, Publisher and Resumes are optional.
type Infra struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher events.Publisher
	Resumes   uploadusecase.ObjectStore
	Tokens    *jwtmw.Generator
}

// NewRouterDeps wires repositories, usecases and handlers into router.Deps.
func NewRouterDeps(cfg *config.Config, in Infra) (router.Deps, error) {
	sqlDB, err := in.DB.DB()
	if err != nil {
		return router.Deps{}, err
	}

	// Repository
	userRepo := authadapters.NewUserRepository(in.DB)
	jobRepo := NewJobRepository(in.DB, in.Redis, cfg.JobCacheTTL)
	appRepo := appadapters.NewApplicationRepository(in.DB)

	var publisher appusecase.EventPublisher
	if in.Publisher != nil {
		publisher = appadapters.NewEventPublisher(in.Publisher)
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, in.Tokens)
	jobsUC := jobusecase.NewJobsUsecase(jobRepo)
	appsUC := appusecase.NewApplicationsUsecase(appRepo, publisher)

	deps := router.Deps{
		Auth:         authhandler.NewAuthHandler(authUC),
		Jobs:         jobhandler.NewJobHandler(jobsUC),
		Applications: apphandler.NewApplicationHandler(appsUC),
		Health:       platformhandler.NewHealth(sqlDB),
		Tokens:       in.Tokens,
		AuthRateLimit: middleware.RateLimit(
			in.Redis,
			ratelimiter.NewKeyedLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow),
			cfg.AuthRateLimit,
			cfg.AuthRateWindow,
			middleware.KeyByIPAndPath(),
		),
		CORSOrigins: cfg.CORSOrigins(),
		AccessLog:   cfg.HTTPLogEnabled,
	}
	if in.Resumes != nil {
		deps.Uploads = uploadhandler.NewUploadHandler(uploadusecase.NewUploadsUsecase(in.Resumes))
	}
	return deps, nil
}
