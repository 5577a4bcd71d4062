package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"job_portal_backend/internal/app/di"
	"job_portal_backend/internal/app/router"
	"job_portal_backend/internal/platform/config"
	"job_portal_backend/internal/platform/db"
	jwtmw "job_portal_backend/internal/platform/jwt"
	"job_portal_backend/internal/platform/logging"
	infraredis "job_portal_backend/internal/platform/redis"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	logger := logging.Setup(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	// db
	gdb, err := db.Open(db.ConfigFrom(cfg), cfg.DBConnTimeout)
	if err != nil {
		logger.Fatalf("failed to connect database: %v", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(gdb); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set. Running without cache; rate limits are per instance.")
	} else if tmp, err := infraredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		logger.Warn("Redis unavailable. Running without cache; rate limits are per instance.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.WithError(err).Error("failed to close Redis client")
			}
		}()
	}

	// Events
	publisher, err := di.NewPublisher(cfg)
	if err != nil {
		logger.Fatalf("failed to init events publisher: %v", err)
	}
	defer func() { _ = publisher.Close() }()

	// Resume storage
	infra := di.Infra{DB: gdb, Redis: rdb, Publisher: publisher}
	store, closeStore, err := di.NewResumeStore(context.Background(), cfg)
	if err != nil {
		logger.Fatalf("failed to init GCS client: %v", err)
	}
	if store != nil {
		infra.Resumes = store
		defer func() { _ = closeStore() }()
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := cfg.JWTSecret
	if secret == "" {
		logger.Warn("JWT_SECRET is not set. Using a development secret; set a strong secret in production.")
		secret = config.DevJWTSecret
	}
	infra.Tokens = jwtmw.NewGenerator(secret, cfg.JWTTTL)

	deps, err := di.NewRouterDeps(cfg, infra)
	if err != nil {
		logger.Fatalf("failed to wire handlers: %v", err)
	}
	r := router.NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
		return
	}
	logger.Info("server exited properly")
}
