// Package router はHTTPルーティングとグローバルミドルウェアを組み立てます。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apphandler "job_portal_backend/internal/feature/applications/transport/handler"
	authhandler "job_portal_backend/internal/feature/auth/transport/handler"
	jobhandler "job_portal_backend/internal/feature/jobs/transport/handler"
	uploadhandler "job_portal_backend/internal/feature/uploads/transport/handler"
	"job_portal_backend/internal/platform/http/middleware"
	jwtmw "job_portal_backend/internal/platform/jwt"
	"job_portal_backend/internal/platform/validation"
)

// Deps はルーターが必要とするハンドラーとミドルウェアです。
type Deps struct {
	Auth         *authhandler.AuthHandler
	Jobs         *jobhandler.JobHandler
	Applications *apphandler.ApplicationHandler
	// Uploads が nil の場合、アップロードのルートは登録しません。
	Uploads *uploadhandler.UploadHandler
	Health  gin.HandlerFunc

	Tokens jwtmw.TokenParser
	// AuthRateLimit は /api/register と /api/login に適用します。nil なら制限なし。
	AuthRateLimit gin.HandlerFunc

	CORSOrigins []string
	AccessLog   bool
}

// NewRouter はすべてのルートを登録したgin.Engineを返します。
func NewRouter(d Deps) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if d.AccessLog {
		r.Use(middleware.AccessLog(nil))
	}
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 導通確認用
	if d.Health != nil {
		r.GET("/healthz", d.Health)
		r.HEAD("/healthz", d.Health)
		r.OPTIONS("/healthz", d.Health)
	}

	api := r.Group("/api")

	// 認証不要
	authRoutes := api.Group("")
	if d.AuthRateLimit != nil {
		authRoutes.Use(d.AuthRateLimit)
	}
	authRoutes.POST("/register", d.Auth.Register)
	authRoutes.POST("/login", d.Auth.Login)

	api.GET("/jobs", d.Jobs.List)
	api.GET("/jobs/:id", d.Jobs.Get)

	// 認証必須のルート
	auth := api.Group("")
	auth.Use(jwtmw.AuthRequired(d.Tokens))
	{
		auth.POST("/jobs", d.Jobs.Create)
		auth.PATCH("/jobs/:id", d.Jobs.Update)
		auth.DELETE("/jobs/:id", d.Jobs.Delete)
		auth.GET("/employer/jobs", d.Jobs.ListMine)

		auth.POST("/jobs/:id/apply", d.Applications.Apply)
		auth.GET("/applications", d.Applications.List)
		auth.GET("/applications/:id", d.Applications.Get)
		auth.PATCH("/applications/:id", d.Applications.UpdateStatus)

		if d.Uploads != nil {
			auth.POST("/uploads/resume", d.Uploads.UploadResume)
		}
	}

	return r
}
