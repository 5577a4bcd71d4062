// Package handler はapplicationsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job_portal_backend/internal/api"
	"job_portal_backend/internal/domain/access"
	"job_portal_backend/internal/feature/applications/domain/entity"
	"job_portal_backend/internal/feature/applications/transport/http/dto"
	"job_portal_backend/internal/feature/applications/usecase"
	jwtmw "job_portal_backend/internal/platform/jwt"
	"job_portal_backend/internal/platform/validation"
)

// ApplicationsUsecase は応募操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ApplicationsUsecase interface {
	Apply(ctx context.Context, caller access.Caller, jobID uint, sub entity.Submission) (*entity.Application, error)
	List(ctx context.Context, caller access.Caller, userID, jobID uint) ([]entity.Application, error)
	Get(ctx context.Context, caller access.Caller, id uint) (*entity.Application, error)
	UpdateStatus(ctx context.Context, caller access.Caller, id uint, status entity.Status) (*entity.Application, error)
}

// ApplicationHandler は応募のHTTPリクエストを処理します。
type ApplicationHandler struct {
	uc ApplicationsUsecase
}

// NewApplicationHandler は指定されたusecaseでApplicationHandlerの新しいインスタンスを生成します。
func NewApplicationHandler(uc ApplicationsUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Apply は求人への応募を受け付けます。
//
// エンドポイント: POST /api/jobs/:id/apply（jobseekerのみ）
func (h *ApplicationHandler) Apply(c *gin.Context) {
	caller, ok := jwtmw.RequireCaller(c)
	if !ok {
		return
	}
	jobID, ok := parseID(c, "invalid job id")
	if !ok {
		return
	}
	var req dto.ApplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request", Details: validation.ToDetails(err)})
		return
	}

	app, err := h.uc.Apply(c.Request.Context(), caller, jobID, req.ToSubmission())
	if err != nil {
		writeError(c, err, "Only jobseekers can apply", "Error submitting application")
		return
	}

	logrus.WithFields(logrus.Fields{"application_id": app.ID, "job_id": app.JobID, "user_id": app.ApplicantID}).Info("application submitted")
	c.JSON(http.StatusCreated, dto.ApplicationRes{Message: "Application submitted successfully!", Application: app})
}

// List は呼び出し元に見える応募一覧を返します。
//
// エンドポイント: GET /api/applications?userId=&jobId=
func (h *ApplicationHandler) List(c *gin.Context) {
	caller, ok := jwtmw.RequireCaller(c)
	if !ok {
		return
	}
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid query", Details: validation.ToDetails(err)})
		return
	}

	apps, err := h.uc.List(c.Request.Context(), caller, q.UserID, q.JobID)
	if err != nil {
		writeError(c, err, "", "Error fetching applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Get は応募を1件返します。
//
// エンドポイント: GET /api/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	caller, ok := jwtmw.RequireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "invalid application id")
	if !ok {
		return
	}

	app, err := h.uc.Get(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, err, "", "Error fetching application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// UpdateStatus は応募の状態を変更します。
//
// エンドポイント: PATCH /api/applications/:id（求人の所有者のみ）
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	caller, ok := jwtmw.RequireCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "invalid application id")
	if !ok {
		return
	}
	var req dto.StatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request", Details: validation.ToDetails(err)})
		return
	}

	app, err := h.uc.UpdateStatus(c.Request.Context(), caller, id, entity.Status(req.Status))
	if err != nil {
		writeError(c, err, "Unauthorized", "Error updating application status")
		return
	}

	logrus.WithFields(logrus.Fields{"application_id": app.ID, "status": app.Status, "employer_id": caller.UserID}).Info("application status updated")
	c.JSON(http.StatusOK, dto.ApplicationRes{Message: "Application status updated successfully", Application: app})
}

func parseID(c *gin.Context, msg string) (uint, bool) {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
		return 0, false
	}
	return id, true
}

// writeError はユースケースのエラーをHTTPステータスに変換して書き込みます。
func writeError(c *gin.Context, err error, forbiddenMsg, failMsg string) {
	switch {
	case errors.Is(err, access.ErrForbidden):
		if forbiddenMsg == "" {
			forbiddenMsg = "Access denied"
		}
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: forbiddenMsg})
	case errors.Is(err, usecase.ErrMissingFields):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required application fields."})
	case errors.Is(err, usecase.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid status value."})
	case errors.Is(err, usecase.ErrJobNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Job not found"})
	case errors.Is(err, usecase.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Application not found"})
	case errors.Is(err, usecase.ErrAlreadyApplied):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "You have already applied to this job"})
	default:
		logrus.WithFields(logrus.Fields{"error": err, "path": c.FullPath()}).Error(failMsg)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: failMsg, Detail: err.Error()})
	}
}
