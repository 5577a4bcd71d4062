// Package handler はjobsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job_portal_backend/internal/api"
	"job_portal_backend/internal/domain/access"
	"job_portal_backend/internal/feature/jobs/domain/entity"
	"job_portal_backend/internal/feature/jobs/transport/http/dto"
	"job_portal_backend/internal/feature/jobs/usecase"
	jwtmw "job_portal_backend/internal/platform/jwt"
	"job_portal_backend/internal/platform/validation"
)

// JobsUsecase は求人操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type JobsUsecase interface {
	Create(ctx context.Context, caller access.Caller, job entity.Job) (*entity.Job, error)
	Get(ctx context.Context, id uint) (*entity.Job, error)
	List(ctx context.Context, filter entity.JobFilter) ([]entity.Job, error)
	ListMine(ctx context.Context, caller access.Caller, filter entity.JobFilter) ([]entity.Job, error)
	Update(ctx context.Context, caller access.Caller, id uint, patch entity.JobPatch) (*entity.Job, error)
	Delete(ctx context.Context, caller access.Caller, id uint) error
}

// JobHandler は求人のHTTPリクエストを処理します。
type JobHandler struct {
	uc JobsUsecase
}

// NewJobHandler は指定されたusecaseでJobHandlerの新しいインスタンスを生成します。
func NewJobHandler(uc JobsUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Create は求人を作成します。
//
// エンドポイント: POST /api/jobs（employerのみ）
func (h *JobHandler) Create(c *gin.Context) {
	caller, ok := jwtmw.RequireCaller(c)
	if !ok {
		return
	}
	var req dto.CreateJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request", Details: validation.ToDetails(err)})
		return
	}

	job, err := h.uc.Create(c.Request.Context(), caller, req.ToEntity())
	if err != nil {
		writeError(c, err, "Only employers can post jobs", "Error creating job")
		return
	}

	logrus.WithFields(logrus.Fields{"job_id": job.ID, "employer_id": job.EmployerID, "title": job.Title}).Info("job created")
	c.JSON(http.StatusCreated, job)
}

// List は公開の求人一覧を返します。
//
// エンドポイント: GET /api/jobs?title=&category=&location=
func (h *JobHandler) List(c *gin.Context) {
	var q dto.JobQuery
	_ = c.ShouldBindQuery(&q)

	jobs, err := h.uc.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		writeError(c, err, "", "Error fetching jobs")
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Get は求人を1件返します。
//
// エンドポイント: GET /api/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}
	job, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "", "Error fetching job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListMine は呼び出し元の雇用者の求人一覧を返します。
//
// エンドポイント: GET /api/employer/jobs?title=&category=&location=
func (h *JobHandler) ListMine(c *gin.Context) {
	caller, ok := jwtmw.RequireCaller(c)
	if !ok {
		return
	}
	var q dto.JobQuery
	_ = c.ShouldBindQuery(&q)

	jobs, err := h.uc.ListMine(c.Request.Context(), caller, q.ToFilter())
	if err != nil {
		writeError(c, err, "Only employers can view their jobs", "Error fetching employer jobs")
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Update は求人を部分更新します。
//
// エンドポイント: PATCH /api/jobs/:id（所有者のみ）
func (h *JobHandler) Update(c *gin.Context) {
	caller, ok := jwtmw.RequireCaller(c)
	if !ok {
		return
	}
	id, ok := parseJobID(c)
	if !ok {
		return
	}
	var req dto.UpdateJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request", Details: validation.ToDetails(err)})
		return
	}

	job, err := h.uc.Update(c.Request.Context(), caller, id, req.ToPatch())
	if err != nil {
		writeError(c, err, "Not authorized to edit this job", "Error updating job")
		return
	}

	logrus.WithFields(logrus.Fields{"job_id": job.ID, "employer_id": caller.UserID}).Info("job updated")
	c.JSON(http.StatusOK, job)
}

// Delete は求人を削除します。
//
// エンドポイント: DELETE /api/jobs/:id（所有者のみ）
func (h *JobHandler) Delete(c *gin.Context) {
	caller, ok := jwtmw.RequireCaller(c)
	if !ok {
		return
	}
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), caller, id); err != nil {
		writeError(c, err, "Not authorized to delete this job", "Error deleting job")
		return
	}

	logrus.WithFields(logrus.Fields{"job_id": id, "employer_id": caller.UserID}).Info("job deleted")
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Job deleted successfully"})
}

func parseJobID(c *gin.Context) (uint, bool) {
	id, err := validation.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid job id"})
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
	case errors.Is(err, usecase.ErrJobNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Job not found"})
	case errors.Is(err, usecase.ErrInvalidSalaryRange):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Min salary cannot be greater than max salary"})
	case errors.Is(err, usecase.ErrInvalidJob):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		logrus.WithFields(logrus.Fields{"error": err, "path": c.FullPath()}).Error(failMsg)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: failMsg, Detail: err.Error()})
	}
}
