// Package handler はuploadsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job_portal_backend/internal/api"
	"job_portal_backend/internal/domain/access"
	"job_portal_backend/internal/feature/uploads/usecase"
	jwtmw "job_portal_backend/internal/platform/jwt"
)

// formField は履歴書ファイルのmultipartフィールド名です。
const formField = "resume"

// multipartOverhead はファイル本体以外のmultipartのヘッダー分の余裕です。
const multipartOverhead = 1 << 20

// UploadsUsecase はファイルアップロードのユースケースインターフェースです。
type UploadsUsecase interface {
	UploadResume(ctx context.Context, caller access.Caller, file usecase.ResumeFile) (string, error)
}

// UploadHandler はファイルアップロードのHTTPリクエストを処理します。
type UploadHandler struct {
	uc UploadsUsecase
}

// NewUploadHandler はUploadHandlerの新しいインスタンスを生成します。
func NewUploadHandler(uc UploadsUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// UploadResumeRes はアップロード結果です。
type UploadResumeRes struct {
	URL string `json:"url"`
}

// UploadResume はmultipartの "resume" フィールドを受け取り保存します。
//
// エンドポイント: POST /api/uploads/resume（jobseekerのみ）
func (h *UploadHandler) UploadResume(c *gin.Context) {
	caller, ok := jwtmw.RequireCaller(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, usecase.MaxResumeSize+multipartOverhead)

	fh, err := c.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: usecase.ErrFileTooLarge.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "resume file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "could not read uploaded file"})
		return
	}
	defer f.Close()

	url, err := h.uc.UploadResume(c.Request.Context(), caller, usecase.ResumeFile{Filename: fh.Filename, Size: fh.Size, Body: f})
	if err != nil {
		switch {
		case errors.Is(err, access.ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Only jobseekers can upload resumes"})
		case errors.Is(err, usecase.ErrUnsupportedFileType), errors.Is(err, usecase.ErrFileTooLarge), errors.Is(err, usecase.ErrEmptyFile):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			logrus.WithFields(logrus.Fields{"error": err, "user_id": caller.UserID}).Error("resume upload failed")
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Error uploading resume", Detail: err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, UploadResumeRes{URL: url})
}
