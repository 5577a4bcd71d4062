// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job_portal_backend/internal/api"
	"job_portal_backend/internal/feature/auth/domain/entity"
	"job_portal_backend/internal/feature/auth/transport/http/dto"
	"job_portal_backend/internal/feature/auth/usecase"
	"job_portal_backend/internal/platform/validation"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録します。
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	// Login はユーザーを認証し、成功時にJWTトークンとプロフィールを返します。
	Login(ctx context.Context, email, password string) (string, *entity.Profile, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
//   - バリデーションエラー時は400を返却
//   - メール重複時は409を返却
//   - 成功時は201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithFields(logrus.Fields{"error": err, "remote_addr": c.ClientIP()}).Warn("register validation failed")
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request", Details: validation.ToDetails(err)})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Company:  req.Company,
	})
	if err != nil {
		fields := logrus.Fields{"error": err, "email": req.Email, "remote_addr": c.ClientIP()}
		switch {
		case errors.Is(err, usecase.ErrInvalidRegistration):
			logrus.WithFields(fields).Warn("register rejected")
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			logrus.WithFields(fields).Warn("register conflict")
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email already registered"})
		default:
			logrus.WithFields(fields).Error("register failed")
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "registration failed", Detail: err.Error()})
		}
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role, "remote_addr": c.ClientIP()}).Info("user registered")
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "User registered successfully"})
}

// Login はユーザーログインAPIエンドポイントを処理します。
//   - バリデーションエラー時は400を返却
//   - 認証失敗時は401を返却（未登録・パスワード誤りで同一のレスポンス）
//   - 認証成功時はトークンとプロフィール付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithFields(logrus.Fields{"error": err, "remote_addr": c.ClientIP()}).Warn("login validation failed")
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request", Details: validation.ToDetails(err)})
		return
	}

	token, profile, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、実際の原因を公開しない
			logrus.WithFields(logrus.Fields{"email": req.Email, "remote_addr": c.ClientIP()}).Warn("login failed")
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: usecase.ErrInvalidCredentials.Error()})
			return
		}
		logrus.WithFields(logrus.Fields{"error": err, "remote_addr": c.ClientIP()}).Error("login error")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "login failed"})
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": profile.ID, "remote_addr": c.ClientIP()}).Info("user login successful")
	c.JSON(http.StatusOK, dto.LoginRes{Token: token, User: *profile})
}
