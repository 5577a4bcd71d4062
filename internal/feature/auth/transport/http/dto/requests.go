// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "job_portal_backend/internal/feature/auth/domain/entity"

// RegisterReq は/api/registerエンドポイントのリクエストボディを表します。
// roleはemployerまたはjobseekerのいずれかで、companyは任意です。
type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"required,role"`
	Company  string `json:"company"`
}

// LoginReq は/api/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRes はログイン成功時のレスポンスです。
type LoginRes struct {
	Token string         `json:"token"`
	User  entity.Profile `json:"user"`
}
