// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// pingTimeout はヘルスチェック時のDB疎通確認の上限時間です。
const pingTimeout = 2 * time.Second

// Pinger は依存先の疎通確認を行います（*sql.DBが満たします）。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewHealth はサービスヘルスチェック用の /healthz ハンドラーを返します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// dbがnilでなければGETでDBへのPINGを行い、失敗時は503を返します。
func NewHealth(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			if db != nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
				defer cancel()
				if err := db.PingContext(ctx); err != nil {
					logrus.WithError(err).Warn("health check: database unreachable")
					c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
					return
				}
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		}
	}
}
