// Package middleware はルーター全体に適用するGinミドルウェアを提供します。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextRequestID はリクエストIDを保持するGinコンテキストのキーです。
	ContextRequestID = "request_id"
	// HeaderRequestID はリクエストIDを受け渡すHTTPヘッダーです。
	HeaderRequestID = "X-Request-ID"
)

// RequestID は各リクエストに一意のrequest_idを割り当てます。
// クライアントがX-Request-IDを送ってきた場合はそれを引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
