package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"job_portal_backend/internal/api"
	"job_portal_backend/internal/shared/ratelimiter"
)

// KeyFunc はリクエストからレートリミットのキーを組み立てます。
type KeyFunc func(c *gin.Context) string

// KeyByIPAndPath はクライアントIPとルートパスでキーを作ります。
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		return "rl:path:" + path + ":ip:" + ip
	}
}

// INCRとPEXPIREをアトミックに実行する
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimit は固定ウィンドウ方式でリクエスト数を制限します。
//   - rdb があればRedis上のカウンター（複数インスタンスで共有）
//   - rdb が nil、またはRedisエラー時は fallback のインメモリリミッター
//   - 上限超過は 429
func RateLimit(rdb *redis.Client, fallback ratelimiter.Limiter, limit int, window time.Duration, keyFn KeyFunc) gin.HandlerFunc {
	if limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if keyFn == nil {
		keyFn = KeyByIPAndPath()
	}
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}
		key := keyFn(c)

		if rdb != nil {
			count, resetSec, err := redisCount(c, rdb, key, window)
			if err == nil {
				c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
				c.Header("X-RateLimit-Remaining", strconv.Itoa(max(limit-count, 0)))
				c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))
				if count > limit {
					if resetSec > 0 {
						c.Header("Retry-After", strconv.Itoa(resetSec))
					}
					tooMany(c, key)
					return
				}
				c.Next()
				return
			}
			logrus.WithFields(logrus.Fields{"error": err, "key": key}).Warn("rate limit: redis unavailable, using in-memory limiter")
		}

		if fallback != nil && !fallback.Allow(key) {
			tooMany(c, key)
			return
		}
		c.Next()
	}
}

func redisCount(c *gin.Context, rdb *redis.Client, key string, window time.Duration) (int, int, error) {
	ctx := c.Request.Context()
	n, err := incrExpireScript.Run(ctx, rdb, []string{key}, window.Milliseconds()).Int()
	if err != nil {
		return 0, 0, err
	}
	resetSec := 0
	if ttl, err := rdb.PTTL(ctx, key).Result(); err == nil && ttl > 0 {
		resetSec = int((ttl + time.Second - 1) / time.Second)
	}
	return n, resetSec, nil
}

func tooMany(c *gin.Context, key string) {
	logrus.WithFields(logrus.Fields{"key": key, "request_id": c.GetString(ContextRequestID)}).Warn("rate limit exceeded")
	c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests, please try again later"})
}
