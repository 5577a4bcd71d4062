package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job_portal_backend/internal/shared/ratelimiter"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := serve(r, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(HeaderRequestID)
	assert.Len(t, id, 36, "uuid v4 string")
	assert.Equal(t, id, w.Body.String())

	w2 := serve(r, http.MethodGet, "/ping", nil)
	assert.NotEqual(t, id, w2.Header().Get(HeaderRequestID))

	w3 := serve(r, http.MethodGet, "/ping", http.Header{HeaderRequestID: {"client-supplied"}})
	assert.Equal(t, "client-supplied", w3.Body.String())
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestID(), AccessLog(logger))
	r.GET("/api/jobs/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(r, http.MethodGet, "/api/jobs/7", http.Header{HeaderRequestID: {"req-1"}})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/api/jobs/:id", line["path"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Equal(t, "warning", line["level"])
	assert.Contains(t, line, "latency_ms")
}

func newLimitedRouter(rdb *redis.Client, fallback ratelimiter.Limiter, limit int) *gin.Engine {
	r := gin.New()
	r.Use(RateLimit(rdb, fallback, limit, time.Minute, nil))
	r.POST("/api/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.OPTIONS("/api/login", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestRateLimit_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := newLimitedRouter(rdb, nil, 2)

	w := serve(r, http.MethodPost, "/api/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("X-RateLimit-Reset"))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/login", nil).Code)

	w = serve(r, http.MethodPost, "/api/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// プリフライトはカウントしない
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodOptions, "/api/login", nil).Code)

	// ウィンドウ経過でリセット
	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/login", nil).Code)
}

func TestRateLimit_FallbackWithoutRedis(t *testing.T) {
	r := newLimitedRouter(nil, ratelimiter.NewKeyedLimiter(1, time.Minute), 1)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/login", nil).Code)
	w := serve(r, http.MethodPost, "/api/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "too many requests, please try again later", resp["error"])
}

func TestRateLimit_FallbackOnRedisError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	r := newLimitedRouter(rdb, ratelimiter.NewKeyedLimiter(1, time.Minute), 1)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/login", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/api/login", nil).Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newLimitedRouter(nil, nil, 0)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/login", nil).Code)
	}
}
