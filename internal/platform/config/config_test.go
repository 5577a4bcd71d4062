package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults は環境変数未設定時に開発用デフォルトが使われることを検証します。
func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "JWT_TTL", "EVENTS_BROKER", "AUTH_RATE_LIMIT", "RUN_MIGRATIONS"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "none", cfg.EventsBroker)
	assert.Equal(t, 20, cfg.AuthRateLimit)
	assert.True(t, cfg.RunMigrations)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("EVENTS_BROKER", "Kafka")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HTTP_LOG_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "kafka", cfg.EventsBroker)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.False(t, cfg.HTTPLogEnabled)
}

// TestLoad_InvalidValuesFallBack は不正な値の場合にデフォルトへフォールバックすることを検証します。
func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "two hours")
	t.Setenv("REDIS_DB", "zero")
	t.Setenv("RUN_MIGRATIONS", "maybe")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.RunMigrations)
}

func TestConfig_Lists(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		CORSAllowedOrigins: " http://a.example , ,http://b.example",
		KafkaBrokers:       "k1:9092,k2:9092",
	}

	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokerList())
	assert.Empty(t, (&Config{}).CORSOrigins())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=from-dotenv\n"), 0o600))
	t.Setenv("APP_NAME", "")
	require.NoError(t, os.Unsetenv("APP_NAME"))

	LoadDotEnv(path, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "from-dotenv", os.Getenv("APP_NAME"))
}
