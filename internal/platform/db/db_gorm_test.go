package db

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"job_portal_backend/internal/platform/config"
)

// TestBuildDSN はドライバーごとのDSN文字列が正しく生成されることを検証します。
func TestBuildDSN(t *testing.T) {
	t.Parallel()

	base := Config{
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
	}

	tests := []struct {
		name     string
		mutate   func(c *Config)
		expected string
	}{
		{
			name: "mysql tcp",
			mutate: func(c *Config) {
				c.Driver = DriverMySQL
				c.Port = "3306"
			},
			expected: "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=true&loc=Local",
		},
		{
			name: "postgres with default sslmode",
			mutate: func(c *Config) {
				c.Driver = DriverPostgres
				c.Port = "5432"
			},
			expected: "host=localhost user=testuser password=testpass dbname=testdb port=5432 sslmode=disable TimeZone=UTC",
		},
		{
			name: "postgres with explicit sslmode",
			mutate: func(c *Config) {
				c.Driver = DriverPostgres
				c.Port = "5432"
				c.SSLMode = "require"
			},
			expected: "host=localhost user=testuser password=testpass dbname=testdb port=5432 sslmode=require TimeZone=UTC",
		},
		{
			name: "sqlite file",
			mutate: func(c *Config) {
				c.Driver = DriverSQLite
				c.SQLitePath = "portal.db"
			},
			expected: "portal.db",
		},
		{
			name:     "sqlite without path uses memory",
			mutate:   func(c *Config) { c.Driver = DriverSQLite },
			expected: "file::memory:?cache=shared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tt.mutate(&cfg)
			assert.Equal(t, tt.expected, BuildDSN(cfg))
		})
	}
}

func TestNewOpener_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := NewOpener("oracle")
	assert.Error(t, err)

	for _, d := range []string{"", DriverPostgres, DriverMySQL, DriverSQLite} {
		open, err := NewOpener(d)
		assert.NoError(t, err, d)
		assert.NotNil(t, open, d)
	}
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attempts)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// Not parallel because this test takes time due to retry sleeps
	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attempts)
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return nil, errors.New("connection refused")
	}

	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.GreaterOrEqual(t, attempts, 1)
}

// TestOpenAndMigrate_SQLite はSQLiteで接続し、全テーブルが作成されることを検証します。
func TestOpenAndMigrate_SQLite(t *testing.T) {
	t.Parallel()

	gdb, err := Open(Config{Driver: DriverSQLite, SQLitePath: ":memory:"}, time.Second)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(gdb))

	for _, table := range []string{"users", "jobs", "applications"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
}

func TestConfigFrom(t *testing.T) {
	t.Parallel()

	cfg := ConfigFrom(&config.Config{
		DBDriver:     "mysql",
		DBUser:       "u",
		DBPassword:   "p",
		DBName:       "n",
		DBHost:       "h",
		DBPort:       "3306",
		DBSSLMode:    "disable",
		DBSQLitePath: "x.db",
	})

	assert.Equal(t, Config{
		Driver: "mysql", User: "u", Password: "p", Name: "n",
		Host: "h", Port: "3306", SSLMode: "disable", SQLitePath: "x.db",
	}, cfg)
}
