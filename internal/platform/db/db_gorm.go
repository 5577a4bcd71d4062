// Package db はGORMによるデータベース接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appadapters "job_portal_backend/internal/feature/applications/adapters"
	authentity "job_portal_backend/internal/feature/auth/domain/entity"
	jobentity "job_portal_backend/internal/feature/jobs/domain/entity"
	"job_portal_backend/internal/platform/config"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// Config はデータベース接続設定を保持します。
type Config struct {
	Driver     string
	User       string
	Password   string
	Name       string
	Host       string
	Port       string
	SSLMode    string
	SQLitePath string
}

// ConfigFrom はアプリケーション設定からDB設定を取り出します。
func ConfigFrom(c *config.Config) Config {
	return Config{
		Driver:     c.DBDriver,
		User:       c.DBUser,
		Password:   c.DBPassword,
		Name:       c.DBName,
		Host:       c.DBHost,
		Port:       c.DBPort,
		SSLMode:    c.DBSSLMode,
		SQLitePath: c.DBSQLitePath,
	}
}

// BuildDSN はドライバーごとのDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	switch strings.ToLower(cfg.Driver) {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return "file::memory:?cache=shared"
		}
		return cfg.SQLitePath
	default:
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslmode)
	}
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// NewOpener はドライバー名に対応するOpenerを返します。
// 一意制約違反をgorm.ErrDuplicatedKeyに変換するためTranslateErrorを有効にします。
func NewOpener(driver string) (Opener, error) {
	var dialect func(string) gorm.Dialector
	switch strings.ToLower(driver) {
	case DriverPostgres, "":
		dialect = postgres.Open
	case DriverMySQL:
		dialect = gmysql.Open
	case DriverSQLite:
		dialect = sqlite.Open
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialect(dsn), &gorm.Config{TranslateError: true})
	}, nil
}

// ConnectWithRetry は接続に成功するかtimeoutを超えるまで接続を試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		logrus.WithError(err).Warn("DB connect failed, retrying...")
		wait := retryInterval
		if remaining := time.Until(deadline); remaining < wait {
			wait = remaining
		}
		if wait > 0 {
			time.Sleep(wait)
		}
	}
}

// Open は設定に従って接続し、retryを伴ってgorm.DBを返します。
func Open(cfg Config, timeout time.Duration) (*gorm.DB, error) {
	open, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}
	return ConnectWithRetry(BuildDSN(cfg), timeout, open)
}

// Migrate はすべてのテーブルを作成・更新します。
// 応募テーブルは求人・ユーザーを参照するため最後に作成します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authentity.User{},
		&jobentity.Job{},
		&appadapters.ApplicationModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
