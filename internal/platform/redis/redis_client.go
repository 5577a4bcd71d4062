// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// pingTimeout は起動時の接続確認の上限時間です。
const pingTimeout = 3 * time.Second

// NewRedisClient は指定されたアドレスに接続し、PINGで疎通を確認したクライアントを返します。
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 接続確認
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.WithFields(logrus.Fields{"address": addr, "error": err}).Error("Redis connection failed")
		_ = rdb.Close()
		return nil, err
	}

	logrus.WithField("address", addr).Info("Redis connection successful")
	return rdb, nil
}
