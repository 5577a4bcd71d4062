// Package events はメッセージブローカー（RabbitMQ / Kafka）への発行と購読を提供します。
package events

import (
	"context"
	"errors"
	"fmt"
)

// Publisher はJSONペイロードをブローカーへ送信します。
// msgType はメッセージ種別、key はパーティショニング／順序付けのキーです。
type Publisher interface {
	Publish(ctx context.Context, msgType, key string, payload any) error
	Close() error
}

// Message は購読側に渡される1件のメッセージです。
type Message struct {
	Type string
	Key  string
	Body []byte
}

// Handler はメッセージを処理します。
// ErrDrop をラップしたエラーを返すと再配送せずに破棄されます。
// それ以外のエラーは一時的な失敗として扱われます。
type Handler func(ctx context.Context, msg Message) error

// ErrDrop は再試行しても成功しないメッセージを示します。
var ErrDrop = errors.New("drop message")

// Drop はエラーをErrDropでラップします。
func Drop(err error) error {
	if err == nil {
		return ErrDrop
	}
	return fmt.Errorf("%w: %w", ErrDrop, err)
}

// NopPublisher はブローカー未設定時に使う何もしないPublisherです。
type NopPublisher struct{}

// Publish は何もせずnilを返します。
func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

// Close は何もしません。
func (NopPublisher) Close() error { return nil }
