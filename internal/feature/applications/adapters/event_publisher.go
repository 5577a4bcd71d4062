package adapters

import (
	"context"
	"strconv"

	"job_portal_backend/internal/feature/applications/domain/entity"
	"job_portal_backend/internal/feature/applications/usecase"
)

// MessagePublisher はブローカー（RabbitMQ/Kafka）への送信口です。
type MessagePublisher interface {
	Publish(ctx context.Context, msgType, key string, payload any) error
}

// eventPublisher は応募イベントをブローカーのメッセージに変換します。
// キーは応募IDで、同一応募のイベント順序を保ちます。
type eventPublisher struct {
	pub MessagePublisher
}

var _ usecase.EventPublisher = (*eventPublisher)(nil)

// NewEventPublisher はeventPublisherの新しいインスタンスを生成します。
func NewEventPublisher(pub MessagePublisher) *eventPublisher {
	return &eventPublisher{pub: pub}
}

// Publish は応募イベントを発行します。
func (p *eventPublisher) Publish(ctx context.Context, ev entity.ApplicationEvent) error {
	return p.pub.Publish(ctx, string(ev.Type), strconv.FormatUint(uint64(ev.ApplicationID), 10), ev)
}
