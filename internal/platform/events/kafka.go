package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// headerType はメッセージ種別を運ぶKafkaヘッダー名です。
const headerType = "type"

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher はトピックへJSONメッセージを書き込みます。
// 同じキーのメッセージは同じパーティションに入ります。
type KafkaPublisher struct {
	w kafkaWriter
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher はKafkaPublisherを生成します。
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

// Publish はペイロードをJSONにして書き込みます。
func (p *KafkaPublisher) Publish(ctx context.Context, msgType, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", msgType, err)
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   body,
		Headers: []kafka.Header{{Key: headerType, Value: []byte(msgType)}},
	})
}

// Close はWriterを閉じます。
func (p *KafkaPublisher) Close() error { return p.w.Close() }

// KafkaConsumer はコンシューマーグループとしてトピックを購読します。
type KafkaConsumer struct {
	r          kafkaReader
	maxRetries int
	backoff    time.Duration
}

// NewKafkaConsumer はKafkaConsumerを生成します。
func NewKafkaConsumer(brokers []string, topic, group string) *KafkaConsumer {
	return &KafkaConsumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  group,
			MinBytes: 1,
			MaxBytes: 10e6, // 10MB
		}),
		maxRetries: 3,
		backoff:    time.Second,
	}
}

// Run はctxがキャンセルされるまでメッセージを処理します。
// 一時的な失敗は maxRetries 回まで再試行し、それでも失敗したらログを残してコミットします。
// ErrDrop は再試行せずにコミットします。
func (c *KafkaConsumer) Run(ctx context.Context, h Handler) error {
	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("kafka fetch: %w", err)
		}

		msg := Message{Type: headerValue(m.Headers, headerType), Key: string(m.Key), Body: m.Value}
		log := logrus.WithFields(logrus.Fields{"type": msg.Type, "key": msg.Key, "partition": m.Partition, "offset": m.Offset})
		if err := c.handle(ctx, msg, h); err != nil {
			switch {
			case ctx.Err() != nil:
				return nil
			case errors.Is(err, ErrDrop):
				log.WithError(err).Warn("dropping message")
			default:
				log.WithError(err).Error("giving up on message")
			}
		}

		if err := c.r.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("kafka commit: %w", err)
		}
	}
}

func (c *KafkaConsumer) handle(ctx context.Context, msg Message, h Handler) error {
	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}
		if err = h(ctx, msg); err == nil || errors.Is(err, ErrDrop) {
			return err
		}
	}
	return err
}

// Close はReaderを閉じます。
func (c *KafkaConsumer) Close() error { return c.r.Close() }

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
