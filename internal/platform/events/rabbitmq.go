package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// amqpChannel はRabbitPublisherが使うamqp.Channelのサブセットです。
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher はデフォルトexchange経由で永続キューへ発行します。
type RabbitPublisher struct {
	conn  *amqp.Connection
	ch    amqpChannel
	queue string
	now   func() time.Time
}

var _ Publisher = (*RabbitPublisher)(nil)

// dialQueue は接続してチャネルを開き、durableキューを宣言します。
func dialQueue(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp queue declare: %w", err)
	}
	return conn, ch, nil
}

// NewRabbitPublisher はRabbitMQに接続しRabbitPublisherを生成します。
func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	conn, ch, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	logrus.WithField("queue", queue).Info("rabbitmq publisher connected")
	return &RabbitPublisher{conn: conn, ch: ch, queue: queue, now: time.Now}, nil
}

// Publish はペイロードをJSONにして永続メッセージとして発行します。
func (p *RabbitPublisher) Publish(ctx context.Context, msgType, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", msgType, err)
	}
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    p.now().UTC(),
			Type:         msgType,
			MessageId:    key,
			Body:         body,
		},
	)
}

// Close はチャネルと接続を閉じます。
func (p *RabbitPublisher) Close() error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

// RabbitConsumer はキューからメッセージを受け取りHandlerへ渡します。
type RabbitConsumer struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	queue      string
	deliveries <-chan amqp.Delivery
}

// NewRabbitConsumer はキューを宣言して手動ackで購読を開始します。
func NewRabbitConsumer(url, queue string, prefetch int) (*RabbitConsumer, error) {
	conn, ch, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp qos: %w", err)
	}
	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp consume: %w", err)
	}
	return &RabbitConsumer{conn: conn, ch: ch, queue: queue, deliveries: deliveries}, nil
}

// Run はctxがキャンセルされるかチャネルが閉じるまでメッセージを処理します。
//   - 成功: ack
//   - ErrDrop: nack（再キューなし）
//   - その他のエラー: nack（再キュー）
func (c *RabbitConsumer) Run(ctx context.Context, h Handler) error {
	logrus.WithField("queue", c.queue).Info("rabbitmq consumer listening")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-c.deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			handleDelivery(ctx, d, h)
		}
	}
}

func handleDelivery(ctx context.Context, d amqp.Delivery, h Handler) {
	log := logrus.WithFields(logrus.Fields{"type": d.Type, "message_id": d.MessageId})
	err := h(ctx, Message{Type: d.Type, Key: d.MessageId, Body: d.Body})
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			log.WithError(ackErr).Error("ack failed")
		}
	case errors.Is(err, ErrDrop):
		log.WithError(err).Warn("dropping message")
		_ = d.Nack(false, false)
	default:
		log.WithError(err).Error("message handling failed, requeueing")
		_ = d.Nack(false, true)
	}
}

// Close はチャネルと接続を閉じます。
func (c *RabbitConsumer) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.ch != nil {
		errs = append(errs, c.ch.Close())
	}
	if c.conn != nil {
		errs = append(errs, c.conn.Close())
	}
	return errors.Join(errs...)
}
