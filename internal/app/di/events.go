package di

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"job_portal_backend/internal/platform/config"
	"job_portal_backend/internal/platform/events"
)

const (
	BrokerNone     = "none"
	BrokerRabbitMQ = "rabbitmq"
	BrokerKafka    = "kafka"
)

// NewPublisher creates the application event publisher for the configured broker.
// EVENTS_BROKER=none (or empty) yields a no-op publisher.
func NewPublisher(cfg *config.Config) (events.Publisher, error) {
	switch cfg.EventsBroker {
	case BrokerNone, "":
		logrus.Info("events broker disabled")
		return events.NopPublisher{}, nil
	case BrokerRabbitMQ:
		return events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
	case BrokerKafka:
		logrus.WithFields(logrus.Fields{"brokers": cfg.KafkaBrokers, "topic": cfg.KafkaTopic}).Info("kafka publisher configured")
		return events.NewKafkaPublisher(cfg.KafkaBrokerList(), cfg.KafkaTopic), nil
	default:
		return nil, fmt.Errorf("unsupported EVENTS_BROKER %q", cfg.EventsBroker)
	}
}

// Consumer runs a handler over the configured broker's messages until ctx is done.
type Consumer interface {
	Run(ctx context.Context, h events.Handler) error
	Close() error
}

// NewConsumer creates the consumer side for the configured broker.
func NewConsumer(cfg *config.Config) (Consumer, error) {
	switch cfg.EventsBroker {
	case BrokerRabbitMQ:
		return events.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQQueue, 16)
	case BrokerKafka:
		return events.NewKafkaConsumer(cfg.KafkaBrokerList(), cfg.KafkaTopic, cfg.KafkaGroup), nil
	default:
		return nil, fmt.Errorf("EVENTS_BROKER must be %q or %q for the notifier, got %q", BrokerRabbitMQ, BrokerKafka, cfg.EventsBroker)
	}
}
