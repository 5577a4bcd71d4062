package main

import (
	"context"
	"os/signal"
	"syscall"

	"job_portal_backend/internal/app/di"
	"job_portal_backend/internal/feature/notifications/transport/consumer"
	"job_portal_backend/internal/feature/notifications/usecase"
	"job_portal_backend/internal/platform/config"
	"job_portal_backend/internal/platform/logging"
	"job_portal_backend/internal/platform/mailer"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	logger := logging.Setup(cfg.AppName+"-notifier", cfg.Env)

	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured (MAILGUN_DOMAIN, MAILGUN_API_KEY, MAILGUN_SENDER)")
	}

	sub, err := di.NewConsumer(cfg)
	if err != nil {
		logger.Fatalf("failed to init consumer: %v", err)
	}
	defer func() { _ = sub.Close() }()

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	notifier := usecase.NewNotifier(mg, cfg.AppName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.WithField("broker", cfg.EventsBroker).Info("notifier started")
	if err := sub.Run(ctx, consumer.NewHandler(notifier)); err != nil {
		logger.WithError(err).Error("consumer stopped")
		return
	}
	logger.Info("notifier exited properly")
}
