package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/storefront-core/internal/config"
	"github.com/example/storefront-core/internal/email"
	"github.com/example/storefront-core/internal/infrastructure/kafka"
	"github.com/example/storefront-core/internal/infrastructure/store"
	"github.com/example/storefront-core/internal/logging"
	"github.com/example/storefront-core/internal/notification"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logging.For("notifier")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.WithError(err).Fatal("Invalid log settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(logrus.Fields{
		"kafka": cfg.KafkaBrokers,
		"topic": cfg.KafkaTopic,
		"group": cfg.NotifierGroup,
		"smtp":  cfg.SMTPHost + ":" + cfg.SMTPPort,
		"from":  cfg.SMTPFrom,
	}).Info("Starting email notifier")

	// Initialize PostgreSQL connection (for reading users and orders)
	db, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}
	defer db.Close()

	emailSvc := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	handler := notification.NewHandler(emailSvc, store.NewPostgresUserStore(db), store.NewPostgresOrderStore(db))

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.NotifierGroup)
	defer consumer.Close()

	log.Info("Listening for order status changes")
	if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("Consumer stopped")
	}
	log.Info("Shutting down...")
}
