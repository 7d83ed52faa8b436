package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/example/storefront-core/internal/api"
	"github.com/example/storefront-core/internal/auth"
	"github.com/example/storefront-core/internal/command"
	"github.com/example/storefront-core/internal/config"
	"github.com/example/storefront-core/internal/domain/cart"
	"github.com/example/storefront-core/internal/domain/order"
	"github.com/example/storefront-core/internal/infrastructure/kafka"
	"github.com/example/storefront-core/internal/infrastructure/store"
	"github.com/example/storefront-core/internal/logging"
	"github.com/example/storefront-core/internal/query"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logging.For("api")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if err := cfg.ValidateAPI(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.WithError(err).Fatal("Invalid log settings")
	}
	policy, err := order.ParsePolicy(cfg.TransitionPolicy)
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(logrus.Fields{
		"kafka":  cfg.KafkaBrokers,
		"topic":  cfg.KafkaTopic,
		"policy": policy,
	}).Info("Starting storefront API")

	// Initialize PostgreSQL connection
	db, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("Failed to apply schema")
	}
	log.Info("Connected to PostgreSQL, schema up to date")

	// Events are published after commit
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	// Initialize domain services
	cartSvc := cart.NewService(store.NewPostgresCartStore(db), producer)
	orderSvc := order.NewService(store.NewPostgresOrderStore(db), producer, policy)

	jwtService := auth.NewJWTService(cfg.JWTSecret, 15*time.Minute)

	handlers := api.NewHandlers(command.NewHandler(cartSvc, orderSvc), query.NewHandler(cartSvc, orderSvc))
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(handlers, jwtService, logging.For("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.WithField("addr", cfg.HTTPAddr).Info("Server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP drain did not finish")
	}

	wg.Wait()
}
