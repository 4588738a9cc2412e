package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biaslens/biaslens/config"
	"github.com/biaslens/biaslens/internal/bias"
	"github.com/biaslens/biaslens/internal/cache"
	"github.com/biaslens/biaslens/internal/clients"
	"github.com/biaslens/biaslens/internal/clients/kafka_client"
	"github.com/biaslens/biaslens/internal/db"
	"github.com/biaslens/biaslens/internal/events"
	"github.com/biaslens/biaslens/internal/gateway"
	"github.com/biaslens/biaslens/internal/logging"
	"github.com/biaslens/biaslens/internal/pipeline"
	"github.com/biaslens/biaslens/internal/scraper"
	"github.com/biaslens/biaslens/internal/server"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	if os.Getenv("CACHE_BACKEND") == "valkey" {
		clients.InitValkey()
		defer clients.CloseValkey()
	}
	db.InitDynamoDB()

	store, err := cache.NewFromEnv()
	if err != nil {
		slog.Error("[Main] Failed to open result cache",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	gw, err := gateway.NewFromEnv()
	if err != nil {
		slog.Error("[Main] Failed to configure model gateway",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	pipe := pipeline.New(scraper.New(scraper.Config{}), bias.NewAnalyzer(gw, store))

	// Synchronous analysis works without Kafka, so the producer retries in
	// the background instead of blocking startup. Job submission returns
	// 503 until it connects.
	go func() {
		cfg := kafka_client.GetKafkaConfig()
		for {
			err := kafka_client.InitKafkaProducer(cfg)
			if err == nil {
				events.Enable()
				return
			}
			slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
			time.Sleep(5 * time.Second)
		}
	}()
	defer kafka_client.CloseKafkaProducer()

	srv := server.New(pipe, db.Store{}, kafka_client.JobPublisher{})

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		slog.Info("[Main] API server starting", slog.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server stopped",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Server shutdown failed",
			slog.String("error", err.Error()))
	}
}
