package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/biaslens/biaslens/config"
	"github.com/biaslens/biaslens/internal/bias"
	"github.com/biaslens/biaslens/internal/cache"
	"github.com/biaslens/biaslens/internal/clients"
	"github.com/biaslens/biaslens/internal/clients/kafka_client"
	"github.com/biaslens/biaslens/internal/consumers"
	"github.com/biaslens/biaslens/internal/db"
	"github.com/biaslens/biaslens/internal/events"
	"github.com/biaslens/biaslens/internal/gateway"
	"github.com/biaslens/biaslens/internal/logging"
	"github.com/biaslens/biaslens/internal/monitoring"
	"github.com/biaslens/biaslens/internal/pipeline"
	"github.com/biaslens/biaslens/internal/scraper"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	clients.InitValkey()
	defer clients.CloseValkey()
	db.InitDynamoDB()

	cfg := kafka_client.GetKafkaConfig()
	for {
		err := kafka_client.InitKafkaProducer(cfg)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseKafkaProducer()
	events.Enable()

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

	gatewayHealthy := &atomic.Bool{}
	gatewayHealthy.Store(true)
	go monitoring.MonitorGatewayHealth(ctx, gw, gatewayHealthy)

	pipe := pipeline.New(scraper.New(scraper.Config{}), bias.NewAnalyzer(gw, store))
	consumers.InitJobConsumer(pipe)

	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_ANALYSIS_JOBS, consumers.WrapConsumer(
		consumers.StartJobConsumer, gatewayHealthy).Handler())
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_ANALYSIS_EVENTS, consumers.StartEventConsumer)

	topics := []string{
		kafka_client.KAFKA_TOPIC_ANALYSIS_JOBS,
		kafka_client.KAFKA_TOPIC_ANALYSIS_EVENTS,
	}

	var wg sync.WaitGroup
	for _, topic := range topics {
		wg.Add(1)
		go func(topic string) {
			defer wg.Done()
			if err := kafka_client.StartConsumer(ctx, topic); err != nil {
				slog.Error("[Main] Failed to start consumer",
					slog.String("topic", topic),
					slog.String("error", err.Error()))
			}
		}(topic)
	}

	wg.Wait()
}
