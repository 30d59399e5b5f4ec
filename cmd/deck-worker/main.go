// Package main 幻灯片构建执行器入口（deck-worker）
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"lecture-deck-api/internal/app"
	"lecture-deck-api/internal/config"
	"lecture-deck-api/internal/infrastructure/messaging"
	"lecture-deck-api/pkg/logger"
	"lecture-deck-api/pkg/tracer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	ctx := context.Background()

	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: "deck-worker",
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init tracer", err)
	}
	defer func() { _ = shutdown(ctx) }()

	core, cleanup, err := app.NewCore(cfg)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize core", err)
	}
	defer cleanup()

	consumer := messaging.NewConsumer(core.RedisClient.Redis(), messaging.ConsumerConfig{
		Stream:       messaging.StreamDeckBuild,
		Group:        messaging.ConsumerGroupDeckWorker,
		ConsumerName: hostnameConsumerName(),
		BlockTimeout: cfg.Messaging.RedisStream.BlockTimeout,
		RetryLimit:   cfg.Messaging.RedisStream.RetryLimit,
		Backoff: messaging.BackoffConfig{
			Initial:    cfg.Messaging.RedisStream.RetryBackoff.Initial,
			Max:        cfg.Messaging.RedisStream.RetryBackoff.Max,
			Multiplier: cfg.Messaging.RedisStream.RetryBackoff.Multiplier,
		},
	})

	consumer.RegisterHandler("deck_build", core.DeckSvc.HandleBuildMessage)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := consumer.Start(runCtx); err != nil {
		logger.Fatal(ctx, "failed to start consumer", err)
	}

	go consumer.MonitorDLQ(runCtx, 100)

	logger.Info(ctx, "deck-worker started",
		"stream", string(messaging.StreamDeckBuild),
		"group", string(messaging.ConsumerGroupDeckWorker),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down deck-worker...")
	cancel()
	consumer.Stop()
	logger.Info(ctx, "deck-worker exited")
}

func hostnameConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return fmt.Sprintf("deck-worker-%d", os.Getpid())
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
