package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"hotelier/internal/notifications"
	"hotelier/pkg/kafka"
	kafka_config "hotelier/pkg/kafka/config"
	"hotelier/pkg/logger"
)

const (
	ServiceName       = "notifier"
	ReservationsTopic = "hotelier.reservations"
	NotifierGroupID   = "hotelier-notifier"
	NotifierDLQ       = "hotelier.notifier.dlq"
)

func main() {
	log := logger.New(logger.Config{
		Level:     getEnv("LOG_LEVEL", "info"),
		Format:    logger.JSON,
		AddSource: true,
		Service:   ServiceName,
	})

	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(log.Info)

	emailService := notifications.NewEmailService(log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		ReservationsTopic,
		NotifierGroupID,
		NotifierDLQ,
		emailService.HandleMessage,
	)
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		sig := <-shutdown
		log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	log.Info("Notifier consuming reservation events", "topic", ReservationsTopic, "group", NotifierGroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		log.Error("Failed to close consumer", "error", err)
	}
	log.Info("Notifier stopped")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
