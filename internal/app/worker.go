package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"smg-portal/internal/messaging/kafka"
	"smg-portal/internal/messaging/kafka/producer"
	"smg-portal/internal/shared/connection"
)

func RunWorker(in *Infra) error {
	logger := in.Logger.Named("app.worker")
	if err := in.Config.RequireKafka(); err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(in.Config.KafkaBroker, in.Config.MaxConnectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(in.SQLDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		in.Config.OutboxPollInterval,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
