package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"smg-portal/internal/certificate"
	"smg-portal/internal/events"
	"smg-portal/internal/messaging/kafka/consumer"
	"smg-portal/internal/notification"
	"smg-portal/internal/request"
	"smg-portal/internal/training"

	kafkago "github.com/segmentio/kafka-go"
)

const triggerGroupID = "smg-portal-triggers"

// NewTriggerDispatcher maps document change events to their lifecycle handlers.
func NewTriggerDispatcher(in *Infra, store certificate.Store) *consumer.Dispatcher {
	logger := in.Logger
	notifier := notification.NewService(notification.NewRepository(in.GormDB), logger)
	lifecycle := request.NewLifecycle(notifier, logger)
	issuer := training.NewCertificateIssuer(
		in.SQLDB,
		training.NewRepository(in.GormDB),
		store,
		notifier,
		in.Config.CertificateBaseURL,
		logger,
	)

	d := consumer.NewDispatcher(in.Config.HandlerTimeout, logger)
	d.Register(events.RequestCreated, consumer.Decode(lifecycle.OnCreated))
	d.Register(events.RequestUpdated, consumer.Decode(lifecycle.OnUpdated))
	d.Register(events.EnrollmentUpdated, consumer.Decode(issuer.OnEnrollmentUpdated))
	return d
}

func RunConsumer(in *Infra) error {
	logger := in.Logger.Named("app.consumer")
	if err := in.Config.RequireKafka(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := in.CertificateStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{in.Config.KafkaBroker},
		GroupID:        triggerGroupID,
		GroupTopics:    []string{events.RequestsTopic, events.EnrollmentsTopic},
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	go consumer.ConsumeDocumentEvents(ctx, reader, NewTriggerDispatcher(in, store), logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
