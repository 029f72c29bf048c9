package producer

import (
	"context"

	"smg-portal/internal/events"
	"smg-portal/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafkago.Writer the worker needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func publishEvent(ctx context.Context, writer MessageWriter, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: events.HeaderEventType, Value: []byte(event.EventType)},
			{Key: events.HeaderAggregateType, Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
			{Key: "outbox_id", Value: []byte(event.ID)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
