package producer_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"smg-portal/internal/events"
	"smg-portal/internal/messaging/kafka"
	"smg-portal/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOutboxRepo struct {
	pending []kafka.OutboxEvent
	listErr error
	sent    []string
	failed  map[string]string
}

func (f *fakeOutboxRepo) WithTx(*sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(context.Context, kafka.OutboxEvent) error {
	return nil
}
func (f *fakeOutboxRepo) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	return f.pending, f.listErr
}
func (f *fakeOutboxRepo) MarkSent(_ context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeOutboxRepo) MarkFailed(_ context.Context, id string, reason string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = reason
	return nil
}

type fakeWriter struct {
	messages []kafkago.Message
	failKey  string
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failKey {
			return errors.New("broker unavailable")
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func outboxEvent(id, aggregateID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     "rid-" + id,
		AggregateType: "request",
		AggregateID:   aggregateID,
		EventType:     events.RequestUpdated,
		Topic:         events.RequestsTopic,
		Payload:       []byte(`{}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{outboxEvent("o1", "req-1"), outboxEvent("o2", "req-2")}}
		writer := &fakeWriter{}

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Equal(t, []string{"o1", "o2"}, repo.sent)
		assert.Len(t, writer.messages, 2)
		assert.Equal(t, "req-1", string(writer.messages[0].Key))
		assert.Equal(t, events.RequestsTopic, writer.messages[0].Topic)

		headers := map[string]string{}
		for _, h := range writer.messages[0].Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, events.RequestUpdated, headers[events.HeaderEventType])
		assert.Equal(t, "rid-o1", headers["request_id"])
	})

	t.Run("publish failure marks failed and continues", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{outboxEvent("o1", "req-bad"), outboxEvent("o2", "req-2")}}
		writer := &fakeWriter{failKey: "req-bad"}

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, []string{"o2"}, repo.sent)
		assert.Contains(t, repo.failed["o1"], "broker unavailable")
	})

	t.Run("list failure", func(t *testing.T) {
		repo := &fakeOutboxRepo{listErr: errors.New("db down")}

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.Error(t, err)
	})

	t.Run("empty batch", func(t *testing.T) {
		sent, err := producer.ProcessPendingEvents(ctx, &fakeOutboxRepo{}, &fakeWriter{}, zap.NewNop())

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})
}
