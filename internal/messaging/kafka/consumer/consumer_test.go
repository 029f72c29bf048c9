package consumer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"smg-portal/internal/events"
	"smg-portal/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func message(eventType, payload string) kafkago.Message {
	return kafkago.Message{
		Key:   []byte("doc-1"),
		Value: []byte(payload),
		Headers: []kafkago.Header{
			{Key: events.HeaderEventType, Value: []byte(eventType)},
		},
	}
}

func newDispatcher() *consumer.Dispatcher {
	return consumer.NewDispatcher(time.Second, zap.NewNop()).WithRetry(3, 0)
}

func TestDispatcher_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("typed handler receives decoded event", func(t *testing.T) {
		d := newDispatcher()
		var got events.RequestUpdatedEvent
		d.Register(events.RequestUpdated, consumer.Decode(func(_ context.Context, e events.RequestUpdatedEvent) error {
			got = e
			return nil
		}))

		ok := d.Handle(ctx, message(events.RequestUpdated, `{"request_id":"req-1","after":{"status":"approved"}}`))

		assert.True(t, ok)
		assert.Equal(t, "req-1", got.RequestID)
		assert.Equal(t, "approved", got.After.Status)
	})

	t.Run("unknown event type is committed", func(t *testing.T) {
		assert.True(t, newDispatcher().Handle(ctx, message("user.deleted", `{}`)))
	})

	t.Run("malformed payload is committed without retry", func(t *testing.T) {
		d := newDispatcher()
		calls := 0
		d.Register(events.RequestCreated, consumer.Decode(func(context.Context, events.RequestCreatedEvent) error {
			calls++
			return nil
		}))

		assert.True(t, d.Handle(ctx, message(events.RequestCreated, `not-json`)))
		assert.Zero(t, calls)
	})

	t.Run("transient failure is retried", func(t *testing.T) {
		d := newDispatcher()
		calls := 0
		d.Register(events.RequestCreated, func(context.Context, []byte) error {
			calls++
			if calls < 2 {
				return errors.New("db timeout")
			}
			return nil
		})

		assert.True(t, d.Handle(ctx, message(events.RequestCreated, `{}`)))
		assert.Equal(t, 2, calls)
	})

	t.Run("persistent failure is not committed", func(t *testing.T) {
		d := newDispatcher()
		calls := 0
		d.Register(events.RequestCreated, func(context.Context, []byte) error {
			calls++
			return errors.New("db down")
		})

		assert.False(t, d.Handle(ctx, message(events.RequestCreated, `{}`)))
		assert.Equal(t, 3, calls)
	})

	t.Run("handler runs under a deadline", func(t *testing.T) {
		d := newDispatcher()
		d.Register(events.RequestCreated, func(ctx context.Context, _ []byte) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			return nil
		})

		assert.True(t, d.Handle(ctx, message(events.RequestCreated, `{}`)))
	})
}

type fakeReader struct {
	msgs      []kafkago.Message
	fetched   []int64
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	r.fetched = append(r.fetched, m.Offset)
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func withOffset(m kafkago.Message, offset int64) kafkago.Message {
	m.Offset = offset
	return m
}

func TestConsumeDocumentEvents_FailedEventBlocksLaterCommits(t *testing.T) {
	t.Run("failed event is redelivered before the next is fetched", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		d := newDispatcher()
		updated := 0
		d.Register(events.RequestUpdated, func(context.Context, []byte) error {
			updated++
			if updated <= 4 {
				return errors.New("store down")
			}
			return nil
		})
		d.Register(events.RequestCreated, func(context.Context, []byte) error { return nil })

		reader := &fakeReader{
			msgs: []kafkago.Message{
				withOffset(message(events.RequestUpdated, `{}`), 10),
				withOffset(message(events.RequestCreated, `{}`), 11),
			},
			cancel: cancel,
		}

		consumer.ConsumeDocumentEvents(ctx, reader, d, zap.NewNop())

		assert.Equal(t, 5, updated)
		assert.Equal(t, []int64{10, 11}, reader.fetched)
		assert.Equal(t, []int64{10, 11}, reader.committed)
	})

	t.Run("persistent failure never commits past the event", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		d := newDispatcher()
		calls := 0
		d.Register(events.RequestUpdated, func(context.Context, []byte) error {
			calls++
			if calls == 7 {
				cancel()
			}
			return errors.New("store down")
		})
		d.Register(events.RequestCreated, func(context.Context, []byte) error { return nil })

		reader := &fakeReader{
			msgs: []kafkago.Message{
				withOffset(message(events.RequestUpdated, `{}`), 10),
				withOffset(message(events.RequestCreated, `{}`), 11),
			},
			cancel: cancel,
		}

		consumer.ConsumeDocumentEvents(ctx, reader, d, zap.NewNop())

		assert.Equal(t, []int64{10}, reader.fetched)
		assert.Empty(t, reader.committed)
	})
}

func TestConsumeDocumentEvents_CommitsHandled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := newDispatcher()
	d.Register(events.RequestCreated, func(context.Context, []byte) error { return nil })

	reader := &fakeReader{
		msgs: []kafkago.Message{
			withOffset(message(events.RequestCreated, `{}`), 1),
			withOffset(message("user.deleted", `{}`), 2),
		},
		cancel: cancel,
	}

	consumer.ConsumeDocumentEvents(ctx, reader, d, zap.NewNop())

	assert.Equal(t, []int64{1, 2}, reader.committed)
}
