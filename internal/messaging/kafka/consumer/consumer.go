package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smg-portal/internal/events"
	"smg-portal/internal/metrics"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrMalformedEvent marks payloads that can never be handled. Such messages
// are committed and dropped instead of being retried.
var ErrMalformedEvent = errors.New("malformed event")

const maxRedeliveryBackoff = 30 * time.Second

// MessageReader is the subset of *kafkago.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type HandlerFunc func(ctx context.Context, payload []byte) error

// Decode adapts a typed trigger handler to a HandlerFunc.
func Decode[T any](fn func(ctx context.Context, event T) error) HandlerFunc {
	return func(ctx context.Context, payload []byte) error {
		var event T
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		return fn(ctx, event)
	}
}

type Dispatcher struct {
	handlers    map[string]HandlerFunc
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration
	logger      *zap.Logger
}

func NewDispatcher(timeout time.Duration, logger ...*zap.Logger) *Dispatcher {
	l := zap.L().Named("kafka.consumer.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.consumer.dispatcher")
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Dispatcher{
		handlers:    map[string]HandlerFunc{},
		timeout:     timeout,
		maxAttempts: 3,
		backoff:     time.Second,
		logger:      l,
	}
}

func (d *Dispatcher) Register(eventType string, h HandlerFunc) {
	d.handlers[eventType] = h
}

// WithRetry overrides the per-message retry policy.
func (d *Dispatcher) WithRetry(maxAttempts int, backoff time.Duration) *Dispatcher {
	if maxAttempts > 0 {
		d.maxAttempts = maxAttempts
	}
	d.backoff = backoff
	return d
}

// Handle runs the handler registered for the message's event type. It
// returns true when the message may be committed.
func (d *Dispatcher) Handle(ctx context.Context, msg kafkago.Message) bool {
	eventType := headerValue(msg, events.HeaderEventType)
	log := d.logger.With(
		zap.String("event_type", eventType),
		zap.String("key", string(msg.Key)),
		zap.String("request_id", headerValue(msg, "request_id")),
		zap.Int64("offset", msg.Offset),
	)

	handler, ok := d.handlers[eventType]
	if !ok {
		log.Warn("no handler for event type, skipping")
		metrics.TriggerEventsTotal.WithLabelValues(eventType, metrics.ResultSkipped).Inc()
		return true
	}

	var err error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		err = d.invoke(ctx, handler, msg.Value)
		if err == nil {
			metrics.TriggerEventsTotal.WithLabelValues(eventType, metrics.ResultOK).Inc()
			return true
		}
		if errors.Is(err, ErrMalformedEvent) {
			log.Error("decode event failed, dropping", zap.Error(err))
			metrics.TriggerEventsTotal.WithLabelValues(eventType, metrics.ResultSkipped).Inc()
			return true
		}
		if ctx.Err() != nil {
			return false
		}

		log.Warn("handler failed", zap.Int("attempt", attempt), zap.Error(err))
		if attempt < d.maxAttempts && d.backoff > 0 {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(d.backoff * time.Duration(attempt)):
			}
		}
	}

	log.Error("handler exhausted retries, leaving message uncommitted", zap.Error(err))
	metrics.TriggerEventsTotal.WithLabelValues(eventType, metrics.ResultError).Inc()
	return false
}

// HandleUntilDone redelivers msg to its handler with capped backoff until it
// can be committed. It returns false only when ctx is done.
func (d *Dispatcher) HandleUntilDone(ctx context.Context, msg kafkago.Message) bool {
	for round := 1; ; round++ {
		if d.Handle(ctx, msg) {
			return true
		}
		if ctx.Err() != nil {
			return false
		}

		wait := d.backoff * time.Duration(round)
		if wait > maxRedeliveryBackoff {
			wait = maxRedeliveryBackoff
		}
		d.logger.Warn("redelivering failed event",
			zap.String("event_type", headerValue(msg, events.HeaderEventType)),
			zap.Int64("offset", msg.Offset),
			zap.Int("round", round),
			zap.Duration("wait", wait),
		)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(wait):
		}
	}
}

func (d *Dispatcher) invoke(ctx context.Context, handler HandlerFunc, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return handler(ctx, payload)
}

// ConsumeDocumentEvents is the trigger runtime loop. Offsets are committed
// only after the handler succeeded, which gives at-least-once delivery.
func ConsumeDocumentEvents(
	ctx context.Context,
	reader MessageReader,
	dispatcher *Dispatcher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.document_events")
	log.Info("document events consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("document events consumer stopped")
				return
			}
			log.Error("fetch document event failed", zap.Error(err))
			continue
		}

		// Commits are offset watermarks: moving on would ack this message.
		if !dispatcher.HandleUntilDone(ctx, msg) {
			log.Info("document events consumer stopped")
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit document event failed", zap.Error(err))
		}
	}
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
