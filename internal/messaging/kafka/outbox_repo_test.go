package kafka_test

import (
	"context"
	"encoding/json"
	"testing"

	"smg-portal/internal/events"
	"smg-portal/internal/messaging/kafka"
	"smg-portal/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "rid-42")
	payload := events.RequestCreatedEvent{EventType: events.RequestCreated, RequestID: "req-1"}

	event, err := kafka.NewOutboxEvent(ctx, "request", "req-1", events.RequestCreated, events.RequestsTopic, payload)
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "rid-42", event.RequestID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.Equal(t, events.RequestsTopic, event.Topic)

	var decoded events.RequestCreatedEvent
	require.NoError(t, json.Unmarshal(event.Payload, &decoded))
	assert.Equal(t, "req-1", decoded.RequestID)
}

func TestNewOutboxEvent_Invalid(t *testing.T) {
	_, err := kafka.NewOutboxEvent(context.Background(), "request", "", events.RequestCreated, events.RequestsTopic, struct{}{})
	assert.ErrorContains(t, err, "aggregate id")

	_, err = kafka.NewOutboxEvent(context.Background(), "request", "req-1", events.RequestCreated, "", struct{}{})
	assert.ErrorContains(t, err, "topic")
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{ID: "1", AggregateID: "a", Topic: "t", Payload: []byte("{}"), Status: kafka.OutboxStatusPending}
	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	invalid := valid
	invalid.Status = "queued"
	assert.ErrorContains(t, kafka.ValidateOutboxEvent(invalid), "invalid outbox status")

	invalid = valid
	invalid.Payload = nil
	assert.Error(t, kafka.ValidateOutboxEvent(invalid))
}

func TestOutboxRepository_CreateUsesTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs("id-1", "rid", "request", "req-1", events.RequestUpdated, events.RequestsTopic, []byte(`{}`), kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	err = repo.Create(context.Background(), kafka.OutboxEvent{
		ID:            "id-1",
		RequestID:     "rid",
		AggregateType: "request",
		AggregateID:   "req-1",
		EventType:     events.RequestUpdated,
		Topic:         events.RequestsTopic,
		Payload:       []byte(`{}`),
		Status:        kafka.OutboxStatusPending,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("id-1", "rid", "request", "req-1", events.RequestCreated, events.RequestsTopic, []byte(`{}`), kafka.OutboxStatusPending, 0, testTime)
	mock.ExpectQuery("FROM outbox_events").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
		WillReturnRows(rows)

	got, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 50)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "req-1", got[0].AggregateID)
	assert.Equal(t, events.RequestCreated, got[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
