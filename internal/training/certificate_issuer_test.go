package training_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"smg-portal/internal/certificate"
	certificateMock "smg-portal/internal/certificate/mock"
	"smg-portal/internal/events"
	"smg-portal/internal/notification"
	notificationMock "smg-portal/internal/notification/mock"
	"smg-portal/internal/training"
	trainingMock "smg-portal/internal/training/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	enrollmentID = "5f0c2a4e-3b7d-4f0e-9a51-1c2d3e4f5a60"
	learnerID    = "8a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	sessionID    = "0e9d8c7b-6a5f-4e3d-8c2b-1a0f9e8d7c6b"
)

type issuerDeps struct {
	sqlMock  sqlmock.Sqlmock
	repo     *trainingMock.MockRepository
	store    *certificateMock.MockStore
	notifier *notificationMock.MockWriter
	issuer   *training.CertificateIssuer
}

func setupIssuerTest(t *testing.T) *issuerDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	d := &issuerDeps{
		sqlMock:  sqlMock,
		repo:     trainingMock.NewMockRepository(ctrl),
		store:    certificateMock.NewMockStore(ctrl),
		notifier: notificationMock.NewMockWriter(ctrl),
	}
	d.issuer = training.NewCertificateIssuer(db, d.repo, d.store, d.notifier, "https://certs.example.com/")
	return d
}

func enrollmentSnapshot(status string, passed, issued bool) *events.EnrollmentSnapshot {
	score := 88.0
	hours := 6.0
	done := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	return &events.EnrollmentSnapshot{
		ID:                enrollmentID,
		UserID:            learnerID,
		SessionID:         sessionID,
		SessionTitle:      "Fire Safety",
		EnrollmentStatus:  status,
		Passed:            passed,
		AssessmentScore:   &score,
		HoursCompleted:    &hours,
		CompletionDate:    &done,
		CertificateIssued: issued,
	}
}

func completedEvent() events.EnrollmentUpdatedEvent {
	return events.EnrollmentUpdatedEvent{
		EventType:    events.EnrollmentUpdated,
		EnrollmentID: enrollmentID,
		Before:       enrollmentSnapshot(training.EnrollmentInProgress, false, false),
		After:        enrollmentSnapshot(training.EnrollmentCompleted, true, false),
	}
}

func TestShouldIssue(t *testing.T) {
	cases := []struct {
		name   string
		before *events.EnrollmentSnapshot
		after  *events.EnrollmentSnapshot
		want   bool
	}{
		{"completed with pass", enrollmentSnapshot("in_progress", false, false), enrollmentSnapshot("completed", true, false), true},
		{"already completed", enrollmentSnapshot("completed", true, false), enrollmentSnapshot("completed", true, false), false},
		{"failed", enrollmentSnapshot("in_progress", false, false), enrollmentSnapshot("completed", false, false), false},
		{"already issued", enrollmentSnapshot("in_progress", false, false), enrollmentSnapshot("completed", true, true), false},
		{"not completed", enrollmentSnapshot("enrolled", false, false), enrollmentSnapshot("in_progress", true, false), false},
		{"missing before", nil, enrollmentSnapshot("completed", true, false), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, training.ShouldIssue(tc.before, tc.after))
		})
	}
}

func TestCertificateIssuer_OnEnrollmentUpdated(t *testing.T) {
	ctx := context.Background()
	url := "https://certs.example.com/" + enrollmentID

	t.Run("renders stores records and notifies", func(t *testing.T) {
		d := setupIssuerTest(t)
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()

		d.repo.EXPECT().UserFullName(ctx, learnerID).Return("Asha Rao", nil)
		d.store.EXPECT().
			Put(ctx, certificate.ObjectName(enrollmentID), certificate.ContentTypePDF, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, data []byte) error {
				assert.True(t, len(data) > 0)
				assert.Equal(t, "%PDF", string(data[:4]))
				return nil
			})
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().MarkCertificateIssued(ctx, enrollmentID, url, gomock.Any()).Return(true, nil)
		d.repo.EXPECT().InsertHistory(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, h *training.HistoryEntry) (bool, error) {
			assert.Equal(t, learnerID, h.UserID.String())
			assert.Equal(t, sessionID, h.SessionID.String())
			assert.Equal(t, "Fire Safety", h.Title)
			assert.Equal(t, 6.0, h.HoursCompleted)
			assert.Equal(t, 88.0, h.Score)
			assert.Equal(t, url, h.CertificateURL)
			assert.Equal(t, "2026-03-14", h.CompletedDate.Format("2006-01-02"))
			return true, nil
		})
		d.notifier.EXPECT().Send(ctx, notification.Message{
			UserID:    learnerID,
			Title:     "Certificate Issued!",
			Message:   `Congratulations! Your certificate for "Fire Safety" is ready.`,
			Type:      notification.TypeSuccess,
			Category:  notification.CategoryTraining,
			ActionURL: url,
			Key:       notification.IdempotencyKey("certificate", enrollmentID, learnerID),
		}).Return(notification.SendResult{ID: "n-1", Sent: true}, nil)

		err := d.issuer.OnEnrollmentUpdated(ctx, completedEvent())

		assert.NoError(t, err)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("redelivery is absorbed", func(t *testing.T) {
		d := setupIssuerTest(t)
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()

		d.repo.EXPECT().UserFullName(ctx, learnerID).Return("Asha Rao", nil)
		d.store.EXPECT().Put(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().MarkCertificateIssued(ctx, enrollmentID, url, gomock.Any()).Return(false, nil)
		d.repo.EXPECT().InsertHistory(ctx, gomock.Any()).Return(false, nil)
		d.notifier.EXPECT().Send(ctx, gomock.Any()).Return(notification.SendResult{ID: "n-1", Sent: false}, nil)

		assert.NoError(t, d.issuer.OnEnrollmentUpdated(ctx, completedEvent()))
	})

	t.Run("storage failure stops before the database", func(t *testing.T) {
		d := setupIssuerTest(t)

		d.repo.EXPECT().UserFullName(ctx, learnerID).Return("Asha Rao", nil)
		d.store.EXPECT().Put(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("bucket down"))

		err := d.issuer.OnEnrollmentUpdated(ctx, completedEvent())

		assert.EqualError(t, err, "bucket down")
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("history failure rolls back", func(t *testing.T) {
		d := setupIssuerTest(t)
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()

		d.repo.EXPECT().UserFullName(ctx, learnerID).Return("Asha Rao", nil)
		d.store.EXPECT().Put(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().MarkCertificateIssued(ctx, enrollmentID, url, gomock.Any()).Return(true, nil)
		d.repo.EXPECT().InsertHistory(ctx, gomock.Any()).Return(false, errors.New("constraint"))

		assert.Error(t, d.issuer.OnEnrollmentUpdated(ctx, completedEvent()))
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("title with quotes is kept verbatim", func(t *testing.T) {
		d := setupIssuerTest(t)
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()

		evt := completedEvent()
		evt.After.SessionTitle = `Fire "Safety"`

		d.repo.EXPECT().UserFullName(ctx, learnerID).Return("Asha Rao", nil)
		d.store.EXPECT().Put(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().MarkCertificateIssued(ctx, enrollmentID, url, gomock.Any()).Return(true, nil)
		d.repo.EXPECT().InsertHistory(ctx, gomock.Any()).Return(true, nil)
		d.notifier.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, msg notification.Message) (notification.SendResult, error) {
			assert.Equal(t, `Congratulations! Your certificate for "Fire "Safety"" is ready.`, msg.Message)
			return notification.SendResult{ID: "n-1", Sent: true}, nil
		})

		assert.NoError(t, d.issuer.OnEnrollmentUpdated(ctx, evt))
	})

	t.Run("non completing change does nothing", func(t *testing.T) {
		d := setupIssuerTest(t)
		evt := completedEvent()
		evt.Before = enrollmentSnapshot(training.EnrollmentCompleted, true, false)

		assert.NoError(t, d.issuer.OnEnrollmentUpdated(ctx, evt))
	})
}
