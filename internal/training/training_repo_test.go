package training_test

import (
	"context"
	"testing"
	"time"

	"smg-portal/internal/training"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRepo(t *testing.T) (training.Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return training.NewRepository(gdb), mock
}

func TestRepository_MarkCertificateIssued(t *testing.T) {
	ctx := context.Background()

	t.Run("first mark", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(`UPDATE "training_enrollments" SET .* WHERE id = \$\d+ AND certificate_issued = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.MarkCertificateIssued(ctx, enrollmentID, "https://certs.example.com/x", time.Now())

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already marked", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(`UPDATE "training_enrollments"`).WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.MarkCertificateIssued(ctx, enrollmentID, "https://certs.example.com/x", time.Now())

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRepository_InsertHistory(t *testing.T) {
	ctx := context.Background()
	repo, mock := newRepo(t)
	mock.ExpectExec(`INSERT INTO "training_history" .* ON CONFLICT \("user_id","session_id"\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := repo.InsertHistory(ctx, &training.HistoryEntry{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		SessionID: uuid.New(),
		Title:     "Fire Safety",
		CreatedAt: time.Now(),
	})

	assert.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_EnrolledUserIDs(t *testing.T) {
	repo, mock := newRepo(t)
	session := uuid.New()
	user := uuid.New()
	mock.ExpectQuery(`SELECT "user_id" FROM "training_enrollments" WHERE session_id = \$1`).
		WithArgs(session).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(user.String()))

	ids, err := repo.EnrolledUserIDs(context.Background(), session)

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{user}, ids)
}
