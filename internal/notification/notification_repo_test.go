package notification_test

import (
	"context"
	"testing"

	"smg-portal/internal/notification"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRepo(t *testing.T) (notification.Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return notification.NewRepository(gdb), mock
}

func TestNotificationRepository_Insert(t *testing.T) {
	ctx := context.Background()

	newRow := func() *notification.Notification {
		return &notification.Notification{
			ID:             uuid.New(),
			UserID:         uuid.New(),
			Title:          "t",
			Message:        "m",
			Type:           notification.TypeInfo,
			Category:       notification.CategoryRequest,
			IdempotencyKey: "key-1",
			CreatedAt:      fixedNow,
			ExpiresAt:      fixedNow,
		}
	}

	t.Run("inserted", func(t *testing.T) {
		repo, mock := newRepo(t)
		row := newRow()
		mock.ExpectQuery(`INSERT INTO "notifications" .* ON CONFLICT \("idempotency_key"\) DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(row.ID))

		ok, err := repo.Insert(ctx, row)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict suppressed", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`INSERT INTO "notifications" .* ON CONFLICT \("idempotency_key"\) DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		ok, err := repo.Insert(ctx, newRow())

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(`UPDATE "notifications" SET "is_read"=\$1 WHERE id = \$2 AND user_id = \$3`).
		WithArgs(true, "n-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.MarkRead(context.Background(), "u-1", "n-1")

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_DeleteExpired(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(`DELETE FROM "notifications" WHERE expires_at < \$1`).
		WithArgs(fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpired(context.Background(), fixedNow)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
