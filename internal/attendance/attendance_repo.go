package attendance

import (
	"context"
	"database/sql"
	"time"

	"smg-portal/internal/domain"
	"smg-portal/internal/shared/dbscope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rollupColumns are the summary columns the rollup owns. Everything else on
// an existing row is left as it is.
var rollupColumns = []string{
	"total_days", "present_days", "absent_days", "half_days", "leave_days",
	"total_work_hours", "overtime_hours", "updated_at",
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	ActiveEmployeeIDs(ctx context.Context) ([]uuid.UUID, error)
	FindRecordsBetween(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) ([]Record, error)
	UpsertSummaries(ctx context.Context, summaries []MonthlySummary) error
	FindSummary(ctx context.Context, userID, month string) (*MonthlySummary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbscope.BindTx(r.db, tx)}
}

func (r *repository) ActiveEmployeeIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("users").
		Scopes(dbscope.ActiveWithRole(domain.RoleEmployee)).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) FindRecordsBetween(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) ([]Record, error) {
	var rows []Record
	if len(userIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("date >= ? AND date <= ?", from, to).
		Order("user_id, date").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpsertSummaries(ctx context.Context, summaries []MonthlySummary) error {
	if len(summaries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns(rollupColumns),
		}).
		CreateInBatches(summaries, 500).Error
}

func (r *repository) FindSummary(ctx context.Context, userID, month string) (*MonthlySummary, error) {
	var s MonthlySummary
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		First(&s).Error
	return &s, err
}
