package training

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

//go:generate mockgen -source=training_repo.go -destination=mock/training_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindEnrollmentForUpdate(ctx context.Context, id string) (*Enrollment, error)
	SaveEnrollment(ctx context.Context, e *Enrollment) error
	// MarkCertificateIssued flips certificate_issued once and reports whether
	// this call did it.
	MarkCertificateIssued(ctx context.Context, id, url string, at time.Time) (bool, error)
	// InsertHistory ignores an existing entry for the same user and session.
	InsertHistory(ctx context.Context, h *HistoryEntry) (bool, error)
	UserFullName(ctx context.Context, userID string) (string, error)
	UpcomingMandatorySessions(ctx context.Context, until time.Time) ([]Session, error)
	ActiveEmployeeIDs(ctx context.Context) ([]uuid.UUID, error)
	EnrolledUserIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error)
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

func (r *repository) FindEnrollmentForUpdate(ctx context.Context, id string) (*Enrollment, error) {
	var e Enrollment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) SaveEnrollment(ctx context.Context, e *Enrollment) error {
	return r.db.WithContext(ctx).
		Model(e).
		Select("enrollment_status", "passed", "assessment_score", "completion_date", "hours_completed", "updated_at").
		Updates(e).Error
}

func (r *repository) MarkCertificateIssued(ctx context.Context, id, url string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Enrollment{}).
		Where("id = ? AND certificate_issued = ?", id, false).
		Updates(map[string]any{
			"certificate_issued": true,
			"certificate_url":    url,
			"updated_at":         at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) InsertHistory(ctx context.Context, h *HistoryEntry) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "session_id"}},
			DoNothing: true,
		}).
		Create(h)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) UserFullName(ctx context.Context, userID string) (string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Limit(1).
		Pluck("full_name", &names).Error
	if err != nil || len(names) == 0 {
		return "", err
	}
	return names[0], nil
}

func (r *repository) UpcomingMandatorySessions(ctx context.Context, until time.Time) ([]Session, error) {
	var sessions []Session
	err := r.db.WithContext(ctx).
		Where("is_mandatory = ? AND status = ? AND start_date <= ?", true, SessionUpcoming, until).
		Order("start_date").
		Find(&sessions).Error
	return sessions, err
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

func (r *repository) EnrolledUserIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Enrollment{}).
		Where("session_id = ?", sessionID).
		Pluck("user_id", &ids).Error
	return ids, err
}
