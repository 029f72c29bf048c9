package request

import (
	"context"
	"database/sql"
	"time"

	"smg-portal/internal/shared/dbscope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, id string) (*Request, error)
	// FindByIDForUpdate locks the row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id string) (*Request, error)
	FindByUser(ctx context.Context, userID string) ([]Request, error)
	FindAll(ctx context.Context) ([]Request, error)
	// UpdateStatus moves the row from one status to another and reports
	// whether the row was still in the from status.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]Request, error) {
	var reqs []Request
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindAll(ctx context.Context) ([]Request, error) {
	var reqs []Request
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Request{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": at,
		})
	return res.RowsAffected > 0, res.Error
}
