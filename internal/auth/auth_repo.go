package auth

import (
	"context"
	"database/sql"
	"time"

	"smg-portal/internal/shared/dbscope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, identity *Identity) error
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	GetByID(ctx context.Context, id string) (*Identity, error)
	UpdateClaims(ctx context.Context, id string, claims Claims) (bool, error)
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, identity *Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Identity, error) {
	var identity Identity
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&identity).Error
	return &identity, err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Identity, error) {
	var identity Identity
	err := r.db.WithContext(ctx).First(&identity, "id = ?", id).Error
	return &identity, err
}

// UpdateClaims replaces the whole claims document.
func (r *repository) UpdateClaims(ctx context.Context, id string, claims Claims) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Identity{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"claims":     claims,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Identity{}, "id = ?", id).Error
}
