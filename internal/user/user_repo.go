package user

import (
	"context"
	"database/sql"
	"time"

	"smg-portal/internal/shared/dbscope"
	"smg-portal/internal/shared/jsoncol"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByID(ctx context.Context, id string) (*User, error)
	// Upsert writes the profile keyed by id, so a retried provisioning call
	// completes the step instead of failing on the existing row.
	Upsert(ctx context.Context, u *User) error
	UpdateRole(ctx context.Context, id, role string, permissions, adminDepartments []string, updatedAt time.Time) (bool, error)
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

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) Upsert(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email", "full_name", "role", "department", "employee_code",
				"designation", "phone_number", "extra", "is_active", "updated_at",
			}),
		}).
		Create(u).Error
}

func (r *repository) UpdateRole(ctx context.Context, id, role string, permissions, adminDepartments []string, updatedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"role":              role,
			"permissions":       jsoncol.List[string](permissions),
			"admin_departments": jsoncol.List[string](adminDepartments),
			"updated_at":        updatedAt,
		})
	return res.RowsAffected > 0, res.Error
}
