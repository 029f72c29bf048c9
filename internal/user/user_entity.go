package user

import (
	"time"

	"smg-portal/internal/shared/jsoncol"

	"github.com/google/uuid"
)

// User is the portal profile of an identity. ID equals the identity id.
type User struct {
	ID               uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Email            string               `gorm:"column:email;type:varchar(255);not null"`
	FullName         string               `gorm:"column:full_name;type:varchar(255);not null"`
	Role             string               `gorm:"column:role;type:varchar(20);not null"`
	Department       string               `gorm:"column:department;type:varchar(100)"`
	EmployeeCode     string               `gorm:"column:employee_code;type:varchar(50)"`
	Designation      string               `gorm:"column:designation;type:varchar(100)"`
	PhoneNumber      string               `gorm:"column:phone_number;type:varchar(30)"`
	Permissions      jsoncol.List[string] `gorm:"column:permissions;type:jsonb"`
	AdminDepartments jsoncol.List[string] `gorm:"column:admin_departments;type:jsonb"`
	Extra            jsoncol.Map          `gorm:"column:extra;type:jsonb"`
	IsActive         bool                 `gorm:"column:is_active"`
	CreatedAt        time.Time            `gorm:"column:created_at"`
	UpdatedAt        time.Time            `gorm:"column:updated_at"`
}
