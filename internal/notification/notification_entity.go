package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeError   = "error"
)

const (
	CategoryAnnouncement = "announcement"
	CategoryApproval     = "approval"
	CategoryRequest      = "request"
	CategoryTraining     = "training"
	CategoryReminder     = "reminder"
)

// Retention is how long a notification stays in the inbox before the purge
// job removes it.
const Retention = 30 * 24 * time.Hour

type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Message        string    `gorm:"type:text;not null"`
	Type           string    `gorm:"type:varchar(10);not null;default:'info'"`
	Category       string    `gorm:"type:varchar(30);not null"`
	ActionURL      *string   `gorm:"type:text"`
	ActionRequired bool      `gorm:"not null;default:false"`
	IsRead         bool      `gorm:"not null;default:false"`
	IdempotencyKey string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_notifications_idempotency_key"`

	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index:idx_notifications_expires"`
}
