package request

import (
	"time"

	"smg-portal/internal/events"
	"smg-portal/internal/shared/jsoncol"

	"github.com/google/uuid"
)

type Request struct {
	ID           uuid.UUID                     `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID                     `gorm:"type:uuid;not null;index:idx_requests_user"`
	EmployeeName string                        `gorm:"type:varchar(255);not null"`
	RequestType  string                        `gorm:"type:varchar(50);not null"`
	Title        string                        `gorm:"type:varchar(255);not null"`
	Description  string                        `gorm:"type:text"`
	Status       Status                        `gorm:"type:varchar(20);not null"`
	Approvers    jsoncol.List[events.Approver] `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Snapshot is the document shape carried by change events.
func (r Request) Snapshot() *events.RequestSnapshot {
	approvers := []events.Approver(r.Approvers)
	if approvers == nil {
		approvers = []events.Approver{}
	}
	return &events.RequestSnapshot{
		ID:           r.ID.String(),
		UserID:       r.UserID.String(),
		EmployeeName: r.EmployeeName,
		RequestType:  r.RequestType,
		Title:        r.Title,
		Description:  r.Description,
		Status:       string(r.Status),
		Approvers:    approvers,
	}
}
