package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusHalfDay = "half_day"
	StatusLeave   = "leave"
)

// MonthLayout formats the month key of a summary.
const MonthLayout = "2006-01"

// Record is one day of attendance. Records are written elsewhere and only
// read by the rollup.
type Record struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Date          time.Time `gorm:"column:date;not null"`
	Status        string    `gorm:"column:status;type:varchar(10);not null"`
	WorkHours     *float64  `gorm:"column:work_hours"`
	OvertimeHours *float64  `gorm:"column:overtime_hours"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (Record) TableName() string {
	return "attendance_records"
}

type MonthlySummary struct {
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Month          string    `gorm:"column:month;type:char(7);primaryKey"`
	TotalDays      int       `gorm:"column:total_days"`
	PresentDays    int       `gorm:"column:present_days"`
	AbsentDays     int       `gorm:"column:absent_days"`
	HalfDays       int       `gorm:"column:half_days"`
	LeaveDays      int       `gorm:"column:leave_days"`
	TotalWorkHours float64   `gorm:"column:total_work_hours"`
	OvertimeHours  float64   `gorm:"column:overtime_hours"`
	// Remarks is owned by HR and survives every rollup.
	Remarks   string    `gorm:"column:remarks"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (MonthlySummary) TableName() string {
	return "attendance_monthly_summaries"
}
