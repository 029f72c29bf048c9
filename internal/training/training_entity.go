package training

import (
	"time"

	"smg-portal/internal/events"

	"github.com/google/uuid"
)

const (
	SessionUpcoming  = "upcoming"
	SessionOngoing   = "ongoing"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"

	EnrollmentEnrolled   = "enrolled"
	EnrollmentInProgress = "in_progress"
	EnrollmentCompleted  = "completed"
	EnrollmentDropped    = "dropped"
)

type Session struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null"`
	IsMandatory bool      `gorm:"column:is_mandatory"`
	Status      string    `gorm:"type:varchar(20);not null"`
	StartDate   time.Time `gorm:"column:start_date;not null"`
	Duration    string    `gorm:"type:varchar(50)"`
	CreatedAt   time.Time
}

func (Session) TableName() string {
	return "training_sessions"
}

type Enrollment struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null"`
	SessionID         uuid.UUID  `gorm:"type:uuid;not null"`
	SessionTitle      string     `gorm:"type:varchar(255)"`
	EnrollmentStatus  string     `gorm:"type:varchar(20);not null"`
	Passed            bool       `gorm:"column:passed"`
	AssessmentScore   *float64   `gorm:"column:assessment_score"`
	CompletionDate    *time.Time `gorm:"column:completion_date"`
	Duration          string     `gorm:"type:varchar(50)"`
	HoursCompleted    *float64   `gorm:"column:hours_completed"`
	CertificateIssued bool       `gorm:"column:certificate_issued"`
	CertificateURL    string     `gorm:"column:certificate_url"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Enrollment) TableName() string {
	return "training_enrollments"
}

func (e Enrollment) Snapshot() *events.EnrollmentSnapshot {
	return &events.EnrollmentSnapshot{
		ID:                e.ID.String(),
		UserID:            e.UserID.String(),
		SessionID:         e.SessionID.String(),
		SessionTitle:      e.SessionTitle,
		EnrollmentStatus:  e.EnrollmentStatus,
		Passed:            e.Passed,
		AssessmentScore:   e.AssessmentScore,
		CompletionDate:    e.CompletionDate,
		Duration:          e.Duration,
		HoursCompleted:    e.HoursCompleted,
		CertificateIssued: e.CertificateIssued,
		CertificateURL:    e.CertificateURL,
	}
}

// HistoryEntry is the permanent record of a completed, certified training.
type HistoryEntry struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null"`
	SessionID      uuid.UUID  `gorm:"type:uuid;not null"`
	Title          string     `gorm:"type:varchar(255);not null"`
	CompletedDate  *time.Time `gorm:"column:completed_date"`
	Duration       string     `gorm:"type:varchar(50)"`
	HoursCompleted float64    `gorm:"column:hours_completed"`
	CertificateURL string     `gorm:"column:certificate_url"`
	Score          float64    `gorm:"column:score"`
	CreatedAt      time.Time
}

func (HistoryEntry) TableName() string {
	return "training_history"
}
