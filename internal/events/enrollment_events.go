package events

import "time"

type EnrollmentSnapshot struct {
	ID                string     `json:"id"`
	UserID            string     `json:"userId"`
	SessionID         string     `json:"sessionId"`
	SessionTitle      string     `json:"sessionTitle"`
	EnrollmentStatus  string     `json:"enrollmentStatus"`
	Passed            bool       `json:"passed"`
	AssessmentScore   *float64   `json:"assessmentScore,omitempty"`
	CompletionDate    *time.Time `json:"completionDate,omitempty"`
	Duration          string     `json:"duration,omitempty"`
	HoursCompleted    *float64   `json:"hoursCompleted,omitempty"`
	CertificateIssued bool       `json:"certificateIssued"`
	CertificateURL    string     `json:"certificateUrl,omitempty"`
}

type EnrollmentUpdatedEvent struct {
	EventType    string              `json:"event_type"`
	EnrollmentID string              `json:"enrollment_id"`
	Before       *EnrollmentSnapshot `json:"before"`
	After        *EnrollmentSnapshot `json:"after"`
	OccurredAt   time.Time           `json:"occurred_at"`
}
