package training

type UpdateEnrollmentRequest struct {
	EnrollmentStatus *string  `json:"enrollment_status" binding:"omitempty,oneof=enrolled in_progress completed dropped"`
	Passed           *bool    `json:"passed"`
	AssessmentScore  *float64 `json:"assessment_score" binding:"omitempty,gte=0,lte=100"`
	CompletionDate   *string  `json:"completion_date"`
	HoursCompleted   *float64 `json:"hours_completed" binding:"omitempty,gte=0"`
}

type EnrollmentResponse struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	SessionID         string   `json:"session_id"`
	SessionTitle      string   `json:"session_title"`
	EnrollmentStatus  string   `json:"enrollment_status"`
	Passed            bool     `json:"passed"`
	AssessmentScore   *float64 `json:"assessment_score,omitempty"`
	CompletionDate    *string  `json:"completion_date,omitempty"`
	HoursCompleted    *float64 `json:"hours_completed,omitempty"`
	CertificateIssued bool     `json:"certificate_issued"`
	CertificateURL    string   `json:"certificate_url,omitempty"`
	UpdatedAt         string   `json:"updated_at"`
}

type ReminderResult struct {
	Sessions int `json:"sessions"`
	Sent     int `json:"sent"`
}
