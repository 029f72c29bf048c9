package attendance

type SummaryResponse struct {
	UserID         string  `json:"user_id"`
	Month          string  `json:"month"`
	TotalDays      int     `json:"total_days"`
	PresentDays    int     `json:"present_days"`
	AbsentDays     int     `json:"absent_days"`
	HalfDays       int     `json:"half_days"`
	LeaveDays      int     `json:"leave_days"`
	TotalWorkHours float64 `json:"total_work_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	Remarks        string  `json:"remarks,omitempty"`
	UpdatedAt      string  `json:"updated_at"`
}

type RollupResult struct {
	Month string `json:"month"`
	Users int    `json:"users"`
}
