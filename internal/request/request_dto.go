package request

type ApproverInput struct {
	UserID string `json:"user_id" binding:"required"`
	Name   string `json:"name"`
}

type CreateRequestRequest struct {
	EmployeeName string          `json:"employee_name" binding:"required"`
	RequestType  string          `json:"request_type" binding:"required,max=50"`
	Title        string          `json:"title" binding:"required,max=255"`
	Description  string          `json:"description"`
	Approvers    []ApproverInput `json:"approvers" binding:"dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress approved rejected completed"`
}

type ApproverResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
}

type RequestResponse struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	EmployeeName string             `json:"employee_name"`
	RequestType  string             `json:"request_type"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Status       string             `json:"status"`
	Approvers    []ApproverResponse `json:"approvers"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}
