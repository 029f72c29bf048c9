package events

import "time"

type Approver struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
}

type RequestSnapshot struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	EmployeeName string     `json:"employeeName"`
	RequestType  string     `json:"requestType"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	Approvers    []Approver `json:"approvers"`
}

type RequestCreatedEvent struct {
	EventType  string           `json:"event_type"`
	RequestID  string           `json:"request_id"`
	Request    *RequestSnapshot `json:"request"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type RequestUpdatedEvent struct {
	EventType  string           `json:"event_type"`
	RequestID  string           `json:"request_id"`
	Before     *RequestSnapshot `json:"before"`
	After      *RequestSnapshot `json:"after"`
	OccurredAt time.Time        `json:"occurred_at"`
}
