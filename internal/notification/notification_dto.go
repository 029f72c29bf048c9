package notification

// Message is what a component hands to the Writer. Key is the deterministic
// idempotency key; build it with IdempotencyKey.
type Message struct {
	UserID         string
	Title          string
	Message        string
	Type           string
	Category       string
	ActionURL      string
	ActionRequired bool
	Key            string
}

type SendResult struct {
	ID   string
	Sent bool
}

type NotificationResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Title          string  `json:"title"`
	Message        string  `json:"message"`
	Type           string  `json:"type"`
	Category       string  `json:"category"`
	ActionURL      *string `json:"action_url,omitempty"`
	ActionRequired bool    `json:"action_required"`
	Read           bool    `json:"read"`
	CreatedAt      string  `json:"created_at"`
	ExpiresAt      string  `json:"expires_at"`
}
