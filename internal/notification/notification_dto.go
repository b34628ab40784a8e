package notification

type NotificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	RequestID string `json:"request_id,omitempty"`
	Action    string `json:"action,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
