package domain

import "time"

type Notification struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	// Attributes carries machine-readable references, e.g.
	// {"type": "EVENT_APPROVED", "event_id": "..."}.
	Attributes map[string]string `json:"attributes,omitempty"`
	IsRead     bool              `json:"is_read"`
	CreatedOn  time.Time         `json:"created_on"`
}
