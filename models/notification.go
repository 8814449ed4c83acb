package models

// ReminderPayload is the body of a scheduled reminder task.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	RequestID  string `json:"requestId"`
	Target     Role   `json:"target"` // user or worker
	ID         string `json:"id"`     // recipient account id
	Title      string `json:"title"`
	Body       string `json:"body"`
	FireDate   string `json:"fireDate"`
}
