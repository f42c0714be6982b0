package domain

import "time"

// Offer statuses. Draft offers are editable; a sent offer waits for the
// student's response.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

type Offer struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	StudentID   string     `json:"student_id" gorm:"index"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
