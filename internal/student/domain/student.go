package domain

import "time"

// Student statuses.
const (
	StatusProspect = "prospect"
	StatusActive   = "active"
	StatusEnrolled = "enrolled"
	StatusArchived = "archived"
)

type Student struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email" gorm:"index"`
	Phone        string    `json:"phone"`
	Country      string    `json:"country"`
	Program      string    `json:"program"`
	Status       string    `json:"status"`
	ConsultantID string    `json:"consultant_id,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *Student) FullName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
