package domain

import "time"

// Roles.
const (
	RoleAdmin      = "admin"
	RoleConsultant = "consultant"
	RoleStudent    = "student"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-"` // Never return password in JSON
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	StudentID string    `json:"student_id,omitempty"` // set for student accounts
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
