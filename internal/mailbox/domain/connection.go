package domain

import "time"

// Connection status values.
const (
	StatusConnected    = "connected"
	StatusExpired      = "expired"
	StatusDisconnected = "disconnected"
)

// GmailConnection holds a student's delegated Gmail credentials. Tokens are
// stored encrypted; the plaintext only exists inside the token broker.
type GmailConnection struct {
	ID                    string    `json:"id" gorm:"primaryKey"`
	StudentID             string    `json:"student_id" gorm:"uniqueIndex;not null"`
	Email                 string    `json:"email"`
	AccessTokenEncrypted  string    `json:"-" gorm:"type:text"`
	RefreshTokenEncrypted string    `json:"-" gorm:"type:text"`
	ExpiryDate            time.Time `json:"expiry_date"`
	Status                string    `json:"status"`
	LastSyncAt            time.Time `json:"last_sync_at"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
