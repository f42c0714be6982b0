package repository

import (
	"time"

	"edupath-backend/internal/mailbox/domain"
)

// ConnectionRepository defines storage operations for Gmail connections.
type ConnectionRepository interface {
	// FindByStudentID returns nil, nil when the student has no connection.
	FindByStudentID(studentID string) (*domain.GmailConnection, error)
	Save(conn *domain.GmailConnection) error
	Update(conn *domain.GmailConnection) error
	// UpdateStatus flips the connection status without touching tokens.
	UpdateStatus(studentID, status string) error
	// UpdateLastSync stamps the completion time of a sync run.
	UpdateLastSync(studentID string, at time.Time) error
	Delete(studentID string) error
}
