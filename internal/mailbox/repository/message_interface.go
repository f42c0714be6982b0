package repository

import "edupath-backend/internal/mailbox/domain"

// MessageRepository defines storage operations for the local mailbox mirror.
type MessageRepository interface {
	// Upsert inserts the message or, when the (student, Gmail message id)
	// pair already exists, refreshes its mutable fields. Core fields are
	// written once and never duplicated.
	Upsert(msg *domain.EmailMessage) error
	// ListByStudent returns messages newest-first with the total count.
	ListByStudent(studentID string, limit, offset int) ([]*domain.EmailMessage, int64, error)
	// ListAllByStudent returns every mirrored message newest-first, for
	// in-memory search.
	ListAllByStudent(studentID string) ([]*domain.EmailMessage, error)
	// FindByGmailID returns nil, nil when the message is not mirrored.
	FindByGmailID(studentID, gmailMessageID string) (*domain.EmailMessage, error)
	CountByStudent(studentID string) (int64, error)
}
