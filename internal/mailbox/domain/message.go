package domain

import "time"

// EmailMessage is one row of the local mailbox mirror, keyed by the natural
// (student, Gmail message id) pair. Core fields are immutable after first
// sync; snippet, body and labels are refreshed on every sync.
type EmailMessage struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	StudentID      string    `json:"student_id" gorm:"uniqueIndex:idx_student_gmail_message;not null"`
	GmailMessageID string    `json:"gmail_message_id" gorm:"uniqueIndex:idx_student_gmail_message;not null"`
	ThreadID       string    `json:"thread_id"`
	FromAddress    string    `json:"from_address"`
	ToAddress      string    `json:"to_address"`
	Subject        string    `json:"subject"`
	Snippet        string    `json:"snippet" gorm:"type:text"`
	Body           string    `json:"body,omitempty" gorm:"type:text"`
	LabelIDs       string    `json:"label_ids"`
	InternalDate   time.Time `json:"internal_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayBody is what the UI renders: the HTML body when one was extracted,
// otherwise the snippet.
func (m *EmailMessage) DisplayBody() string {
	if m.Body != "" {
		return m.Body
	}
	return m.Snippet
}

// MessageData is a message as fetched from the provider, before it is
// upserted into the mirror.
type MessageData struct {
	ID           string
	ThreadID     string
	From         string
	To           string
	Subject      string
	Snippet      string
	BodyHTML     string
	LabelIDs     []string
	InternalDate time.Time
}

// Attachment is an outbound file attachment.
type Attachment struct {
	Filename string
	MimeType string
	Content  []byte
}

// SendOptions carries the optional parts of an outbound message.
type SendOptions struct {
	CC          string
	BCC         string
	Attachments []Attachment
}
