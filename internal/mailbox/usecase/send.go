package usecase

import (
	"context"

	"edupath-backend/internal/mailbox/domain"
	"edupath-backend/pkg/fuzzy"
	"edupath-backend/pkg/gmail"
)

// Send composes and submits a message under the student's delegated identity
// and returns the provider's message id. Unlike Sync there is no soft state
// here: callers must have ensured a connected mailbox first.
func (u *mailboxUsecase) Send(ctx context.Context, studentID, to, subject, htmlBody string, opts domain.SendOptions) (string, error) {
	client, conn, err := u.clientForStudent(ctx, studentID)
	if err != nil {
		u.markExpiredOnAuthFailure(studentID, err)
		u.collector.RecordSendFailure()
		return "", err
	}
	if client == nil {
		u.collector.RecordSendFailure()
		return "", ErrNoValidConnection
	}

	raw := gmail.BuildRawMessage("", conn.Email, to, subject, htmlBody, opts)

	id, err := client.SendRaw(ctx, raw)
	if err != nil {
		// Provider rejections surface unmodified for display.
		u.collector.RecordSendFailure()
		return "", err
	}

	u.collector.RecordMessageSent()
	return id, nil
}

// ListMessages reads the local mirror, newest first. A non-empty query
// filters with typo-tolerant matching over subject, sender, snippet and body.
func (u *mailboxUsecase) ListMessages(studentID, query string, limit, offset int) ([]*domain.EmailMessage, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	if query == "" {
		return u.msgRepo.ListByStudent(studentID, limit, offset)
	}

	all, err := u.msgRepo.ListAllByStudent(studentID)
	if err != nil {
		return nil, 0, err
	}

	var matched []*domain.EmailMessage
	for _, msg := range all {
		if fuzzy.MatchMessage(query, msg.Subject, msg.FromAddress, msg.Snippet, msg.Body) {
			matched = append(matched, msg)
		}
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return []*domain.EmailMessage{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (u *mailboxUsecase) GetMessage(studentID, gmailMessageID string) (*domain.EmailMessage, error) {
	return u.msgRepo.FindByGmailID(studentID, gmailMessageID)
}
