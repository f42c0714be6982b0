package usecase

import (
	"context"
	"log"
	"strings"

	"edupath-backend/internal/mailbox/domain"
)

const fetchConcurrency = 5

// Sync mirrors the student's recent INBOX and SENT messages into the local
// store. Re-running it is idempotent: upserts are keyed by the natural
// (student, Gmail message id) pair.
func (u *mailboxUsecase) Sync(ctx context.Context, studentID string) (*SyncResult, error) {
	client, _, err := u.clientForStudent(ctx, studentID)
	if err != nil {
		u.markExpiredOnAuthFailure(studentID, err)
		u.collector.RecordSyncFailure()
		return nil, err
	}
	if client == nil {
		return nil, ErrNoValidConnection
	}

	inboxIDs, err := client.ListMessageIDs(ctx, "INBOX", u.config.SyncMaxResults)
	if err != nil {
		u.collector.RecordSyncFailure()
		return nil, err
	}
	sentIDs, err := client.ListMessageIDs(ctx, "SENT", u.config.SyncMaxResults)
	if err != nil {
		u.collector.RecordSyncFailure()
		return nil, err
	}

	ids := mergeMessageIDs(inboxIDs, sentIDs)

	// Fetch full messages in parallel with bounded concurrency, pacing the
	// provider calls through the rate limiter.
	results := make(chan *domain.MessageData, len(ids))
	semaphore := make(chan struct{}, fetchConcurrency)

	for _, id := range ids {
		go func(messageID string) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := u.limiter.Wait(ctx); err != nil {
				results <- nil
				return
			}

			data, err := client.GetMessage(ctx, messageID)
			if err != nil {
				log.Printf("sync: skipping message %s for student %s: %v", messageID, studentID, err)
				results <- nil
				return
			}
			results <- data
		}(id)
	}

	synced := 0
	for range ids {
		data := <-results
		if data == nil {
			continue
		}
		if err := u.msgRepo.Upsert(u.mirrorMessage(studentID, data)); err != nil {
			u.collector.RecordSyncFailure()
			return nil, err
		}
		synced++
	}

	// Stamp the sync time once, after all messages are processed.
	if err := u.connRepo.UpdateLastSync(studentID, u.now()); err != nil {
		return nil, err
	}

	u.collector.RecordMessagesSynced(synced)
	return &SyncResult{Synced: synced}, nil
}

// mergeMessageIDs concatenates the label listings, dropping duplicate ids
// while preserving first-seen order.
func mergeMessageIDs(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	return merged
}

func (u *mailboxUsecase) mirrorMessage(studentID string, data *domain.MessageData) *domain.EmailMessage {
	body := data.BodyHTML
	if body != "" {
		body = u.sanitizer.Sanitize(body)
	}

	return &domain.EmailMessage{
		StudentID:      studentID,
		GmailMessageID: data.ID,
		ThreadID:       data.ThreadID,
		FromAddress:    data.From,
		ToAddress:      data.To,
		Subject:        data.Subject,
		Snippet:        data.Snippet,
		Body:           body,
		LabelIDs:       strings.Join(data.LabelIDs, ","),
		InternalDate:   data.InternalDate,
	}
}
