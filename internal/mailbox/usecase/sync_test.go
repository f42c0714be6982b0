package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"edupath-backend/internal/mailbox/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeMessageIDs(t *testing.T) {
	tests := []struct {
		name  string
		inbox []string
		sent  []string
		want  []string
	}{
		{name: "disjoint", inbox: []string{"a", "b"}, sent: []string{"c"}, want: []string{"a", "b", "c"}},
		{name: "overlap", inbox: []string{"a", "b"}, sent: []string{"b", "c"}, want: []string{"a", "b", "c"}},
		{name: "duplicate within one list", inbox: []string{"a", "a"}, sent: nil, want: []string{"a"}},
		{name: "both empty", inbox: nil, sent: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeMessageIDs(tt.inbox, tt.sent))
		})
	}
}

func TestSyncNoConnection(t *testing.T) {
	h := newTestHarness()

	result, err := h.uc.Sync(context.Background(), "student-1")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrNoValidConnection))
	assert.Zero(t, h.msgRepo.upserts, "no upserts without a valid connection")
}

func TestSyncMirrorsInboxAndSent(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "access", "refresh", domain.StatusConnected, h.now.Add(time.Hour))
	h.seedMessage("INBOX", "m1", "Offer letter", "Congratulations", "<p>Offer inside</p>")
	h.seedMessage("INBOX", "m2", "Visa checklist", "Next steps", "")
	h.seedMessage("SENT", "m3", "Re: Offer letter", "Thank you", "<p>Accepted</p>")

	result, err := h.uc.Sync(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Synced)

	count, err := h.msgRepo.CountByStudent("student-1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	msg, err := h.msgRepo.FindByGmailID("student-1", "m1")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "Offer letter", msg.Subject)
	assert.Equal(t, "Admissions <admissions@uni.example>", msg.FromAddress)
	assert.Equal(t, "<p>Offer inside</p>", msg.Body)

	// Messages without an HTML body fall back to the snippet for display.
	msg2, err := h.msgRepo.FindByGmailID("student-1", "m2")
	require.NoError(t, err)
	require.NotNil(t, msg2)
	assert.Equal(t, "", msg2.Body)
	assert.Equal(t, "Next steps", msg2.DisplayBody())
}

func TestSyncIsIdempotent(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "access", "refresh", domain.StatusConnected, h.now.Add(time.Hour))
	h.seedMessage("INBOX", "m1", "Offer letter", "Congratulations", "<p>Offer</p>")
	h.seedMessage("SENT", "m2", "Re: Offer", "Thanks", "")

	first, err := h.uc.Sync(context.Background(), "student-1")
	require.NoError(t, err)
	countAfterFirst, _ := h.msgRepo.CountByStudent("student-1")

	second, err := h.uc.Sync(context.Background(), "student-1")
	require.NoError(t, err)
	countAfterSecond, _ := h.msgRepo.CountByStudent("student-1")

	assert.Equal(t, first.Synced, second.Synced)
	assert.Equal(t, countAfterFirst, countAfterSecond, "second run must not change the row count")

	msg, err := h.msgRepo.FindByGmailID("student-1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "Offer letter", msg.Subject)
	assert.Equal(t, "<p>Offer</p>", msg.Body)
}

func TestSyncDeduplicatesAcrossLabels(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "access", "refresh", domain.StatusConnected, h.now.Add(time.Hour))
	// The same id appears under both labels, as Gmail does for self-addressed mail.
	h.seedMessage("INBOX", "shared", "Note to self", "snippet", "")
	h.gateway.labelIDs["SENT"] = append(h.gateway.labelIDs["SENT"], "shared")

	result, err := h.uc.Sync(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)

	count, _ := h.msgRepo.CountByStudent("student-1")
	assert.EqualValues(t, 1, count)
}

func TestSyncUpdatesLastSyncOnce(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "access", "refresh", domain.StatusConnected, h.now.Add(time.Hour))
	h.seedMessage("INBOX", "m1", "Subject", "snippet", "")
	h.seedMessage("INBOX", "m2", "Subject", "snippet", "")

	_, err := h.uc.Sync(context.Background(), "student-1")
	require.NoError(t, err)

	assert.Equal(t, 1, h.connRepo.lastSyncUpdates)

	conn, err := h.connRepo.FindByStudentID("student-1")
	require.NoError(t, err)
	assert.True(t, conn.LastSyncAt.Equal(h.now))
}

func TestSyncSkipsUnfetchableMessages(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "access", "refresh", domain.StatusConnected, h.now.Add(time.Hour))
	h.seedMessage("INBOX", "m1", "Subject", "snippet", "")
	// m2 is listed but its full fetch fails.
	h.gateway.labelIDs["INBOX"] = append(h.gateway.labelIDs["INBOX"], "m2")

	result, err := h.uc.Sync(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
}

func TestSyncSanitizesStoredBody(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "access", "refresh", domain.StatusConnected, h.now.Add(time.Hour))
	h.seedMessage("INBOX", "m1", "Phishy", "snippet",
		`<p>Hello</p><script>alert("x")</script><a href="https://uni.example">link</a>`)

	_, err := h.uc.Sync(context.Background(), "student-1")
	require.NoError(t, err)

	msg, err := h.msgRepo.FindByGmailID("student-1", "m1")
	require.NoError(t, err)
	assert.Contains(t, msg.Body, "<p>Hello</p>")
	assert.NotContains(t, msg.Body, "<script>")
	assert.Contains(t, msg.Body, "link")
}

func TestSyncRefreshFailureMarksConnectionExpired(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "", "revoked", domain.StatusConnected, time.Time{})
	h.refreshErr = errors.New("invalid_grant")

	_, err := h.uc.Sync(context.Background(), "student-1")
	assert.True(t, errors.Is(err, ErrRefreshFailed))

	conn, findErr := h.connRepo.FindByStudentID("student-1")
	require.NoError(t, findErr)
	assert.Equal(t, domain.StatusExpired, conn.Status)
	assert.Equal(t, 1, h.collector.syncFails)
}
