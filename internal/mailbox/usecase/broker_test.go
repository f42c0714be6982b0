package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"edupath-backend/internal/mailbox/domain"

	"golang.org/x/oauth2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedsRefresh(t *testing.T) {
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		accessToken string
		expiry      time.Time
		want        bool
	}{
		{name: "missing token", accessToken: "", expiry: now.Add(time.Hour), want: true},
		{name: "already expired", accessToken: "tok", expiry: now.Add(-time.Minute), want: true},
		{name: "inside buffer", accessToken: "tok", expiry: now.Add(2 * time.Minute), want: true},
		{name: "exactly at buffer", accessToken: "tok", expiry: now.Add(5 * time.Minute), want: true},
		{name: "just outside buffer", accessToken: "tok", expiry: now.Add(5*time.Minute + time.Second), want: false},
		{name: "plenty of time left", accessToken: "tok", expiry: now.Add(time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, needsRefresh(tt.accessToken, tt.expiry, now))
		})
	}
}

func TestGetClientNoConnection(t *testing.T) {
	h := newTestHarness()

	client, err := h.uc.GetClient(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.Zero(t, h.gateway.clientCount(), "no network call for a student without a connection")
	assert.Zero(t, h.refreshCalls)
}

func TestGetClientDisconnected(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "access", "refresh", domain.StatusDisconnected, h.now.Add(time.Hour))

	client, err := h.uc.GetClient(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.Zero(t, h.gateway.clientCount())
}

func TestGetClientNoRefreshToken(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "access", "", domain.StatusConnected, h.now.Add(time.Hour))

	client, err := h.uc.GetClient(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestGetClientReusesValidToken(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "still-valid-access", "refresh", domain.StatusConnected, h.now.Add(30*time.Minute))

	client, err := h.uc.GetClient(context.Background(), "student-1")
	require.NoError(t, err)
	require.NotNil(t, client)

	assert.Zero(t, h.refreshCalls, "a token with >5 minutes left is reused unchanged")
	assert.Equal(t, "still-valid-access", h.gateway.lastToken)
}

func TestGetClientRefreshesNearExpiry(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "stale-access", "refresh-token", domain.StatusConnected, h.now.Add(2*time.Minute))

	client, err := h.uc.GetClient(context.Background(), "student-1")
	require.NoError(t, err)
	require.NotNil(t, client)

	assert.Equal(t, 1, h.refreshCalls)
	assert.Equal(t, "fresh-access-token", h.gateway.lastToken)
	assert.Equal(t, 1, h.collector.refreshes)

	// The new token and expiry were persisted, encrypted, before returning.
	conn, err := h.connRepo.FindByStudentID("student-1")
	require.NoError(t, err)
	stored, err := h.vault.Decrypt(conn.AccessTokenEncrypted)
	require.NoError(t, err)
	assert.Equal(t, "fresh-access-token", stored)
	assert.True(t, conn.ExpiryDate.Equal(h.now.Add(time.Hour)))
	assert.Equal(t, domain.StatusConnected, conn.Status)
}

func TestGetClientRefreshesMissingAccessToken(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "", "refresh-token", domain.StatusConnected, time.Time{})

	client, err := h.uc.GetClient(context.Background(), "student-1")
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, 1, h.refreshCalls)
}

func TestGetClientRefreshFailurePropagates(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "", "revoked-refresh", domain.StatusConnected, time.Time{})
	h.refreshErr = errors.New("invalid_grant")

	client, err := h.uc.GetClient(context.Background(), "student-1")
	assert.Nil(t, client)
	assert.True(t, errors.Is(err, ErrRefreshFailed))
	assert.Equal(t, 1, h.collector.refreshErrs)
}

func TestRefreshPersistsRotatedRefreshToken(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "", "old-refresh", domain.StatusConnected, time.Time{})
	h.refreshToken = &oauth2.Token{
		AccessToken:  "rotated-access",
		RefreshToken: "new-refresh",
		Expiry:       h.now.Add(time.Hour),
	}

	_, err := h.uc.GetClient(context.Background(), "student-1")
	require.NoError(t, err)

	conn, err := h.connRepo.FindByStudentID("student-1")
	require.NoError(t, err)
	stored, err := h.vault.Decrypt(conn.RefreshTokenEncrypted)
	require.NoError(t, err)
	assert.Equal(t, "new-refresh", stored)
}

func TestSecondCallReusesPersistedToken(t *testing.T) {
	h := newTestHarness()
	h.seedConnection("student-1", "", "refresh-token", domain.StatusConnected, time.Time{})

	// A caller arriving after the refresh must observe the freshly
	// persisted token instead of issuing its own grant.
	_, err := h.uc.GetClient(context.Background(), "student-1")
	require.NoError(t, err)
	_, err = h.uc.GetClient(context.Background(), "student-1")
	require.NoError(t, err)

	assert.Equal(t, 1, h.refreshCalls, "only one grant should reach the provider")
}
