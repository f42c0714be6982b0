package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edupath-backend/internal/mailbox/domain"
	"edupath-backend/pkg/crypto"
)

// refreshBuffer is how close to expiry an access token may get before it is
// refreshed instead of reused.
const refreshBuffer = 5 * time.Minute

// GetClient produces an authenticated mail client for the student, refreshing
// the access token through the provider when needed. A student without a
// usable connection yields nil, nil and no network call.
func (u *mailboxUsecase) GetClient(ctx context.Context, studentID string) (domain.MailClient, error) {
	client, _, err := u.clientForStudent(ctx, studentID)
	return client, err
}

func (u *mailboxUsecase) clientForStudent(ctx context.Context, studentID string) (domain.MailClient, *domain.GmailConnection, error) {
	conn, err := u.connRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, nil, err
	}
	if conn == nil || conn.Status == domain.StatusDisconnected || conn.RefreshTokenEncrypted == "" {
		return nil, nil, nil
	}

	accessToken := ""
	if conn.AccessTokenEncrypted != "" {
		accessToken, err = u.vault.Decrypt(conn.AccessTokenEncrypted)
		if err != nil {
			return nil, nil, err
		}
	}

	if needsRefresh(accessToken, conn.ExpiryDate, u.now()) {
		accessToken, err = u.refreshAccessToken(ctx, conn)
		if err != nil {
			return nil, nil, err
		}
	}

	client, err := u.gateway.NewClient(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}
	return client, conn, nil
}

// needsRefresh reports whether the access token must be refreshed: it is
// missing, or its recorded expiry falls within the buffer window.
func needsRefresh(accessToken string, expiry, now time.Time) bool {
	if accessToken == "" {
		return true
	}
	return !expiry.After(now.Add(refreshBuffer))
}

// refreshAccessToken performs the refresh-token grant and persists the new
// encrypted token and expiry. It holds the student's refresh lock for the
// whole read-refresh-persist cycle.
func (u *mailboxUsecase) refreshAccessToken(ctx context.Context, conn *domain.GmailConnection) (string, error) {
	lock := u.studentLock(conn.StudentID)
	lock.Lock()
	defer lock.Unlock()

	// Another request may have refreshed while we waited on the lock.
	current, err := u.connRepo.FindByStudentID(conn.StudentID)
	if err != nil {
		return "", err
	}
	if current == nil || current.RefreshTokenEncrypted == "" {
		return "", ErrNoValidConnection
	}
	if current.AccessTokenEncrypted != "" && current.ExpiryDate.After(u.now().Add(refreshBuffer)) {
		token, err := u.vault.Decrypt(current.AccessTokenEncrypted)
		if err == nil {
			*conn = *current
			return token, nil
		}
	}

	refreshToken, err := u.vault.Decrypt(current.RefreshTokenEncrypted)
	if err != nil {
		return "", err
	}

	token, err := u.refresh(ctx, refreshToken)
	if err != nil {
		u.collector.RecordTokenRefreshFailure()
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	encryptedAccess, err := u.vault.Encrypt(token.AccessToken)
	if err != nil {
		return "", err
	}
	current.AccessTokenEncrypted = encryptedAccess
	current.ExpiryDate = token.Expiry
	current.Status = domain.StatusConnected

	// Google occasionally rotates the refresh token on a grant.
	if token.RefreshToken != "" && token.RefreshToken != refreshToken {
		encryptedRefresh, err := u.vault.Encrypt(token.RefreshToken)
		if err != nil {
			return "", err
		}
		current.RefreshTokenEncrypted = encryptedRefresh
	}

	if err := u.connRepo.Update(current); err != nil {
		return "", err
	}

	u.collector.RecordTokenRefresh()
	*conn = *current
	return token.AccessToken, nil
}

// markExpiredOnAuthFailure flips the connection to expired when the error is
// a failed refresh or an unreadable stored credential, so the UI prompts
// re-authorization. Other errors leave the status untouched.
func (u *mailboxUsecase) markExpiredOnAuthFailure(studentID string, err error) {
	if errors.Is(err, ErrRefreshFailed) || errors.Is(err, crypto.ErrDecryptionFailed) {
		_ = u.connRepo.UpdateStatus(studentID, domain.StatusExpired)
	}
}
