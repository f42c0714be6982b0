package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"edupath-backend/internal/mailbox/domain"

	"golang.org/x/oauth2"
)

// ConnectURL returns the Google consent URL for connecting the student's
// Gmail account. Offline access with a forced consent prompt guarantees a
// refresh token on the first grant.
func (u *mailboxUsecase) ConnectURL(studentID string) (string, error) {
	if studentID == "" {
		return "", errors.New("student id required")
	}
	state := u.signState(studentID)
	return u.oauthCfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

// HandleCallback exchanges the authorization code, encrypts both tokens and
// stores the connection as connected.
func (u *mailboxUsecase) HandleCallback(ctx context.Context, code, state string) (*domain.GmailConnection, error) {
	studentID, err := u.verifyState(state)
	if err != nil {
		return nil, err
	}

	token, err := u.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %v", err)
	}
	if token.RefreshToken == "" {
		return nil, errors.New("provider returned no refresh token; re-run consent")
	}

	encryptedAccess, err := u.vault.Encrypt(token.AccessToken)
	if err != nil {
		return nil, err
	}
	encryptedRefresh, err := u.vault.Encrypt(token.RefreshToken)
	if err != nil {
		return nil, err
	}

	email := ""
	if client, err := u.gateway.NewClient(ctx, token.AccessToken); err == nil {
		if profile, err := client.Profile(ctx); err == nil {
			email = profile
		}
	}

	conn, err := u.connRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	if conn == nil {
		conn = &domain.GmailConnection{
			StudentID:             studentID,
			Email:                 email,
			AccessTokenEncrypted:  encryptedAccess,
			RefreshTokenEncrypted: encryptedRefresh,
			ExpiryDate:            token.Expiry,
			Status:                domain.StatusConnected,
		}
		if err := u.connRepo.Save(conn); err != nil {
			return nil, err
		}
		return conn, nil
	}

	conn.AccessTokenEncrypted = encryptedAccess
	conn.RefreshTokenEncrypted = encryptedRefresh
	conn.ExpiryDate = token.Expiry
	conn.Status = domain.StatusConnected
	if email != "" {
		conn.Email = email
	}
	if err := u.connRepo.Update(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Disconnect clears the stored tokens and marks the connection disconnected.
func (u *mailboxUsecase) Disconnect(studentID string) error {
	conn, err := u.connRepo.FindByStudentID(studentID)
	if err != nil {
		return err
	}
	if conn == nil {
		return nil
	}

	conn.AccessTokenEncrypted = ""
	conn.RefreshTokenEncrypted = ""
	conn.Status = domain.StatusDisconnected
	return u.connRepo.Update(conn)
}

// Status returns the connection record, or nil when the student never
// connected.
func (u *mailboxUsecase) Status(studentID string) (*domain.GmailConnection, error) {
	return u.connRepo.FindByStudentID(studentID)
}

// signState ties the OAuth state parameter to the student id with an HMAC so
// the callback cannot be replayed against another student.
func (u *mailboxUsecase) signState(studentID string) string {
	mac := hmac.New(sha256.New, []byte(u.config.JWTSecret))
	mac.Write([]byte(studentID))
	return studentID + "." + hex.EncodeToString(mac.Sum(nil))
}

func (u *mailboxUsecase) verifyState(state string) (string, error) {
	idx := strings.LastIndex(state, ".")
	if idx <= 0 {
		return "", errors.New("invalid state parameter")
	}
	studentID := state[:idx]
	if !hmac.Equal([]byte(u.signState(studentID)), []byte(state)) {
		return "", errors.New("invalid state parameter")
	}
	return studentID, nil
}
