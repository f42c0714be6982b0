package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	nonceSize   = 12
	tagSize     = 16
	minSecret   = 16
	partDivider = ":"
)

// ErrDecryptionFailed is returned when a stored ciphertext is malformed or
// fails authentication. Callers should treat the credential as unusable.
var ErrDecryptionFailed = errors.New("decryption failed")

// Vault encrypts and decrypts OAuth tokens with AES-256-GCM. The key is
// derived once from the configured secret; construct a single Vault at
// startup and inject it where needed.
type Vault struct {
	aead cipher.AEAD
}

func NewVault(secret string) (*Vault, error) {
	if len(secret) < minSecret {
		return nil, fmt.Errorf("token encryption secret must be at least %d bytes", minSecret)
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Vault{aead: aead}, nil
}

// Encrypt returns hex(nonce):hex(tag):hex(ciphertext). A fresh nonce is
// generated per call, so encrypting the same plaintext twice never yields
// the same output.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := v.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return hex.EncodeToString(nonce) + partDivider +
		hex.EncodeToString(tag) + partDivider +
		hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Any malformed payload or failed authentication
// tag yields an error wrapping ErrDecryptionFailed, never a wrong plaintext.
func (v *Vault) Decrypt(encrypted string) (string, error) {
	parts := strings.Split(encrypted, partDivider)
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: expected 3 parts, got %d", ErrDecryptionFailed, len(parts))
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != nonceSize {
		return "", fmt.Errorf("%w: invalid nonce", ErrDecryptionFailed)
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != tagSize {
		return "", fmt.Errorf("%w: invalid auth tag", ErrDecryptionFailed)
	}
	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: invalid ciphertext", ErrDecryptionFailed)
	}

	plaintext, err := v.aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}
