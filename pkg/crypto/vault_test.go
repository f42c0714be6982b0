package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-test-secret-with-enough-length"

func TestNewVaultRejectsShortSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{name: "empty secret", secret: "", wantErr: true},
		{name: "short secret", secret: "too-short", wantErr: true},
		{name: "minimum length", secret: "0123456789abcdef", wantErr: false},
		{name: "long secret", secret: testSecret, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVault(tt.secret)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	vault, err := NewVault(testSecret)
	require.NoError(t, err)

	plaintexts := []string{
		"",
		"ya29.a0AfH6SMBx",
		"1//0gKq8-long-refresh-token-value",
		"unicode: xin chào thế giới",
		strings.Repeat("x", 4096),
	}

	for _, plaintext := range plaintexts {
		encrypted, err := vault.Encrypt(plaintext)
		require.NoError(t, err)

		decrypted, err := vault.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncryptNonceUniqueness(t *testing.T) {
	vault, err := NewVault(testSecret)
	require.NoError(t, err)

	first, err := vault.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := vault.Encrypt("same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two encryptions of the same plaintext must differ")
}

func TestDecryptDetectsTampering(t *testing.T) {
	vault, err := NewVault(testSecret)
	require.NoError(t, err)

	encrypted, err := vault.Encrypt("sensitive token")
	require.NoError(t, err)

	parts := strings.Split(encrypted, ":")
	require.Len(t, parts, 3)

	flipHexChar := func(s string) string {
		b := []byte(s)
		if b[0] == '0' {
			b[0] = '1'
		} else {
			b[0] = '0'
		}
		return string(b)
	}

	tests := []struct {
		name      string
		tampered  string
	}{
		{name: "flipped nonce bit", tampered: flipHexChar(parts[0]) + ":" + parts[1] + ":" + parts[2]},
		{name: "flipped tag bit", tampered: parts[0] + ":" + flipHexChar(parts[1]) + ":" + parts[2]},
		{name: "flipped ciphertext bit", tampered: parts[0] + ":" + parts[1] + ":" + flipHexChar(parts[2])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vault.Decrypt(tt.tampered)
			assert.True(t, errors.Is(err, ErrDecryptionFailed), "expected ErrDecryptionFailed, got %v", err)
		})
	}
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	vault, err := NewVault(testSecret)
	require.NoError(t, err)

	inputs := []string{
		"",
		"not-encrypted",
		"aa:bb",
		"aa:bb:cc:dd",
		"zz:zz:zz",
		"00:11:22", // wrong nonce/tag lengths
	}

	for _, input := range inputs {
		_, err := vault.Decrypt(input)
		assert.True(t, errors.Is(err, ErrDecryptionFailed), "input %q: expected ErrDecryptionFailed, got %v", input, err)
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	vaultA, err := NewVault(testSecret)
	require.NoError(t, err)
	vaultB, err := NewVault("a-different-secret-of-good-length")
	require.NoError(t, err)

	encrypted, err := vaultA.Encrypt("token issued under key A")
	require.NoError(t, err)

	_, err = vaultB.Decrypt(encrypted)
	assert.True(t, errors.Is(err, ErrDecryptionFailed))
}
