package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipher_RoundTrip(t *testing.T) {
	c, err := NewCipher([]byte("32-byte-key-for-webhook-secrets!"))
	require.NoError(t, err)

	ciphertext, nonce, err := c.Encrypt("https://hooks.example.com/lab?token=s3cret")
	require.NoError(t, err)

	plaintext, err := c.Decrypt(ciphertext, nonce)
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/lab?token=s3cret", plaintext)
}

func TestCipher_StringRoundTrip(t *testing.T) {
	c, err := NewCipher([]byte("32-byte-key-for-webhook-secrets!"))
	require.NoError(t, err)

	packed, err := c.EncryptString("https://hooks.example.com/results")
	require.NoError(t, err)
	assert.NotContains(t, packed, "example.com")

	plaintext, err := c.DecryptString(packed)
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/results", plaintext)
}

func TestCipher_RejectsBadKey(t *testing.T) {
	_, err := NewCipher([]byte("short"))
	assert.Error(t, err)
}

func TestCipher_RejectsTamperedCiphertext(t *testing.T) {
	c, err := NewCipher([]byte("32-byte-key-for-webhook-secrets!"))
	require.NoError(t, err)

	ciphertext, nonce, err := c.Encrypt("payload")
	require.NoError(t, err)
	ciphertext[0] ^= 0xff

	_, err = c.Decrypt(ciphertext, nonce)
	assert.Error(t, err)
}
