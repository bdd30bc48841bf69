package crypto

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := randomKey(t)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{name: "short", plaintext: []byte("hello vault!")},
		{name: "empty", plaintext: []byte{}},
		{name: "binary", plaintext: []byte{0x00, 0xff, 0x10, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := Encrypt(tt.plaintext, key)
			require.NoError(t, err)
			assert.NotEqual(t, tt.plaintext, ciphertext)

			plaintext, err := Decrypt(ciphertext, key)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, plaintext)
		})
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	ciphertext, err := Encrypt([]byte("secret"), randomKey(t))
	require.NoError(t, err)

	plaintext, err := Decrypt(ciphertext, randomKey(t))
	assert.Nil(t, plaintext)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	key := randomKey(t)
	ciphertext, err := Encrypt([]byte("twelve bytes"), key)
	require.NoError(t, err)

	// Flipping a single bit anywhere must trip the authentication tag.
	for i := range ciphertext {
		tampered := make([]byte, len(ciphertext))
		copy(tampered, ciphertext)
		tampered[i] ^= 0x01

		plaintext, err := Decrypt(tampered, key)
		assert.Nil(t, plaintext, "byte %d", i)
		assert.True(t, errors.Is(err, ErrIntegrity), "byte %d", i)
	}
}

func TestDecrypt_TruncatedCiphertext(t *testing.T) {
	_, err := Decrypt([]byte{0x01, 0x02}, randomKey(t))
	assert.ErrorIs(t, err, ErrIntegrity)
}
