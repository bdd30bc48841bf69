package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	k1, err := DeriveKey("correct horse battery staple", salt)
	require.NoError(t, err)
	k2, err := DeriveKey("correct horse battery staple", salt)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 32)
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	s1, err := NewSalt()
	require.NoError(t, err)
	s2, err := NewSalt()
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)

	k1, err := DeriveKey("pw1", s1)
	require.NoError(t, err)
	k2, err := DeriveKey("pw1", s2)
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestDeriveKey_DifferentPasswords(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	k1, err := DeriveKey("pw1", salt)
	require.NoError(t, err)
	k2, err := DeriveKey("pw2", salt)
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestDeriveKey_BadSaltLength(t *testing.T) {
	tests := []struct {
		name string
		salt []byte
	}{
		{name: "nil salt", salt: nil},
		{name: "short salt", salt: []byte{1, 2, 3}},
		{name: "long salt", salt: make([]byte, 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveKey("pw", tt.salt)
			assert.Error(t, err)
		})
	}
}
