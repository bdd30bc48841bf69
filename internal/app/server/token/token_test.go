package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tok, err := m.Issue("alice", "user")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestManager_Verify_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	tok, err := m.Issue("alice", "user")
	require.NoError(t, err)

	claims, err := m.Verify(tok)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	tok, err := NewManager("secret-a", time.Hour).Issue("alice", "admin")
	require.NoError(t, err)

	claims, err := NewManager("secret-b", time.Hour).Verify(tok)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Verify_Malformed(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "tampered payload", token: func() string {
			tok, _ := m.Issue("alice", "user")
			return tok[:len(tok)-4] + "AAAA"
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
