package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationValidator_ValidateRegister(t *testing.T) {
	v := NewRegistrationValidator()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "alice", "alice@example.com", "password1", false},
		{"valid with allowed punctuation", "a_b-c.d", "a@b.example", "password1", false},
		{"username too short", "ab", "a@example.com", "password1", true},
		{"username too long", strings.Repeat("a", 33), "a@example.com", "password1", true},
		{"username with space", "ali ce", "a@example.com", "password1", true},
		{"email without at", "alice", "example.com", "password1", true},
		{"password too short", "alice", "a@example.com", "pass1", true},
		{"password without digit", "alice", "a@example.com", "passwords", true},
		{"password without lowercase", "alice", "a@example.com", "PASSWORD1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRegister(tt.username, tt.email, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
