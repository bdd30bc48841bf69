package user

import "errors"

var (
	ErrNotFound = errors.New("user not found")
	ErrExists   = errors.New("username or email already registered")
	// ErrInvalidCredentials is deliberately the same for an unknown
	// username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)
