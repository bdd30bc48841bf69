package code

import "errors"

// ErrInvalidCode covers both an expired and an unknown code.
var ErrInvalidCode = errors.New("invalid or expired code")
