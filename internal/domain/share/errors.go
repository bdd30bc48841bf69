package share

import "errors"

var (
	ErrNotFound     = errors.New("share not found")
	ErrDenied       = errors.New("not authorized for this share")
	ErrInvalidInput = errors.New("invalid share request")
)
