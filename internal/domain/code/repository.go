package code

import (
	"context"
	"time"
)

type Repository interface {
	Add(ctx context.Context, c Code) error
	// Consume matches value against the user's unexpired codes, most
	// recently issued first. On a match it deletes every outstanding code
	// for the user and reports true. The check and the purge must be
	// atomic per user so a code can never be accepted twice.
	Consume(ctx context.Context, userID int, value string, now time.Time) (bool, error)
}
