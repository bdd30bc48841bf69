package code

import "time"

// Code is an ephemeral second-factor record. Several codes may be
// outstanding for one user at a time; the first successful verification
// purges the whole batch.
type Code struct {
	ID        int
	UserID    int
	Value     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
