package share

import "time"

// Share grants access to a file short of ownership. Exactly one of
// GranteeID (a named user) or Token (an anonymous link) is set.
type Share struct {
	ID        int
	FileID    int
	GrantedBy int
	GranteeID *int
	Token     *string
	Tier      Tier
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the grant no longer satisfies access checks.
// Expiry is enforced here at read time; expired rows are left in place.
func (s Share) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
