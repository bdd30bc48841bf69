package access

import "filevault/internal/domain/user"

// Principal is whoever is asking: an authenticated user with a role, or
// the anonymous holder of a share-link token.
type Principal struct {
	UserID    int
	Role      user.Role
	Token     string
	Anonymous bool
}

func ForUser(u user.User) Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}

func ForToken(token string) Principal {
	return Principal{Token: token, Anonymous: true}
}
