package access

import (
	"context"
	"errors"
	"time"

	"filevault/internal/domain/file"
	"filevault/internal/domain/share"
	"filevault/internal/domain/user"

	"golang.org/x/exp/slog"
)

// ErrDenied is the single negative outcome of an access check. It carries
// no detail about why: missing grant, expired grant and insufficient tier
// all look the same to the caller.
var ErrDenied = errors.New("access denied")

type Decision struct {
	// Tier the principal may exercise on this file.
	Tier share.Tier
	// Owner marks the file's owner.
	Owner bool
	// AdminOverride marks an allow through the admin role. On the
	// decryption path it permits using the escrowed key material without
	// a password.
	AdminOverride bool
}

type Decider struct {
	shares share.Repository
	log    *slog.Logger
}

func NewDecider(shares share.Repository, log *slog.Logger) *Decider {
	return &Decider{
		shares: shares,
		log:    log.With("component", "access_decider"),
	}
}

// Decide evaluates the access policy in order: owner, admin override, then
// share grants. Every check re-reads authoritative state; nothing here is
// cached between requests.
func (d *Decider) Decide(ctx context.Context, p Principal, f file.File, op share.Tier) (Decision, error) {
	if !p.Anonymous {
		if p.UserID == f.OwnerID {
			return Decision{Tier: share.TierDownload, Owner: true}, nil
		}
		if p.Role == user.RoleAdmin {
			return Decision{Tier: share.TierDownload, AdminOverride: true}, nil
		}
	}

	grant, err := d.lookupGrant(ctx, p, f)
	if err != nil {
		d.log.Debug("no usable grant", "file_id", f.ID, "anonymous", p.Anonymous)
		return Decision{}, ErrDenied
	}

	if grant.FileID != f.ID || grant.Expired(time.Now()) {
		d.log.Debug("grant expired or for another file", "file_id", f.ID, "share_id", grant.ID)
		return Decision{}, ErrDenied
	}

	if !grant.Tier.Allows(op) {
		d.log.Debug("grant tier insufficient", "file_id", f.ID, "granted", grant.Tier, "requested", op)
		return Decision{}, ErrDenied
	}

	return Decision{Tier: grant.Tier}, nil
}

// GrantForToken resolves an anonymous share token to its grant so the
// caller can learn which file the token refers to. It does not decide
// anything; Decide still runs afterwards.
func (d *Decider) GrantForToken(ctx context.Context, token string) (share.Share, error) {
	return d.shares.FindByToken(ctx, token)
}

func (d *Decider) lookupGrant(ctx context.Context, p Principal, f file.File) (share.Share, error) {
	if p.Anonymous {
		return d.shares.FindByToken(ctx, p.Token)
	}
	return d.shares.FindForGrantee(ctx, f.ID, p.UserID)
}
