package share

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const defaultTTLHours = 24

type Servicer interface {
	Create(ctx context.Context, req CreateRequest) (Share, error)
	Revoke(ctx context.Context, shareID, requesterID int) error
}

// Files is the slice of the file store the share lifecycle needs. Declared
// here to keep the dependency one-way (the file domain already knows about
// tiers).
type Files interface {
	OwnerOf(ctx context.Context, fileID int) (int, error)
}

// Users resolves a grantee username to its id.
type Users interface {
	Lookup(ctx context.Context, username string) (int, error)
}

type CreateRequest struct {
	FileID    int
	GranterID int
	// Grantee selects a named-user share; empty means an anonymous link
	// share with a generated token. Never both.
	Grantee  string
	Tier     Tier
	TTLHours int
}

type Service struct {
	repo  Repository
	files Files
	users Users
	log   *slog.Logger
}

func NewService(repo Repository, files Files, users Users, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		files: files,
		users: users,
		log:   log.With("component", "share_service"),
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Share, error) {
	if _, ok := tierRank[req.Tier]; !ok {
		return Share{}, fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, req.Tier)
	}

	ownerID, err := s.files.OwnerOf(ctx, req.FileID)
	if err != nil {
		return Share{}, err
	}
	if ownerID != req.GranterID {
		return Share{}, ErrDenied
	}

	ttl := req.TTLHours
	if ttl <= 0 {
		ttl = defaultTTLHours
	}

	grant := Share{
		FileID:    req.FileID,
		GrantedBy: req.GranterID,
		Tier:      req.Tier,
		ExpiresAt: time.Now().Add(time.Duration(ttl) * time.Hour),
	}

	if req.Grantee != "" {
		granteeID, err := s.users.Lookup(ctx, req.Grantee)
		if err != nil {
			return Share{}, fmt.Errorf("%w: grantee %q", ErrNotFound, req.Grantee)
		}
		grant.GranteeID = &granteeID
	} else {
		token := uuid.NewString()
		grant.Token = &token
	}

	id, err := s.repo.Create(ctx, grant)
	if err != nil {
		return Share{}, fmt.Errorf("create share: %w", err)
	}
	grant.ID = id

	s.log.Info("share created",
		"share_id", id, "file_id", req.FileID, "tier", req.Tier, "anonymous", grant.Token != nil)
	return grant, nil
}

// Revoke deletes a grant outright. Only the file's owner may revoke; there
// is no tombstone and no way to extend expiry on an existing grant.
func (s *Service) Revoke(ctx context.Context, shareID, requesterID int) error {
	grant, err := s.repo.FindByID(ctx, shareID)
	if err != nil {
		return ErrNotFound
	}

	ownerID, err := s.files.OwnerOf(ctx, grant.FileID)
	if err != nil {
		return err
	}
	if ownerID != requesterID {
		return ErrDenied
	}

	return s.repo.Delete(ctx, shareID)
}
