package file

import (
	"context"
	"time"

	"filevault/internal/domain/share"
)

// SharedFile is a file visible through an unexpired incoming grant.
type SharedFile struct {
	File
	Tier share.Tier
}

type Repository interface {
	Create(ctx context.Context, f File) (int, error)
	FindByID(ctx context.Context, id int) (File, error)
	ListOwned(ctx context.Context, ownerID int) ([]File, error)
	ListAll(ctx context.Context) ([]File, error)
	ListSharedWith(ctx context.Context, granteeID int, now time.Time) ([]SharedFile, error)
	Delete(ctx context.Context, id int) error
}
