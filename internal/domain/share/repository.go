package share

import "context"

type Repository interface {
	Create(ctx context.Context, s Share) (int, error)
	FindByID(ctx context.Context, id int) (Share, error)
	// FindForGrantee returns the strongest unexpired grant for the
	// (file, grantee) pair: download beats view, later expiry breaks
	// ties.
	FindForGrantee(ctx context.Context, fileID, granteeID int) (Share, error)
	FindByToken(ctx context.Context, token string) (Share, error)
	ListForFile(ctx context.Context, fileID int) ([]Share, error)
	Delete(ctx context.Context, id int) error
}
