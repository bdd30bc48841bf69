package postgres

import (
	"context"
	"errors"
	"fmt"

	"filevault/internal/domain/share"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

const shareColumns = `id, file_id, granted_by, grantee_id, token, tier, expires_at, created_at`

type ShareRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewShareRepository(pool *pgxpool.Pool, log *slog.Logger) *ShareRepository {
	return &ShareRepository{
		pool: pool,
		log:  log.With("component", "share_repository"),
	}
}

func (r *ShareRepository) Create(ctx context.Context, s share.Share) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO shares (file_id, granted_by, grantee_id, token, tier, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		s.FileID, s.GrantedBy, s.GranteeID, s.Token, s.Tier, s.ExpiresAt).Scan(&id)
	if err != nil {
		r.log.Error("failed to create share", "file_id", s.FileID, "error", err)
		return 0, fmt.Errorf("create share: %w", err)
	}
	return id, nil
}

func (r *ShareRepository) FindByID(ctx context.Context, id int) (share.Share, error) {
	return r.findOne(ctx, `SELECT `+shareColumns+` FROM shares WHERE id = $1`, id)
}

// FindForGrantee returns the strongest unexpired grant for (file,
// grantee): download beats view, later expiry breaks ties. A weaker or
// already expired grant must never shadow one that still allows the
// request. The access decider re-checks expiry at read time; expired rows
// are not cleaned up here.
func (r *ShareRepository) FindForGrantee(ctx context.Context, fileID, granteeID int) (share.Share, error) {
	return r.findOne(ctx,
		`SELECT `+shareColumns+` FROM shares
		 WHERE file_id = $1 AND grantee_id = $2 AND expires_at > now()
		 ORDER BY CASE tier WHEN 'download' THEN 1 ELSE 0 END DESC, expires_at DESC
		 LIMIT 1`, fileID, granteeID)
}

func (r *ShareRepository) FindByToken(ctx context.Context, token string) (share.Share, error) {
	return r.findOne(ctx, `SELECT `+shareColumns+` FROM shares WHERE token = $1`, token)
}

func (r *ShareRepository) ListForFile(ctx context.Context, fileID int) ([]share.Share, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+shareColumns+` FROM shares WHERE file_id = $1 ORDER BY created_at DESC`, fileID)
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	defer rows.Close()

	var shares []share.Share
	for rows.Next() {
		var s share.Share
		if err := rows.Scan(&s.ID, &s.FileID, &s.GrantedBy, &s.GranteeID, &s.Token,
			&s.Tier, &s.ExpiresAt, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan share: %w", err)
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}

func (r *ShareRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shares WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete share: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return share.ErrNotFound
	}
	return nil
}

func (r *ShareRepository) findOne(ctx context.Context, query string, args ...any) (share.Share, error) {
	var s share.Share
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.FileID, &s.GrantedBy, &s.GranteeID, &s.Token, &s.Tier, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return share.Share{}, share.ErrNotFound
		}
		return share.Share{}, fmt.Errorf("find share: %w", err)
	}
	return s, nil
}
