package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"filevault/internal/domain/code"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type CodeRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCodeRepository(pool *pgxpool.Pool, log *slog.Logger) *CodeRepository {
	return &CodeRepository{
		pool: pool,
		log:  log.With("component", "code_repository"),
	}
}

func (r *CodeRepository) Add(ctx context.Context, c code.Code) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO codes (user_id, value, expires_at) VALUES ($1, $2, $3)`,
		c.UserID, c.Value, c.ExpiresAt)
	if err != nil {
		return fmt.Errorf("add code: %w", err)
	}
	return nil
}

// Consume runs the match and the batch purge in one transaction. The
// SELECT ... FOR UPDATE serializes concurrent verifications for the same
// user, so a code can never be accepted twice: the second transaction
// blocks, then finds the rows already gone.
func (r *CodeRepository) Consume(ctx context.Context, userID int, value string, now time.Time) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx,
		`SELECT id FROM codes
		 WHERE user_id = $1 AND value = $2 AND expires_at > $3
		 ORDER BY created_at DESC LIMIT 1
		 FOR UPDATE`, userID, value, now).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("match code: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM codes WHERE user_id = $1`, userID); err != nil {
		return false, fmt.Errorf("purge codes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}
