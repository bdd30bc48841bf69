package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"filevault/internal/domain/file"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

const fileColumns = `id, name, storage_key, owner_id, enc_mode, salt, nonce, key_data, created_at`

type FileRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewFileRepository(pool *pgxpool.Pool, log *slog.Logger) *FileRepository {
	return &FileRepository{
		pool: pool,
		log:  log.With("component", "file_repository"),
	}
}

func (r *FileRepository) Create(ctx context.Context, f file.File) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO files (name, storage_key, owner_id, enc_mode, salt, nonce, key_data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		f.Name, f.StorageKey, f.OwnerID, f.Mode, f.Salt, f.Nonce, f.KeyData).Scan(&id)
	if err != nil {
		r.log.Error("failed to create file", "owner_id", f.OwnerID, "error", err)
		return 0, fmt.Errorf("create file: %w", err)
	}
	return id, nil
}

func (r *FileRepository) FindByID(ctx context.Context, id int) (file.File, error) {
	var f file.File
	err := r.pool.QueryRow(ctx,
		`SELECT `+fileColumns+` FROM files WHERE id = $1`, id).
		Scan(&f.ID, &f.Name, &f.StorageKey, &f.OwnerID, &f.Mode, &f.Salt, &f.Nonce, &f.KeyData, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return file.File{}, file.ErrNotFound
		}
		return file.File{}, fmt.Errorf("find file: %w", err)
	}
	return f, nil
}

func (r *FileRepository) ListOwned(ctx context.Context, ownerID int) ([]file.File, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+fileColumns+` FROM files WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owned files: %w", err)
	}
	defer rows.Close()

	return r.scanFiles(rows)
}

func (r *FileRepository) ListAll(ctx context.Context) ([]file.File, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+fileColumns+` FROM files ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	return r.scanFiles(rows)
}

func (r *FileRepository) ListSharedWith(ctx context.Context, granteeID int, now time.Time) ([]file.SharedFile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.name, f.storage_key, f.owner_id, f.enc_mode, f.salt, f.nonce, f.key_data, f.created_at, s.tier
		 FROM files f
		 JOIN shares s ON f.id = s.file_id
		 WHERE s.grantee_id = $1 AND s.expires_at > $2
		 ORDER BY f.created_at DESC`, granteeID, now)
	if err != nil {
		return nil, fmt.Errorf("list shared files: %w", err)
	}
	defer rows.Close()

	var shared []file.SharedFile
	for rows.Next() {
		var sf file.SharedFile
		if err := rows.Scan(&sf.ID, &sf.Name, &sf.StorageKey, &sf.OwnerID, &sf.Mode,
			&sf.Salt, &sf.Nonce, &sf.KeyData, &sf.CreatedAt, &sf.Tier); err != nil {
			return nil, fmt.Errorf("scan shared file: %w", err)
		}
		shared = append(shared, sf)
	}
	return shared, rows.Err()
}

func (r *FileRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return file.ErrNotFound
	}
	return nil
}

// OwnerOf satisfies the share domain's Files dependency.
func (r *FileRepository) OwnerOf(ctx context.Context, fileID int) (int, error) {
	var ownerID int
	err := r.pool.QueryRow(ctx, `SELECT owner_id FROM files WHERE id = $1`, fileID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, file.ErrNotFound
		}
		return 0, fmt.Errorf("find file owner: %w", err)
	}
	return ownerID, nil
}

func (r *FileRepository) scanFiles(rows pgx.Rows) ([]file.File, error) {
	var files []file.File
	for rows.Next() {
		var f file.File
		if err := rows.Scan(&f.ID, &f.Name, &f.StorageKey, &f.OwnerID, &f.Mode,
			&f.Salt, &f.Nonce, &f.KeyData, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
