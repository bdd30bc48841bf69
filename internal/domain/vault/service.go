package vault

import (
	"context"
	"fmt"
	"time"

	"filevault/internal/app/server/crypto"
	"filevault/internal/domain/access"
	"filevault/internal/domain/file"
	"filevault/internal/domain/share"
	"filevault/internal/domain/user"
	"filevault/internal/infrastructure/blob"

	"golang.org/x/exp/slog"
)

const clientNonceSize = 12 // AES-GCM

type Servicer interface {
	Upload(ctx context.Context, req UploadRequest) (int, error)
	Access(ctx context.Context, p access.Principal, fileID int, op share.Tier, password string) (Content, error)
	AccessShared(ctx context.Context, token string, op share.Tier, password string) (Content, error)
	Delete(ctx context.Context, p access.Principal, fileID int) error
	List(ctx context.Context, u user.User) (Listing, error)
	PurgeOwner(ctx context.Context, ownerID int) error
}

type UploadRequest struct {
	OwnerID int
	Name    string
	Data    []byte
	// Password selects derived mode: the server derives the key and
	// encrypts. Nonce+Salt select opaque mode: the client already
	// encrypted and the server stores the bytes verbatim.
	Password string
	Nonce    []byte
	Salt     []byte
}

// Content is what an allowed access returns. In derived mode Data is
// plaintext; in opaque mode it is the client's ciphertext and Nonce/Salt
// carry the parameters the client needs to finish decryption.
type Content struct {
	Name  string
	Mode  file.Mode
	Data  []byte
	Nonce []byte
	Salt  []byte
}

type Listing struct {
	Owned  []file.File
	Shared []file.SharedFile
}

type Service struct {
	files       file.Repository
	decider     *access.Decider
	store       blob.Store
	adminEscrow bool
	log         *slog.Logger
}

func NewService(files file.Repository, decider *access.Decider, store blob.Store, adminEscrow bool, log *slog.Logger) *Service {
	return &Service{
		files:       files,
		decider:     decider,
		store:       store,
		adminEscrow: adminEscrow,
		log:         log.With("component", "vault_service"),
	}
}

func (s *Service) Upload(ctx context.Context, req UploadRequest) (int, error) {
	f := file.File{
		Name:       req.Name,
		StorageKey: blob.NewKey(req.Name),
		OwnerID:    req.OwnerID,
	}

	var content []byte
	switch {
	case req.Password != "" && req.Nonce == nil && req.Salt == nil:
		salt, err := crypto.NewSalt()
		if err != nil {
			return 0, err
		}
		key, err := crypto.DeriveKey(req.Password, salt)
		if err != nil {
			return 0, err
		}
		ciphertext, err := crypto.Encrypt(req.Data, key)
		if err != nil {
			return 0, fmt.Errorf("encrypt: %w", err)
		}

		f.Mode = file.ModeDerived
		f.Salt = salt
		f.KeyData = key // retained deliberately: the admin-override escrow
		content = ciphertext

	case req.Password == "" && len(req.Nonce) > 0 && len(req.Salt) > 0:
		if len(req.Nonce) != clientNonceSize {
			return 0, fmt.Errorf("nonce must be %d bytes, got %d", clientNonceSize, len(req.Nonce))
		}

		f.Mode = file.ModeOpaque
		f.Salt = req.Salt
		f.Nonce = req.Nonce
		content = req.Data

	default:
		return 0, fmt.Errorf("upload requires either a password or a nonce and salt, not both")
	}

	if err := s.store.Put(ctx, f.StorageKey, content); err != nil {
		return 0, fmt.Errorf("store blob: %w", err)
	}

	id, err := s.files.Create(ctx, f)
	if err != nil {
		// The row never existed, so the orphaned blob is unreachable
		// anyway; still try not to leak it.
		if derr := s.store.Delete(ctx, f.StorageKey); derr != nil {
			s.log.Error("orphaned blob after failed create", "key", f.StorageKey, "error", derr)
		}
		return 0, fmt.Errorf("create file: %w", err)
	}

	s.log.Info("file uploaded", "file_id", id, "owner_id", req.OwnerID, "mode", f.Mode)
	return id, nil
}

func (s *Service) Access(ctx context.Context, p access.Principal, fileID int, op share.Tier, password string) (Content, error) {
	f, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return Content{}, file.ErrNotFound
	}

	dec, err := s.decider.Decide(ctx, p, f, op)
	if err != nil {
		return Content{}, err
	}

	return s.open(ctx, f, dec, password)
}

// AccessShared serves an anonymous share-link request. The token stands in
// for both identity and file reference.
func (s *Service) AccessShared(ctx context.Context, token string, op share.Tier, password string) (Content, error) {
	p := access.ForToken(token)

	grant, err := s.decider.GrantForToken(ctx, token)
	if err != nil {
		return Content{}, access.ErrDenied
	}

	f, err := s.files.FindByID(ctx, grant.FileID)
	if err != nil {
		return Content{}, file.ErrNotFound
	}

	dec, err := s.decider.Decide(ctx, p, f, op)
	if err != nil {
		return Content{}, err
	}

	return s.open(ctx, f, dec, password)
}

// open fetches the blob and applies the mode's decryption rules.
func (s *Service) open(ctx context.Context, f file.File, dec access.Decision, password string) (Content, error) {
	data, err := s.store.Get(ctx, f.StorageKey)
	if err != nil {
		return Content{}, fmt.Errorf("fetch blob: %w", err)
	}

	switch f.Mode {
	case file.ModeOpaque:
		// Client-encrypted: hand back the ciphertext with its
		// parameters, never attempt to decrypt.
		return Content{Name: f.Name, Mode: f.Mode, Data: data, Nonce: f.Nonce, Salt: f.Salt}, nil

	case file.ModeDerived:
		key, err := s.derivedKey(f, dec, password)
		if err != nil {
			return Content{}, err
		}

		plaintext, err := crypto.Decrypt(data, key)
		if err != nil {
			return Content{}, err
		}
		return Content{Name: f.Name, Mode: f.Mode, Data: plaintext, Salt: f.Salt}, nil

	default:
		return Content{}, fmt.Errorf("unknown encryption mode %q", f.Mode)
	}
}

// derivedKey picks the key material for a derived-mode read. Missing and
// wrong passwords are indistinguishable to the caller: both surface as
// the generic decryption failure.
func (s *Service) derivedKey(f file.File, dec access.Decision, password string) ([]byte, error) {
	if password != "" {
		return crypto.DeriveKey(password, f.Salt)
	}

	if dec.AdminOverride && s.adminEscrow && len(f.KeyData) > 0 {
		return f.KeyData, nil
	}

	return nil, crypto.ErrIntegrity
}

// Delete removes a file: blob first, then metadata. A missing blob is
// fine; a metadata delete failure after the blob is gone is not, and is
// surfaced so nobody is left believing the file still exists.
func (s *Service) Delete(ctx context.Context, p access.Principal, fileID int) error {
	f, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return file.ErrNotFound
	}

	dec, err := s.decider.Decide(ctx, p, f, share.TierDownload)
	if err != nil {
		return err
	}
	if !dec.Owner && !dec.AdminOverride {
		return access.ErrDenied
	}

	if err := s.store.Delete(ctx, f.StorageKey); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}

	if err := s.files.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("delete file row: %w", err)
	}

	s.log.Info("file deleted", "file_id", fileID)
	return nil
}

func (s *Service) List(ctx context.Context, u user.User) (Listing, error) {
	if u.Role == user.RoleAdmin {
		all, err := s.files.ListAll(ctx)
		if err != nil {
			return Listing{}, fmt.Errorf("list files: %w", err)
		}
		return Listing{Owned: all}, nil
	}

	owned, err := s.files.ListOwned(ctx, u.ID)
	if err != nil {
		return Listing{}, fmt.Errorf("list owned: %w", err)
	}

	shared, err := s.files.ListSharedWith(ctx, u.ID, time.Now())
	if err != nil {
		return Listing{}, fmt.Errorf("list shared: %w", err)
	}

	return Listing{Owned: owned, Shared: shared}, nil
}

// PurgeOwner removes every file a user owns, blobs before rows. Used by
// account deletion.
func (s *Service) PurgeOwner(ctx context.Context, ownerID int) error {
	owned, err := s.files.ListOwned(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("list owned: %w", err)
	}

	for _, f := range owned {
		if err := s.store.Delete(ctx, f.StorageKey); err != nil {
			return fmt.Errorf("delete blob %s: %w", f.StorageKey, err)
		}
		if err := s.files.Delete(ctx, f.ID); err != nil {
			return fmt.Errorf("delete file row %d: %w", f.ID, err)
		}
	}

	return nil
}
