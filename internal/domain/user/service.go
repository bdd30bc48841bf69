package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, username, email, password string, secondFactor bool) (int, error)
	Authenticate(ctx context.Context, username, password string) (User, error)
	Find(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	SetSecondFactor(ctx context.Context, username string, enabled bool) (bool, error)
	UpdateRole(ctx context.Context, id int, role Role) error
	Delete(ctx context.Context, id int) error
}

// FilePurger removes a user's files, backing blobs first. The file domain
// provides the implementation; keeping it behind an interface avoids a
// user -> file package cycle during account deletion.
type FilePurger interface {
	PurgeOwner(ctx context.Context, ownerID int) error
}

type Service struct {
	repo      Repository
	validator Validator
	purger    FilePurger
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, purger FilePurger, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		purger:    purger,
		log:       log.With("component", "user_service"),
	}
}

func (s *Service) Register(ctx context.Context, username, email, password string, secondFactor bool) (int, error) {
	if err := s.validator.ValidateRegister(username, email, password); err != nil {
		s.log.Debug("validation failed", "username", username, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, User{
		Username:     username,
		Email:        email,
		Password:     string(hash),
		Role:         RoleUser,
		SecondFactor: secondFactor,
	})
}

// Authenticate checks a presented password. An unknown username and a wrong
// password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Find(ctx context.Context, username string) (User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) SetSecondFactor(ctx context.Context, username string, enabled bool) (bool, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}

	if err := s.repo.UpdateSecondFactor(ctx, u.ID, enabled); err != nil {
		return false, fmt.Errorf("update second factor: %w", err)
	}

	return enabled, nil
}

func (s *Service) UpdateRole(ctx context.Context, id int, role Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	return s.repo.UpdateRole(ctx, id, role)
}

// Delete removes the account and everything it owns. Backing blobs go
// first: once the rows are gone access control can no longer protect a
// blob that is still on disk.
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.purger.PurgeOwner(ctx, id); err != nil {
		return fmt.Errorf("purge files: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info("account deleted", "user_id", id)
	return nil
}
