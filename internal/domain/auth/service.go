package auth

import (
	"context"
	"fmt"

	"filevault/internal/domain/code"
	"filevault/internal/domain/user"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Login(ctx context.Context, username, password string) (Result, error)
	VerifySecondFactor(ctx context.Context, username, codeValue string) (Result, error)
}

// TokenIssuer signs session tokens; the server token package provides it.
type TokenIssuer interface {
	Issue(subject, role string) (string, error)
}

// Result is the outcome of a login step. Either Token is set, or
// SecondFactorRequired is true and no token has been issued yet.
type Result struct {
	Token                string
	SecondFactorRequired bool
	User                 user.User
}

type Service struct {
	users  user.Servicer
	codes  code.Servicer
	tokens TokenIssuer
	log    *slog.Logger
}

func NewService(users user.Servicer, codes code.Servicer, tokens TokenIssuer, log *slog.Logger) *Service {
	return &Service{
		users:  users,
		codes:  codes,
		tokens: tokens,
		log:    log.With("component", "auth_service"),
	}
}

// Login checks credentials and either issues a session token right away or
// sends a one-time code and reports that a second factor is required.
func (s *Service) Login(ctx context.Context, username, password string) (Result, error) {
	u, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return Result{}, user.ErrInvalidCredentials
	}

	if u.SecondFactor {
		if err := s.codes.Issue(ctx, u.ID, u.Email); err != nil {
			return Result{}, fmt.Errorf("issue code: %w", err)
		}
		s.log.Info("second factor required", "username", username)
		return Result{SecondFactorRequired: true, User: u}, nil
	}

	return s.issueToken(u)
}

// VerifySecondFactor finishes a login that was parked on the one-time-code
// challenge. An invalid or expired code leaves the outstanding codes in
// place; only success consumes the batch.
func (s *Service) VerifySecondFactor(ctx context.Context, username, codeValue string) (Result, error) {
	u, err := s.users.Find(ctx, username)
	if err != nil {
		return Result{}, user.ErrInvalidCredentials
	}

	if err := s.codes.Verify(ctx, u.ID, codeValue); err != nil {
		return Result{}, err
	}

	return s.issueToken(u)
}

func (s *Service) issueToken(u user.User) (Result, error) {
	t, err := s.tokens.Issue(u.Username, string(u.Role))
	if err != nil {
		return Result{}, fmt.Errorf("issue token: %w", err)
	}
	return Result{Token: t, User: u}, nil
}
