package code

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/exp/slog"
)

const codeDigits = 6

type Servicer interface {
	Issue(ctx context.Context, userID int, email string) error
	Verify(ctx context.Context, userID int, value string) error
}

// Sender delivers a code out-of-band. The mail infrastructure provides the
// implementation.
type Sender interface {
	Send(to, subject, body string) error
}

type Service struct {
	repo   Repository
	sender Sender
	ttl    time.Duration
	log    *slog.Logger
}

func NewService(repo Repository, sender Sender, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		sender: sender,
		ttl:    ttl,
		log:    log.With("component", "code_service"),
	}
}

// Issue generates a fresh 6-digit code, stores it with an absolute expiry
// and mails it. Previously issued codes stay valid until one of the batch
// is verified.
func (s *Service) Issue(ctx context.Context, userID int, email string) error {
	value, err := generate()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	c := Code{
		UserID:    userID,
		Value:     value,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.repo.Add(ctx, c); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	if err := s.sender.Send(email, "Your verification code", fmt.Sprintf("Your verification code is: %s", value)); err != nil {
		return fmt.Errorf("send code: %w", err)
	}

	s.log.Info("verification code issued", "user_id", userID)
	return nil
}

// Verify consumes a code. Success invalidates every outstanding code for
// the user; failure leaves them all untouched.
func (s *Service) Verify(ctx context.Context, userID int, value string) error {
	ok, err := s.repo.Consume(ctx, userID, value, time.Now())
	if err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	if !ok {
		return ErrInvalidCode
	}
	return nil
}

func generate() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
