package auth

import (
	"context"
	"testing"

	"filevault/internal/domain/code"
	"filevault/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) Register(ctx context.Context, username, email, password string, secondFactor bool) (int, error) {
	args := m.Called(ctx, username, email, password, secondFactor)
	return args.Int(0), args.Error(1)
}

func (m *MockUsers) Authenticate(ctx context.Context, username, password string) (user.User, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUsers) Find(ctx context.Context, username string) (user.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUsers) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUsers) SetSecondFactor(ctx context.Context, username string, enabled bool) (bool, error) {
	args := m.Called(ctx, username, enabled)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsers) UpdateRole(ctx context.Context, id int, role user.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUsers) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCodes struct {
	mock.Mock
}

func (m *MockCodes) Issue(ctx context.Context, userID int, email string) error {
	args := m.Called(ctx, userID, email)
	return args.Error(0)
}

func (m *MockCodes) Verify(ctx context.Context, userID int, value string) error {
	args := m.Called(ctx, userID, value)
	return args.Error(0)
}

type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Issue(subject, role string) (string, error) {
	args := m.Called(subject, role)
	return args.String(0), args.Error(1)
}

func TestService_Login_NoSecondFactor(t *testing.T) {
	users := new(MockUsers)
	codes := new(MockCodes)
	issuer := new(MockIssuer)

	alice := user.User{ID: 1, Username: "alice", Role: user.RoleUser}
	users.On("Authenticate", mock.Anything, "alice", "pw").Return(alice, nil)
	issuer.On("Issue", "alice", "user").Return("tok", nil)

	s := NewService(users, codes, issuer, slog.Default())

	result, err := s.Login(context.Background(), "alice", "pw")

	assert.NoError(t, err)
	assert.Equal(t, "tok", result.Token)
	assert.False(t, result.SecondFactorRequired)
	codes.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	users := new(MockUsers)
	users.On("Authenticate", mock.Anything, "alice", "wrong").
		Return(user.User{}, user.ErrInvalidCredentials)

	s := NewService(users, new(MockCodes), new(MockIssuer), slog.Default())

	_, err := s.Login(context.Background(), "alice", "wrong")

	// Unknown usernames and wrong passwords surface identically.
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestService_Login_SecondFactorParks(t *testing.T) {
	users := new(MockUsers)
	codes := new(MockCodes)
	issuer := new(MockIssuer)

	alice := user.User{ID: 1, Username: "alice", Email: "alice@example.com", SecondFactor: true}
	users.On("Authenticate", mock.Anything, "alice", "pw").Return(alice, nil)
	codes.On("Issue", mock.Anything, 1, "alice@example.com").Return(nil)

	s := NewService(users, codes, issuer, slog.Default())

	result, err := s.Login(context.Background(), "alice", "pw")

	assert.NoError(t, err)
	assert.True(t, result.SecondFactorRequired)
	assert.Empty(t, result.Token, "no token before the code is verified")
	issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	codes.AssertExpectations(t)
}

func TestService_VerifySecondFactor(t *testing.T) {
	users := new(MockUsers)
	codes := new(MockCodes)
	issuer := new(MockIssuer)

	alice := user.User{ID: 1, Username: "alice", Role: user.RoleUser, SecondFactor: true}
	users.On("Find", mock.Anything, "alice").Return(alice, nil)
	codes.On("Verify", mock.Anything, 1, "123456").Return(nil)
	issuer.On("Issue", "alice", "user").Return("tok", nil)

	s := NewService(users, codes, issuer, slog.Default())

	result, err := s.VerifySecondFactor(context.Background(), "alice", "123456")

	assert.NoError(t, err)
	assert.Equal(t, "tok", result.Token)
}

func TestService_VerifySecondFactor_WrongCode(t *testing.T) {
	users := new(MockUsers)
	codes := new(MockCodes)
	issuer := new(MockIssuer)

	alice := user.User{ID: 1, Username: "alice", SecondFactor: true}
	users.On("Find", mock.Anything, "alice").Return(alice, nil)
	codes.On("Verify", mock.Anything, 1, "000000").Return(code.ErrInvalidCode)

	s := NewService(users, codes, issuer, slog.Default())

	_, err := s.VerifySecondFactor(context.Background(), "alice", "000000")

	assert.ErrorIs(t, err, code.ErrInvalidCode)
	issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestService_VerifySecondFactor_UnknownUser(t *testing.T) {
	users := new(MockUsers)
	users.On("Find", mock.Anything, "ghost").Return(user.User{}, user.ErrNotFound)

	s := NewService(users, new(MockCodes), new(MockIssuer), slog.Default())

	_, err := s.VerifySecondFactor(context.Background(), "ghost", "123456")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}
