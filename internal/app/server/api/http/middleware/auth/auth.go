package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"filevault/internal/app/server/token"
	"filevault/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Auth struct {
	tokens *token.Manager
	users  user.Servicer
	log    *slog.Logger
}

func New(tokens *token.Manager, users user.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		tokens: tokens,
		users:  users,
		log:    log.With("component", "auth_middleware"),
	}
}

type contextKey string

const userKey contextKey = "user"

// Middleware verifies the Bearer token and loads the account it names.
// The lookup keeps role changes and deletions effective immediately, even
// for tokens signed before the change.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")

		if len(header) < 7 || header[:7] != "Bearer " {
			a.reject(ctx)
			return
		}

		claims, err := a.tokens.Verify(header[7:])
		if err != nil {
			a.log.Debug("token rejected", "error", err)
			a.reject(ctx)
			return
		}

		u, err := a.users.Find(ctx.Context(), claims.Subject)
		if err != nil {
			a.log.Debug("token subject unknown", "subject", claims.Subject)
			a.reject(ctx)
			return
		}

		newCtx := context.WithValue(ctx.Context(), userKey, u)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) reject(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")

	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("write unauthorized response", "error", err)
	}
}

// WithUser is for tests that need an authenticated context without the
// middleware chain.
func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func GetUser(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(userKey).(user.User)
	return u, ok
}
