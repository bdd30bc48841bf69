// POST /user/register              # Register (public)
// POST /user/login                 # Login, may park on a one-time code (public)
// POST /user/verify-code           # Finish a two-factor login (public)
// GET  /api/v1/auth/validate       # Validate a session token (auth)
// POST /api/v1/user/second-factor  # Toggle the second factor (auth)
// POST /api/v1/files               # Upload (auth)
// GET  /api/v1/files               # List owned and shared files (auth)
// POST /api/v1/files/{id}/download # Download (auth)
// DELETE /api/v1/files/{id}        # Delete (auth)
// POST /api/v1/shared/{token}      # Anonymous share-link access (public)
// POST /api/v1/shares              # Grant access (auth)
// DELETE /api/v1/shares/{id}       # Revoke a grant (auth)
// GET  /api/v1/users               # List accounts (admin)
// PUT  /api/v1/users/{id}/role     # Change a role (admin)
// DELETE /api/v1/users/{id}        # Delete an account (auth, self or admin)

package api

import (
	authAPI "filevault/internal/app/server/api/http/auth"
	healthAPI "filevault/internal/app/server/api/http/health"
	"filevault/internal/app/server/api/http/middleware"
	authMW "filevault/internal/app/server/api/http/middleware/auth"
	loggerMW "filevault/internal/app/server/api/http/middleware/logger"
	shareAPI "filevault/internal/app/server/api/http/share"
	userAPI "filevault/internal/app/server/api/http/user"
	vaultAPI "filevault/internal/app/server/api/http/vault"
	"filevault/internal/app/server/token"
	"filevault/internal/config"
	"filevault/internal/domain/access"
	"filevault/internal/domain/auth"
	"filevault/internal/domain/code"
	"filevault/internal/domain/share"
	"filevault/internal/domain/user"
	"filevault/internal/domain/vault"
	"filevault/internal/infrastructure/blob"
	"filevault/internal/infrastructure/mail"
	"filevault/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	Auth   *authAPI.Handler
	Vault  *vaultAPI.Handler
	Share  *shareAPI.Handler
	User   *userAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.
func New(cfg *config.Config, storage *postgres.Storage, store blob.Store, sender mail.Sender, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaCfg := huma.DefaultConfig("Filevault API", "1.0.0")
	humaCfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaCfg)

	h := handlers(cfg, storage, store, sender, log)
	h.Health.SetupRoutes(API)
	h.Auth.SetupRoutes(API)
	h.Vault.SetupRoutes(API)
	h.Share.SetupRoutes(API)
	h.User.SetupRoutes(API)

	return mux
}

func handlers(cfg *config.Config, storage *postgres.Storage, store blob.Store, sender mail.Sender, log *slog.Logger) *Handlers {
	pool := storage.Pool()

	userRepo := postgres.NewUserRepository(pool, log)
	fileRepo := postgres.NewFileRepository(pool, log)
	shareRepo := postgres.NewShareRepository(pool, log)
	codeRepo := postgres.NewCodeRepository(pool, log)

	decider := access.NewDecider(shareRepo, log)
	vaultService := vault.NewService(fileRepo, decider, store, cfg.Vault.AdminEscrow, log)
	userService := user.NewService(userRepo, user.NewRegistrationValidator(), vaultService, log)
	shareService := share.NewService(shareRepo, fileRepo, userRepo, log)
	codeService := code.NewService(codeRepo, sender, cfg.Auth.CodeTTL, log)

	tokens := token.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	authService := auth.NewService(userService, codeService, tokens, log)

	authMiddleware := authMW.New(tokens, userService, log)
	loggerMiddleware := loggerMW.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMiddleware.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMiddleware.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(authMiddleware.Middleware())
	middlewares.Add(loggerMiddleware.Middleware())
	authHandler := authAPI.NewHandler(authService, userService, log, public, middlewares.GetAllAndClear())

	middlewares.Add(authMiddleware.Middleware())
	middlewares.Add(loggerMiddleware.Middleware())
	protected := middlewares.GetAllAndClear()
	middlewares.Add(loggerMiddleware.Middleware())
	vaultHandler := vaultAPI.NewHandler(vaultService, log, protected, middlewares.GetAllAndClear())

	middlewares.Add(authMiddleware.Middleware())
	middlewares.Add(loggerMiddleware.Middleware())
	shareHandler := shareAPI.NewHandler(shareService, log, middlewares.GetAllAndClear())

	middlewares.Add(authMiddleware.Middleware())
	middlewares.Add(loggerMiddleware.Middleware())
	userHandler := userAPI.NewHandler(userService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Auth:   authHandler,
		Vault:  vaultHandler,
		Share:  shareHandler,
		User:   userHandler,
	}
}
