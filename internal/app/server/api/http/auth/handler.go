package auth

import (
	"context"
	"errors"

	mwauth "filevault/internal/app/server/api/http/middleware/auth"
	"filevault/internal/domain/auth"
	"filevault/internal/domain/code"
	"filevault/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	auth       auth.Servicer
	users      user.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	protected  huma.Middlewares
}

// NewHandler takes two middleware chains: the public one for login and
// registration, and the protected one for the endpoints that require a
// session.
func NewHandler(authService auth.Servicer, users user.Servicer, log *slog.Logger, public, protected huma.Middlewares) *Handler {
	return &Handler{
		auth:       authService,
		users:      users,
		log:        log,
		middleware: public,
		protected:  protected,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.verifyCodeOp(), h.verifyCode)
	huma.Register(api, h.validateOp(), h.validate)
	huma.Register(api, h.secondFactorOp(), h.secondFactor)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.users.Register(ctx, input.Body.Username, input.Body.Email, input.Body.Password, input.Body.SecondFactor)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrExists):
			return nil, huma.Error409Conflict("Username or email already taken")
		case errors.Is(err, user.ErrInvalidInput):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	return &registerOutput{
		Body: RegisterResponse{ID: userID, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	result, err := h.auth.Login(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return nil, huma.Error401Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	return &loginOutput{
		Body: LoginResponse{
			Token:                result.Token,
			SecondFactorRequired: result.SecondFactorRequired,
			Status:               "Ok",
		},
	}, nil
}

func (h *Handler) verifyCode(ctx context.Context, input *verifyCodeInput) (*loginOutput, error) {
	result, err := h.auth.VerifySecondFactor(ctx, input.Body.Username, input.Body.Code)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) || errors.Is(err, code.ErrInvalidCode) {
			return nil, huma.Error401Unauthorized("Invalid code")
		}
		return nil, err
	}

	return &loginOutput{
		Body: LoginResponse{
			Token:  result.Token,
			Status: "Ok",
		},
	}, nil
}

func (h *Handler) validate(ctx context.Context, _ *struct{}) (*validateOutput, error) {
	u, ok := mwauth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	return &validateOutput{
		Body: ValidateResponse{
			Username: u.Username,
			Role:     string(u.Role),
		},
	}, nil
}

func (h *Handler) secondFactor(ctx context.Context, input *secondFactorInput) (*secondFactorOutput, error) {
	u, ok := mwauth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	enabled, err := h.users.SetSecondFactor(ctx, u.Username, input.Body.Enabled)
	if err != nil {
		return nil, err
	}

	return &secondFactorOutput{
		Body: SecondFactorResponse{Enabled: enabled, Status: "Ok"},
	}, nil
}
