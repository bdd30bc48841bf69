package auth

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-register",
		Method:      http.MethodPost,
		Path:        "/user/register",
		Summary:     "Register a new account",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-login",
		Method:      http.MethodPost,
		Path:        "/user/login",
		Summary:     "Log in with username and password",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) verifyCodeOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-verify-code",
		Method:      http.MethodPost,
		Path:        "/user/verify-code",
		Summary:     "Finish a two-factor login with a one-time code",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) validateOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-validate",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/validate",
		Summary:     "Validate the current session token",
		Tags:        []string{"auth"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.protected,
	}
}

func (h *Handler) secondFactorOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-second-factor",
		Method:      http.MethodPost,
		Path:        "/api/v1/user/second-factor",
		Summary:     "Enable or disable the one-time-code second factor",
		Tags:        []string{"auth"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.protected,
	}
}
