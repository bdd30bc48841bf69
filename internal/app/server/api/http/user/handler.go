package user

import (
	"context"
	"errors"
	"time"

	mwauth "filevault/internal/app/server/api/http/middleware/auth"
	"filevault/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    user.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.updateRoleOp(), h.updateRole)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	u, ok := mwauth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !u.Role.AtLeast(user.RoleAdmin) {
		return nil, huma.Error403Forbidden("Admin only")
	}

	users, err := h.service.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &listOutput{}
	for _, item := range users {
		out.Body.Users = append(out.Body.Users, userInfo{
			ID:           item.ID,
			Username:     item.Username,
			Email:        item.Email,
			Role:         string(item.Role),
			SecondFactor: item.SecondFactor,
			CreatedAt:    item.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (h *Handler) updateRole(ctx context.Context, input *updateRoleInput) (*statusOutput, error) {
	u, ok := mwauth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !u.Role.AtLeast(user.RoleAdmin) {
		return nil, huma.Error403Forbidden("Admin only")
	}

	role, err := user.ParseRole(input.Body.Role)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	if err := h.service.UpdateRole(ctx, input.ID, role); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, huma.Error404NotFound("User not found")
		}
		return nil, err
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

// delete removes an account and everything it owns. Users may delete
// themselves; admins may delete anyone.
func (h *Handler) delete(ctx context.Context, input *deleteInput) (*statusOutput, error) {
	u, ok := mwauth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if u.ID != input.ID && !u.Role.AtLeast(user.RoleAdmin) {
		return nil, huma.Error403Forbidden("Access denied")
	}

	if err := h.service.Delete(ctx, input.ID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, huma.Error404NotFound("User not found")
		}
		return nil, err
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}
