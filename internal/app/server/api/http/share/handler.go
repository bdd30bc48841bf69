package share

import (
	"context"
	"errors"
	"time"

	mwauth "filevault/internal/app/server/api/http/middleware/auth"
	"filevault/internal/domain/file"
	"filevault/internal/domain/share"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    share.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service share.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.revokeOp(), h.revoke)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	u, ok := mwauth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	grant, err := h.service.Create(ctx, share.CreateRequest{
		FileID:    input.Body.FileID,
		GranterID: u.ID,
		Grantee:   input.Body.Grantee,
		Tier:      share.Tier(input.Body.Tier),
		TTLHours:  input.Body.TTLHours,
	})
	if err != nil {
		return nil, mapShareError(err)
	}

	resp := createResponse{
		ID:        grant.ID,
		Tier:      string(grant.Tier),
		ExpiresAt: grant.ExpiresAt.Format(time.RFC3339),
		Status:    "Ok",
	}
	if grant.Token != nil {
		resp.Token = *grant.Token
	}

	return &createOutput{Body: resp}, nil
}

func (h *Handler) revoke(ctx context.Context, input *revokeInput) (*revokeOutput, error) {
	u, ok := mwauth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Revoke(ctx, input.ID, u.ID); err != nil {
		return nil, mapShareError(err)
	}

	return &revokeOutput{Body: revokeResponse{Status: "Ok"}}, nil
}

func mapShareError(err error) error {
	switch {
	case errors.Is(err, share.ErrNotFound), errors.Is(err, file.ErrNotFound):
		return huma.Error404NotFound("Not found")
	case errors.Is(err, share.ErrDenied):
		return huma.Error403Forbidden("Only the owner can manage shares")
	case errors.Is(err, share.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	}
	return err
}
