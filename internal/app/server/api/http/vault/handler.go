package vault

import (
	"context"
	"encoding/base64"
	"errors"

	mwauth "filevault/internal/app/server/api/http/middleware/auth"
	"filevault/internal/app/server/crypto"
	"filevault/internal/domain/access"
	"filevault/internal/domain/file"
	"filevault/internal/domain/share"
	"filevault/internal/domain/vault"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    vault.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	public     huma.Middlewares
}

// NewHandler takes the protected chain for owner operations and the public
// chain for anonymous share-link access.
func NewHandler(service vault.Servicer, log *slog.Logger, protected, public huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: protected,
		public:     public,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.uploadOp(), h.upload)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.downloadOp(), h.download)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.sharedOp(), h.shared)
}

func (h *Handler) upload(ctx context.Context, input *uploadInput) (*uploadOutput, error) {
	u, ok := mwauth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	data, err := base64.StdEncoding.DecodeString(input.Body.Data)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("Invalid base64 data: " + err.Error())
	}

	req := vault.UploadRequest{
		OwnerID:  u.ID,
		Name:     input.Body.Name,
		Data:     data,
		Password: input.Body.Password,
	}

	if input.Body.Nonce != "" {
		if req.Nonce, err = base64.StdEncoding.DecodeString(input.Body.Nonce); err != nil {
			return nil, huma.Error422UnprocessableEntity("Invalid base64 nonce: " + err.Error())
		}
	}
	if input.Body.Salt != "" {
		if req.Salt, err = base64.StdEncoding.DecodeString(input.Body.Salt); err != nil {
			return nil, huma.Error422UnprocessableEntity("Invalid base64 salt: " + err.Error())
		}
	}

	fileID, err := h.service.Upload(ctx, req)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	return &uploadOutput{
		Body: uploadResponse{ID: fileID, Status: "Ok"},
	}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	u, ok := mwauth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	listing, err := h.service.List(ctx, u)
	if err != nil {
		return nil, err
	}

	out := &listOutput{}
	for _, f := range listing.Owned {
		out.Body.Owned = append(out.Body.Owned, fileInfo{
			ID:        f.ID,
			Name:      f.Name,
			Mode:      string(f.Mode),
			CreatedAt: f.CreatedAt,
		})
	}
	for _, sf := range listing.Shared {
		out.Body.Shared = append(out.Body.Shared, sharedFileInfo{
			fileInfo: fileInfo{
				ID:        sf.ID,
				Name:      sf.Name,
				Mode:      string(sf.Mode),
				CreatedAt: sf.CreatedAt,
			},
			Tier: string(sf.Tier),
		})
	}
	return out, nil
}

func (h *Handler) download(ctx context.Context, input *downloadInput) (*contentOutput, error) {
	u, ok := mwauth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	op, err := parseOp(input.Body.Op)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	content, err := h.service.Access(ctx, access.ForUser(u), input.ID, op, input.Body.Password)
	if err != nil {
		return nil, mapAccessError(err)
	}

	return contentResponse(content), nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*statusOutput, error) {
	u, ok := mwauth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, access.ForUser(u), input.ID); err != nil {
		return nil, mapAccessError(err)
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

// shared serves an anonymous share-link request. No session: the token in
// the path is the whole credential.
func (h *Handler) shared(ctx context.Context, input *sharedInput) (*contentOutput, error) {
	op, err := parseOp(input.Body.Op)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	content, err := h.service.AccessShared(ctx, input.Token, op, input.Body.Password)
	if err != nil {
		return nil, mapAccessError(err)
	}

	return contentResponse(content), nil
}

func parseOp(op string) (share.Tier, error) {
	if op == "" {
		return share.TierDownload, nil
	}
	return share.ParseTier(op)
}

func contentResponse(c vault.Content) *contentOutput {
	out := &contentOutput{
		Body: contentBody{
			Name: c.Name,
			Mode: string(c.Mode),
			Data: base64.StdEncoding.EncodeToString(c.Data),
		},
	}
	if len(c.Nonce) > 0 {
		out.Body.Nonce = base64.StdEncoding.EncodeToString(c.Nonce)
	}
	if len(c.Salt) > 0 {
		out.Body.Salt = base64.StdEncoding.EncodeToString(c.Salt)
	}
	return out
}

func mapAccessError(err error) error {
	switch {
	case errors.Is(err, file.ErrNotFound):
		return huma.Error404NotFound("File not found")
	case errors.Is(err, access.ErrDenied):
		return huma.Error403Forbidden("Access denied")
	case errors.Is(err, crypto.ErrIntegrity):
		return huma.Error403Forbidden("Decryption failed")
	}
	return err
}
