package share

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "share-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/shares",
		Summary:     "Grant access to a file",
		Tags:        []string{"shares"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) revokeOp() huma.Operation {
	return huma.Operation{
		OperationID: "share-revoke",
		Method:      http.MethodDelete,
		Path:        "/api/v1/shares/{id}",
		Summary:     "Revoke a grant",
		Tags:        []string{"shares"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
