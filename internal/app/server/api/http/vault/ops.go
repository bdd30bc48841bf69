package vault

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) uploadOp() huma.Operation {
	return huma.Operation{
		OperationID: "file-upload",
		Method:      http.MethodPost,
		Path:        "/api/v1/files",
		Summary:     "Upload a file into the vault",
		Tags:        []string{"files"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "file-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/files",
		Summary:     "List owned and shared files",
		Tags:        []string{"files"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) downloadOp() huma.Operation {
	return huma.Operation{
		OperationID: "file-download",
		Method:      http.MethodPost,
		Path:        "/api/v1/files/{id}/download",
		Summary:     "Download a file, decrypting server-side when a password is supplied",
		Tags:        []string{"files"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "file-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/files/{id}",
		Summary:     "Delete a file and its stored blob",
		Tags:        []string{"files"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) sharedOp() huma.Operation {
	return huma.Operation{
		OperationID: "file-shared-access",
		Method:      http.MethodPost,
		Path:        "/api/v1/shared/{token}",
		Summary:     "Access a file through an anonymous share link",
		Tags:        []string{"files"},
		Middlewares: h.public,
	}
}
