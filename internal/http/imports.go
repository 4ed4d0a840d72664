package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

type importPayload struct {
	Directory string     `json:"directory"`
	AuthorID  *uuid.UUID `json:"author_id,omitempty"`
	Publish   bool       `json:"publish,omitempty"`
	DryRun    bool       `json:"dry_run,omitempty"`
}

func (api *AdminAPI) registerImportRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("POST "+joinPath(base, "markdown/import"), api.handleMarkdownImport)
}

func (api *AdminAPI) handleMarkdownImport(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.markdown == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !api.requirePermission(w, r, PermissionContentImport) {
		return
	}

	var payload importPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(payload.Directory) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "directory is required"})
		return
	}

	result, err := api.markdown.ImportDirectory(r.Context(), payload.Directory, interfaces.ImportOptions{
		AuthorID: api.resolveActor(r, payload.AuthorID),
		Publish:  payload.Publish,
		DryRun:   payload.DryRun,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
