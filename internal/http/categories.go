package http

import (
	"net/http"

	"github.com/goliatone/go-blog/internal/posts"
)

type categoryCreatePayload struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

func (api *AdminAPI) registerCategoryRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "categories")
	mux.HandleFunc("GET "+root, api.handleCategoryList)
	mux.HandleFunc("POST "+root, api.handleCategoryCreate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleCategoryDelete)
}

func (api *AdminAPI) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.categories == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	list, err := api.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.categories == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !api.requirePermission(w, r, PermissionCategoriesWrite) {
		return
	}

	var payload categoryCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	record, err := api.categories.Create(r.Context(), posts.CreateCategoryRequest{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.categories == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !api.requirePermission(w, r, PermissionCategoriesWrite) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.categories.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
