package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-blog/internal/posts"
	"github.com/google/uuid"
)

type postCreatePayload struct {
	Title       string      `json:"title"`
	Slug        string      `json:"slug,omitempty"`
	Content     string      `json:"content"`
	Excerpt     string      `json:"excerpt,omitempty"`
	Published   bool        `json:"published,omitempty"`
	AuthorID    *uuid.UUID  `json:"author_id,omitempty"`
	CoverImage  *string     `json:"cover_image,omitempty"`
	CategoryIDs []uuid.UUID `json:"category_ids,omitempty"`
}

type postUpdatePayload struct {
	Title       *string     `json:"title,omitempty"`
	Slug        *string     `json:"slug,omitempty"`
	Content     *string     `json:"content,omitempty"`
	Excerpt     *string     `json:"excerpt,omitempty"`
	Published   *bool       `json:"published,omitempty"`
	CoverImage  *string     `json:"cover_image,omitempty"`
	CategoryIDs []uuid.UUID `json:"category_ids,omitempty"`
}

func (api *AdminAPI) registerPostRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "posts")
	mux.HandleFunc("GET "+root, api.handlePostList)
	mux.HandleFunc("POST "+root, api.handlePostCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handlePostGet)
	mux.HandleFunc("PUT "+root+"/{id}", api.handlePostUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handlePostDelete)
}

func (api *AdminAPI) handlePostList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	req := posts.ListPostsRequest{
		Query:     strings.TrimSpace(r.URL.Query().Get("q")),
		Published: parseBoolQuery(r.URL.Query().Get("published")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		categoryID, err := parseUUID(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid category id"})
			return
		}
		req.CategoryID = &categoryID
	}

	list, err := api.posts.List(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handlePostGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.posts.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !api.requirePermission(w, r, PermissionPostsWrite) {
		return
	}

	var payload postCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	record, err := api.posts.Create(r.Context(), posts.CreatePostRequest{
		Title:       payload.Title,
		Slug:        payload.Slug,
		Content:     payload.Content,
		Excerpt:     payload.Excerpt,
		Published:   payload.Published,
		AuthorID:    api.resolveActor(r, payload.AuthorID),
		CoverImage:  payload.CoverImage,
		CategoryIDs: payload.CategoryIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handlePostUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !api.requirePermission(w, r, PermissionPostsWrite) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	var payload postUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	record, err := api.posts.Update(r.Context(), posts.UpdatePostRequest{
		ID:          id,
		Title:       payload.Title,
		Slug:        payload.Slug,
		Content:     payload.Content,
		Excerpt:     payload.Excerpt,
		Published:   payload.Published,
		CoverImage:  payload.CoverImage,
		CategoryIDs: payload.CategoryIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePostDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !api.requirePermission(w, r, PermissionPostsWrite) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.posts.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
