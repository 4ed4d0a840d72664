package http

import (
	"net/http"

	"github.com/goliatone/go-blog/internal/comments"
	"github.com/google/uuid"
)

type commentCreatePayload struct {
	AuthorID *uuid.UUID `json:"author_id,omitempty"`
	Content  string     `json:"content"`
}

func (api *AdminAPI) registerCommentRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	postRoot := joinPath(base, "posts")
	mux.HandleFunc("GET "+postRoot+"/{id}/comments", api.handleCommentList)
	mux.HandleFunc("POST "+postRoot+"/{id}/comments", api.handleCommentCreate)
	mux.HandleFunc("DELETE "+joinPath(base, "comments")+"/{id}", api.handleCommentDelete)
}

func (api *AdminAPI) handleCommentList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.comments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	postID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid post id"})
		return
	}
	list, err := api.comments.List(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handleCommentCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.comments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	postID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid post id"})
		return
	}

	var payload commentCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	record, err := api.comments.Create(r.Context(), comments.CreateCommentRequest{
		PostID:   postID,
		AuthorID: api.resolveActor(r, payload.AuthorID),
		Content:  payload.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleCommentDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.comments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !api.requirePermission(w, r, PermissionCommentsModerate) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.comments.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
