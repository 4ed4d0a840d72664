package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-blog/internal/comments"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for name, fieldErr := range fieldErrs {
			if fieldErr != nil {
				fields[name] = fieldErr.Error()
			}
		}
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Fields:  fields,
		}
	}

	var postNotFound *posts.NotFoundError
	if errors.As(err, &postNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: postNotFound.Error(),
		}
	}

	var commentNotFound *comments.NotFoundError
	if errors.As(err, &commentNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: commentNotFound.Error(),
		}
	}

	if errors.Is(err, posts.ErrSlugExists) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, posts.ErrSlugEmpty) || errors.Is(err, posts.ErrSlugInvalid) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	if errors.Is(err, posts.ErrCategoryUnknown) || errors.Is(err, comments.ErrUnknownPost) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}

func parseBoolQuery(value string) *bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil
	}
	return &parsed
}

// requirePermission consults the auth provider when one is wired. Without a
// provider the API trusts the host's outer middleware.
func (api *AdminAPI) requirePermission(w http.ResponseWriter, r *http.Request, permission string) bool {
	if api == nil || api.auth == nil {
		return true
	}
	allowed, err := api.auth.HasPermission(r.Context(), permission)
	if err != nil {
		writeError(w, err)
		return false
	}
	if !allowed {
		writeJSON(w, http.StatusForbidden, errorResponse{
			Error:   "forbidden",
			Message: "permission denied: " + permission,
		})
		return false
	}
	return true
}

// resolveActor prefers an explicit payload actor, falling back to the auth
// provider's current user.
func (api *AdminAPI) resolveActor(r *http.Request, explicit *uuid.UUID) uuid.UUID {
	if explicit != nil && *explicit != uuid.Nil {
		return *explicit
	}
	if api == nil || api.auth == nil {
		return uuid.Nil
	}
	id, err := api.auth.CurrentUserID(r.Context())
	if err != nil {
		return uuid.Nil
	}
	return id
}
