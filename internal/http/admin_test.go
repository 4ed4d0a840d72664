package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-blog/internal/comments"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/google/uuid"
)

func TestAdminAPI_PostLifecycle(t *testing.T) {
	mux, _ := setupAdminAPI(t, nil)

	author := uuid.New()
	createBody := map[string]any{
		"title":     "Hello HTTP",
		"content":   "A body long enough to matter.",
		"author_id": author.String(),
		"published": true,
	}
	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/posts", createBody, http.StatusCreated)

	var created posts.Post
	decodeJSONBody(t, createResp, &created)
	if created.ID == uuid.Nil {
		t.Fatalf("expected created post id")
	}
	if created.Slug != "hello-http" {
		t.Fatalf("expected slug hello-http got %q", created.Slug)
	}
	if created.ReadingTime < 1 {
		t.Fatalf("expected reading time, got %d", created.ReadingTime)
	}

	listResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/posts", nil, http.StatusOK)
	var list []*posts.Post
	decodeJSONBody(t, listResp, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 post got %d", len(list))
	}

	getPath := "/admin/api/posts/" + created.ID.String()
	getResp := doJSONRequest(t, mux, http.MethodGet, getPath, nil, http.StatusOK)
	var fetched posts.Post
	decodeJSONBody(t, getResp, &fetched)
	if fetched.ID != created.ID {
		t.Fatalf("expected fetched id %s got %s", created.ID, fetched.ID)
	}

	updateBody := map[string]any{"title": "Hello HTTP, Again"}
	updateResp := doJSONRequest(t, mux, http.MethodPut, getPath, updateBody, http.StatusOK)
	var updated posts.Post
	decodeJSONBody(t, updateResp, &updated)
	if updated.Title != "Hello HTTP, Again" {
		t.Fatalf("expected updated title got %q", updated.Title)
	}
	if updated.Slug != "hello-http" {
		t.Fatalf("expected slug unchanged got %q", updated.Slug)
	}

	doJSONRequest(t, mux, http.MethodDelete, getPath, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, getPath, nil, http.StatusNotFound)
}

func TestAdminAPI_PostValidationFails(t *testing.T) {
	mux, _ := setupAdminAPI(t, nil)

	resp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/posts", map[string]any{
		"title": "",
	}, http.StatusUnprocessableEntity)

	var payload errorResponse
	decodeJSONBody(t, resp, &payload)
	if payload.Error != "validation_failed" {
		t.Fatalf("expected validation_failed got %q", payload.Error)
	}
	if _, ok := payload.Fields["title"]; !ok {
		t.Fatalf("expected title field error, got %v", payload.Fields)
	}
	if _, ok := payload.Fields["author_id"]; !ok {
		t.Fatalf("expected author_id field error, got %v", payload.Fields)
	}
}

func TestAdminAPI_SlugConflict(t *testing.T) {
	mux, _ := setupAdminAPI(t, nil)

	author := uuid.New()
	body := map[string]any{
		"title":     "Duplicate",
		"content":   "first",
		"author_id": author.String(),
	}
	doJSONRequest(t, mux, http.MethodPost, "/admin/api/posts", body, http.StatusCreated)

	body["content"] = "second"
	resp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/posts", body, http.StatusConflict)

	var payload errorResponse
	decodeJSONBody(t, resp, &payload)
	if payload.Error != "conflict" {
		t.Fatalf("expected conflict got %q", payload.Error)
	}
}

func TestAdminAPI_PostListFilters(t *testing.T) {
	mux, svcs := setupAdminAPI(t, nil)
	ctx := context.Background()

	category, err := svcs.categories.Create(ctx, posts.CreateCategoryRequest{Name: "Go"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	author := uuid.New()
	if _, err := svcs.posts.Create(ctx, posts.CreatePostRequest{
		Title:       "Generics in Go",
		Content:     "type parameters everywhere",
		AuthorID:    author,
		Published:   true,
		CategoryIDs: []uuid.UUID{category.ID},
	}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := svcs.posts.Create(ctx, posts.CreatePostRequest{
		Title:    "React Hooks",
		Content:  "client rendering",
		AuthorID: author,
	}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	resp := doJSONRequest(t, mux, http.MethodGet,
		"/admin/api/posts?q=generics&category="+category.ID.String()+"&published=true",
		nil, http.StatusOK)
	var list []*posts.Post
	decodeJSONBody(t, resp, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 filtered post got %d", len(list))
	}
	if list[0].Slug != "generics-in-go" {
		t.Fatalf("expected generics-in-go got %q", list[0].Slug)
	}
}

func TestAdminAPI_CategoryLifecycle(t *testing.T) {
	mux, _ := setupAdminAPI(t, nil)

	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/categories", map[string]any{
		"name":        "Web Development",
		"description": "frontend and backend",
	}, http.StatusCreated)

	var created posts.Category
	decodeJSONBody(t, createResp, &created)
	if created.Slug != "web-development" {
		t.Fatalf("expected slug web-development got %q", created.Slug)
	}

	listResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/categories", nil, http.StatusOK)
	var list []*posts.Category
	decodeJSONBody(t, listResp, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 category got %d", len(list))
	}

	deletePath := "/admin/api/categories/" + created.ID.String()
	doJSONRequest(t, mux, http.MethodDelete, deletePath, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodDelete, deletePath, nil, http.StatusNotFound)
}

func TestAdminAPI_CommentFlow(t *testing.T) {
	mux, svcs := setupAdminAPI(t, nil)
	ctx := context.Background()

	author := uuid.New()
	post, err := svcs.posts.Create(ctx, posts.CreatePostRequest{
		Title:    "Discussion",
		Content:  "comment here",
		AuthorID: author,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	commentsPath := "/admin/api/posts/" + post.ID.String() + "/comments"

	emptyResp := doJSONRequest(t, mux, http.MethodGet, commentsPath, nil, http.StatusOK)
	var empty []*comments.Comment
	decodeJSONBody(t, emptyResp, &empty)
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", empty)
	}

	createResp := doJSONRequest(t, mux, http.MethodPost, commentsPath, map[string]any{
		"author_id": author.String(),
		"content":   "  first!  ",
	}, http.StatusCreated)
	var created comments.Comment
	decodeJSONBody(t, createResp, &created)
	if created.Content != "first!" {
		t.Fatalf("expected trimmed content got %q", created.Content)
	}

	listResp := doJSONRequest(t, mux, http.MethodGet, commentsPath, nil, http.StatusOK)
	var list []*comments.Comment
	decodeJSONBody(t, listResp, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 comment got %d", len(list))
	}

	badResp := doJSONRequest(t, mux, http.MethodPost, commentsPath, map[string]any{
		"author_id": author.String(),
	}, http.StatusUnprocessableEntity)
	var badPayload errorResponse
	decodeJSONBody(t, badResp, &badPayload)
	if _, ok := badPayload.Fields["content"]; !ok {
		t.Fatalf("expected content field error, got %v", badPayload.Fields)
	}

	deletePath := "/admin/api/comments/" + created.ID.String()
	doJSONRequest(t, mux, http.MethodDelete, deletePath, nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodDelete, deletePath, nil, http.StatusNotFound)
}

func TestAdminAPI_AuthProvider(t *testing.T) {
	actor := uuid.New()
	provider := &stubAuthProvider{
		userID:  actor,
		granted: map[string]bool{PermissionPostsWrite: true},
	}
	mux, _ := setupAdminAPI(t, provider)

	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/posts", map[string]any{
		"title":   "Actor Derived",
		"content": "author comes from the session",
	}, http.StatusCreated)
	var created posts.Post
	decodeJSONBody(t, createResp, &created)
	if created.AuthorID != actor {
		t.Fatalf("expected author %s got %s", actor, created.AuthorID)
	}

	resp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/categories", map[string]any{
		"name": "Denied",
	}, http.StatusForbidden)
	var payload errorResponse
	decodeJSONBody(t, resp, &payload)
	if payload.Error != "forbidden" {
		t.Fatalf("expected forbidden got %q", payload.Error)
	}
}

type testServices struct {
	posts      posts.Service
	categories posts.CategoryService
	comments   comments.Service
}

func setupAdminAPI(t *testing.T, auth *stubAuthProvider) (*http.ServeMux, testServices) {
	t.Helper()

	categoryRepo := posts.NewMemoryCategoryRepository()
	postRepo := posts.NewMemoryPostRepository(categoryRepo)
	postSvc := posts.NewService(postRepo, categoryRepo)
	categorySvc := posts.NewCategoryService(categoryRepo)

	commentRepo := comments.NewMemoryRepository()
	commentSvc := comments.NewService(commentRepo)

	opts := []AdminOption{
		WithPostService(postSvc),
		WithCategoryService(categorySvc),
		WithCommentService(commentSvc),
	}
	if auth != nil {
		opts = append(opts, WithAuthProvider(auth))
	}

	api := NewAdminAPI(opts...)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}
	return mux, testServices{posts: postSvc, categories: categorySvc, comments: commentSvc}
}

type stubAuthProvider struct {
	userID  uuid.UUID
	granted map[string]bool
}

func (s *stubAuthProvider) CurrentUserID(ctx context.Context) (uuid.UUID, error) {
	return s.userID, nil
}

func (s *stubAuthProvider) HasPermission(ctx context.Context, permission string) (bool, error) {
	return s.granted[permission], nil
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("expected status %d got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
