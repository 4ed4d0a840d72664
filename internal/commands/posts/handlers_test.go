package postscmd

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/posts"
)

func newPostService(t *testing.T) posts.Service {
	t.Helper()
	categories := posts.NewMemoryCategoryRepository()
	repo := posts.NewMemoryPostRepository(categories)
	return posts.NewService(repo, categories)
}

func TestCreatePostHandler(t *testing.T) {
	svc := newPostService(t)
	handler := NewCreatePostHandler(svc, nil)

	err := handler.Execute(context.Background(), CreatePostCommand{
		Title:    "Command Driven",
		Content:  "body",
		AuthorID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	created, err := svc.GetBySlug(context.Background(), "command-driven")
	if err != nil {
		t.Fatalf("post not persisted: %v", err)
	}
	if created.Title != "Command Driven" {
		t.Fatalf("title = %q", created.Title)
	}
}

func TestCreatePostHandlerValidation(t *testing.T) {
	svc := newPostService(t)
	handler := NewCreatePostHandler(svc, nil)

	err := handler.Execute(context.Background(), CreatePostCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestUpdateAndDeletePostHandlers(t *testing.T) {
	svc := newPostService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, posts.CreatePostRequest{
		Title: "Original", Content: "body", AuthorID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	title := "Edited"
	if err := NewUpdatePostHandler(svc, nil).Execute(ctx, UpdatePostCommand{
		ID:    created.ID,
		Title: &title,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	updated, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Title != "Edited" {
		t.Fatalf("title = %q", updated.Title)
	}

	if err := NewDeletePostHandler(svc, nil).Execute(ctx, DeletePostCommand{ID: created.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err == nil {
		t.Fatal("expected post to be gone")
	}
}

func TestDeletePostCommandRequiresID(t *testing.T) {
	svc := newPostService(t)
	handler := NewDeletePostHandler(svc, nil)

	err := handler.Execute(context.Background(), DeletePostCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
