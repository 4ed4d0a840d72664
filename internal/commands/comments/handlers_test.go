package commentscmd

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/comments"
)

func TestCreateCommentHandler(t *testing.T) {
	repo := comments.NewMemoryRepository()
	svc := comments.NewService(repo)
	handler := NewCreateCommentHandler(svc, nil)
	ctx := context.Background()

	postID := uuid.New()
	if err := handler.Execute(ctx, CreateCommentCommand{
		PostID:   postID,
		AuthorID: uuid.New(),
		Content:  "nice post",
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	found, err := svc.List(ctx, postID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 1 || found[0].Content != "nice post" {
		t.Fatalf("comment not persisted: %v", found)
	}
}

func TestCreateCommentHandlerValidation(t *testing.T) {
	svc := comments.NewService(comments.NewMemoryRepository())
	handler := NewCreateCommentHandler(svc, nil)

	err := handler.Execute(context.Background(), CreateCommentCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestDeleteCommentHandler(t *testing.T) {
	repo := comments.NewMemoryRepository()
	svc := comments.NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, comments.CreateCommentRequest{
		PostID: uuid.New(), AuthorID: uuid.New(), Content: "bye",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := NewDeleteCommentHandler(svc, nil).Execute(ctx, DeleteCommentCommand{ID: created.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	found, err := svc.List(ctx, created.PostID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 0 {
		t.Fatal("expected comment removed")
	}
}
