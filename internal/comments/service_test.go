package comments_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/comments"
)

func newTestService(t *testing.T, opts ...comments.ServiceOption) (comments.Service, *comments.MemoryRepository) {
	t.Helper()
	repo := comments.NewMemoryRepository()
	base := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	all := append([]comments.ServiceOption{
		comments.WithClock(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		}),
	}, opts...)
	return comments.NewService(repo, all...), repo
}

func TestListEmptyPost(t *testing.T) {
	svc, _ := newTestService(t)

	found, err := svc.List(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if found == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(found) != 0 {
		t.Fatalf("expected no comments, got %d", len(found))
	}
}

func TestCreateAndListOldestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	postID := uuid.New()
	author := uuid.New()

	for _, content := range []string{"first", "second", "third"} {
		if _, err := svc.Create(ctx, comments.CreateCommentRequest{
			PostID: postID, AuthorID: author, Content: content,
		}); err != nil {
			t.Fatalf("create %q: %v", content, err)
		}
	}
	// noise on another post
	if _, err := svc.Create(ctx, comments.CreateCommentRequest{
		PostID: uuid.New(), AuthorID: author, Content: "elsewhere",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := svc.List(ctx, postID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 3 {
		t.Fatalf("count = %d, want 3", len(found))
	}
	for i, want := range []string{"first", "second", "third"} {
		if found[i].Content != want {
			t.Fatalf("order[%d] = %q, want %q", i, found[i].Content, want)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		req   comments.CreateCommentRequest
		field string
	}{
		{"missing post", comments.CreateCommentRequest{AuthorID: uuid.New(), Content: "hi"}, "post_id"},
		{"missing author", comments.CreateCommentRequest{PostID: uuid.New(), Content: "hi"}, "author_id"},
		{"blank content", comments.CreateCommentRequest{PostID: uuid.New(), AuthorID: uuid.New(), Content: "   "}, "content"},
		{"content too long", comments.CreateCommentRequest{PostID: uuid.New(), AuthorID: uuid.New(), Content: strings.Repeat("x", 1001)}, "content"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			var verrs validation.Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if _, ok := verrs[tc.field]; !ok {
				t.Fatalf("expected error for %s, got %v", tc.field, verrs)
			}
		})
	}
}

func TestCreateContentAtLimit(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), comments.CreateCommentRequest{
		PostID:   uuid.New(),
		AuthorID: uuid.New(),
		Content:  strings.Repeat("x", 1000),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.Content) != 1000 {
		t.Fatalf("content length = %d, want 1000", len(created.Content))
	}
}

func TestCreateChecksPostExists(t *testing.T) {
	missing := uuid.New()
	svc, _ := newTestService(t, comments.WithPostChecker(
		comments.PostCheckerFunc(func(_ context.Context, postID uuid.UUID) (bool, error) {
			return postID != missing, nil
		}),
	))
	ctx := context.Background()

	if _, err := svc.Create(ctx, comments.CreateCommentRequest{
		PostID: missing, AuthorID: uuid.New(), Content: "hi",
	}); !errors.Is(err, comments.ErrUnknownPost) {
		t.Fatalf("expected ErrUnknownPost, got %v", err)
	}

	if _, err := svc.Create(ctx, comments.CreateCommentRequest{
		PostID: uuid.New(), AuthorID: uuid.New(), Content: "hi",
	}); err != nil {
		t.Fatalf("create on live post: %v", err)
	}
}

func TestListHydratesAuthor(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	author := uuid.New()
	repo.SeedProfile(&comments.Profile{ID: author, Username: "ada"})

	postID := uuid.New()
	if _, err := svc.Create(ctx, comments.CreateCommentRequest{
		PostID: postID, AuthorID: author, Content: "hello",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := svc.List(ctx, postID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 1 || found[0].Author == nil || found[0].Author.Username != "ada" {
		t.Fatalf("expected hydrated author, got %+v", found)
	}
}

func TestDeleteMissingComment(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), uuid.New())
	var notFound *comments.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
