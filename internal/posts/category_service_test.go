package posts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/posts"
)

func newCategoryService(t *testing.T) (posts.CategoryService, *posts.MemoryCategoryRepository) {
	t.Helper()
	repo := posts.NewMemoryCategoryRepository()
	svc := posts.NewCategoryService(repo, posts.WithCategoryClock(func() time.Time {
		return time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)
	}))
	return svc, repo
}

func TestCategoryCreateDerivesSlug(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, posts.CreateCategoryRequest{Name: "Web Development"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "web-development" {
		t.Fatalf("slug = %q, want %q", created.Slug, "web-development")
	}

	if _, err := svc.Create(ctx, posts.CreateCategoryRequest{Name: "Web Development"}); !errors.Is(err, posts.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestCategoryListOrderedByName(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	for _, name := range []string{"Testing", "Architecture", "Go"} {
		if _, err := svc.Create(ctx, posts.CreateCategoryRequest{Name: name}); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}

	found, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Architecture", "Go", "Testing"}
	if len(found) != len(want) {
		t.Fatalf("count = %d, want %d", len(found), len(want))
	}
	for i, name := range want {
		if found[i].Name != name {
			t.Fatalf("order[%d] = %q, want %q", i, found[i].Name, name)
		}
	}
}

func TestCategoryDeleteMissing(t *testing.T) {
	svc, _ := newCategoryService(t)

	err := svc.Delete(context.Background(), uuid.New())
	var notFound *posts.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
