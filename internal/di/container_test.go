package di_test

import (
	"context"
	"errors"
	"testing"

	commentscmd "github.com/goliatone/go-blog/internal/commands/comments"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/internal/comments"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/google/uuid"
)

func TestContainer_DefaultsToMemoryServices(t *testing.T) {
	c := mustContainer(t, runtimeconfig.DefaultConfig())
	ctx := context.Background()

	author := uuid.New()
	post, err := c.PostService().Create(ctx, posts.CreatePostRequest{
		Title:    "Wired Through DI",
		Content:  "container-provided repositories",
		AuthorID: author,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.Slug != "wired-through-di" {
		t.Fatalf("expected derived slug, got %q", post.Slug)
	}

	fetched, err := c.PostService().GetBySlug(ctx, "wired-through-di")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if fetched.ID != post.ID {
		t.Fatalf("expected %s got %s", post.ID, fetched.ID)
	}
}

func TestContainer_CommentServiceChecksPosts(t *testing.T) {
	c := mustContainer(t, runtimeconfig.DefaultConfig())
	ctx := context.Background()

	_, err := c.CommentService().Create(ctx, comments.CreateCommentRequest{
		PostID:   uuid.New(),
		AuthorID: uuid.New(),
		Content:  "orphan comment",
	})
	if !errors.Is(err, comments.ErrUnknownPost) {
		t.Fatalf("expected ErrUnknownPost, got %v", err)
	}

	post, err := c.PostService().Create(ctx, posts.CreatePostRequest{
		Title:    "Commentable",
		Content:  "body",
		AuthorID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}

	comment, err := c.CommentService().Create(ctx, comments.CreateCommentRequest{
		PostID:   post.ID,
		AuthorID: uuid.New(),
		Content:  "attached",
	})
	if err != nil {
		t.Fatalf("Create comment: %v", err)
	}
	if comment.PostID != post.ID {
		t.Fatalf("expected post id %s got %s", post.ID, comment.PostID)
	}
}

func TestContainer_MarkdownServiceFollowsFeatureFlag(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if svc := mustContainer(t, cfg).MarkdownService(); svc != nil {
		t.Fatalf("expected nil markdown service when feature disabled")
	}

	cfg.Features.Markdown = true
	cfg.Markdown.ImportEnabled = true
	cfg.Markdown.ContentDir = t.TempDir()
	if svc := mustContainer(t, cfg).MarkdownService(); svc == nil {
		t.Fatalf("expected markdown service when feature enabled")
	}
}

func TestContainer_URLResolver(t *testing.T) {
	c := mustContainer(t, runtimeconfig.DefaultConfig())

	url, err := c.URLResolver().PostURL("hello-world")
	if err != nil {
		t.Fatalf("PostURL: %v", err)
	}
	if url == "" {
		t.Fatal("expected post url")
	}
}

func TestContainer_ServiceOverrides(t *testing.T) {
	categoryRepo := posts.NewMemoryCategoryRepository()
	custom := posts.NewCategoryService(categoryRepo)

	c := mustContainer(t, runtimeconfig.DefaultConfig(), di.WithCategoryService(custom))
	if c.CategoryService() != custom {
		t.Fatal("expected category service override to win")
	}
}

func TestContainer_RejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Reading.WordsPerMinute = -10

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrReadingSpeedInvalid) {
		t.Fatalf("expected ErrReadingSpeedInvalid, got %v", err)
	}
}

func mustContainer(t *testing.T, cfg runtimeconfig.Config, opts ...di.Option) *di.Container {
	t.Helper()
	c, err := di.NewContainer(cfg, opts...)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	return c
}

func TestContainer_AdminAPIRegisters(t *testing.T) {
	c := mustContainer(t, runtimeconfig.DefaultConfig())
	api := c.AdminAPI()
	if api == nil {
		t.Fatal("expected admin api")
	}
}

func TestContainer_CommandsDispatch(t *testing.T) {
	c := mustContainer(t, runtimeconfig.DefaultConfig())
	ctx := context.Background()

	cmds := c.Commands()
	if cmds == nil || cmds.CreatePost == nil || cmds.CreateComment == nil {
		t.Fatal("expected command handlers to be wired")
	}
	if cmds.ImportMarkdown != nil {
		t.Fatal("expected no markdown handler when the feature is disabled")
	}

	author := uuid.New()
	if err := cmds.CreatePost.Execute(ctx, postscmd.CreatePostCommand{
		Title:    "Dispatched Through Commands",
		Content:  "command handler body",
		AuthorID: author,
	}); err != nil {
		t.Fatalf("CreatePost command: %v", err)
	}

	post, err := c.PostService().GetBySlug(ctx, "dispatched-through-commands")
	if err != nil {
		t.Fatalf("GetBySlug after command: %v", err)
	}

	if err := cmds.CreateComment.Execute(ctx, commentscmd.CreateCommentCommand{
		PostID:   post.ID,
		AuthorID: author,
		Content:  "left by a handler",
	}); err != nil {
		t.Fatalf("CreateComment command: %v", err)
	}
	thread, err := c.CommentService().List(ctx, post.ID)
	if err != nil {
		t.Fatalf("List comments: %v", err)
	}
	if len(thread) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(thread))
	}

	if err := cmds.DeletePost.Execute(ctx, postscmd.DeletePostCommand{ID: post.ID}); err != nil {
		t.Fatalf("DeletePost command: %v", err)
	}
	if _, err := c.PostService().Get(ctx, post.ID); err == nil {
		t.Fatal("expected post gone after delete command")
	}
}

func TestContainer_MarkdownImportCommand(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.ImportEnabled = true
	cfg.Markdown.ContentDir = t.TempDir()
	c := mustContainer(t, cfg)

	handler := c.Commands().ImportMarkdown
	if handler == nil {
		t.Fatal("expected markdown import handler when the feature is enabled")
	}

	if err := handler.Execute(context.Background(), markdowncmd.ImportDirectoryCommand{
		Directory: ".",
		AuthorID:  uuid.New(),
	}); err != nil {
		t.Fatalf("ImportDirectory command: %v", err)
	}
}
