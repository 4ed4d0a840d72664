package blog

import (
	"context"

	"github.com/goliatone/go-blog/internal/browse"
	"github.com/goliatone/go-blog/internal/comments"
	"github.com/goliatone/go-blog/internal/di"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/urls"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/uptrace/bun"
)

// PostService exports the post service contract for consumers of the blog package.
type PostService = posts.Service

// CategoryService exports the category service contract.
type CategoryService = posts.CategoryService

// CommentService exports the comment service contract.
type CommentService = comments.Service

// Post exports the post record.
type Post = posts.Post

// Category exports the category record.
type Category = posts.Category

// Comment exports the comment record.
type Comment = comments.Comment

// Profile exports the comment author read model.
type Profile = comments.Profile

// CreatePostRequest exports the post creation DTO.
type CreatePostRequest = posts.CreatePostRequest

// UpdatePostRequest exports the post update DTO.
type UpdatePostRequest = posts.UpdatePostRequest

// ListPostsRequest exports the listing filter DTO.
type ListPostsRequest = posts.ListPostsRequest

// CreateCategoryRequest exports the category creation DTO.
type CreateCategoryRequest = posts.CreateCategoryRequest

// CreateCommentRequest exports the comment creation DTO.
type CreateCommentRequest = comments.CreateCommentRequest

// BrowseFilter exports the reader-side listing filter state.
type BrowseFilter = browse.Filter

// BrowseSession exports the stale-discarding browse session.
type BrowseSession = browse.Session

// URLResolver exports the route builder for public and admin links.
type URLResolver = urls.Resolver

// AdminAPI exports the HTTP admin adapter.
type AdminAPI = bloghttp.AdminAPI

// Commands exports the command handler set bound to the module services.
type Commands = di.Commands

// PostPage bundles a post with its comment thread for single post views.
type PostPage struct {
	Post     *Post
	Comments []*Comment
}

// Module represents the top level blog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a blog module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Posts returns the configured post service.
func (m *Module) Posts() PostService {
	return m.container.PostService()
}

// Categories returns the configured category service.
func (m *Module) Categories() CategoryService {
	return m.container.CategoryService()
}

// Comments returns the configured comment service.
func (m *Module) Comments() CommentService {
	return m.container.CommentService()
}

// Markdown returns the markdown service when configured.
func (m *Module) Markdown() interfaces.MarkdownService {
	return m.container.MarkdownService()
}

// ReadPost resolves the slug to a post and loads its comment thread,
// oldest first. The page mirrors what a public post view renders.
func (m *Module) ReadPost(ctx context.Context, slug string) (*PostPage, error) {
	post, err := m.Posts().GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	thread, err := m.Comments().List(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return &PostPage{Post: post, Comments: thread}, nil
}

// Commands returns the command handlers for dispatcher and cron integrations.
func (m *Module) Commands() *Commands {
	return m.container.Commands()
}

// URLs returns the configured URL resolver.
func (m *Module) URLs() *URLResolver {
	return m.container.URLResolver()
}

// Browse returns a fresh filter session bound to the post service. Each
// reader surface owns its session; filter state never persists.
func (m *Module) Browse() *BrowseSession {
	return m.container.NewBrowseSession()
}

// Admin returns the HTTP admin API over the configured services.
func (m *Module) Admin(opts ...bloghttp.AdminOption) *AdminAPI {
	return m.container.AdminAPI(opts...)
}

// RegisterModels registers the bun models required by the SQL repositories.
// Hosts call this once per bun.DB before issuing queries.
func RegisterModels(db *bun.DB) {
	posts.RegisterModels(db)
}
