package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-blog/internal/comments"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Permission keys checked against the host's auth provider. Hosts that do
// not wire a provider run the API unauthenticated.
const (
	PermissionPostsWrite       = "blog:posts:write"
	PermissionCategoriesWrite  = "blog:categories:write"
	PermissionCommentsModerate = "blog:comments:moderate"
	PermissionContentImport    = "blog:content:import"
)

// AdminAPI registers the JSON endpoints the admin surface calls: post CRUD,
// category management, comment moderation, and markdown imports.
type AdminAPI struct {
	basePath   string
	posts      posts.Service
	categories posts.CategoryService
	comments   comments.Service
	markdown   interfaces.MarkdownService
	auth       interfaces.AuthProvider
	logger     interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithPostService wires the post service.
func WithPostService(service posts.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.posts = service
		}
	}
}

// WithCategoryService wires the category service.
func WithCategoryService(service posts.CategoryService) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.categories = service
		}
	}
}

// WithCommentService wires the comment service.
func WithCommentService(service comments.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.comments = service
		}
	}
}

// WithMarkdownService wires the markdown import service.
func WithMarkdownService(service interfaces.MarkdownService) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.markdown = service
		}
	}
}

// WithAuthProvider wires the host identity boundary. When set, write
// endpoints check permissions and resolve the acting user from it.
func WithAuthProvider(provider interfaces.AuthProvider) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.auth = provider
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerPostRoutes(mux, base)
	api.registerCategoryRoutes(mux, base)
	api.registerCommentRoutes(mux, base)
	api.registerImportRoutes(mux, base)

	api.logger.Debug("admin api routes registered", "base", base)

	return nil
}
