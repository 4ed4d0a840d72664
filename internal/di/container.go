package di

import (
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/browse"
	"github.com/goliatone/go-blog/internal/comments"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/urls"
	"github.com/goliatone/go-blog/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Defaults bind in-memory repositories;
// supply a bun.DB to switch to SQL-backed storage.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	cacheTTL       time.Duration
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	auth           interfaces.AuthProvider
	loggerProvider interfaces.LoggerProvider

	postRepo     posts.PostRepository
	categoryRepo posts.CategoryRepository
	commentRepo  comments.Repository

	postSvc     posts.Service
	categorySvc posts.CategoryService
	commentSvc  comments.Service
	markdownSvc interfaces.MarkdownService
	urlResolver *urls.Resolver
	commands    *Commands
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds the SQL database. Callers must register the models
// (posts.RegisterModels) before running queries.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithAuth wires the host identity boundary.
func WithAuth(provider interfaces.AuthProvider) Option {
	return func(c *Container) {
		c.auth = provider
	}
}

// WithLoggerProvider overrides the logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithPostService overrides the default post service binding.
func WithPostService(svc posts.Service) Option {
	return func(c *Container) {
		c.postSvc = svc
	}
}

// WithCategoryService overrides the default category service binding.
func WithCategoryService(svc posts.CategoryService) Option {
	return func(c *Container) {
		c.categorySvc = svc
	}
}

// WithCommentService overrides the default comment service binding.
func WithCommentService(svc comments.Service) Option {
	return func(c *Container) {
		c.commentSvc = svc
	}
}

// WithMarkdownService overrides the default markdown service binding.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	memoryCategoryRepo := posts.NewMemoryCategoryRepository()

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		categoryRepo: memoryCategoryRepo,
		postRepo:     posts.NewMemoryPostRepository(memoryCategoryRepo),
		commentRepo:  comments.NewMemoryRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.configureServices(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil {
		return
	}
	if !c.Config.Features.Logger {
		return
	}
	if !strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "gologger") {
		return
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err == nil {
		c.loggerProvider = provider
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cacheCfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cacheCfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cacheCfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	if c.Config.Features.AdvancedCache {
		c.postRepo = posts.NewBunPostRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.categoryRepo = posts.NewBunCategoryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.commentRepo = comments.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}

	c.postRepo = posts.NewBunPostRepository(c.bunDB)
	c.categoryRepo = posts.NewBunCategoryRepository(c.bunDB)
	c.commentRepo = comments.NewBunRepository(c.bunDB)
}

func (c *Container) configureServices() error {
	if c.postSvc == nil {
		postOpts := []posts.ServiceOption{
			posts.WithLogger(logging.PostsLogger(c.loggerProvider)),
		}
		if wpm := c.Config.Reading.WordsPerMinute; wpm > 0 {
			postOpts = append(postOpts, posts.WithReadingSpeed(wpm))
		}
		c.postSvc = posts.NewService(c.postRepo, c.categoryRepo, postOpts...)
	}

	if c.categorySvc == nil {
		c.categorySvc = posts.NewCategoryService(
			c.categoryRepo,
			posts.WithCategoryLogger(logging.CategoriesLogger(c.loggerProvider)),
		)
	}

	if c.commentSvc == nil {
		commentOpts := []comments.ServiceOption{
			comments.WithLogger(logging.CommentsLogger(c.loggerProvider)),
		}
		if c.postSvc != nil {
			postSvc := c.postSvc
			commentOpts = append(commentOpts, comments.WithPostChecker(postExistenceChecker(postSvc)))
		}
		c.commentSvc = comments.NewService(c.commentRepo, commentOpts...)
	}

	if c.markdownSvc == nil && c.Config.Features.Markdown {
		svc, err := c.buildMarkdownService()
		if err != nil {
			return err
		}
		c.markdownSvc = svc
	}

	if c.urlResolver == nil {
		c.urlResolver = urls.NewResolver(c.Config.Routes)
	}

	c.configureCommands()
	return nil
}

func (c *Container) buildMarkdownService() (*markdown.Service, error) {
	parserCfg := c.Config.Markdown.Parser
	parser := markdown.NewGoldmarkParser(interfaces.ParseOptions{
		Extensions:     parserCfg.Extensions,
		HighlightStyle: parserCfg.HighlightStyle,
		Sanitize:       parserCfg.Sanitize,
		HardWraps:      parserCfg.HardWraps,
		SafeMode:       parserCfg.SafeMode,
	})

	var importer *markdown.Importer
	if c.Config.Markdown.ImportEnabled {
		importer = markdown.NewImporter(markdown.ImporterConfig{
			Posts:      c.postSvc,
			Categories: c.categorySvc,
			Logger:     logging.MarkdownLogger(c.loggerProvider),
		})
	}

	return markdown.NewService(markdown.Config{
		BasePath:  c.Config.Markdown.ContentDir,
		Pattern:   c.Config.Markdown.Pattern,
		Recursive: c.Config.Markdown.Recursive,
	}, parser, importer)
}

// PostService exposes the configured post service.
func (c *Container) PostService() posts.Service {
	return c.postSvc
}

// CategoryService exposes the configured category service.
func (c *Container) CategoryService() posts.CategoryService {
	return c.categorySvc
}

// CommentService exposes the configured comment service.
func (c *Container) CommentService() comments.Service {
	return c.commentSvc
}

// MarkdownService exposes the configured markdown service. Nil when the
// markdown feature is disabled.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// URLResolver exposes the configured URL resolver.
func (c *Container) URLResolver() *urls.Resolver {
	return c.urlResolver
}

// AuthProvider exposes the configured identity boundary, possibly nil.
func (c *Container) AuthProvider() interfaces.AuthProvider {
	return c.auth
}

// LoggerProvider exposes the configured logger provider, possibly nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// NewBrowseSession builds a filter session bound to the post service.
func (c *Container) NewBrowseSession() *browse.Session {
	return browse.NewSession(c.postSvc, browse.WithLogger(logging.ModuleLogger(c.loggerProvider, "blog.browse")))
}

// AdminAPI builds the HTTP admin API over the configured services.
func (c *Container) AdminAPI(opts ...bloghttp.AdminOption) *bloghttp.AdminAPI {
	base := []bloghttp.AdminOption{
		bloghttp.WithPostService(c.postSvc),
		bloghttp.WithCategoryService(c.categorySvc),
		bloghttp.WithCommentService(c.commentSvc),
		bloghttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	}
	if c.markdownSvc != nil {
		base = append(base, bloghttp.WithMarkdownService(c.markdownSvc))
	}
	if c.auth != nil {
		base = append(base, bloghttp.WithAuthProvider(c.auth))
	}
	return bloghttp.NewAdminAPI(append(base, opts...)...)
}
