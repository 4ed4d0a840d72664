package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Service exposes post management use-cases.
type Service interface {
	List(ctx context.Context, req ListPostsRequest) ([]*Post, error)
	Get(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Update(ctx context.Context, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListPostsRequest narrows the listing. Zero values mean "no filter"; Query
// matches title or content as a case-insensitive substring and combined
// filters intersect.
type ListPostsRequest struct {
	Query      string
	CategoryID *uuid.UUID
	Published  *bool
}

// CreatePostRequest captures the information required to author a post.
// Slug is optional; when absent it is derived from the title.
type CreatePostRequest struct {
	Title       string
	Slug        string
	Content     string
	Excerpt     string
	Published   bool
	AuthorID    uuid.UUID
	CoverImage  *string
	CategoryIDs []uuid.UUID
}

// Validate checks field-level constraints before the service touches storage.
func (r CreatePostRequest) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(r.Title) == "" {
		errs["title"] = validation.NewError("blog.posts.title_required", "title is required")
	} else if len(r.Title) > maxTitleLength {
		errs["title"] = validation.NewError("blog.posts.title_too_long", "title must be 200 characters or less")
	}
	if strings.TrimSpace(r.Content) == "" {
		errs["content"] = validation.NewError("blog.posts.content_required", "content is required")
	}
	if len(r.Excerpt) > maxExcerptLength {
		errs["excerpt"] = validation.NewError("blog.posts.excerpt_too_long", "excerpt must be 500 characters or less")
	}
	if r.AuthorID == uuid.Nil {
		errs["author_id"] = validation.NewError("blog.posts.author_required", "author_id is required")
	}
	if r.CoverImage != nil && strings.TrimSpace(*r.CoverImage) != "" {
		if err := validation.Validate(*r.CoverImage, is.URL); err != nil {
			errs["cover_image"] = validation.NewError("blog.posts.cover_image_invalid", "cover_image must be a valid URL")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePostRequest carries partial changes. Nil fields are untouched; a nil
// CategoryIDs slice leaves category links alone while an empty one clears them.
type UpdatePostRequest struct {
	ID          uuid.UUID
	Title       *string
	Slug        *string
	Content     *string
	Excerpt     *string
	Published   *bool
	CoverImage  *string
	CategoryIDs []uuid.UUID
}

// Validate checks the partial fields that are present.
func (r UpdatePostRequest) Validate() error {
	errs := validation.Errors{}
	if r.ID == uuid.Nil {
		errs["id"] = validation.NewError("blog.posts.id_required", "id is required")
	}
	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			errs["title"] = validation.NewError("blog.posts.title_required", "title is required")
		} else if len(*r.Title) > maxTitleLength {
			errs["title"] = validation.NewError("blog.posts.title_too_long", "title must be 200 characters or less")
		}
	}
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		errs["content"] = validation.NewError("blog.posts.content_required", "content is required")
	}
	if r.Excerpt != nil && len(*r.Excerpt) > maxExcerptLength {
		errs["excerpt"] = validation.NewError("blog.posts.excerpt_too_long", "excerpt must be 500 characters or less")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

const (
	maxTitleLength   = 200
	maxExcerptLength = 500
)

var (
	ErrSlugEmpty       = errors.New("posts: title produced an empty slug")
	ErrSlugInvalid     = errors.New("posts: slug contains invalid characters")
	ErrSlugExists      = errors.New("posts: slug already exists")
	ErrCategoryUnknown = errors.New("posts: unknown category")
)

// PostRepository abstracts storage operations for posts.
type PostRepository interface {
	Create(ctx context.Context, record *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, filter ListFilter) ([]*Post, error)
	Update(ctx context.Context, record *Post) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceCategories(ctx context.Context, postID uuid.UUID, categoryIDs []uuid.UUID) error
}

// CategoryRepository abstracts storage operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, record *Category) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListFilter is the repository-level projection of ListPostsRequest.
type ListFilter struct {
	Query      string
	CategoryID *uuid.UUID
	Published  *bool
}

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithReadingSpeed overrides the words-per-minute rate used for reading-time
// estimates.
func WithReadingSpeed(wordsPerMinute int) ServiceOption {
	return func(s *service) {
		if wordsPerMinute > 0 {
			s.wordsPerMinute = wordsPerMinute
		}
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	posts          PostRepository
	categories     CategoryRepository
	now            func() time.Time
	id             IDGenerator
	wordsPerMinute int
	logger         interfaces.Logger
}

// NewService constructs a post service with the required dependencies.
func NewService(postRepo PostRepository, categoryRepo CategoryRepository, opts ...ServiceOption) Service {
	s := &service{
		posts:          postRepo,
		categories:     categoryRepo,
		now:            time.Now,
		id:             uuid.New,
		wordsPerMinute: DefaultWordsPerMinute,
		logger:         logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// List returns posts newest first, filtered per the request.
func (s *service) List(ctx context.Context, req ListPostsRequest) ([]*Post, error) {
	records, err := s.posts.List(ctx, ListFilter{
		Query:      strings.TrimSpace(req.Query),
		CategoryID: req.CategoryID,
		Published:  req.Published,
	})
	if err != nil {
		return nil, fmt.Errorf("posts: list: %w", err)
	}
	return records, nil
}

// Get fetches a post by identifier.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	return s.posts.GetByID(ctx, id)
}

// GetBySlug fetches a post by its public slug.
func (s *service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return s.posts.GetBySlug(ctx, strings.TrimSpace(slug))
}

// Create derives the slug and reading time, persists the post, and links
// categories. Category linking happens after the insert and is not atomic
// with it.
func (s *service) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	postSlug := strings.TrimSpace(req.Slug)
	if postSlug == "" {
		postSlug = Slugify(req.Title)
	}
	if postSlug == "" {
		return nil, ErrSlugEmpty
	}
	if !IsValidSlug(postSlug) {
		return nil, ErrSlugInvalid
	}

	if existing, err := s.posts.GetBySlug(ctx, postSlug); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cats, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &Post{
		ID:          s.id(),
		Title:       strings.TrimSpace(req.Title),
		Slug:        postSlug,
		Content:     req.Content,
		Excerpt:     chooseExcerpt(req.Excerpt, req.Content),
		Published:   req.Published,
		AuthorID:    req.AuthorID,
		ReadingTime: EstimateReadingTimeAt(req.Content, s.wordsPerMinute),
		CoverImage:  req.CoverImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.posts.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	if len(req.CategoryIDs) > 0 {
		if err := s.posts.ReplaceCategories(ctx, created.ID, req.CategoryIDs); err != nil {
			return nil, err
		}
		created.Categories = cats
	}

	s.logger.Info("post created", "post_id", created.ID.String(), "slug", created.Slug)
	return created, nil
}

// Update applies the partial fields, recomputing reading time only when the
// content changed and always refreshing updated_at.
func (s *service) Update(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := s.posts.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		record.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		next := strings.TrimSpace(*req.Slug)
		if !IsValidSlug(next) {
			return nil, ErrSlugInvalid
		}
		if next != record.Slug {
			if existing, err := s.posts.GetBySlug(ctx, next); err == nil && existing != nil {
				return nil, ErrSlugExists
			} else if err != nil {
				var notFound *NotFoundError
				if !errors.As(err, &notFound) {
					return nil, err
				}
			}
			record.Slug = next
		}
	}
	if req.Content != nil && *req.Content != record.Content {
		record.Content = *req.Content
		record.ReadingTime = EstimateReadingTimeAt(record.Content, s.wordsPerMinute)
	}
	if req.Excerpt != nil {
		record.Excerpt = chooseExcerpt(*req.Excerpt, record.Content)
	}
	if req.Published != nil {
		record.Published = *req.Published
	}
	if req.CoverImage != nil {
		record.CoverImage = req.CoverImage
	}
	record.UpdatedAt = s.now()

	if req.CategoryIDs != nil {
		if _, err := s.resolveCategories(ctx, req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	updated, err := s.posts.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	if req.CategoryIDs != nil {
		if err := s.posts.ReplaceCategories(ctx, updated.ID, req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	s.logger.Info("post updated", "post_id", updated.ID.String())
	return updated, nil
}

// Delete removes a post permanently. Deleting an id that does not exist
// reports a NotFoundError rather than succeeding silently, so admin tooling
// can tell a double-submit from a wrong id.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.posts.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("post deleted", "post_id", id.String())
	return nil
}

func (s *service) resolveCategories(ctx context.Context, ids []uuid.UUID) ([]*Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]*Category, 0, len(ids))
	for _, id := range ids {
		cat, err := s.categories.GetByID(ctx, id)
		if err != nil {
			var notFound *NotFoundError
			if errors.As(err, &notFound) {
				return nil, fmt.Errorf("%w: %s", ErrCategoryUnknown, id)
			}
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

// chooseExcerpt prefers the author-supplied excerpt and otherwise derives one
// from the leading content, truncated at a word boundary.
func chooseExcerpt(excerpt, content string) string {
	if trimmed := strings.TrimSpace(excerpt); trimmed != "" {
		return trimmed
	}
	words := strings.Fields(content)
	var b strings.Builder
	for _, word := range words {
		if b.Len()+len(word)+1 > maxExcerptLength-3 {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}
	out := b.String()
	if out != content && out != "" && len(out) < len(strings.TrimSpace(content)) {
		out += "…"
	}
	return out
}
