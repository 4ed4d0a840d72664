package posts

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// CategoryService manages the taxonomy posts are filed under.
type CategoryService interface {
	List(ctx context.Context) ([]*Category, error)
	Get(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateCategoryRequest captures a new category. Slug is derived from the
// name when not supplied.
type CreateCategoryRequest struct {
	Name        string
	Slug        string
	Description string
}

func (r CreateCategoryRequest) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = validation.NewError("blog.categories.name_required", "name is required")
	} else if len(r.Name) > maxTitleLength {
		errs["name"] = validation.NewError("blog.categories.name_too_long", "name must be 200 characters or less")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CategoryServiceOption configures the category service.
type CategoryServiceOption func(*categoryService)

// WithCategoryClock overrides the clock used to stamp records.
func WithCategoryClock(clock func() time.Time) CategoryServiceOption {
	return func(s *categoryService) {
		s.now = clock
	}
}

func WithCategoryIDGenerator(generator IDGenerator) CategoryServiceOption {
	return func(s *categoryService) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithCategoryLogger attaches a module logger.
func WithCategoryLogger(logger interfaces.Logger) CategoryServiceOption {
	return func(s *categoryService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type categoryService struct {
	categories CategoryRepository
	now        func() time.Time
	id         IDGenerator
	logger     interfaces.Logger
}

// NewCategoryService constructs a category service backed by the repository.
func NewCategoryService(repo CategoryRepository, opts ...CategoryServiceOption) CategoryService {
	s := &categoryService{
		categories: repo,
		now:        time.Now,
		id:         uuid.New,
		logger:     logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// List returns every category ordered by name.
func (s *categoryService) List(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

// Get fetches a category by identifier.
func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.categories.GetByID(ctx, id)
}

// Create persists a category, deriving the slug from the name when absent.
func (s *categoryService) Create(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	catSlug := strings.TrimSpace(req.Slug)
	if catSlug == "" {
		catSlug = Slugify(req.Name)
	}
	if catSlug == "" {
		return nil, ErrSlugEmpty
	}
	if !IsValidSlug(catSlug) {
		return nil, ErrSlugInvalid
	}

	if existing, err := s.categories.GetBySlug(ctx, catSlug); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	record := &Category{
		ID:        s.id(),
		Name:      strings.TrimSpace(req.Name),
		Slug:      catSlug,
		CreatedAt: s.now(),
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		record.Description = &desc
	}

	created, err := s.categories.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("category created", "category_id", created.ID.String(), "slug", created.Slug)
	return created, nil
}

// Delete removes a category. Posts filed under it are not touched.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", "category_id", id.String())
	return nil
}
