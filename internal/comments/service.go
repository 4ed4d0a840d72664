package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Service exposes comment use-cases for the post reading surface.
type Service interface {
	List(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	Create(ctx context.Context, req CreateCommentRequest) (*Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateCommentRequest captures a new comment. The author id comes from the
// host's identity layer, not from user input.
type CreateCommentRequest struct {
	PostID   uuid.UUID
	AuthorID uuid.UUID
	Content  string
}

// Validate checks field-level constraints before the service touches storage.
func (r CreateCommentRequest) Validate() error {
	errs := validation.Errors{}
	if r.PostID == uuid.Nil {
		errs["post_id"] = validation.NewError("blog.comments.post_required", "post_id is required")
	}
	if r.AuthorID == uuid.Nil {
		errs["author_id"] = validation.NewError("blog.comments.author_required", "author_id is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		errs["content"] = validation.NewError("blog.comments.content_required", "content is required")
	} else if len(r.Content) > maxContentLength {
		errs["content"] = validation.NewError("blog.comments.content_too_long", "content must be 1000 characters or less")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

const maxContentLength = 1000

var ErrUnknownPost = errors.New("comments: unknown post")

// Repository abstracts storage operations for comments.
type Repository interface {
	Create(ctx context.Context, record *Comment) (*Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostChecker reports whether a post exists. The post service satisfies it.
type PostChecker interface {
	Exists(ctx context.Context, postID uuid.UUID) (bool, error)
}

// PostCheckerFunc adapts a function to the PostChecker interface.
type PostCheckerFunc func(ctx context.Context, postID uuid.UUID) (bool, error)

func (f PostCheckerFunc) Exists(ctx context.Context, postID uuid.UUID) (bool, error) {
	return f(ctx, postID)
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

// WithPostChecker wires an existence check so comments cannot land on posts
// that were deleted between page load and submission.
func WithPostChecker(checker PostChecker) ServiceOption {
	return func(s *service) {
		s.posts = checker
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
	repo   Repository
	posts  PostChecker
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

// NewService constructs a comment service with the required dependencies.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// List returns the post's comments oldest first. A post with no comments
// yields an empty slice, never an error.
func (s *service) List(ctx context.Context, postID uuid.UUID) ([]*Comment, error) {
	records, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("comments: list: %w", err)
	}
	if records == nil {
		records = []*Comment{}
	}
	return records, nil
}

// Create validates and persists a comment.
func (s *service) Create(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.posts != nil {
		exists, err := s.posts.Exists(ctx, req.PostID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPost, req.PostID)
		}
	}

	now := s.now()
	record := &Comment{
		ID:        s.id(),
		PostID:    req.PostID,
		AuthorID:  req.AuthorID,
		Content:   strings.TrimSpace(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment created", "comment_id", created.ID.String(), "post_id", created.PostID.String())
	return created, nil
}

// Delete removes a comment, for moderation. Deleting an id that does not
// exist reports a NotFoundError.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("comment deleted", "comment_id", id.String())
	return nil
}
