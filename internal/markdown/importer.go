package markdown

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	ErrPostServiceRequired = errors.New("markdown importer: post service is required")
	ErrAuthorRequired      = errors.New("markdown importer: author id is required")
	ErrSlugMissing         = errors.New("markdown importer: document has neither slug nor title")
)

// ImporterConfig encapsulates dependencies required to persist markdown
// documents as posts.
type ImporterConfig struct {
	Posts      posts.Service
	Categories posts.CategoryService
	Logger     interfaces.Logger
}

// Importer turns markdown documents into blog posts. Frontmatter tags become
// categories, created on demand.
type Importer struct {
	posts      posts.Service
	categories posts.CategoryService
	logger     interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		posts:      cfg.Posts,
		categories: cfg.Categories,
		logger:     logger,
	}
}

// ImportDocument imports a single markdown document. Documents whose slug
// already exists are skipped, not overwritten; the admin surface owns edits.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	return i.ImportDocuments(ctx, []*interfaces.Document{doc}, opts)
}

// ImportDocuments imports a slice of documents, accumulating per-document
// failures instead of aborting the run.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}
	if opts.AuthorID == uuid.Nil {
		return nil, ErrAuthorRequired
	}

	result := &interfaces.ImportResult{
		CreatedPostIDs: []uuid.UUID{},
		SkippedPaths:   []string{},
		Errors:         []error{},
	}

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if err := i.importOne(ctx, doc, opts, result); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", doc.FilePath, err))
		}
	}

	return result, nil
}

func (i *Importer) importOne(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions, result *interfaces.ImportResult) error {
	slug, err := documentSlug(doc)
	if err != nil {
		return err
	}

	if existing, err := i.posts.GetBySlug(ctx, slug); err == nil && existing != nil {
		result.SkippedPaths = append(result.SkippedPaths, doc.FilePath)
		return nil
	} else if err != nil {
		var notFound *posts.NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	categoryIDs, err := i.resolveTags(ctx, doc.FrontMatter.Tags, opts.DryRun)
	if err != nil {
		return err
	}

	if opts.DryRun {
		result.SkippedPaths = append(result.SkippedPaths, doc.FilePath)
		return nil
	}

	req := posts.CreatePostRequest{
		Title:       documentTitle(doc, slug),
		Slug:        slug,
		Content:     string(doc.Body),
		Excerpt:     doc.FrontMatter.Excerpt,
		Published:   opts.Publish && !doc.FrontMatter.Draft,
		AuthorID:    opts.AuthorID,
		CategoryIDs: categoryIDs,
	}
	if cover := strings.TrimSpace(doc.FrontMatter.CoverImage); cover != "" {
		req.CoverImage = &cover
	}

	created, err := i.posts.Create(ctx, req)
	if err != nil {
		return err
	}

	result.CreatedPostIDs = append(result.CreatedPostIDs, created.ID)
	i.logger.Info("imported post", "path", doc.FilePath, "slug", created.Slug)
	return nil
}

// resolveTags maps frontmatter tags to category ids, creating missing
// categories as it goes. Dry runs resolve but never create.
func (i *Importer) resolveTags(ctx context.Context, tags []string, dryRun bool) ([]uuid.UUID, error) {
	if len(tags) == 0 || i.categories == nil {
		return nil, nil
	}

	out := make([]uuid.UUID, 0, len(tags))
	seen := map[string]struct{}{}

	for _, tag := range tags {
		name := strings.TrimSpace(tag)
		if name == "" {
			continue
		}
		tagSlug := posts.Slugify(name)
		if tagSlug == "" {
			continue
		}
		if _, ok := seen[tagSlug]; ok {
			continue
		}
		seen[tagSlug] = struct{}{}

		existing, err := i.lookupCategory(ctx, tagSlug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			out = append(out, existing.ID)
			continue
		}
		if dryRun {
			continue
		}

		created, err := i.categories.Create(ctx, posts.CreateCategoryRequest{Name: name, Slug: tagSlug})
		if err != nil {
			return nil, fmt.Errorf("create category %q: %w", name, err)
		}
		out = append(out, created.ID)
	}

	return out, nil
}

func (i *Importer) lookupCategory(ctx context.Context, tagSlug string) (*posts.Category, error) {
	all, err := i.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, cat := range all {
		if cat.Slug == tagSlug {
			return cat, nil
		}
	}
	return nil, nil
}

// documentSlug prefers the frontmatter slug, normalised, and falls back to
// deriving one from the title.
func documentSlug(doc *interfaces.Document) (string, error) {
	if doc == nil {
		return "", errors.New("markdown importer: nil document")
	}

	if raw := strings.TrimSpace(doc.FrontMatter.Slug); raw != "" {
		normalized, err := posts.NormalizeSlug(raw)
		if err != nil {
			return "", fmt.Errorf("normalize slug %q: %w", raw, err)
		}
		if posts.IsValidSlug(normalized) {
			return normalized, nil
		}
	}

	derived := posts.Slugify(doc.FrontMatter.Title)
	if derived == "" {
		return "", ErrSlugMissing
	}
	return derived, nil
}

func documentTitle(doc *interfaces.Document, slug string) string {
	if title := strings.TrimSpace(doc.FrontMatter.Title); title != "" {
		return title
	}
	// fall back to a humanised slug
	words := strings.Split(slug, "-")
	for idx, word := range words {
		if word == "" {
			continue
		}
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
