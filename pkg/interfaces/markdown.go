package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across requests without additional
// locking so a single instance can serve every render.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions     []string
	HighlightStyle string
	Sanitize       bool
	HardWraps      bool
	SafeMode       bool
}

// MarkdownService exposes the file-centric workflows used to author posts
// outside the admin UI: load Markdown documents from disk, render them, and
// import them as blog posts.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
	Import(ctx context.Context, doc *Document, opts ImportOptions) (*ImportResult, error)
	ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error)
}

// Document represents a Markdown file with parsed metadata and content.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
}

// FrontMatter models metadata extracted from post files. The Custom map keeps
// unrecognised keys available to host applications.
type FrontMatter struct {
	Title      string         `yaml:"title" json:"title"`
	Slug       string         `yaml:"slug" json:"slug"`
	Excerpt    string         `yaml:"excerpt" json:"excerpt"`
	Tags       []string       `yaml:"tags" json:"tags"`
	Author     string         `yaml:"author" json:"author"`
	Date       time.Time      `yaml:"date" json:"date"`
	Draft      bool           `yaml:"draft" json:"draft"`
	CoverImage string         `yaml:"cover_image" json:"cover_image"`
	Custom     map[string]any `yaml:",inline" json:"custom"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

// ImportOptions controls how Markdown documents become posts.
type ImportOptions struct {
	AuthorID uuid.UUID
	Publish  bool
	DryRun   bool
}

// ImportResult reports the outcome of an import run.
type ImportResult struct {
	CreatedPostIDs []uuid.UUID
	SkippedPaths   []string
	Errors         []error
}
