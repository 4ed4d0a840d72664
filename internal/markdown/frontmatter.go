package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

// frontMatterEnvelope tolerates both "excerpt" and "summary" for the post
// excerpt; authors coming from other static site generators use either.
type frontMatterEnvelope struct {
	Title      string         `yaml:"title"`
	Slug       string         `yaml:"slug"`
	Excerpt    string         `yaml:"excerpt"`
	Summary    string         `yaml:"summary"`
	Tags       []string       `yaml:"tags"`
	Author     string         `yaml:"author"`
	Date       time.Time      `yaml:"date"`
	Draft      bool           `yaml:"draft"`
	CoverImage string         `yaml:"cover_image"`
	Custom     map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	excerpt := env.Excerpt
	if excerpt == "" {
		excerpt = env.Summary
	}

	return interfaces.FrontMatter{
		Title:      env.Title,
		Slug:       env.Slug,
		Excerpt:    excerpt,
		Tags:       append([]string(nil), env.Tags...),
		Author:     env.Author,
		Date:       env.Date,
		Draft:      env.Draft,
		CoverImage: env.CoverImage,
		Custom:     cloneMap(env.Custom),
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
