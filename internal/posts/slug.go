package posts

import (
	"regexp"
	"strings"

	slug "github.com/goliatone/go-slug"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Slugify derives a URL-safe identifier from a post title: lowercase, only
// [a-z0-9-], whitespace runs collapsed to single hyphens, hyphen runs
// collapsed, leading/trailing hyphens trimmed. Idempotent for valid slugs.
// A title with no alphanumeric characters yields "", which callers must
// reject before persistence.
func Slugify(title string) string {
	lowered := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(' ')
		}
	}

	joined := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(joined, "--") {
		joined = strings.ReplaceAll(joined, "--", "-")
	}
	return strings.Trim(joined, "-")
}

// IsValidSlug reports whether the value satisfies the persisted slug contract.
func IsValidSlug(value string) bool {
	return slugPattern.MatchString(value)
}

// NormalizeSlug applies go-slug's normalization rules to an author-supplied
// slug (markdown frontmatter, admin payloads). The result still has to pass
// IsValidSlug before it reaches storage.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}
