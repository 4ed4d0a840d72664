package markdown

import (
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestGoldmarkParser_LinkAttributes(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("[the docs](https://example.com/docs)"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, `href="https://example.com/docs"`) {
		t.Fatalf("expected href, got %q", got)
	}
	if !strings.Contains(got, `target="_blank"`) {
		t.Fatalf("expected target=_blank, got %q", got)
	}
	if !strings.Contains(got, `rel="noopener noreferrer"`) {
		t.Fatalf("expected rel attributes, got %q", got)
	}
}

func TestGoldmarkParser_AutolinkAttributes(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("see https://example.com for details"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, `target="_blank"`) || !strings.Contains(got, `rel="noopener noreferrer"`) {
		t.Fatalf("expected autolink to carry safety attributes, got %q", got)
	}
}

func TestGoldmarkParser_HighlightsKnownLanguage(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("```go\npackage main\n```"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "chroma") {
		t.Fatalf("expected chroma classes on highlighted block, got %q", got)
	}
	if !strings.Contains(got, "package") {
		t.Fatalf("expected code content preserved, got %q", got)
	}
}

func TestGoldmarkParser_UnknownLanguageFallsBack(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("```nosuchlang\nplain text body\n```"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<code") {
		t.Fatalf("expected a code block, got %q", got)
	}
	if !strings.Contains(got, "plain text body") {
		t.Fatalf("expected code content preserved, got %q", got)
	}
}

func TestGoldmarkParser_UnterminatedFence(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("```js\nlet x = 1;"))
	if err != nil {
		t.Fatalf("unterminated fence should not error: %v", err)
	}
	if !strings.Contains(string(html), "let x = 1;") {
		t.Fatalf("expected fence content rendered literally, got %q", string(html))
	}
}

func TestGoldmarkParser_GFMTable(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	src := "| a | b |\n| - | - |\n| 1 | 2 |"
	html, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Fatalf("expected table markup, got %q", string(html))
	}
}

func TestGoldmarkParser_ParseWithOptions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}

	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/posts/hello-world.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Hello World" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if fm.Slug != "hello-world" {
		t.Fatalf("FrontMatter Slug mismatch, got %q", fm.Slug)
	}
	if fm.Excerpt != "A first look at the blog engine." {
		t.Fatalf("FrontMatter Excerpt mismatch, got %q", fm.Excerpt)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "go" {
		t.Fatalf("FrontMatter Tags mismatch: %#v", fm.Tags)
	}
	if fm.CoverImage != "https://example.com/covers/hello.png" {
		t.Fatalf("FrontMatter CoverImage mismatch, got %q", fm.CoverImage)
	}
	if fm.Custom["series"] != "introductions" {
		t.Fatalf("FrontMatter Custom key missing: %#v", fm.Custom)
	}
	if len(body) == 0 || !strings.Contains(string(body), "# Hello World") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
}
