// Package markdown renders post content to HTML and handles the file-based
// authoring workflow: goldmark rendering with GFM and syntax highlighting,
// YAML frontmatter extraction, filesystem discovery, and importing documents
// as blog posts.
package markdown
