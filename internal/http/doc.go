// Package http provides optional HTTP adapters for the blog admin API.
//
// Routes mount under /admin/api:
//   - Posts: /posts, /posts/{id}
//   - Categories: /categories, /categories/{id}
//   - Comments: /posts/{id}/comments, /comments/{id}
//   - Markdown imports: /markdown/import
//
// Host applications register the handlers on their own mux and wrap them
// with whatever session middleware their identity service requires.
package http
