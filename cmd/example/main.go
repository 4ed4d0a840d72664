package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	blog "github.com/goliatone/go-blog"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	"github.com/goliatone/go-blog/internal/comments"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/pkg/testsupport"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func main() {
	ctx := context.Background()

	db, err := testsupport.NewBunSQLiteDB()
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	blog.RegisterModels(db)
	if err := createTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	contentDir, cleanup, err := writeSampleContent()
	if err != nil {
		log.Fatalf("sample content: %v", err)
	}
	defer cleanup()

	cfg := blog.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Features.Logger = true
	cfg.Features.AdvancedCache = true
	cfg.Logging.Format = "console"
	cfg.Markdown.ImportEnabled = true
	cfg.Markdown.ContentDir = contentDir

	module, err := blog.New(cfg, di.WithBunDB(db))
	if err != nil {
		log.Fatalf("blog.New: %v", err)
	}

	author := identity.ProfileUUID("demo@example.com")
	profile := &comments.Profile{ID: author, Username: "demo"}
	if _, err := db.NewInsert().Model(profile).Exec(ctx); err != nil {
		log.Fatalf("seed profile: %v", err)
	}

	category, err := module.Categories().Create(ctx, blog.CreateCategoryRequest{
		Name:        "Go",
		Description: "posts about the Go language",
	})
	if err != nil {
		log.Fatalf("create category: %v", err)
	}

	post, err := module.Posts().Create(ctx, blog.CreatePostRequest{
		Title:       "Hello from the Example",
		Content:     strings.Repeat("word ", 450),
		Excerpt:     "A seeded post demonstrating the module wiring.",
		Published:   true,
		AuthorID:    author,
		CategoryIDs: []uuid.UUID{category.ID},
	})
	if err != nil {
		log.Fatalf("create post: %v", err)
	}
	fmt.Printf("created post %s (slug=%s, reading=%dmin)\n", post.ID, post.Slug, post.ReadingTime)

	importCmd := markdowncmd.ImportDirectoryCommand{
		Directory: ".",
		AuthorID:  author,
		Publish:   true,
	}
	if err := module.Commands().ImportMarkdown.Execute(ctx, importCmd); err != nil {
		log.Fatalf("import markdown: %v", err)
	}
	fmt.Println("markdown import command completed")

	published := true
	list, err := module.Posts().List(ctx, blog.ListPostsRequest{Published: &published})
	if err != nil {
		log.Fatalf("list posts: %v", err)
	}
	for _, record := range list {
		url, err := module.URLs().PostURL(record.Slug)
		if err != nil {
			log.Fatalf("post url: %v", err)
		}
		fmt.Printf("- %s -> %s\n", record.Title, url)
	}

	comment, err := module.Comments().Create(ctx, blog.CreateCommentRequest{
		PostID:   post.ID,
		AuthorID: author,
		Content:  "First comment on the seeded post.",
	})
	if err != nil {
		log.Fatalf("create comment: %v", err)
	}
	page, err := module.ReadPost(ctx, post.Slug)
	if err != nil {
		log.Fatalf("read post: %v", err)
	}
	fmt.Printf("post %q has %d comment(s), first by %s\n",
		page.Post.Title, len(page.Comments), comment.AuthorID)

	html, err := module.Markdown().Render(ctx, []byte(post.Content), interfaces.ParseOptions{})
	if err != nil {
		log.Fatalf("render markdown: %v", err)
	}
	fmt.Printf("rendered %d bytes of HTML\n", len(html))

	edit, err := module.URLs().EditURL(post.ID)
	if err != nil {
		log.Fatalf("edit url: %v", err)
	}
	fmt.Printf("admin edit link: %s\n", edit)
}

func createTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*posts.Post)(nil),
		(*posts.Category)(nil),
		(*posts.PostCategory)(nil),
		(*comments.Profile)(nil),
		(*comments.Comment)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func writeSampleContent() (string, func(), error) {
	dir, err := os.MkdirTemp("", "blog-example-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	sample := `---
title: Imported from Markdown
slug: imported-from-markdown
excerpt: Written on disk, imported through the service.
tags:
  - go
  - tooling
---

# Imported from Markdown

This post arrives through the import pipeline with a code sample:

` + "```go\nfmt.Println(\"hello\")\n```\n"

	if err := os.WriteFile(filepath.Join(dir, "imported-from-markdown.md"), []byte(sample), 0o644); err != nil {
		cleanup()
		return "", nil, err
	}
	return dir, cleanup, nil
}
