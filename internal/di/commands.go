package di

import (
	"github.com/goliatone/go-blog/internal/commands"
	commentscmd "github.com/goliatone/go-blog/internal/commands/comments"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
)

// Commands groups the command handlers bound to the container's services.
// ImportMarkdown stays nil when the markdown feature is disabled.
type Commands struct {
	CreatePost    *postscmd.CreatePostHandler
	UpdatePost    *postscmd.UpdatePostHandler
	DeletePost    *postscmd.DeletePostHandler
	CreateComment *commentscmd.CreateCommentHandler
	DeleteComment *commentscmd.DeleteCommentHandler

	ImportMarkdown *markdowncmd.ImportDirectoryHandler
}

func (c *Container) configureCommands() {
	postLogger := commands.CommandLogger(c.loggerProvider, "posts")
	commentLogger := commands.CommandLogger(c.loggerProvider, "comments")

	c.commands = &Commands{
		CreatePost:    postscmd.NewCreatePostHandler(c.postSvc, postLogger),
		UpdatePost:    postscmd.NewUpdatePostHandler(c.postSvc, postLogger),
		DeletePost:    postscmd.NewDeletePostHandler(c.postSvc, postLogger),
		CreateComment: commentscmd.NewCreateCommentHandler(c.commentSvc, commentLogger),
		DeleteComment: commentscmd.NewDeleteCommentHandler(c.commentSvc, commentLogger),
	}

	if c.markdownSvc != nil {
		gates := markdowncmd.FeatureGates{
			MarkdownEnabled: func() bool { return c.Config.Features.Markdown },
		}
		c.commands.ImportMarkdown = markdowncmd.NewImportDirectoryHandler(
			c.markdownSvc,
			commands.CommandLogger(c.loggerProvider, "markdown"),
			gates,
		)
	}
}

// Commands returns the handler set wired against the configured services.
func (c *Container) Commands() *Commands {
	return c.commands
}
