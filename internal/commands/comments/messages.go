package commentscmd

import (
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/comments"
)

const (
	createCommentMessageType = "blog.comments.create"
	deleteCommentMessageType = "blog.comments.delete"
)

// CreateCommentCommand appends a comment to a post on behalf of an
// authenticated author.
type CreateCommentCommand struct {
	PostID   uuid.UUID `json:"post_id"`
	AuthorID uuid.UUID `json:"author_id"`
	Content  string    `json:"content"`
}

// Type implements command.Message.
func (CreateCommentCommand) Type() string { return createCommentMessageType }

// Validate delegates to the service-level request validation.
func (cmd CreateCommentCommand) Validate() error {
	return cmd.request().Validate()
}

func (cmd CreateCommentCommand) request() comments.CreateCommentRequest {
	return comments.CreateCommentRequest{
		PostID:   cmd.PostID,
		AuthorID: cmd.AuthorID,
		Content:  cmd.Content,
	}
}

// DeleteCommentCommand removes a comment, for moderation.
type DeleteCommentCommand struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (DeleteCommentCommand) Type() string { return deleteCommentMessageType }

// Validate requires a target id.
func (cmd DeleteCommentCommand) Validate() error {
	if cmd.ID == uuid.Nil {
		return errIDRequired
	}
	return nil
}
