package postscmd

import (
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/posts"
)

const (
	createPostMessageType = "blog.posts.create"
	updatePostMessageType = "blog.posts.update"
	deletePostMessageType = "blog.posts.delete"
)

// CreatePostCommand authors a new post. Field semantics mirror
// posts.CreatePostRequest.
type CreatePostCommand struct {
	Title       string      `json:"title"`
	Slug        string      `json:"slug,omitempty"`
	Content     string      `json:"content"`
	Excerpt     string      `json:"excerpt,omitempty"`
	Published   bool        `json:"published,omitempty"`
	AuthorID    uuid.UUID   `json:"author_id"`
	CoverImage  *string     `json:"cover_image,omitempty"`
	CategoryIDs []uuid.UUID `json:"category_ids,omitempty"`
}

// Type implements command.Message.
func (CreatePostCommand) Type() string { return createPostMessageType }

// Validate delegates to the service-level request validation so the command
// bus rejects bad payloads before a handler runs.
func (cmd CreatePostCommand) Validate() error {
	return cmd.request().Validate()
}

func (cmd CreatePostCommand) request() posts.CreatePostRequest {
	return posts.CreatePostRequest{
		Title:       cmd.Title,
		Slug:        cmd.Slug,
		Content:     cmd.Content,
		Excerpt:     cmd.Excerpt,
		Published:   cmd.Published,
		AuthorID:    cmd.AuthorID,
		CoverImage:  cmd.CoverImage,
		CategoryIDs: cmd.CategoryIDs,
	}
}

// UpdatePostCommand applies a partial edit to an existing post. Nil fields
// are untouched.
type UpdatePostCommand struct {
	ID          uuid.UUID   `json:"id"`
	Title       *string     `json:"title,omitempty"`
	Slug        *string     `json:"slug,omitempty"`
	Content     *string     `json:"content,omitempty"`
	Excerpt     *string     `json:"excerpt,omitempty"`
	Published   *bool       `json:"published,omitempty"`
	CoverImage  *string     `json:"cover_image,omitempty"`
	CategoryIDs []uuid.UUID `json:"category_ids,omitempty"`
}

// Type implements command.Message.
func (UpdatePostCommand) Type() string { return updatePostMessageType }

// Validate delegates to the service-level request validation.
func (cmd UpdatePostCommand) Validate() error {
	return cmd.request().Validate()
}

func (cmd UpdatePostCommand) request() posts.UpdatePostRequest {
	return posts.UpdatePostRequest{
		ID:          cmd.ID,
		Title:       cmd.Title,
		Slug:        cmd.Slug,
		Content:     cmd.Content,
		Excerpt:     cmd.Excerpt,
		Published:   cmd.Published,
		CoverImage:  cmd.CoverImage,
		CategoryIDs: cmd.CategoryIDs,
	}
}

// DeletePostCommand removes a post permanently.
type DeletePostCommand struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (DeletePostCommand) Type() string { return deletePostMessageType }

// Validate requires a target id.
func (cmd DeletePostCommand) Validate() error {
	if cmd.ID == uuid.Nil {
		return errIDRequired
	}
	return nil
}
