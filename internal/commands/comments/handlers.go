package commentscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/comments"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	createOperation = "comments.create"
	deleteOperation = "comments.delete"
)

var errIDRequired = validation.NewError("blog.comments.id_required", "id is required")

var (
	_ command.Commander[CreateCommentCommand] = (*CreateCommentHandler)(nil)
	_ command.Commander[DeleteCommentCommand] = (*DeleteCommentHandler)(nil)
)

// CreateCommentHandler executes CreateCommentCommand against the comment service.
type CreateCommentHandler struct {
	inner *commands.Handler[CreateCommentCommand]
}

func NewCreateCommentHandler(service comments.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateCommentCommand]) *CreateCommentHandler {
	exec := func(ctx context.Context, msg CreateCommentCommand) error {
		_, err := service.Create(ctx, msg.request())
		return err
	}

	handlerOpts := append([]commands.HandlerOption[CreateCommentCommand]{
		commands.WithLogger[CreateCommentCommand](commands.EnsureLogger(logger)),
		commands.WithOperation[CreateCommentCommand](createOperation),
		commands.WithMessageFields(func(msg CreateCommentCommand) map[string]any {
			return map[string]any{"post_id": msg.PostID}
		}),
	}, opts...)

	return &CreateCommentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *CreateCommentHandler) Execute(ctx context.Context, msg CreateCommentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteCommentHandler executes DeleteCommentCommand against the comment service.
type DeleteCommentHandler struct {
	inner *commands.Handler[DeleteCommentCommand]
}

func NewDeleteCommentHandler(service comments.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteCommentCommand]) *DeleteCommentHandler {
	exec := func(ctx context.Context, msg DeleteCommentCommand) error {
		return service.Delete(ctx, msg.ID)
	}

	handlerOpts := append([]commands.HandlerOption[DeleteCommentCommand]{
		commands.WithLogger[DeleteCommentCommand](commands.EnsureLogger(logger)),
		commands.WithOperation[DeleteCommentCommand](deleteOperation),
		commands.WithMessageFields(func(msg DeleteCommentCommand) map[string]any {
			return map[string]any{"comment_id": msg.ID}
		}),
	}, opts...)

	return &DeleteCommentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *DeleteCommentHandler) Execute(ctx context.Context, msg DeleteCommentCommand) error {
	return h.inner.Execute(ctx, msg)
}
