package postscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	createOperation = "posts.create"
	updateOperation = "posts.update"
	deleteOperation = "posts.delete"
)

var errIDRequired = validation.NewError("blog.posts.id_required", "id is required")

var (
	_ command.Commander[CreatePostCommand] = (*CreatePostHandler)(nil)
	_ command.Commander[UpdatePostCommand] = (*UpdatePostHandler)(nil)
	_ command.Commander[DeletePostCommand] = (*DeletePostHandler)(nil)
)

// CreatePostHandler executes CreatePostCommand against the post service.
type CreatePostHandler struct {
	inner *commands.Handler[CreatePostCommand]
}

func NewCreatePostHandler(service posts.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreatePostCommand]) *CreatePostHandler {
	exec := func(ctx context.Context, msg CreatePostCommand) error {
		_, err := service.Create(ctx, msg.request())
		return err
	}

	handlerOpts := append([]commands.HandlerOption[CreatePostCommand]{
		commands.WithLogger[CreatePostCommand](commands.EnsureLogger(logger)),
		commands.WithOperation[CreatePostCommand](createOperation),
		commands.WithMessageFields(func(msg CreatePostCommand) map[string]any {
			return map[string]any{"title": msg.Title}
		}),
	}, opts...)

	return &CreatePostHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *CreatePostHandler) Execute(ctx context.Context, msg CreatePostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdatePostHandler executes UpdatePostCommand against the post service.
type UpdatePostHandler struct {
	inner *commands.Handler[UpdatePostCommand]
}

func NewUpdatePostHandler(service posts.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdatePostCommand]) *UpdatePostHandler {
	exec := func(ctx context.Context, msg UpdatePostCommand) error {
		_, err := service.Update(ctx, msg.request())
		return err
	}

	handlerOpts := append([]commands.HandlerOption[UpdatePostCommand]{
		commands.WithLogger[UpdatePostCommand](commands.EnsureLogger(logger)),
		commands.WithOperation[UpdatePostCommand](updateOperation),
		commands.WithMessageFields(func(msg UpdatePostCommand) map[string]any {
			return map[string]any{"post_id": msg.ID}
		}),
	}, opts...)

	return &UpdatePostHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *UpdatePostHandler) Execute(ctx context.Context, msg UpdatePostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeletePostHandler executes DeletePostCommand against the post service.
type DeletePostHandler struct {
	inner *commands.Handler[DeletePostCommand]
}

func NewDeletePostHandler(service posts.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeletePostCommand]) *DeletePostHandler {
	exec := func(ctx context.Context, msg DeletePostCommand) error {
		return service.Delete(ctx, msg.ID)
	}

	handlerOpts := append([]commands.HandlerOption[DeletePostCommand]{
		commands.WithLogger[DeletePostCommand](commands.EnsureLogger(logger)),
		commands.WithOperation[DeletePostCommand](deleteOperation),
		commands.WithMessageFields(func(msg DeletePostCommand) map[string]any {
			fields := map[string]any{}
			if msg.ID != uuid.Nil {
				fields["post_id"] = msg.ID
			}
			return fields
		}),
	}, opts...)

	return &DeletePostHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *DeletePostHandler) Execute(ctx context.Context, msg DeletePostCommand) error {
	return h.inner.Execute(ctx, msg)
}
