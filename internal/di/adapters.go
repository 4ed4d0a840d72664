package di

import (
	"context"
	"errors"

	"github.com/goliatone/go-blog/internal/comments"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/google/uuid"
)

// postExistenceChecker lets the comment service verify a post before
// accepting a comment, without importing the posts package directly.
func postExistenceChecker(svc posts.Service) comments.PostChecker {
	return comments.PostCheckerFunc(func(ctx context.Context, postID uuid.UUID) (bool, error) {
		if svc == nil {
			return true, nil
		}
		if _, err := svc.Get(ctx, postID); err != nil {
			var notFound *posts.NotFoundError
			if errors.As(err, &notFound) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	})
}
