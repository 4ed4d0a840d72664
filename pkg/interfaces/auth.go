package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// AuthProvider is the boundary to the hosted identity service. The blog
// never stores credentials or sessions; it only asks who is acting.
type AuthProvider interface {
	CurrentUserID(ctx context.Context) (uuid.UUID, error)
	HasPermission(ctx context.Context, permission string) (bool, error)
}
