package comments

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Comment is a reader response attached to a post. Comments are immutable
// after creation; moderation removes them outright.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PostID    uuid.UUID `bun:"post_id,notnull,type:uuid" json:"post_id"`
	AuthorID  uuid.UUID `bun:"author_id,notnull,type:uuid" json:"author_id"`
	Content   string    `bun:"content,notnull" json:"content"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Author *Profile `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
}

// Profile is the read-side author reference joined into comments. The
// identity provider owns the record lifecycle; this module only reads it.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:prof"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Username  string    `bun:"username,notnull,unique" json:"username"`
	AvatarURL *string   `bun:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
