package posts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Post is the canonical record for a blog entry. Content is stored as raw
// Markdown; rendering happens at read time through the markdown service.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Title       string     `bun:"title,notnull" json:"title"`
	Slug        string     `bun:"slug,notnull,unique" json:"slug"`
	Content     string     `bun:"content,notnull" json:"content"`
	Excerpt     string     `bun:"excerpt,notnull" json:"excerpt"`
	Published   bool       `bun:"published,notnull,default:false" json:"published"`
	AuthorID    uuid.UUID  `bun:"author_id,notnull,type:uuid" json:"author_id"`
	ReadingTime int        `bun:"reading_time,notnull,default:1" json:"reading_time"`
	CoverImage  *string    `bun:"cover_image" json:"cover_image,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Categories []*Category `bun:"m2m:post_categories,join:Post=Category" json:"categories,omitempty"`
}

// Category groups posts. Slug is derived from the name unless supplied.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	Description *string   `bun:"description" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// PostCategory is the posts<->categories join row. It has no independent
// lifecycle; rows are replaced wholesale when a post's categories change.
type PostCategory struct {
	bun.BaseModel `bun:"table:post_categories,alias:pc"`

	PostID     uuid.UUID `bun:"post_id,pk,type:uuid" json:"post_id"`
	Post       *Post     `bun:"rel:belongs-to,join:post_id=id" json:"-"`
	CategoryID uuid.UUID `bun:"category_id,pk,type:uuid" json:"category_id"`
	Category   *Category `bun:"rel:belongs-to,join:category_id=id" json:"-"`
}

// RegisterModels registers the join model with bun so the Categories m2m
// relation resolves. Hosts must call this before querying posts.
func RegisterModels(db *bun.DB) {
	db.RegisterModel((*PostCategory)(nil))
}
