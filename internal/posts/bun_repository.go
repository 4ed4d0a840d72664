package posts

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunPostRepository struct {
	db   *bun.DB
	repo repository.Repository[*Post]
}

func NewBunPostRepository(db *bun.DB) *BunPostRepository {
	return NewBunPostRepositoryWithCache(db, nil, nil)
}

// NewBunPostRepositoryWithCache constructs a PostRepository backed by bun with
// optional caching. Mutations flow through the cache wrapper so cached
// listings are invalidated by every write.
func NewBunPostRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPostRepository {
	base := NewPostRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunPostRepository{db: db, repo: wrapped}
}

func (r *BunPostRepository) Create(ctx context.Context, record *Post) (*Post, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapConstraintError(err, "post", record.Slug)
	}
	return created, nil
}

func (r *BunPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Relation("Categories").Where("?TableAlias.id = ?", id)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "post", id.String())
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	return records[0], nil
}

func (r *BunPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Relation("Categories").Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "post", slug)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "post", Key: slug}
	}
	return records[0], nil
}

// List returns posts newest first. Query matches title or content with a
// case-insensitive LIKE; the category filter joins through post_categories.
func (r *BunPostRepository) List(ctx context.Context, filter ListFilter) ([]*Post, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Relation("Categories").OrderExpr("?TableAlias.created_at DESC")
		if needle := strings.TrimSpace(filter.Query); needle != "" {
			pattern := "%" + strings.ToLower(needle) + "%"
			q = q.Where("(LOWER(?TableAlias.title) LIKE ? OR LOWER(?TableAlias.content) LIKE ?)", pattern, pattern)
		}
		if filter.CategoryID != nil {
			q = q.Join("JOIN post_categories AS pcf ON pcf.post_id = ?TableAlias.id").
				Where("pcf.category_id = ?", *filter.CategoryID)
		}
		if filter.Published != nil {
			q = q.Where("?TableAlias.published = ?", *filter.Published)
		}
		return q
	}))
	if err != nil {
		return nil, fmt.Errorf("post repository error: %w", err)
	}
	return records, nil
}

func (r *BunPostRepository) Update(ctx context.Context, record *Post) (*Post, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"title",
			"slug",
			"content",
			"excerpt",
			"published",
			"reading_time",
			"cover_image",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapConstraintError(err, "post", record.Slug)
	}
	return updated, nil
}

func (r *BunPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Post{ID: id}); err != nil {
		return mapRepositoryError(err, "post", id.String())
	}
	return nil
}

// ReplaceCategories swaps the join rows inside a transaction. The join write
// is intentionally not atomic with the post insert that precedes it.
func (r *BunPostRepository) ReplaceCategories(ctx context.Context, postID uuid.UUID, categoryIDs []uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("post repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*PostCategory)(nil)).
			Where("?TableAlias.post_id = ?", postID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete post categories: %w", err)
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		links := make([]*PostCategory, 0, len(categoryIDs))
		for _, categoryID := range categoryIDs {
			links = append(links, &PostCategory{PostID: postID, CategoryID: categoryID})
		}
		if _, err := tx.NewInsert().Model(&links).Exec(ctx); err != nil {
			return fmt.Errorf("insert post categories: %w", err)
		}
		return nil
	})
}

type BunCategoryRepository struct {
	repo repository.Repository[*Category]
}

func NewBunCategoryRepository(db *bun.DB) *BunCategoryRepository {
	return NewBunCategoryRepositoryWithCache(db, nil, nil)
}

// NewBunCategoryRepositoryWithCache constructs a CategoryRepository with optional caching.
func NewBunCategoryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCategoryRepository {
	base := NewCategoryRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunCategoryRepository{repo: wrapped}
}

func (r *BunCategoryRepository) Create(ctx context.Context, record *Category) (*Category, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapConstraintError(err, "category", record.Slug)
	}
	return created, nil
}

func (r *BunCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "category", id.String())
	}
	return result, nil
}

func (r *BunCategoryRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "category", slug)
	}
	return result, nil
}

func (r *BunCategoryRepository) List(ctx context.Context) ([]*Category, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.name ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("category repository error: %w", err)
	}
	return records, nil
}

func (r *BunCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Category{ID: id}); err != nil {
		return mapRepositoryError(err, "category", id.String())
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

// mapConstraintError surfaces unique-slug violations as ErrSlugExists so the
// service layer reports them as conflicts rather than generic failures.
func mapConstraintError(err error, resource, slug string) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "unique") {
		return fmt.Errorf("%w: %s", ErrSlugExists, slug)
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
