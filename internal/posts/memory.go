package posts

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryPostRepository is an in-memory implementation for scaffolding and tests.
type MemoryPostRepository struct {
	mu         sync.RWMutex
	posts      map[uuid.UUID]*Post
	slugIndex  map[string]uuid.UUID
	links      map[uuid.UUID][]uuid.UUID
	categories *MemoryCategoryRepository
}

// NewMemoryPostRepository creates an empty in-memory post repository. The
// category repository is optional; when present, returned posts carry their
// linked Category records.
func NewMemoryPostRepository(categories *MemoryCategoryRepository) *MemoryPostRepository {
	return &MemoryPostRepository{
		posts:      make(map[uuid.UUID]*Post),
		slugIndex:  make(map[string]uuid.UUID),
		links:      make(map[uuid.UUID][]uuid.UUID),
		categories: categories,
	}
}

// Create inserts the supplied post.
func (m *MemoryPostRepository) Create(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePost(record)
	m.posts[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return m.hydrate(clonePost(copied)), nil
}

// GetByID retrieves a post by identifier.
func (m *MemoryPostRepository) GetByID(_ context.Context, id uuid.UUID) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.posts[id]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	return m.hydrate(clonePost(rec)), nil
}

// GetBySlug retrieves a post by slug, returning NotFoundError when absent.
func (m *MemoryPostRepository) GetBySlug(_ context.Context, slug string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: slug}
	}
	return m.hydrate(clonePost(m.posts[id])), nil
}

// List applies the filter and returns matches newest first.
func (m *MemoryPostRepository) List(_ context.Context, filter ListFilter) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]*Post, 0, len(m.posts))
	for _, rec := range m.posts {
		if filter.Published != nil && rec.Published != *filter.Published {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(rec.Title), needle) &&
			!strings.Contains(strings.ToLower(rec.Content), needle) {
			continue
		}
		if filter.CategoryID != nil && !containsID(m.links[rec.ID], *filter.CategoryID) {
			continue
		}
		out = append(out, m.hydrate(clonePost(rec)))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() > out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces the stored post, keeping the slug index current.
func (m *MemoryPostRepository) Update(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.posts[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: record.ID.String()}
	}
	if existing.Slug != record.Slug {
		delete(m.slugIndex, existing.Slug)
	}

	copied := clonePost(record)
	m.posts[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return m.hydrate(clonePost(copied)), nil
}

// Delete removes the post and its category links.
func (m *MemoryPostRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.posts[id]
	if !ok {
		return &NotFoundError{Resource: "post", Key: id.String()}
	}
	delete(m.slugIndex, rec.Slug)
	delete(m.posts, id)
	delete(m.links, id)
	return nil
}

// ReplaceCategories swaps the post's category links wholesale.
func (m *MemoryPostRepository) ReplaceCategories(_ context.Context, postID uuid.UUID, categoryIDs []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[postID]; !ok {
		return &NotFoundError{Resource: "post", Key: postID.String()}
	}
	m.links[postID] = append([]uuid.UUID(nil), categoryIDs...)
	return nil
}

// hydrate attaches linked categories when a category repository is available.
// Callers must hold at least a read lock.
func (m *MemoryPostRepository) hydrate(rec *Post) *Post {
	if m.categories == nil {
		return rec
	}
	ids := m.links[rec.ID]
	if len(ids) == 0 {
		return rec
	}
	cats := make([]*Category, 0, len(ids))
	for _, id := range ids {
		if cat := m.categories.get(id); cat != nil {
			cats = append(cats, cat)
		}
	}
	rec.Categories = cats
	return rec
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func clonePost(src *Post) *Post {
	if src == nil {
		return nil
	}
	copied := *src
	if len(src.Categories) > 0 {
		copied.Categories = make([]*Category, len(src.Categories))
		for i, cat := range src.Categories {
			if cat == nil {
				continue
			}
			local := *cat
			copied.Categories[i] = &local
		}
	}
	return &copied
}

// MemoryCategoryRepository stores categories in-memory.
type MemoryCategoryRepository struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*Category
	slugIndex map[string]uuid.UUID
}

// NewMemoryCategoryRepository constructs the repository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		records:   make(map[uuid.UUID]*Category),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied category.
func (m *MemoryCategoryRepository) Create(_ context.Context, record *Category) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.records[copied.ID] = &copied
	m.slugIndex[copied.Slug] = copied.ID
	local := copied
	return &local, nil
}

// GetByID fetches a category.
func (m *MemoryCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

// GetBySlug fetches a category by slug.
func (m *MemoryCategoryRepository) GetBySlug(_ context.Context, slug string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: slug}
	}
	copied := *m.records[id]
	return &copied, nil
}

// List returns all categories sorted by name.
func (m *MemoryCategoryRepository) List(_ context.Context) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Category, 0, len(m.records))
	for _, rec := range m.records {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the category.
func (m *MemoryCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return &NotFoundError{Resource: "category", Key: id.String()}
	}
	delete(m.slugIndex, rec.Slug)
	delete(m.records, id)
	return nil
}

// get is used by MemoryPostRepository.hydrate and only takes the category
// repository's own read lock, so the two repositories never deadlock.
func (m *MemoryCategoryRepository) get(id uuid.UUID) *Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil
	}
	copied := *rec
	return &copied
}
