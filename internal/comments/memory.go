package comments

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is a mutex-guarded in-memory comment store, for tests and
// hosts that run without a database.
type MemoryRepository struct {
	mu       sync.RWMutex
	records  map[uuid.UUID]*Comment
	profiles map[uuid.UUID]*Profile
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records:  make(map[uuid.UUID]*Comment),
		profiles: make(map[uuid.UUID]*Profile),
	}
}

// SeedProfile registers an author profile so listings can hydrate it.
func (m *MemoryRepository) SeedProfile(profile *Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *profile
	m.profiles[copied.ID] = &copied
}

// Create inserts the supplied comment.
func (m *MemoryRepository) Create(_ context.Context, record *Comment) (*Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneComment(record)
	m.records[copied.ID] = copied
	return m.hydrate(cloneComment(copied)), nil
}

// GetByID fetches a comment.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "comment", Key: id.String()}
	}
	return m.hydrate(cloneComment(rec)), nil
}

// ListByPost returns the post's comments oldest first.
func (m *MemoryRepository) ListByPost(_ context.Context, postID uuid.UUID) ([]*Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Comment, 0)
	for _, rec := range m.records {
		if rec.PostID != postID {
			continue
		}
		out = append(out, m.hydrate(cloneComment(rec)))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes the comment.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return &NotFoundError{Resource: "comment", Key: id.String()}
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryRepository) hydrate(rec *Comment) *Comment {
	if profile, ok := m.profiles[rec.AuthorID]; ok {
		copied := *profile
		rec.Author = &copied
	}
	return rec
}

func cloneComment(src *Comment) *Comment {
	copied := *src
	if src.Author != nil {
		author := *src.Author
		copied.Author = &author
	}
	return &copied
}
