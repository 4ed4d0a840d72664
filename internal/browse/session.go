package browse

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Filter is the reader-facing browse state: a free-text query plus an
// optional category. It is an explicit value handed to the session, never a
// package-level singleton, so concurrent sessions cannot observe each
// other's state.
type Filter struct {
	Query      string
	CategoryID *uuid.UUID
}

// Lister is the slice of the post service the session needs.
type Lister interface {
	List(ctx context.Context, req posts.ListPostsRequest) ([]*posts.Post, error)
}

// Session serializes browse queries for one reader. Every Refresh is tagged
// with a monotonically increasing sequence number; a response is applied only
// when no newer query has been issued since, so rapid filter changes cannot
// leave stale results on screen.
type Session struct {
	lister Lister
	logger interfaces.Logger

	seq     atomic.Uint64
	mu      sync.Mutex
	filter  Filter
	applied uint64
	results []*posts.Post
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession constructs a browse session over the supplied lister.
func NewSession(lister Lister, opts ...SessionOption) *Session {
	s := &Session{
		lister: lister,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetQuery updates the free-text query.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Query = query
}

// SetCategory updates the category restriction; nil clears it.
func (s *Session) SetCategory(id *uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.CategoryID = id
}

// Filter returns a snapshot of the current filter.
func (s *Session) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Results returns the most recently applied listing.
func (s *Session) Results() []*posts.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Refresh runs the listing under the current filter. The returned bool
// reports whether the response was applied; it is false when a newer Refresh
// was issued while this one was in flight, in which case the stale results
// are discarded and the session state is left untouched.
func (s *Session) Refresh(ctx context.Context) ([]*posts.Post, bool, error) {
	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()
	seq := s.seq.Add(1)

	records, err := s.lister.List(ctx, posts.ListPostsRequest{
		Query:      filter.Query,
		CategoryID: filter.CategoryID,
	})
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq.Load() || seq <= s.applied {
		s.logger.Debug("discarding stale browse response", "seq", seq)
		return records, false, nil
	}

	s.applied = seq
	s.results = records
	return records, true, nil
}
