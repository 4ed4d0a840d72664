package browse_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/browse"
	"github.com/goliatone/go-blog/internal/posts"
)

type blockingLister struct {
	mu      sync.Mutex
	pending []chan struct{}
	calls   []posts.ListPostsRequest
}

// List blocks until the test releases the call, then echoes the query back
// as a single post title so results can be matched to requests.
func (l *blockingLister) List(_ context.Context, req posts.ListPostsRequest) ([]*posts.Post, error) {
	l.mu.Lock()
	release := make(chan struct{})
	l.pending = append(l.pending, release)
	l.calls = append(l.calls, req)
	l.mu.Unlock()

	<-release
	return []*posts.Post{{ID: uuid.New(), Title: req.Query}}, nil
}

func (l *blockingLister) release(i int) {
	l.mu.Lock()
	ch := l.pending[i]
	l.mu.Unlock()
	close(ch)
}

func TestRefreshAppliesLatest(t *testing.T) {
	lister := &blockingLister{}
	session := browse.NewSession(lister)
	session.SetQuery("go")

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, applied, err := session.Refresh(context.Background()); err != nil || !applied {
			t.Errorf("refresh: applied=%v err=%v", applied, err)
		}
	}()

	for {
		lister.mu.Lock()
		ready := len(lister.pending) == 1
		lister.mu.Unlock()
		if ready {
			break
		}
	}
	lister.release(0)
	<-done

	results := session.Results()
	if len(results) != 1 || results[0].Title != "go" {
		t.Fatalf("unexpected results %v", results)
	}
}

func TestRefreshDiscardsStaleResponse(t *testing.T) {
	lister := &blockingLister{}
	session := browse.NewSession(lister)

	type outcome struct {
		applied bool
		err     error
	}

	// start issues a Refresh and waits until its List call is registered, so
	// sequence numbers are handed out in a known order.
	start := func(query string, wantPending int) chan outcome {
		session.SetQuery(query)
		out := make(chan outcome, 1)
		go func() {
			_, applied, err := session.Refresh(context.Background())
			out <- outcome{applied: applied, err: err}
		}()
		for {
			lister.mu.Lock()
			n := len(lister.pending)
			lister.mu.Unlock()
			if n == wantPending {
				return out
			}
		}
	}

	first := start("react", 1)
	// second query issued while the first is still in flight
	second := start("go", 2)

	// the newer query completes first, then the stale one
	lister.release(1)
	res := <-second
	if res.err != nil || !res.applied {
		t.Fatalf("second refresh: applied=%v err=%v", res.applied, res.err)
	}

	lister.release(0)
	res = <-first
	if res.err != nil {
		t.Fatalf("first refresh: %v", res.err)
	}
	if res.applied {
		t.Fatal("stale response should have been discarded")
	}

	results := session.Results()
	if len(results) != 1 || results[0].Title != "go" {
		t.Fatalf("expected latest results to win, got %v", results)
	}
}

func TestSetCategory(t *testing.T) {
	lister := &blockingLister{}
	session := browse.NewSession(lister)

	id := uuid.New()
	session.SetCategory(&id)
	session.SetQuery("react")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = session.Refresh(context.Background())
	}()
	for {
		lister.mu.Lock()
		ready := len(lister.pending) == 1
		lister.mu.Unlock()
		if ready {
			break
		}
	}
	lister.release(0)
	<-done

	lister.mu.Lock()
	call := lister.calls[0]
	lister.mu.Unlock()
	if call.Query != "react" || call.CategoryID == nil || *call.CategoryID != id {
		t.Fatalf("filter not forwarded: %+v", call)
	}
}
