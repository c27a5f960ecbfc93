package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// pendingCall is a fetch the test resolves by hand
type pendingCall struct {
	query string
	page  int
	reply chan reply
}

type reply struct {
	page Page[string]
	err  error
}

func (c *pendingCall) succeed(total int, items ...string) {
	c.reply <- reply{page: Page[string]{Items: items, TotalPages: total, CurrentPage: c.page}}
}

func (c *pendingCall) fail(err error) {
	c.reply <- reply{err: err}
}

// fakeBackend hands every fetch to the test and blocks until it is resolved
type fakeBackend struct {
	calls chan *pendingCall
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(chan *pendingCall, 16)}
}

func (f *fakeBackend) fetch(ctx context.Context, query string, page int) (Page[string], error) {
	c := &pendingCall{query: query, page: page, reply: make(chan reply, 1)}
	f.calls <- c
	select {
	case r := <-c.reply:
		return r.page, r.err
	case <-ctx.Done():
		return Page[string]{}, ctx.Err()
	}
}

func (f *fakeBackend) next(t *testing.T) *pendingCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a fetch")
		return nil
	}
}

// nextPair collects two concurrent calls keyed by query
func (f *fakeBackend) nextPair(t *testing.T) map[string]*pendingCall {
	t.Helper()
	out := map[string]*pendingCall{}
	for i := 0; i < 2; i++ {
		c := f.next(t)
		out[c.query] = c
	}
	require.Len(t, out, 2)
	return out
}

func (f *fakeBackend) expectNoCall(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected fetch for %q page %d", c.query, c.page)
	case <-time.After(wait):
	}
}

func waitOutcome[T any](t *testing.T, ch <-chan Outcome[T]) Outcome[T] {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a fetch outcome")
		return Outcome[T]{}
	}
}
