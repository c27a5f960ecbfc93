package search

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"shelfwise/internal/eventbus"
)

// genericErrorText is shown when a failure carries no message of its own
const genericErrorText = "An error occurred"

// Coordinator issues fetches and applies their results to a State.
//
// Every fetch is stamped with a sequence number when it is issued. When it
// resolves, the result is applied only if no newer fetch has been issued in the
// meantime; otherwise it is dropped without touching the state. Responses can
// arrive in any order, but the state always reflects the newest request.
type Coordinator[T any] struct {
	fetch  FetchFunc[T]
	source string
	log    logrus.FieldLogger
	bus    eventbus.EventBus

	mu      sync.Mutex
	latest  uint64 // sequence number of the most recently issued fetch
	applied bool   // whether any fetch has been applied yet
	stopped bool
	state   State[T]
}

type request struct {
	seq   uint64
	query string
	page  int
}

// NewCoordinator creates a coordinator around fetch. source labels log
// entries and events; logger and bus may be nil.
func NewCoordinator[T any](fetch FetchFunc[T], source string, logger logrus.FieldLogger, bus eventbus.EventBus) *Coordinator[T] {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Coordinator[T]{
		fetch:  fetch,
		source: source,
		log:    logger.WithField("source", source),
		bus:    bus,
		state:  State[T]{Results: []T{}},
	}
}

// Fetch issues a fetch and blocks until it resolves
func (c *Coordinator[T]) Fetch(ctx context.Context, query string, page int) Outcome[T] {
	req, ok := c.issue(query, page)
	if !ok {
		return Outcome[T]{Query: query, Page: page}
	}
	return c.resolve(ctx, req)
}

// Go issues a fetch and resolves it in the background. The fetch is stamped
// before Go returns, so issue order follows call order.
func (c *Coordinator[T]) Go(ctx context.Context, query string, page int) <-chan Outcome[T] {
	req, ok := c.issue(query, page)
	done := make(chan Outcome[T], 1)
	if !ok {
		done <- Outcome[T]{Query: query, Page: page}
		return done
	}
	go func() {
		done <- c.resolve(ctx, req)
	}()
	return done
}

// Supersede invalidates every in-flight fetch without issuing a new one
func (c *Coordinator[T]) Supersede() {
	c.mu.Lock()
	c.latest++
	c.state.Loading = false
	c.mu.Unlock()
}

// Stop invalidates every in-flight fetch and refuses new ones. The state is
// frozen from then on.
func (c *Coordinator[T]) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.latest++
	c.state.Loading = false
	c.mu.Unlock()
}

// Reset invalidates in-flight fetches and empties the visible results
func (c *Coordinator[T]) Reset() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.latest++
	seq := c.latest
	c.applied = false
	c.state.Results = []T{}
	c.state.TotalPages = 0
	c.state.CurrentPage = 0
	c.state.Loading = false
	c.state.Err = ""
	c.mu.Unlock()

	c.publish(eventbus.SearchClearedEvent{Source: c.source, Seq: seq})
}

// Snapshot returns a copy of the current state
func (c *Coordinator[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Results = make([]T, len(c.state.Results))
	copy(s.Results, c.state.Results)
	return s
}

// Latest returns the sequence number of the most recently issued fetch
func (c *Coordinator[T]) Latest() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}

func (c *Coordinator[T]) setQuery(query string) {
	c.mu.Lock()
	c.state.Query = query
	c.mu.Unlock()
}

// current returns the query and page a refresh should re-request
func (c *Coordinator[T]) current() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Query, c.state.CurrentPage
}

func (c *Coordinator[T]) issue(query string, page int) (request, bool) {
	if page < 0 {
		page = 0
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		c.log.WithFields(logrus.Fields{"query": query, "page": page}).Debug("search refused after stop")
		return request{}, false
	}
	c.latest++
	req := request{seq: c.latest, query: query, page: page}
	c.state.Loading = true
	c.state.Err = ""
	if !c.applied {
		c.state.CurrentPage = page
	}
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"seq": req.seq, "query": query, "page": page}).Debug("search issued")
	c.publish(eventbus.SearchStartedEvent{Source: c.source, Seq: req.seq, Query: query, Page: page})
	return req, true
}

func (c *Coordinator[T]) resolve(ctx context.Context, req request) Outcome[T] {
	result, err := c.call(ctx, req)
	out := Outcome[T]{Seq: req.seq, Query: req.query, Page: req.page, Result: result, Err: err}

	c.mu.Lock()
	if c.stopped || req.seq != c.latest {
		latest := c.latest
		c.mu.Unlock()

		c.log.WithFields(logrus.Fields{"seq": req.seq, "latest": latest, "query": req.query}).Debug("stale search result dropped")
		c.publish(eventbus.SearchDiscardedEvent{Source: c.source, Seq: req.seq, Latest: latest, Query: req.query, Page: req.page})
		return out
	}

	out.Applied = true
	c.state.Loading = false
	if err != nil {
		c.state.Err = ErrorText(err)
		c.state.Results = []T{}
		c.state.TotalPages = 0
		msg := c.state.Err
		c.mu.Unlock()

		c.log.WithFields(logrus.Fields{"seq": req.seq, "query": req.query, "page": req.page}).WithError(err).Warn("search failed")
		c.publish(eventbus.SearchFailedEvent{Source: c.source, Seq: req.seq, Query: req.query, Page: req.page, Message: msg})
		return out
	}

	items := result.Items
	if items == nil {
		items = []T{}
	}
	c.applied = true
	c.state.Results = items
	c.state.TotalPages = max(0, result.TotalPages)
	c.state.CurrentPage = max(0, result.CurrentPage)
	c.state.Err = ""
	applied := eventbus.SearchAppliedEvent{
		Source:     c.source,
		Seq:        req.seq,
		Query:      req.query,
		Page:       c.state.CurrentPage,
		Count:      len(items),
		TotalPages: c.state.TotalPages,
	}
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"seq": req.seq, "query": req.query, "page": applied.Page, "count": applied.Count}).Debug("search applied")
	c.publish(applied)
	return out
}

// call runs the fetch function, turning a panic into an ordinary error
func (c *Coordinator[T]) call(ctx context.Context, req request) (page Page[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			page = Page[T]{}
			err = fmt.Errorf("search %q page %d: %v", req.query, req.page, r)
		}
	}()
	if c.fetch == nil {
		return Page[T]{}, errors.New("no search function configured")
	}
	return c.fetch(ctx, req.query, req.page)
}

func (c *Coordinator[T]) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

// ErrorText turns err into the message shown to the user
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericErrorText
}
