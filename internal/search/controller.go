package search

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"shelfwise/internal/eventbus"
)

// Controller drives an incremental, paginated search.
//
// Query edits are debounced; page changes and refreshes are issued at once.
// All fetches go through one Coordinator, so whichever was issued last wins
// regardless of the order responses arrive in.
type Controller[T any] struct {
	opts      Options
	coord     *Coordinator[T]
	debouncer *Debouncer
	log       logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// Option customises a Controller
type Option func(*controllerConfig)

type controllerConfig struct {
	source string
	logger logrus.FieldLogger
	bus    eventbus.EventBus
	ctx    context.Context
}

// WithSource labels log entries and events, e.g. with the resource name
func WithSource(source string) Option {
	return func(c *controllerConfig) { c.source = source }
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *controllerConfig) { c.logger = logger }
}

// WithEventBus publishes search events on bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(c *controllerConfig) { c.bus = bus }
}

// WithContext sets the parent context handed to the fetch function
func WithContext(ctx context.Context) Option {
	return func(c *controllerConfig) { c.ctx = ctx }
}

// NewController creates a controller and arms the first, debounced fetch for
// opts.InitialQuery.
func NewController[T any](fetch FetchFunc[T], opts Options, options ...Option) *Controller[T] {
	cfg := controllerConfig{source: "search", ctx: context.Background()}
	for _, o := range options {
		o(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logrus.StandardLogger()
	}

	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(cfg.ctx)

	c := &Controller[T]{
		opts:      opts,
		coord:     NewCoordinator(fetch, cfg.source, cfg.logger, cfg.bus),
		debouncer: NewDebouncer(opts.Debounce),
		log:       cfg.logger.WithField("source", cfg.source),
		ctx:       ctx,
		cancel:    cancel,
	}

	c.SetQuery(opts.InitialQuery)
	return c
}

// Options returns the effective options
func (c *Controller[T]) Options() Options {
	return c.opts
}

// SetQuery updates the query immediately and schedules a fetch of its first
// page once typing pauses.
func (c *Controller[T]) SetQuery(text string) {
	if c.isClosed() {
		return
	}
	c.coord.setQuery(text)

	// text is captured here so the deferred fetch uses this exact query
	c.debouncer.Schedule(func() {
		if c.isClosed() {
			return
		}
		if c.opts.ClearOnEmpty && strings.TrimSpace(text) == "" {
			c.coord.Reset()
			return
		}
		c.coord.Fetch(c.ctx, text, 0)
	})
}

// ChangePage fetches page of the current query without waiting for the
// debounce. A pending keystroke fetch is left armed.
func (c *Controller[T]) ChangePage(page int) <-chan Outcome[T] {
	if c.isClosed() {
		return closedOutcome[T]()
	}
	query, _ := c.coord.current()
	return c.coord.Go(c.ctx, query, page)
}

// Refresh re-fetches the current query and page without waiting for the debounce
func (c *Controller[T]) Refresh() <-chan Outcome[T] {
	if c.isClosed() {
		return closedOutcome[T]()
	}
	query, page := c.coord.current()
	return c.coord.Go(c.ctx, query, page)
}

// State returns a snapshot of the search state
func (c *Controller[T]) State() State[T] {
	return c.coord.Snapshot()
}

// DebouncePending reports whether a keystroke-triggered fetch is waiting to fire
func (c *Controller[T]) DebouncePending() bool {
	return c.debouncer.Pending()
}

// Close stops the controller. Pending and in-flight fetches will not touch the
// state afterwards.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.debouncer.Dispose()
	c.coord.Stop()
	c.cancel()
	c.log.Debug("search controller closed")
}

func (c *Controller[T]) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func closedOutcome[T any]() <-chan Outcome[T] {
	ch := make(chan Outcome[T], 1)
	ch <- Outcome[T]{}
	return ch
}
