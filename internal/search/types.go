package search

import (
	"context"
	"time"

	"shelfwise/internal/paging"
)

// Page is one page of results as served by the remote endpoint
type Page[T any] struct {
	Items       []T
	TotalPages  int
	CurrentPage int // page actually served, which may differ from the one requested
}

// FetchFunc retrieves one page of results for query. Page indices are zero-based.
type FetchFunc[T any] func(ctx context.Context, query string, page int) (Page[T], error)

// State is a snapshot of everything a view needs to render a search
type State[T any] struct {
	Query       string
	CurrentPage int
	TotalPages  int
	Results     []T
	Loading     bool
	Err         string // empty when the last applied fetch succeeded
}

// HasError reports whether the last applied fetch failed
func (s State[T]) HasError() bool {
	return s.Err != ""
}

// Window returns the pagination strip for this state
func (s State[T]) Window(windowSize int) []paging.Marker {
	return paging.Window(s.CurrentPage, s.TotalPages, windowSize)
}

// Outcome describes how a single fetch resolved
type Outcome[T any] struct {
	Seq     uint64
	Query   string
	Page    int
	Result  Page[T]
	Err     error
	Applied bool // false when a newer fetch was issued before this one resolved
}

// Default option values
const (
	DefaultDebounce   = 500 * time.Millisecond
	DefaultWindowSize = paging.DefaultWindowSize
)

// Options configures a Controller
type Options struct {
	Debounce     time.Duration // quiet interval before a keystroke-triggered fetch
	InitialQuery string
	WindowSize   int
	// ClearOnEmpty makes a blank query reset the view instead of fetching
	ClearOnEmpty bool
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		Debounce:   DefaultDebounce,
		WindowSize: DefaultWindowSize,
	}
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.WindowSize < 0 {
		o.WindowSize = DefaultWindowSize
	}
	return o
}
