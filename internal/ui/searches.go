package ui

import (
	"fmt"

	"shelfwise/internal/api"
	"shelfwise/internal/domain"
	"shelfwise/internal/paging"
	"shelfwise/internal/search"
	"shelfwise/internal/ui/views"
)

// Search is one collection's search as the screen sees it
type Search interface {
	Resource() domain.Resource
	SetQuery(text string)
	// ChangePage requests page and reports whether it was in range
	ChangePage(page int) bool
	Refresh()
	Snapshot() Snapshot
	// Detail renders row of the current page for the pager
	Detail(row int) (string, bool)
	Close()
}

// Snapshot is the search state flattened into table cells
type Snapshot struct {
	Query       string
	CurrentPage int
	TotalPages  int
	Loading     bool
	Err         string
	Rows        [][]string
}

// SearchFactory creates the search for a collection the first time it is shown
type SearchFactory func(res domain.Resource) (Search, error)

// NewAPISearchFactory returns a factory whose searches query the library API
func NewAPISearchFactory(client *api.Client, opts search.Options, options ...search.Option) SearchFactory {
	return func(res domain.Resource) (Search, error) {
		all := append(append([]search.Option{}, options...), search.WithSource(string(res)))
		switch res {
		case domain.ResourceBooks:
			return newResourceSearch(res, client.BookFetcher(), views.BookRow, views.BookDetail, opts, all...), nil
		case domain.ResourceUsers:
			return newResourceSearch(res, client.UserFetcher(), views.UserRow, views.UserDetail, opts, all...), nil
		case domain.ResourceTransactions:
			return newResourceSearch(res, client.TransactionFetcher(), views.TransactionRow, views.TransactionDetail, opts, all...), nil
		default:
			return nil, fmt.Errorf("unknown resource %q", res)
		}
	}
}

// resourceSearch adapts a typed controller to the Search interface
type resourceSearch[T any] struct {
	res    domain.Resource
	ctrl   *search.Controller[T]
	row    func(T) []string
	detail func(T) string
}

func newResourceSearch[T any](res domain.Resource, fetch search.FetchFunc[T], row func(T) []string, detail func(T) string, opts search.Options, options ...search.Option) *resourceSearch[T] {
	return &resourceSearch[T]{
		res:    res,
		ctrl:   search.NewController(fetch, opts, options...),
		row:    row,
		detail: detail,
	}
}

func (s *resourceSearch[T]) Resource() domain.Resource {
	return s.res
}

func (s *resourceSearch[T]) SetQuery(text string) {
	s.ctrl.SetQuery(text)
}

func (s *resourceSearch[T]) ChangePage(page int) bool {
	if !paging.Valid(page, s.ctrl.State().TotalPages) {
		return false
	}
	s.ctrl.ChangePage(page)
	return true
}

func (s *resourceSearch[T]) Refresh() {
	s.ctrl.Refresh()
}

func (s *resourceSearch[T]) Snapshot() Snapshot {
	st := s.ctrl.State()
	rows := make([][]string, 0, len(st.Results))
	for _, item := range st.Results {
		rows = append(rows, s.row(item))
	}
	return Snapshot{
		Query:       st.Query,
		CurrentPage: st.CurrentPage,
		TotalPages:  st.TotalPages,
		Loading:     st.Loading,
		Err:         st.Err,
		Rows:        rows,
	}
}

func (s *resourceSearch[T]) Detail(row int) (string, bool) {
	results := s.ctrl.State().Results
	if row < 0 || row >= len(results) {
		return "", false
	}
	return s.detail(results[row]), true
}

func (s *resourceSearch[T]) Close() {
	s.ctrl.Close()
}
