package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"shelfwise/internal/domain"
	"shelfwise/internal/search"
)

// DefaultPageSize matches the page size the web dashboard requests
const DefaultPageSize = 10

// maxErrorBody bounds how much of a failed response is read for its message
const maxErrorBody = 64 << 10

// RequestIDHeader carries a per-request id the server can log
const RequestIDHeader = "X-Request-ID"

// Circuit breaker tuning
const (
	DefaultCooldown     = 10 * time.Second
	breakerMinRequests  = 5
	breakerFailureRatio = 0.6
)

// ErrUnexpectedStatus is wrapped by every StatusError
var ErrUnexpectedStatus = errors.New("unexpected status")

// ErrUnavailable is returned while the circuit breaker refuses requests
var ErrUnavailable = errors.New("library API unavailable")

// StatusError reports a non-2xx response from the API
type StatusError struct {
	StatusCode int
	Message    string // server supplied message, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// Pagination is the paging block attached to list responses
type Pagination struct {
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	CurrentPage   int `json:"currentPage"`
	PageSize      int `json:"pageSize"`
}

// envelope is the response wrapper used by every endpoint
type envelope[T any] struct {
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Data       []T         `json:"data"`
	Pagination *Pagination `json:"pagination"`
	Timestamp  string      `json:"timestamp"`
}

// PageParams are the paging and sorting query parameters
type PageParams struct {
	Page    int    `url:"page"`
	Size    int    `url:"size"`
	SortBy  string `url:"sortBy,omitempty"`
	SortDir string `url:"sortDir,omitempty"`
}

type searchParams struct {
	Query string `url:"query"`
	PageParams
}

// endpoint describes where a resource lives and how its results are ordered
type endpoint struct {
	path    string
	sortBy  string
	sortDir string
}

var endpoints = map[domain.Resource]endpoint{
	domain.ResourceBooks:        {path: "/api/books", sortBy: "accessionNumber", sortDir: "ASC"},
	domain.ResourceUsers:        {path: "/api/users", sortBy: "fullName", sortDir: "ASC"},
	domain.ResourceTransactions: {path: "/api/transactions", sortBy: "issueDate", sortDir: "DESC"},
}

// Options configures a Client
type Options struct {
	BaseURL    string
	Timeout    time.Duration // zero means no client-side timeout
	PageSize   int
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
	// Cooldown is how long requests are refused after the API keeps failing
	Cooldown time.Duration
}

// Client talks to the library REST API
type Client struct {
	base     *url.URL
	http     *http.Client
	pageSize int
	log      logrus.FieldLogger
	breaker  *gobreaker.CircuitBreaker
}

// NewClient creates a client for the API rooted at opts.BaseURL
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("api base URL is empty")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse api base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api base URL must be http or https, got %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	cooldown := opts.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	log := logger.WithField("component", "api")
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "library-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= breakerMinRequests && failureRatio >= breakerFailureRatio
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state changed")
		},
	})

	return &Client{
		base:     base,
		http:     httpClient,
		pageSize: pageSize,
		log:      log,
		breaker:  breaker,
	}, nil
}

// BreakerState reports whether requests are currently let through
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// isSuccessful decides which errors count against the API's health. Client
// errors and cancelled requests say nothing about whether the server is up.
func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.StatusCode < http.StatusInternalServerError
	}
	return false
}

// PageSize returns the number of records requested per page
func (c *Client) PageSize() int {
	return c.pageSize
}

// SearchURL builds the request URL for query and page on resource. A blank
// query lists the whole collection instead of searching it.
func (c *Client) SearchURL(res domain.Resource, q string, page int) (string, error) {
	ep, ok := endpoints[res]
	if !ok {
		return "", fmt.Errorf("unknown resource %q", res)
	}
	if page < 0 {
		page = 0
	}

	pp := PageParams{Page: page, Size: c.pageSize, SortBy: ep.sortBy, SortDir: ep.sortDir}
	path := ep.path

	var params interface{} = pp
	if strings.TrimSpace(q) != "" {
		path += "/search"
		params = searchParams{Query: q, PageParams: pp}
	}

	values, err := query.Values(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode query parameters: %w", err)
	}

	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// Search fetches one page of res matching q
func Search[T any](ctx context.Context, c *Client, res domain.Resource, q string, page int) (search.Page[T], error) {
	target, err := c.SearchURL(res, q, page)
	if err != nil {
		return search.Page[T]{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return search.Page[T]{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(req, res, requestID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return search.Page[T]{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return search.Page[T]{}, err
	}

	var env envelope[T]
	if err := json.Unmarshal(body.([]byte), &env); err != nil {
		return search.Page[T]{}, fmt.Errorf("failed to decode %s response: %w", res, err)
	}

	return toPage(env, page), nil
}

// do sends req and returns the body of a 2xx response
func (c *Client) do(req *http.Request, res domain.Resource, requestID string) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", res, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"url":        req.URL.String(),
		"request_id": requestID,
		"status":     resp.StatusCode,
		"duration":   time.Since(start),
	}).Debug("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", res, err)
	}
	return body, nil
}

// Fetcher adapts the client to the search engine for one resource
func Fetcher[T any](c *Client, res domain.Resource) search.FetchFunc[T] {
	return func(ctx context.Context, q string, page int) (search.Page[T], error) {
		return Search[T](ctx, c, res, q, page)
	}
}

// BookFetcher searches the book catalogue
func (c *Client) BookFetcher() search.FetchFunc[domain.Book] {
	return Fetcher[domain.Book](c, domain.ResourceBooks)
}

// UserFetcher searches library users
func (c *Client) UserFetcher() search.FetchFunc[domain.User] {
	return Fetcher[domain.User](c, domain.ResourceUsers)
}

// TransactionFetcher searches issue/return transactions
func (c *Client) TransactionFetcher() search.FetchFunc[domain.Transaction] {
	return Fetcher[domain.Transaction](c, domain.ResourceTransactions)
}

func toPage[T any](env envelope[T], requested int) search.Page[T] {
	items := env.Data
	if items == nil {
		items = []T{}
	}

	if env.Pagination == nil {
		// unpaginated endpoints return everything at once
		total := 0
		if len(items) > 0 {
			total = 1
		}
		return search.Page[T]{Items: items, TotalPages: total, CurrentPage: 0}
	}

	current := env.Pagination.CurrentPage
	if current < 0 {
		current = requested
	}
	return search.Page[T]{
		Items:       items,
		TotalPages:  max(0, env.Pagination.TotalPages),
		CurrentPage: current,
	}
}

func statusError(resp *http.Response) error {
	serr := &StatusError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(body) > 0 {
		var env struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &env) == nil {
			serr.Message = env.Message
		}
	}
	return serr
}
