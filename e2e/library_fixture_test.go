//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// LibraryServer is a fake library API serving fixed collections
type LibraryServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
	fail     bool
}

type fixtureBook struct {
	ID              string `json:"id"`
	AccessionNumber string `json:"accessionNumber"`
	Title           string `json:"title"`
	AuthorPrimary   string `json:"authorPrimary"`
	PublicationYear int    `json:"publicationYear"`
	LocationShelf   string `json:"locationShelf"`
	BookStatus      string `json:"bookStatus"`
}

type fixtureUser struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Department string `json:"department"`
	UserRole   string `json:"userRole"`
	UserStatus string `json:"userStatus"`
}

// fixtureBooks is 25 books: three pages of ten
func fixtureBooks() []fixtureBook {
	books := make([]fixtureBook, 0, 25)
	for i := 1; i <= 25; i++ {
		books = append(books, fixtureBook{
			ID:              strconv.Itoa(i),
			AccessionNumber: fmt.Sprintf("ACC-%03d", i),
			Title:           fmt.Sprintf("Volume %02d", i),
			AuthorPrimary:   "Fixture Author",
			PublicationYear: 1990 + i,
			LocationShelf:   "A1",
			BookStatus:      "AVAILABLE",
		})
	}
	books[6].Title = "Dune Messiah"
	books[17].Title = "Dune"
	books[17].BookStatus = "ISSUED"
	return books
}

func fixtureUsers() []fixtureUser {
	return []fixtureUser{
		{ID: "1", EmployeeID: "EMP-001", FullName: "Ada Lovelace", Email: "ada@example.org", Department: "Research", UserRole: "MEMBER", UserStatus: "ACTIVE"},
		{ID: "2", EmployeeID: "EMP-002", FullName: "Grace Hopper", Email: "grace@example.org", Department: "Systems", UserRole: "LIBRARIAN", UserStatus: "ACTIVE"},
	}
}

// NewLibraryServer starts a fake API that is closed when the test ends
func NewLibraryServer(t *testing.T) *LibraryServer {
	t.Helper()
	ls := &LibraryServer{}
	books := ls.handle(func(q string) []any {
		return filter(fixtureBooks(), q, func(b fixtureBook) string { return b.Title })
	})
	users := ls.handle(func(q string) []any {
		return filter(fixtureUsers(), q, func(u fixtureUser) string { return u.FullName })
	})
	transactions := ls.handle(func(string) []any { return nil })

	mux := http.NewServeMux()
	mux.HandleFunc("/api/books", books)
	mux.HandleFunc("/api/books/search", books)
	mux.HandleFunc("/api/users", users)
	mux.HandleFunc("/api/users/search", users)
	mux.HandleFunc("/api/transactions", transactions)
	mux.HandleFunc("/api/transactions/search", transactions)
	ls.Server = httptest.NewServer(mux)
	t.Cleanup(ls.Close)
	return ls
}

// SetFailing makes every following request answer 503
func (ls *LibraryServer) SetFailing(fail bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.fail = fail
}

// Requests returns the request URIs received so far
func (ls *LibraryServer) Requests() []string {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return append([]string(nil), ls.requests...)
}

func (ls *LibraryServer) handle(items func(q string) []any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ls.mu.Lock()
		ls.requests = append(ls.requests, r.URL.RequestURI())
		fail := ls.fail
		ls.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if fail {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "catalogue offline"})
			return
		}

		all := items(r.URL.Query().Get("query"))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		if size <= 0 {
			size = 10
		}
		totalPages := (len(all) + size - 1) / size
		start := min(page*size, len(all))
		end := min(start+size, len(all))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data":   all[start:end],
			"pagination": map[string]int{
				"totalElements": len(all),
				"totalPages":    totalPages,
				"currentPage":   page,
				"pageSize":      size,
			},
		})
	}
}

func filter[T any](records []T, q string, text func(T) string) []any {
	out := []any{}
	for _, r := range records {
		if q == "" || strings.Contains(strings.ToLower(text(r)), strings.ToLower(q)) {
			out = append(out, r)
		}
	}
	return out
}
