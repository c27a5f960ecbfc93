package ui

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfwise/internal/api"
	"shelfwise/internal/domain"
	"shelfwise/internal/search"
)

const usersPage = `{
  "status": "OK",
  "data": [
    {"id": "u1", "employeeId": "E-7", "fullName": "Ada Lovelace", "email": "ada@example.org",
     "department": "Analytics", "userRole": "MEMBER", "userStatus": "ACTIVE", "booksIssued": 2}
  ],
  "pagination": {"totalElements": 21, "totalPages": 3, "currentPage": 0, "pageSize": 10}
}`

func TestAPISearchFactory(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path+"?"+r.URL.Query().Get("page"))
		mu.Unlock()
		_, _ = w.Write([]byte(usersPage))
	}))
	defer srv.Close()

	client, err := api.NewClient(api.Options{BaseURL: srv.URL})
	require.NoError(t, err)

	factory := NewAPISearchFactory(client, search.Options{Debounce: 10 * time.Millisecond, InitialQuery: "ada"})

	s, err := factory(domain.ResourceUsers)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, domain.ResourceUsers, s.Resource())

	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return !snap.Loading && len(snap.Rows) == 1
	}, 2*time.Second, 10*time.Millisecond)

	snap := s.Snapshot()
	assert.Equal(t, "ada", snap.Query)
	assert.Equal(t, 3, snap.TotalPages)
	assert.Equal(t, []string{"E-7", "Ada Lovelace", "ada@example.org", "Analytics", "MEMBER", "ACTIVE"}, snap.Rows[0])

	detail, ok := s.Detail(0)
	require.True(t, ok)
	assert.Contains(t, detail, "Ada Lovelace")
	_, ok = s.Detail(1)
	assert.False(t, ok)

	assert.False(t, s.ChangePage(3), "past the last page")
	assert.False(t, s.ChangePage(-1))
	assert.True(t, s.ChangePage(2))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(paths) == 2
	}, 2*time.Second, 10*time.Millisecond)
	mu.Lock()
	assert.Equal(t, []string{"/api/users/search?0", "/api/users/search?2"}, paths)
	mu.Unlock()
}

func TestAPISearchFactoryUnknownResource(t *testing.T) {
	client, err := api.NewClient(api.Options{BaseURL: "http://library.local"})
	require.NoError(t, err)

	_, err = NewAPISearchFactory(client, search.DefaultOptions())(domain.Resource("shelves"))
	assert.Error(t, err)
}
