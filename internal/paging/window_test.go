package paging

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gap marks an ellipsis in expected strips
const gap = -1

func pages(markers []Marker) []int {
	out := make([]int, 0, len(markers))
	for _, m := range markers {
		if m.Ellipsis {
			out = append(out, gap)
			continue
		}
		out = append(out, m.Page)
	}
	return out
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		total      int
		windowSize int
		want       []int
	}{
		{"small count is shown in full", 0, 5, 2, []int{0, 1, 2, 3, 4}},
		{"threshold is shown in full", 6, 11, 2, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"middle of a large range", 50, 100, 2, []int{0, gap, 48, 49, 50, 51, 52, gap, 99}},
		{"near the start has no leading ellipsis", 1, 100, 2, []int{0, 1, 2, 3, gap, 99}},
		{"one page gap on the left is filled in", 3, 100, 2, []int{0, 1, 2, 3, 4, 5, gap, 99}},
		{"two page gap on the left gets an ellipsis", 4, 100, 2, []int{0, gap, 2, 3, 4, 5, 6, gap, 99}},
		{"near the end has no trailing ellipsis", 97, 100, 2, []int{0, gap, 95, 96, 97, 98, 99}},
		{"last page", 99, 100, 2, []int{0, gap, 97, 98, 99}},
		{"one page gap on the right is filled in", 96, 100, 2, []int{0, gap, 94, 95, 96, 97, 98, 99}},
		{"first page just over threshold", 0, 12, 2, []int{0, 1, 2, gap, 11}},
		{"window of one", 10, 20, 1, []int{0, gap, 9, 10, 11, gap, 19}},
		{"window of zero", 10, 20, 0, []int{0, gap, 10, gap, 19}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pages(Window(tt.current, tt.total, tt.windowSize)))
		})
	}
}

func TestWindowNoPages(t *testing.T) {
	for _, current := range []int{-3, 0, 1, 42} {
		assert.Empty(t, Window(current, 0, DefaultWindowSize), "current=%d", current)
	}
	assert.Empty(t, Window(0, -5, DefaultWindowSize))
}

func TestWindowAlwaysContainsEndsAndCurrent(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for current := 0; current < total; current++ {
			got := pages(Window(current, total, DefaultWindowSize))
			require.NotEmpty(t, got)
			assert.Equal(t, 0, got[0], "total=%d current=%d", total, current)
			assert.Equal(t, total-1, got[len(got)-1], "total=%d current=%d", total, current)
			assert.Contains(t, got, current, "total=%d current=%d", total, current)

			// strictly increasing page indices, never two gaps in a row
			last := -1
			prevGap := false
			for _, p := range got {
				if p == gap {
					assert.False(t, prevGap, "adjacent gaps for total=%d current=%d", total, current)
					prevGap = true
					continue
				}
				prevGap = false
				assert.Greater(t, p, last)
				last = p
			}
		}
	}
}

func TestWindowClampsBadInput(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, gap, 99}, pages(Window(-10, 100, 2)))
	assert.Equal(t, []int{0, gap, 97, 98, 99}, pages(Window(500, 100, 2)))
	assert.Equal(t, []int{0, gap, 50, gap, 99}, pages(Window(50, 100, -4)))

	// oversized windows list every page instead of overflowing
	assert.Len(t, Window(50, 100, math.MaxInt), 100)
	assert.Len(t, Window(0, 12, 3), 12)
	assert.NotPanics(t, func() { Window(math.MaxInt-1, math.MaxInt, 3) })
	assert.Equal(t, []int{0, gap, 49, 50, 51, gap, 99}, pages(Window(50, 100, 1)))
	assert.Equal(t, []int{0, gap, 50, gap, 99}, pages(Window(50, 100, 0)))
}

func TestWindowIsDeterministic(t *testing.T) {
	assert.Equal(t, Window(37, 80, 3), Window(37, 80, 3))
}

func TestRender(t *testing.T) {
	assert.Equal(t, "1 … 49 50 [51] 52 53 … 100", Render(Window(50, 100, 2), 50))
	assert.Equal(t, "[1] 2 3", Render(Window(0, 3, 2), 0))
	assert.Equal(t, "", Render(Window(0, 0, 2), 0))
}

func TestNeighbours(t *testing.T) {
	assert.False(t, HasPrev(0, 10))
	assert.True(t, HasPrev(1, 10))
	assert.True(t, HasNext(8, 10))
	assert.False(t, HasNext(9, 10))
	assert.False(t, HasNext(0, 0))
	assert.False(t, HasPrev(0, 0))

	assert.True(t, Valid(0, 1))
	assert.False(t, Valid(1, 1))
	assert.False(t, Valid(-1, 4))
	assert.Equal(t, 0, Clamp(3, 0))
	assert.Equal(t, 3, Clamp(7, 4))
}
