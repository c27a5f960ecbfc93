package paging

import (
	"strconv"
	"strings"
)

// DefaultWindowSize is the number of pages shown on each side of the current page
const DefaultWindowSize = 2

// Marker is one element of a pagination strip: either a page index or an ellipsis
type Marker struct {
	Page     int
	Ellipsis bool
}

// PageMarker returns a marker for a zero-based page index
func PageMarker(page int) Marker {
	return Marker{Page: page}
}

// EllipsisMarker returns a gap marker
func EllipsisMarker() Marker {
	return Marker{Page: -1, Ellipsis: true}
}

// String renders the marker one-based, the way page buttons are labelled
func (m Marker) String() string {
	if m.Ellipsis {
		return "…"
	}
	return strconv.Itoa(m.Page + 1)
}

// Window compresses totalPages into a bounded strip around currentPage.
//
// Small page counts (up to 7+2*windowSize) are listed in full. Larger ones keep
// the first page, the last page and windowSize pages on each side of the
// current page, with an ellipsis standing in for any gap wider than one page.
// Out-of-range input is clamped rather than rejected.
func Window(currentPage, totalPages, windowSize int) []Marker {
	if totalPages <= 0 {
		return []Marker{}
	}
	// any window of half the result set or more lists every page
	windowSize = min(max(windowSize, 0), totalPages/2)

	// totalPages <= 7+2*windowSize, kept free of overflow
	if totalPages-7 <= windowSize*2 {
		markers := make([]Marker, 0, totalPages)
		for i := 0; i < totalPages; i++ {
			markers = append(markers, PageMarker(i))
		}
		return markers
	}

	currentPage = Clamp(currentPage, totalPages)
	left := max(0, currentPage-windowSize)
	right := currentPage + min(windowSize, totalPages-1-currentPage)

	markers := make([]Marker, 0, right-left+5)

	if left > 1 {
		markers = append(markers, PageMarker(0), EllipsisMarker())
	} else {
		for i := 0; i < left; i++ {
			markers = append(markers, PageMarker(i))
		}
	}

	for i := left; i <= right; i++ {
		markers = append(markers, PageMarker(i))
	}

	if right < totalPages-2 {
		markers = append(markers, EllipsisMarker(), PageMarker(totalPages-1))
	} else {
		for i := right + 1; i < totalPages; i++ {
			markers = append(markers, PageMarker(i))
		}
	}

	return markers
}

// Clamp forces page into [0, totalPages-1]. It returns 0 when there are no pages.
func Clamp(page, totalPages int) int {
	if totalPages <= 0 || page < 0 {
		return 0
	}
	if page > totalPages-1 {
		return totalPages - 1
	}
	return page
}

// HasPrev reports whether there is a page before currentPage
func HasPrev(currentPage, totalPages int) bool {
	return totalPages > 0 && currentPage > 0
}

// HasNext reports whether there is a page after currentPage
func HasNext(currentPage, totalPages int) bool {
	return currentPage < totalPages-1
}

// Valid reports whether page can be requested from a result set of totalPages
func Valid(page, totalPages int) bool {
	return page >= 0 && page < totalPages
}

// Render formats markers as a plain strip, wrapping the current page in brackets
func Render(markers []Marker, currentPage int) string {
	parts := make([]string, 0, len(markers))
	for _, m := range markers {
		if !m.Ellipsis && m.Page == currentPage {
			parts = append(parts, "["+m.String()+"]")
			continue
		}
		parts = append(parts, m.String())
	}
	return strings.Join(parts, " ")
}
