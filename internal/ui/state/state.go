package state

import (
	"shelfwise/internal/domain"
)

// AppState contains the screen state that is not owned by a search
type AppState struct {
	Resource domain.Resource // collection being browsed

	Width  int
	Height int

	StatusMessage string // transient message for the status line
	InPagerMode   bool   // the pager owns the terminal

	PopupContent string // shown in place of the pager when it cannot run
	PopupScroll  int
}

// NewAppState creates a new application state showing res
func NewAppState(res domain.Resource) *AppState {
	if !res.Valid() {
		res = domain.ResourceBooks
	}
	return &AppState{Resource: res}
}

// SetSize records the terminal size
func (s *AppState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetStatus sets the status line message
func (s *AppState) SetStatus(msg string) {
	s.StatusMessage = msg
}

// ClearStatus removes the status line message
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
}

// ShowPopup shows content in the popup, scrolled to the top
func (s *AppState) ShowPopup(content string) {
	s.PopupContent = content
	s.PopupScroll = 0
}

// ClosePopup hides the popup
func (s *AppState) ClosePopup() {
	s.PopupContent = ""
	s.PopupScroll = 0
}

// HasPopup reports whether the popup is showing
func (s *AppState) HasPopup() bool {
	return s.PopupContent != ""
}
