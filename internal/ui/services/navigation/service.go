package navigation

// Service moves a cursor over the rows of the current result page and keeps
// it inside the visible viewport
type Service struct {
	state   State
	countFn func() int // number of rows currently shown
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{
		state: State{
			ViewportHeight: 20, // Default, will be updated
			MaxIndex:       -1,
		},
	}
}

// SetCountFunction sets the function reporting how many rows exist
func (s *Service) SetCountFunction(fn func() int) {
	s.countFn = fn
}

// State returns a copy of the navigation state
func (s *Service) State() State {
	s.refresh()
	return s.state
}

// Cursor returns current cursor position, or -1 when there are no rows
func (s *Service) Cursor() int {
	s.refresh()
	if s.state.MaxIndex < 0 {
		return -1
	}
	return s.state.Cursor
}

// ViewportOffset returns current viewport offset
func (s *Service) ViewportOffset() int {
	return s.state.ViewportOffset
}

// ViewportHeight returns current viewport height
func (s *Service) ViewportHeight() int {
	return s.state.ViewportHeight
}

// SetWindowHeight derives the viewport from the terminal height
func (s *Service) SetWindowHeight(height int) {
	effectiveHeight := height - reservedLines
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}
	s.state.ViewportHeight = effectiveHeight
	s.ensureVisible()
}

// Navigate handles navigation in a direction and reports whether the cursor moved
func (s *Service) Navigate(direction Direction) bool {
	s.refresh()
	oldCursor := s.state.Cursor

	switch direction {
	case DirectionUp:
		s.moveTo(s.state.Cursor - 1)
	case DirectionDown:
		s.moveTo(s.state.Cursor + 1)
	case DirectionPageUp:
		s.moveTo(s.state.Cursor - s.pageSize())
	case DirectionPageDown:
		s.moveTo(s.state.Cursor + s.pageSize())
	case DirectionHome:
		s.moveTo(0)
	case DirectionEnd:
		s.moveTo(s.state.MaxIndex)
	}

	return oldCursor != s.state.Cursor
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.refresh()
	s.moveTo(index)
}

// Reset puts the cursor back on the first row, e.g. after new results arrive
func (s *Service) Reset() {
	s.state.Cursor = 0
	s.state.ViewportOffset = 0
	s.refresh()
}

// Internal navigation methods
func (s *Service) moveTo(index int) {
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
}

func (s *Service) pageSize() int {
	if s.state.ViewportHeight > 1 {
		return s.state.ViewportHeight - 1
	}
	return 1
}

// refresh re-reads the row count and pulls the cursor back into range
func (s *Service) refresh() {
	if s.countFn != nil {
		s.state.MaxIndex = s.countFn() - 1
	}
	s.state.Cursor = s.clampIndex(s.state.Cursor)
	s.ensureVisible()
}

// Helper methods
func (s *Service) clampIndex(index int) int {
	if index > s.state.MaxIndex {
		index = s.state.MaxIndex
	}
	if index < 0 {
		return 0
	}
	return index
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Cursor
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Cursor - s.state.ViewportHeight + 1
	}
	if s.state.ViewportOffset < 0 {
		s.state.ViewportOffset = 0
	}
}
