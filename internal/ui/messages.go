package ui

import (
	"shelfwise/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerMsg reports that the pager was closed
type pagerMsg struct {
	content string
	err     error
}

// clearStatusMsg clears a transient status message
type clearStatusMsg struct{}
