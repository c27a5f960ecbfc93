package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"shelfwise/internal/eventbus"
)

// Sender is the part of *tea.Program that accepts messages from other goroutines
type Sender interface {
	Send(msg tea.Msg)
}

// forwardedEvents are the events that change what the screen shows
var forwardedEvents = []eventbus.EventType{
	eventbus.EventSearchStarted,
	eventbus.EventSearchApplied,
	eventbus.EventSearchFailed,
	eventbus.EventSearchCleared,
	eventbus.EventPreferencesChanged,
}

// ForwardEvents delivers bus events to the program as EventMsg so the screen
// repaints when a search settles. The returned func stops forwarding.
func ForwardEvents(bus eventbus.EventBus, p Sender) func() {
	unsubscribe := make([]func(), 0, len(forwardedEvents))
	for _, t := range forwardedEvents {
		unsubscribe = append(unsubscribe, bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(EventMsg{Event: e})
		}))
	}
	return func() {
		for _, u := range unsubscribe {
			u()
		}
	}
}
