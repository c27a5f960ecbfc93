// Package prefs holds UI preferences for the lifetime of the process.
//
// A Store is created once by main and handed to whoever needs it. Nothing is
// persisted implicitly: callers decide when to Load and Save.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"shelfwise/internal/eventbus"
)

// Persisted is the subset of preferences written to disk
type Persisted struct {
	SidebarCollapsed bool `toml:"sidebar_collapsed"`
}

// Store holds sidebar state. The open flag lives only in memory.
type Store struct {
	bus eventbus.EventBus

	mu        sync.RWMutex
	open      bool
	persisted Persisted
}

// NewStore creates an empty store; bus may be nil
func NewStore(bus eventbus.EventBus) *Store {
	return &Store{bus: bus}
}

// IsOpen reports whether the sidebar is shown
func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

// IsCollapsed reports whether the sidebar is collapsed to its narrow form
func (s *Store) IsCollapsed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persisted.SidebarCollapsed
}

// Toggle flips the open flag
func (s *Store) Toggle() {
	s.update(func() { s.open = !s.open })
}

// Open shows the sidebar
func (s *Store) Open() {
	s.update(func() { s.open = true })
}

// Close hides the sidebar
func (s *Store) Close() {
	s.update(func() { s.open = false })
}

// SetCollapsed sets the collapsed preference
func (s *Store) SetCollapsed(collapsed bool) {
	s.update(func() { s.persisted.SidebarCollapsed = collapsed })
}

// ToggleCollapsed flips the collapsed preference
func (s *Store) ToggleCollapsed() {
	s.update(func() { s.persisted.SidebarCollapsed = !s.persisted.SidebarCollapsed })
}

// Persisted returns the values that Save would write
func (s *Store) Persisted() Persisted {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persisted
}

func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	event := eventbus.PreferencesChangedEvent{SidebarOpen: s.open, SidebarCollapsed: s.persisted.SidebarCollapsed}
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(event)
	}
}

// Marshal encodes the persisted preferences
func (s *Store) Marshal() ([]byte, error) {
	data, err := toml.Marshal(s.Persisted())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferences: %w", err)
	}
	return data, nil
}

// Unmarshal replaces the persisted preferences with data
func (s *Store) Unmarshal(data []byte) error {
	var p Persisted
	if err := toml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}
	s.mu.Lock()
	s.persisted = p
	s.mu.Unlock()
	return nil
}

// Load reads preferences from path. A missing file leaves the defaults in place.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}
	return s.Unmarshal(data)
}

// Save writes preferences to path
func (s *Store) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
