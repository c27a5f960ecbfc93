package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted      EventType = "SearchStarted"
	EventSearchApplied      EventType = "SearchApplied"
	EventSearchFailed       EventType = "SearchFailed"
	EventSearchDiscarded    EventType = "SearchDiscarded"
	EventSearchCleared      EventType = "SearchCleared"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
	EventPreferencesChanged EventType = "PreferencesChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a fetch is issued
type SearchStartedEvent struct {
	Source string // resource the search runs against, e.g. "books"
	Seq    uint64
	Query  string
	Page   int
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchAppliedEvent is emitted when the newest fetch succeeds and its page becomes visible
type SearchAppliedEvent struct {
	Source     string
	Seq        uint64
	Query      string
	Page       int
	Count      int
	TotalPages int
}

func (e SearchAppliedEvent) Type() EventType { return EventSearchApplied }

// SearchFailedEvent is emitted when the newest fetch fails
type SearchFailedEvent struct {
	Source  string
	Seq     uint64
	Query   string
	Page    int
	Message string
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchDiscardedEvent is emitted when a fetch resolves after a newer one was issued
type SearchDiscardedEvent struct {
	Source string
	Seq    uint64
	Latest uint64
	Query  string
	Page   int
}

func (e SearchDiscardedEvent) Type() EventType { return EventSearchDiscarded }

// SearchClearedEvent is emitted when the visible results are reset without a fetch
type SearchClearedEvent struct {
	Source string
	Seq    uint64
}

func (e SearchClearedEvent) Type() EventType { return EventSearchCleared }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// PreferencesChangedEvent is emitted when a UI preference changes
type PreferencesChangedEvent struct {
	SidebarOpen      bool
	SidebarCollapsed bool
}

func (e PreferencesChangedEvent) Type() EventType { return EventPreferencesChanged }
