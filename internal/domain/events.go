package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventInputChanged     EventType = "InputChanged"
	EventLookupRequested  EventType = "LookupRequested"
	EventLookupCompleted  EventType = "LookupCompleted"
	EventCatalogReloaded  EventType = "CatalogReloaded"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent carries the full selection after a mutation
type SelectionChangedEvent struct {
	Selection Selection
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// InputChangedEvent is emitted on every raw text edit
type InputChangedEvent struct {
	Text string
}

func (e InputChangedEvent) Type() EventType { return EventInputChanged }

// LookupRequestedEvent is emitted when a term is forwarded to the lookup
type LookupRequestedEvent struct {
	Term   string
	Cached bool
}

func (e LookupRequestedEvent) Type() EventType { return EventLookupRequested }

// LookupCompletedEvent is emitted when a lookup for a term finishes
type LookupCompletedEvent struct {
	Term  string
	Count int
}

func (e LookupCompletedEvent) Type() EventType { return EventLookupCompleted }

// CatalogReloadedEvent is emitted after the catalog file changed on disk
type CatalogReloadedEvent struct {
	Path  string
	Count int
}

func (e CatalogReloadedEvent) Type() EventType { return EventCatalogReloaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
