package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventLookupIssued  EventType = "LookupIssued"
	EventLookupSettled EventType = "LookupSettled"
	EventViewReset     EventType = "ViewReset"
	EventConfigLoaded  EventType = "ConfigLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// LookupIssuedEvent is emitted when a request leaves for the answer service
type LookupIssuedEvent struct {
	Seq      uint64
	Question string
}

func (e LookupIssuedEvent) Type() EventType { return EventLookupIssued }

// LookupSettledEvent is emitted when a request completes, whatever the result
type LookupSettledEvent struct {
	Seq      uint64
	Question string
	Outcome  string
	Elapsed  time.Duration
	Err      error
}

func (e LookupSettledEvent) Type() EventType { return EventLookupSettled }

// ViewResetEvent is emitted when the view falls back to the placeholder record
type ViewResetEvent struct {
	Reason string
}

func (e ViewResetEvent) Type() EventType { return EventViewReset }

// ConfigLoadedEvent is emitted once the configuration has been resolved
type ConfigLoadedEvent struct {
	Path     string
	Endpoint string
	Trigger  string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
