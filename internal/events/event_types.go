package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubmissionCreated       EventType = "submission_created"
	EventSubmissionStatusChanged EventType = "submission_status_changed"
	EventSubmissionDeleted       EventType = "submission_deleted"
)

// EntityKind names the submission an event is about.
type EntityKind string

const (
	EntityContact EntityKind = "contact"
	EntityDemo    EntityKind = "demo"
	EntityMeeting EntityKind = "meeting"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Entity    EntityKind  `json:"entity"`
	EntityID  string      `json:"entityId"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// SubmissionCreatedPayload payload.
type SubmissionCreatedPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service,omitempty"`
	Status  string `json:"status"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}
