package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance,
	// such as credit decisions. These require durable storage and long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and operational
	// visibility, such as upstream outages. These can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID            uuid.UUID     `json:"id"`
	Category      EventCategory `json:"category"`
	Timestamp     time.Time     `json:"timestamp"`
	Action        string        `json:"action"`
	ApplicationID int           `json:"application_id"`
	Decision      string        `json:"decision,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	Stage         string        `json:"stage,omitempty"`
	// CorrelationID ties together every event and log line of one Process call.
	CorrelationID string `json:"correlation_id,omitempty"`
}

type AuditEvent string

const (
	EventLoanDecisionMade   AuditEvent = "loan_decision_made"
	EventIdentityFailure    AuditEvent = "identity_service_failure"
	EventScoringUnavailable AuditEvent = "scoring_unavailable"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventLoanDecisionMade:   CategoryCompliance,
	EventIdentityFailure:    CategoryOperations,
	EventScoringUnavailable: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// NewEvent stamps an event with an ID, category and timestamp.
func NewEvent(action AuditEvent, applicationID int, at time.Time) Event {
	return Event{
		ID:            uuid.New(),
		Category:      action.Category(),
		Timestamp:     at,
		Action:        string(action),
		ApplicationID: applicationID,
	}
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByApplication(ctx context.Context, applicationID int) ([]Event, error)
}
