package infrastructure

import (
	"fmt"

	"qabum/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeConfigUpdated:
		return "config.updated"
	case events.EventTypeSplitComputed:
		return "transaction.split_computed"
	case events.EventTypeAdvanceEvaluated:
		return "advance.evaluated"
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "config.updated":
		return events.EventTypeConfigUpdated
	case "transaction.split_computed":
		return events.EventTypeSplitComputed
	case "advance.evaluated":
		return events.EventTypeAdvanceEvaluated
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"config.updated",
		"transaction.split_computed",
		"advance.evaluated",
	}
}
