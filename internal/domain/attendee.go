package domain

import (
	"context"
	"time"
)

// EventRegistration represents an attendee's registration for an event.
// swagger:model EventRegistration
type EventRegistration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEventRegistration creates a new EventRegistration. ID is typically set by the repository on create.
func NewEventRegistration(eventID, userID string, createdAt time.Time) *EventRegistration {
	return &EventRegistration{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
}

// EventRegistrationRepository defines storage operations for event registrations.
type EventRegistrationRepository interface {
	// Create returns ErrAlreadyRegistered when the pair already exists.
	Create(ctx context.Context, reg *EventRegistration) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventRegistration, error)
	ListByUserID(ctx context.Context, userID string) ([]*EventRegistration, error)
	ListAttendees(ctx context.Context, eventID string) ([]Attendee, error)
	// Delete returns ErrNotRegistered when there was nothing to remove.
	Delete(ctx context.Context, eventID, userID string) error
}

// EventRegistrationWithEvent bundles a registration with its related event.
type EventRegistrationWithEvent struct {
	Registration *EventRegistration `json:"registration"`
	Event        *Event             `json:"event"`
}

// AttendeeService defines attendee-facing operations such as event registration.
type AttendeeService interface {
	RegisterForEvent(ctx context.Context, eventID, userID string) (*EventRegistration, error)
	UnregisterFromEvent(ctx context.Context, eventID, userID string) error
	ListMyRegisteredEvents(ctx context.Context, userID string) ([]*EventRegistrationWithEvent, error)
}
