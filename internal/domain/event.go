package domain

import (
	"context"
	"strings"
	"time"
)

// Category is the closed set of event categories.
type Category string

const (
	CategoryAcademic Category = "Academic"
	CategoryTech     Category = "Tech and Innovation"
	CategoryCultural Category = "Cultural & Entertainment"
	CategoryFestival Category = "Festival"
	CategorySports   Category = "Sports"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryAcademic,
	CategoryTech,
	CategoryCultural,
	CategoryFestival,
	CategorySports,
}

// Valid reports whether c is one of Categories. Matching is exact.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Organizer is the public projection of an event's organizer. The organizer id is never exposed.
type Organizer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Attendee is the public projection of a registered user.
type Attendee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event represents a university event
// swagger:model Event
type Event struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Date             time.Time  `json:"date"`
	Location         string     `json:"location"`
	Category         Category   `json:"category"`
	RegistrationLink string     `json:"registrationLink,omitempty"`
	OrganizerID      string     `json:"-"`
	Organizer        *Organizer `json:"organizer,omitempty"`
	Image            string     `json:"image,omitempty"`
	Attendees        []Attendee `json:"attendees,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// EventInput holds the client supplied fields of an event. On update nil fields are left unchanged.
type EventInput struct {
	Title            *string
	Description      *string
	Date             *time.Time
	Location         *string
	Category         *Category
	RegistrationLink *string
	Image            *ImageUpload
}

// EventPatch is the set of columns an update writes.
type EventPatch struct {
	Title            *string
	Description      *string
	Date             *time.Time
	Location         *string
	Category         *Category
	RegistrationLink *string
	Image            *string
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil && p.Location == nil &&
		p.Category == nil && p.RegistrationLink == nil && p.Image == nil
}

// EventFilter narrows a listing. Zero values mean no constraint.
// Date bounds form the half open range [From, To).
type EventFilter struct {
	Title string
	From  *time.Time
	To    *time.Time
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	// Update applies patch only if the event belongs to organizerID and returns the
	// updated event together with the image reference it held before the update.
	Update(ctx context.Context, id, organizerID string, patch EventPatch) (event *Event, previousImage string, err error)
	// Delete removes the event only if it belongs to organizerID and returns its image reference.
	Delete(ctx context.Context, id, organizerID string) (image string, err error)
	ListImageRefs(ctx context.Context) ([]string, error)
}

// dateLayouts are the accepted event date forms, tried in order. Values without a zone are UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses a client supplied date. Unparseable input yields ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// DayRange returns the UTC calendar day containing t as the half open range [start, end).
func DayRange(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// ListEventsParams carries the raw query filters of a listing.
type ListEventsParams struct {
	Title string
	Date  string
}

// EventService defines the business logic for events.
type EventService interface {
	Create(ctx context.Context, input EventInput, organizerID string) (*Event, error)
	List(ctx context.Context, params ListEventsParams) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, id string, input EventInput, callerID string) (*Event, error)
	Delete(ctx context.Context, id, callerID string) error
}
