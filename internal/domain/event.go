package domain

import (
	"context"
	"time"
)

// EventCategory classifies an event for listing filters.
type EventCategory string

const (
	CategoryConference EventCategory = "conference"
	CategoryWorkshop   EventCategory = "workshop"
	CategorySeminar    EventCategory = "seminar"
	CategoryExhibition EventCategory = "exhibition"
	CategoryNetworking EventCategory = "networking"
	CategoryCultural   EventCategory = "cultural"
	CategorySports     EventCategory = "sports"
	CategoryOther      EventCategory = "other"
)

// IsValid reports whether c is one of the known categories.
func (c EventCategory) IsValid() bool {
	switch c {
	case CategoryConference, CategoryWorkshop, CategorySeminar, CategoryExhibition,
		CategoryNetworking, CategoryCultural, CategorySports, CategoryOther:
		return true
	}
	return false
}

// EventStatus is the publication state of an event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
	// EventOpen is the status assigned to events spawned from an approved request.
	EventOpen EventStatus = "open"
)

// IsValid reports whether s is one of the known statuses.
func (s EventStatus) IsValid() bool {
	switch s {
	case EventUpcoming, EventOngoing, EventCompleted, EventCancelled, EventOpen:
		return true
	}
	return false
}

// Event is a published event on the bureau's agenda. Created by an admin
// directly or spawned by approving an EventRequest.
type Event struct {
	ID           string        `bson:"id" json:"id"`
	Title        string        `bson:"title" json:"title"`
	Description  string        `bson:"description" json:"description"`
	Date         time.Time     `bson:"date" json:"date"`
	EndDate      *time.Time    `bson:"endDate,omitempty" json:"end_date,omitempty"`
	Location     string        `bson:"location" json:"location"`
	ImageURL     string        `bson:"imageUrl,omitempty" json:"image_url,omitempty"`
	ExternalLink string        `bson:"externalLink,omitempty" json:"external_link,omitempty"`
	IsFeatured   bool          `bson:"isFeatured" json:"is_featured"`
	Category     EventCategory `bson:"category" json:"category"`
	Status       EventStatus   `bson:"status" json:"status"`
	CreatedAt    time.Time     `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updated_at"`
}

// EventUpdate carries an admin edit. Nil fields are left unchanged.
type EventUpdate struct {
	Title        *string
	Description  *string
	Date         *time.Time
	EndDate      *time.Time
	Location     *string
	ImageURL     *string
	ExternalLink *string
	Category     *EventCategory
	Status       *EventStatus
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate, updatedAt time.Time) (*Event, error)
	SetFeatured(ctx context.Context, id string, featured bool, updatedAt time.Time) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines admin and public operations on events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	ToggleFeatured(ctx context.Context, id string) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
