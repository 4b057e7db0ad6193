package domain

import (
	"context"
	"time"
)

// ReviewStatus is the moderation state shared by EventRequest and Associate.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// IsValid reports whether s is one of the known review statuses.
func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

// Submitter identifies who sent a public event request.
type Submitter struct {
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Organization string `bson:"organization,omitempty" json:"organization,omitempty"`
}

// EventRequest is a public submission proposing an event, pending admin
// review. Approval spawns an Event and makes the request immutable;
// rejection stores a reason and is likewise terminal.
type EventRequest struct {
	ID              string        `bson:"id" json:"id"`
	Title           string        `bson:"title" json:"title"`
	Description     string        `bson:"description" json:"description"`
	Date            time.Time     `bson:"date" json:"date"`
	EndDate         *time.Time    `bson:"endDate,omitempty" json:"end_date,omitempty"`
	Location        string        `bson:"location" json:"location"`
	ImageURL        string        `bson:"imageUrl,omitempty" json:"image_url,omitempty"`
	ExternalLink    string        `bson:"externalLink,omitempty" json:"external_link,omitempty"`
	Category        EventCategory `bson:"category" json:"category"`
	SubmittedBy     Submitter     `bson:"submittedBy" json:"submitted_by"`
	Status          ReviewStatus  `bson:"status" json:"status"`
	SubmittedAt     time.Time     `bson:"submittedAt" json:"submitted_at"`
	ReviewedAt      *time.Time    `bson:"reviewedAt,omitempty" json:"reviewed_at,omitempty"`
	RejectionReason string        `bson:"rejectionReason,omitempty" json:"rejection_reason,omitempty"`
}

// EventRequestRepository defines the interface for event request storage.
//
// Approve and Reject are conditional on the request still being pending and
// return ErrNotFound otherwise, so a request can be reviewed exactly once.
type EventRequestRepository interface {
	Create(ctx context.Context, req *EventRequest) error
	GetByID(ctx context.Context, id string) (*EventRequest, error)
	List(ctx context.Context) ([]*EventRequest, error)
	// Approve marks the pending request approved and inserts the spawned
	// event in a single transaction.
	Approve(ctx context.Context, id string, event *Event, reviewedAt time.Time) (*EventRequest, error)
	Reject(ctx context.Context, id, reason string, reviewedAt time.Time) (*EventRequest, error)
}

// EventRequestService defines submission and review operations for event requests.
type EventRequestService interface {
	Submit(ctx context.Context, req *EventRequest) error
	GetByID(ctx context.Context, id string) (*EventRequest, error)
	List(ctx context.Context) ([]*EventRequest, error)
	// Approve transitions a pending request to approved and returns the
	// spawned Event together with the reviewed request.
	Approve(ctx context.Context, id string) (*Event, *EventRequest, error)
	Reject(ctx context.Context, id, reason string) (*EventRequest, error)
}
