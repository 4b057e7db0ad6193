package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"serraturismo/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type eventRequestService struct {
	requestRepo    domain.EventRequestRepository
	contextTimeout time.Duration
}

// NewEventRequestService creates an EventRequestService with the given repository.
func NewEventRequestService(requestRepo domain.EventRequestRepository, timeout time.Duration) domain.EventRequestService {
	return &eventRequestService{
		requestRepo:    requestRepo,
		contextTimeout: timeout,
	}
}

func (s *eventRequestService) Submit(ctx context.Context, req *domain.EventRequest) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req.Title = strings.TrimSpace(req.Title)
	req.SubmittedBy.Name = strings.TrimSpace(req.SubmittedBy.Name)
	req.SubmittedBy.Email = strings.TrimSpace(strings.ToLower(req.SubmittedBy.Email))
	if req.Title == "" || req.Location == "" || req.Date.IsZero() || req.SubmittedBy.Name == "" {
		return domain.ErrInvalidInput
	}
	if !emailRegexp.MatchString(req.SubmittedBy.Email) {
		return domain.ErrInvalidInput
	}
	if !req.Category.IsValid() {
		return domain.ErrInvalidInput
	}

	req.Status = domain.ReviewPending
	req.SubmittedAt = time.Now()
	req.ReviewedAt = nil
	req.RejectionReason = ""
	return s.requestRepo.Create(ctx, req)
}

func (s *eventRequestService) GetByID(ctx context.Context, id string) (*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event request: %w", err)
	}
	return req, nil
}

func (s *eventRequestService) List(ctx context.Context) ([]*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event requests: %w", err)
	}
	if requests == nil {
		requests = []*domain.EventRequest{}
	}
	return requests, nil
}

// Approve builds the published Event from the pending request and commits
// both writes through the repository's transactional Approve. The spawned
// event copies the descriptive fields, is never featured, and starts with
// status "open"; endDate and externalLink carry over only when present.
// Sending the approval email is the caller's concern, so a mail failure can
// never undo the transition.
func (s *eventRequestService) Approve(ctx context.Context, id string) (*domain.Event, *domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event request: %w", err)
	}
	if req.Status != domain.ReviewPending {
		return nil, nil, domain.ErrInvalidStatus
	}

	now := time.Now()
	event := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsFeatured:  false,
		Status:      domain.EventOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.EndDate != nil {
		end := *req.EndDate
		event.EndDate = &end
	}
	if req.ExternalLink != "" {
		event.ExternalLink = req.ExternalLink
	}

	reviewed, err := s.requestRepo.Approve(ctx, id, event, now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Lost a race with another reviewer; nothing was written.
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("approve event request: %w", err)
	}
	return event, reviewed, nil
}

func (s *eventRequestService) Reject(ctx context.Context, id, reason string) (*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}

	req, err := s.requestRepo.Reject(ctx, id, reason, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reject event request: %w", err)
	}
	return req, nil
}
