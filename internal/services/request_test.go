package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serraturismo/internal/domain"
)

// fakeRequestRepo is an in-memory EventRequestRepository. Approve and Reject
// mirror the store's conditional update: they only touch pending requests and
// answer ErrNotFound otherwise.
type fakeRequestRepo struct {
	byID      map[string]*domain.EventRequest
	events    []*domain.Event
	nextID    int
	createErr error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: make(map[string]*domain.EventRequest), nextID: 1}
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *domain.EventRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	req.ID = fmt.Sprintf("rq-%d", f.nextID)
	f.nextID++
	f.byID[req.ID] = req
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*domain.EventRequest, error) {
	if req, ok := f.byID[id]; ok {
		return req, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRequestRepo) List(ctx context.Context) ([]*domain.EventRequest, error) {
	var out []*domain.EventRequest
	for _, req := range f.byID {
		out = append(out, req)
	}
	return out, nil
}

func (f *fakeRequestRepo) Approve(ctx context.Context, id string, event *domain.Event, reviewedAt time.Time) (*domain.EventRequest, error) {
	req, ok := f.byID[id]
	if !ok || req.Status != domain.ReviewPending {
		return nil, domain.ErrNotFound
	}
	req.Status = domain.ReviewApproved
	req.ReviewedAt = &reviewedAt
	event.ID = "ev-spawned"
	f.events = append(f.events, event)
	return req, nil
}

func (f *fakeRequestRepo) Reject(ctx context.Context, id, reason string, reviewedAt time.Time) (*domain.EventRequest, error) {
	req, ok := f.byID[id]
	if !ok || req.Status != domain.ReviewPending {
		return nil, domain.ErrNotFound
	}
	req.Status = domain.ReviewRejected
	req.RejectionReason = reason
	req.ReviewedAt = &reviewedAt
	return req, nil
}

func pendingRequest() *domain.EventRequest {
	return &domain.EventRequest{
		Title:       "Festival de Inverno",
		Description: "Três dias de shows",
		Date:        time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		Location:    "Parque Municipal",
		ImageURL:    "https://cdn.example.com/festival.jpg",
		Category:    domain.CategoryCultural,
		SubmittedBy: domain.Submitter{
			Name:  "Maria Souza",
			Email: "maria@example.com",
		},
	}
}

func TestEventRequestService_Submit(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *domain.EventRequest)
		wantErr error
	}{
		{"valid", func(req *domain.EventRequest) {}, nil},
		{"missing title", func(req *domain.EventRequest) { req.Title = "  " }, domain.ErrInvalidInput},
		{"missing location", func(req *domain.EventRequest) { req.Location = "" }, domain.ErrInvalidInput},
		{"zero date", func(req *domain.EventRequest) { req.Date = time.Time{} }, domain.ErrInvalidInput},
		{"missing submitter name", func(req *domain.EventRequest) { req.SubmittedBy.Name = "" }, domain.ErrInvalidInput},
		{"malformed email", func(req *domain.EventRequest) { req.SubmittedBy.Email = "not-an-email" }, domain.ErrInvalidInput},
		{"unknown category", func(req *domain.EventRequest) { req.Category = "festa" }, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRequestRepo()
			svc := NewEventRequestService(repo, time.Second)
			req := pendingRequest()
			tt.mutate(req)

			err := svc.Submit(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.byID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.ReviewPending, req.Status)
			assert.False(t, req.SubmittedAt.IsZero())
		})
	}
}

func TestEventRequestService_SubmitForcesPendingState(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewEventRequestService(repo, time.Second)

	reviewed := time.Now()
	req := pendingRequest()
	req.Status = domain.ReviewApproved
	req.ReviewedAt = &reviewed
	req.RejectionReason = "stale"
	req.SubmittedBy.Email = "Maria@Example.COM"

	require.NoError(t, svc.Submit(context.Background(), req))
	assert.Equal(t, domain.ReviewPending, req.Status)
	assert.Nil(t, req.ReviewedAt)
	assert.Empty(t, req.RejectionReason)
	assert.Equal(t, "maria@example.com", req.SubmittedBy.Email)
}

func TestEventRequestService_Approve(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewEventRequestService(repo, time.Second)
	req := pendingRequest()
	end := req.Date.AddDate(0, 0, 2)
	req.EndDate = &end
	req.ExternalLink = "https://festival.example.com"
	require.NoError(t, svc.Submit(context.Background(), req))

	event, reviewed, err := svc.Approve(context.Background(), req.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ReviewApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedAt)

	// The spawned event copies the descriptive fields and starts unfeatured
	// with status "open".
	assert.Equal(t, req.Title, event.Title)
	assert.Equal(t, req.Description, event.Description)
	assert.Equal(t, req.Date, event.Date)
	assert.Equal(t, req.Location, event.Location)
	assert.Equal(t, req.ImageURL, event.ImageURL)
	assert.Equal(t, req.Category, event.Category)
	assert.Equal(t, req.ExternalLink, event.ExternalLink)
	require.NotNil(t, event.EndDate)
	assert.Equal(t, end, *event.EndDate)
	assert.False(t, event.IsFeatured)
	assert.Equal(t, domain.EventOpen, event.Status)

	require.Len(t, repo.events, 1)
	assert.Equal(t, event, repo.events[0])
}

func TestEventRequestService_ApproveOmitsAbsentOptionalFields(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewEventRequestService(repo, time.Second)
	req := pendingRequest()
	require.NoError(t, svc.Submit(context.Background(), req))

	event, _, err := svc.Approve(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Nil(t, event.EndDate)
	assert.Empty(t, event.ExternalLink)
}

func TestEventRequestService_ApproveIsTerminal(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewEventRequestService(repo, time.Second)
	req := pendingRequest()
	require.NoError(t, svc.Submit(context.Background(), req))

	_, _, err := svc.Approve(context.Background(), req.ID)
	require.NoError(t, err)

	// Second review of the same request fails and spawns nothing.
	_, _, err = svc.Approve(context.Background(), req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = svc.Reject(context.Background(), req.ID, "late")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, repo.events, 1)
}

func TestEventRequestService_ApproveUnknownID(t *testing.T) {
	svc := NewEventRequestService(newFakeRequestRepo(), time.Second)
	_, _, err := svc.Approve(context.Background(), "rq-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventRequestService_Reject(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewEventRequestService(repo, time.Second)
	req := pendingRequest()
	require.NoError(t, svc.Submit(context.Background(), req))

	reviewed, err := svc.Reject(context.Background(), req.ID, "data conflita com outro evento")
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewRejected, reviewed.Status)
	assert.Equal(t, "data conflita com outro evento", reviewed.RejectionReason)
	require.NotNil(t, reviewed.ReviewedAt)
	assert.Empty(t, repo.events)
}

func TestEventRequestService_RejectRequiresReason(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewEventRequestService(repo, time.Second)
	req := pendingRequest()
	require.NoError(t, svc.Submit(context.Background(), req))

	for _, reason := range []string{"", "   "} {
		_, err := svc.Reject(context.Background(), req.ID, reason)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, domain.ReviewPending, repo.byID[req.ID].Status)
}
