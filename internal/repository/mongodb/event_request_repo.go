package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"serraturismo/internal/domain"
)

type eventRequestRepository struct {
	client   *mongo.Client
	requests *mongo.Collection
	events   *mongo.Collection
}

// NewEventRequestRepository returns an EventRequestRepository backed by the
// eventRequests collection. The client is kept for the approval transaction.
func NewEventRequestRepository(client *mongo.Client, db *mongo.Database) domain.EventRequestRepository {
	return &eventRequestRepository{
		client:   client,
		requests: db.Collection(eventRequestsCollection),
		events:   db.Collection(eventsCollection),
	}
}

func (r *eventRequestRepository) Create(ctx context.Context, req *domain.EventRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	_, err := r.requests.InsertOne(ctx, req)
	return err
}

func (r *eventRequestRepository) GetByID(ctx context.Context, id string) (*domain.EventRequest, error) {
	var req domain.EventRequest
	if err := r.requests.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *eventRequestRepository) List(ctx context.Context) ([]*domain.EventRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cur, err := r.requests.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.EventRequest
	for cur.Next(ctx) {
		var req domain.EventRequest
		if err := cur.Decode(&req); err != nil {
			return nil, err
		}
		out = append(out, &req)
	}
	return out, cur.Err()
}

// Approve flips the request from pending to approved and inserts the spawned
// event in one transaction. The pending-only filter doubles as the guard
// against double-approval: a request can spawn at most one event, even under
// concurrent review.
func (r *eventRequestRepository) Approve(ctx context.Context, id string, event *domain.Event, reviewedAt time.Time) (*domain.EventRequest, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		update := bson.M{"$set": bson.M{
			"status":     domain.ReviewApproved,
			"reviewedAt": reviewedAt,
		}}
		var req domain.EventRequest
		err := r.requests.FindOneAndUpdate(sc,
			bson.M{"id": id, "status": domain.ReviewPending}, update, opts).Decode(&req)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		if _, err := r.events.InsertOne(sc, event); err != nil {
			return nil, err
		}
		return &req, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.EventRequest), nil
}

func (r *eventRequestRepository) Reject(ctx context.Context, id, reason string, reviewedAt time.Time) (*domain.EventRequest, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"status":          domain.ReviewRejected,
		"rejectionReason": reason,
		"reviewedAt":      reviewedAt,
	}}
	var req domain.EventRequest
	err := r.requests.FindOneAndUpdate(ctx,
		bson.M{"id": id, "status": domain.ReviewPending}, update, opts).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}
