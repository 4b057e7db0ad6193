package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"serraturismo/internal/domain"
)

type associateRepository struct {
	col *mongo.Collection
}

// NewAssociateRepository returns an AssociateRepository backed by the
// associates collection.
func NewAssociateRepository(db *mongo.Database) domain.AssociateRepository {
	return &associateRepository{col: db.Collection(associatesCollection)}
}

func (r *associateRepository) Create(ctx context.Context, a *domain.Associate) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *associateRepository) GetByID(ctx context.Context, id string) (*domain.Associate, error) {
	var a domain.Associate
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *associateRepository) List(ctx context.Context) ([]*domain.Associate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Associate
	for cur.Next(ctx) {
		var a domain.Associate
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, cur.Err()
}

func (r *associateRepository) UpdateStatus(ctx context.Context, id string, status domain.ReviewStatus, updatedAt time.Time) (*domain.Associate, error) {
	return r.findOneAndSet(ctx, id, bson.M{"status": status, "updatedAt": updatedAt})
}

func (r *associateRepository) SetLogoURL(ctx context.Context, id, logoURL string, updatedAt time.Time) (*domain.Associate, error) {
	return r.findOneAndSet(ctx, id, bson.M{"logoUrl": logoURL, "updatedAt": updatedAt})
}

func (r *associateRepository) findOneAndSet(ctx context.Context, id string, set bson.M) (*domain.Associate, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a domain.Associate
	err := r.col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *associateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
