package mongodb

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"serraturismo/internal/domain"
)

type adminUserRepository struct {
	col *mongo.Collection
}

// NewAdminUserRepository returns an AdminUserRepository backed by the
// adminUsers collection.
func NewAdminUserRepository(db *mongo.Database) domain.AdminUserRepository {
	return &adminUserRepository{col: db.Collection(adminUsersCollection)}
}

func (r *adminUserRepository) Create(ctx context.Context, u *domain.AdminUser) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u domain.AdminUser
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
