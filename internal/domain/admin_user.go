package domain

import (
	"context"
	"time"
)

// AdminUser is a back-office account able to review submissions and manage events.
type AdminUser struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Salt         string    `bson:"salt" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
}

// AdminUserRepository defines the interface for admin account storage.
type AdminUserRepository interface {
	Create(ctx context.Context, u *AdminUser) error
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
}

// TokenIssuer signs session tokens for authenticated admins.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier validates a session token and returns the admin user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// PasswordHasher hashes and verifies admin passwords.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (string, error)
	Compare(hash, salt, password string) error
}

// AuthService authenticates admins.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *AdminUser, error)
}
