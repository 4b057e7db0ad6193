package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serraturismo/internal/domain"
)

type fakeAdminRepo struct {
	byEmail map[string]*domain.AdminUser
}

func (f *fakeAdminRepo) Create(ctx context.Context, u *domain.AdminUser) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

// plainHasher compares hash == salt+password, good enough for service tests.
type plainHasher struct{}

func (plainHasher) GenerateSalt() (string, error)            { return "salt", nil }
func (plainHasher) Hash(salt, password string) (string, error) { return salt + password, nil }
func (plainHasher) Compare(hash, salt, password string) error {
	if hash != salt+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct {
	issueErr error
}

func (f *fakeIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "token-for-" + userID, nil
}

func TestAuthService_Login(t *testing.T) {
	repo := &fakeAdminRepo{byEmail: map[string]*domain.AdminUser{
		"admin@example.com": {
			ID:           "ad-1",
			Email:        "admin@example.com",
			Salt:         "salt",
			PasswordHash: "salt" + "s3cret",
		},
	}}
	svc := NewAuthService(repo, plainHasher{}, &fakeIssuer{}, time.Hour, time.Second)

	t.Run("success", func(t *testing.T) {
		token, user, err := svc.Login(context.Background(), "admin@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "token-for-ad-1", token)
		assert.Equal(t, "ad-1", user.ID)
	})

	t.Run("email is normalized", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "  Admin@Example.COM ", "s3cret")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "admin@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown account looks like wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
