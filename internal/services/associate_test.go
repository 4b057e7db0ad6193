package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serraturismo/internal/adapters/storage"
	"serraturismo/internal/domain"
)

// fakeAssociateRepo is an in-memory AssociateRepository for tests.
type fakeAssociateRepo struct {
	byID      map[string]*domain.Associate
	nextID    int
	deleteErr error
}

func newFakeAssociateRepo() *fakeAssociateRepo {
	return &fakeAssociateRepo{byID: make(map[string]*domain.Associate), nextID: 1}
}

func (f *fakeAssociateRepo) Create(ctx context.Context, a *domain.Associate) error {
	a.ID = fmt.Sprintf("as-%d", f.nextID)
	f.nextID++
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAssociateRepo) GetByID(ctx context.Context, id string) (*domain.Associate, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAssociateRepo) List(ctx context.Context) ([]*domain.Associate, error) {
	var out []*domain.Associate
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAssociateRepo) UpdateStatus(ctx context.Context, id string, status domain.ReviewStatus, updatedAt time.Time) (*domain.Associate, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = updatedAt
	return a, nil
}

func (f *fakeAssociateRepo) SetLogoURL(ctx context.Context, id, logoURL string, updatedAt time.Time) (*domain.Associate, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.LogoURL = logoURL
	a.UpdatedAt = updatedAt
	return a, nil
}

func (f *fakeAssociateRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeStorage records calls; deleteErr simulates an unreachable object store.
type fakeStorage struct {
	putURL      string
	putErr      error
	deleteErr   error
	lastPut     storage.UploadInput
	deletedKeys []string
}

func (f *fakeStorage) PutObject(ctx context.Context, in storage.UploadInput) (string, error) {
	f.lastPut = in
	if f.putErr != nil {
		return "", f.putErr
	}
	return f.putURL, nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, key string) error {
	f.deletedKeys = append(f.deletedKeys, key)
	return f.deleteErr
}

func (f *fakeStorage) KeyFromURL(url string) string {
	return strings.TrimPrefix(url, "https://cdn.example.com/")
}

func testAssociateService(repo domain.AssociateRepository, assets storage.Service) domain.AssociateService {
	return NewAssociateService(repo, assets, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second)
}

func submittedAssociate(t *testing.T, svc domain.AssociateService) *domain.Associate {
	t.Helper()
	a := &domain.Associate{
		Name:     "Pousada Serra Azul",
		Category: "Hospedagem",
		Registration: &domain.AssociateRegistration{
			ResponsibleName:  "João Lima",
			ResponsibleEmail: "joao@example.com",
		},
	}
	require.NoError(t, svc.Submit(context.Background(), a))
	return a
}

func TestAssociateService_Submit(t *testing.T) {
	repo := newFakeAssociateRepo()
	svc := testAssociateService(repo, nil)

	a := submittedAssociate(t, svc)
	assert.Equal(t, domain.ReviewPending, a.Status)
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	err := svc.Submit(context.Background(), &domain.Associate{Name: " ", Category: "Hospedagem"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.Submit(context.Background(), &domain.Associate{
		Name:         "Bad Email",
		Category:     "Comércio",
		Registration: &domain.AssociateRegistration{ResponsibleEmail: "nope"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssociateService_StatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.ReviewStatus
		approve bool
		wantErr error
		want    domain.ReviewStatus
	}{
		{"pending to approved", domain.ReviewPending, true, nil, domain.ReviewApproved},
		{"pending to rejected", domain.ReviewPending, false, nil, domain.ReviewRejected},
		// Unlike event requests, the terminal states stay correctable.
		{"rejected to approved", domain.ReviewRejected, true, nil, domain.ReviewApproved},
		{"approved to rejected", domain.ReviewApproved, false, nil, domain.ReviewRejected},
		{"approved to approved", domain.ReviewApproved, true, domain.ErrInvalidStatus, domain.ReviewApproved},
		{"rejected to rejected", domain.ReviewRejected, false, domain.ErrInvalidStatus, domain.ReviewRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAssociateRepo()
			svc := testAssociateService(repo, nil)
			a := submittedAssociate(t, svc)
			a.Status = tt.from

			var got *domain.Associate
			var err error
			if tt.approve {
				got, err = svc.Approve(context.Background(), a.ID)
			} else {
				got, err = svc.Reject(context.Background(), a.ID)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.want, repo.byID[a.ID].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestAssociateService_TransitionUnknownID(t *testing.T) {
	svc := testAssociateService(newFakeAssociateRepo(), nil)
	_, err := svc.Approve(context.Background(), "as-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssociateService_DeleteRemovesLogoFirst(t *testing.T) {
	repo := newFakeAssociateRepo()
	assets := &fakeStorage{}
	svc := testAssociateService(repo, assets)
	a := submittedAssociate(t, svc)
	a.LogoURL = "https://cdn.example.com/logos/as-1/logo.png"

	require.NoError(t, svc.Delete(context.Background(), a.ID))
	assert.Equal(t, []string{"logos/as-1/logo.png"}, assets.deletedKeys)
	assert.NotContains(t, repo.byID, a.ID)
}

func TestAssociateService_DeleteSurvivesStorageFailure(t *testing.T) {
	repo := newFakeAssociateRepo()
	assets := &fakeStorage{deleteErr: errors.New("bucket unreachable")}
	svc := testAssociateService(repo, assets)
	a := submittedAssociate(t, svc)
	a.LogoURL = "https://cdn.example.com/logos/as-1/logo.png"

	// The asset delete is best-effort: its failure must not block the
	// document delete.
	require.NoError(t, svc.Delete(context.Background(), a.ID))
	assert.NotContains(t, repo.byID, a.ID)
}

func TestAssociateService_DeleteWithoutLogoSkipsStorage(t *testing.T) {
	repo := newFakeAssociateRepo()
	assets := &fakeStorage{}
	svc := testAssociateService(repo, assets)
	a := submittedAssociate(t, svc)

	require.NoError(t, svc.Delete(context.Background(), a.ID))
	assert.Empty(t, assets.deletedKeys)
}

func TestAssociateService_AttachLogo(t *testing.T) {
	repo := newFakeAssociateRepo()
	assets := &fakeStorage{putURL: "https://cdn.example.com/logos/as-1/abc.png"}
	svc := testAssociateService(repo, assets)
	a := submittedAssociate(t, svc)

	updated, err := svc.AttachLogo(context.Background(), a.ID, domain.LogoUpload{
		FileName:    "logo.png",
		ContentType: "image/png",
		Size:        1024,
		Body:        strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, assets.putURL, updated.LogoURL)
	assert.True(t, strings.HasPrefix(assets.lastPut.Key, "logos/"+a.ID+"/"))
	assert.True(t, strings.HasSuffix(assets.lastPut.Key, ".png"))
}

func TestAssociateService_AttachLogoValidation(t *testing.T) {
	repo := newFakeAssociateRepo()
	assets := &fakeStorage{putURL: "https://cdn.example.com/x"}
	svc := testAssociateService(repo, assets)
	a := submittedAssociate(t, svc)

	tests := []struct {
		name   string
		upload domain.LogoUpload
	}{
		{"non-image content type", domain.LogoUpload{FileName: "doc.pdf", ContentType: "application/pdf", Size: 10, Body: strings.NewReader("x")}},
		{"zero size", domain.LogoUpload{FileName: "logo.png", ContentType: "image/png", Size: 0, Body: strings.NewReader("")}},
		{"oversized", domain.LogoUpload{FileName: "logo.png", ContentType: "image/png", Size: domain.MaxLogoSize + 1, Body: strings.NewReader("x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AttachLogo(context.Background(), a.ID, tt.upload)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAssociateService_AttachLogoWithoutStore(t *testing.T) {
	svc := testAssociateService(newFakeAssociateRepo(), nil)
	_, err := svc.AttachLogo(context.Background(), "as-1", domain.LogoUpload{
		FileName: "logo.png", ContentType: "image/png", Size: 10, Body: strings.NewReader("x"),
	})
	assert.Error(t, err)
}
