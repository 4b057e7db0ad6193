package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"serraturismo/internal/adapters/storage"
	"serraturismo/internal/domain"
)

type associateService struct {
	associateRepo  domain.AssociateRepository
	assets         storage.Service
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAssociateService creates an AssociateService. assets may be nil when no
// object store is configured; logo operations then degrade gracefully.
func NewAssociateService(associateRepo domain.AssociateRepository, assets storage.Service, logger *slog.Logger, timeout time.Duration) domain.AssociateService {
	return &associateService{
		associateRepo:  associateRepo,
		assets:         assets,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *associateService) Submit(ctx context.Context, a *domain.Associate) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	a.Name = strings.TrimSpace(a.Name)
	a.Category = strings.TrimSpace(a.Category)
	if a.Name == "" || a.Category == "" {
		return domain.ErrInvalidInput
	}
	if a.Registration != nil && a.Registration.ResponsibleEmail != "" &&
		!emailRegexp.MatchString(a.Registration.ResponsibleEmail) {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	a.Status = domain.ReviewPending
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.associateRepo.Create(ctx, a)
}

func (s *associateService) GetByID(ctx context.Context, id string) (*domain.Associate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	a, err := s.associateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get associate: %w", err)
	}
	return a, nil
}

func (s *associateService) List(ctx context.Context) ([]*domain.Associate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	associates, err := s.associateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list associates: %w", err)
	}
	if associates == nil {
		associates = []*domain.Associate{}
	}
	return associates, nil
}

func (s *associateService) Approve(ctx context.Context, id string) (*domain.Associate, error) {
	return s.transition(ctx, id, domain.ReviewApproved)
}

func (s *associateService) Reject(ctx context.Context, id string) (*domain.Associate, error) {
	return s.transition(ctx, id, domain.ReviewRejected)
}

// transition validates the associate state machine: pending may go to either
// terminal state, and approved/rejected may be flipped to each other as a
// manual correction. Nothing ever returns to pending. Event requests do not
// get the correction path; the asymmetry is intentional.
func (s *associateService) transition(ctx context.Context, id string, to domain.ReviewStatus) (*domain.Associate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	a, err := s.associateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get associate: %w", err)
	}
	if a.Status == to {
		return nil, domain.ErrInvalidStatus
	}

	updated, err := s.associateRepo.UpdateStatus(ctx, id, to, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update associate status: %w", err)
	}
	return updated, nil
}

// Delete removes the associate document. The stored logo object is deleted
// first, best-effort: a storage failure is logged and the document is still
// removed.
func (s *associateService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	a, err := s.associateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get associate: %w", err)
	}

	if a.LogoURL != "" && s.assets != nil {
		if key := s.assets.KeyFromURL(a.LogoURL); key != "" {
			if err := s.assets.DeleteObject(ctx, key); err != nil {
				s.logger.Warn("failed to delete associate logo, continuing",
					"associate_id", id, "key", key, "err", err)
			}
		}
	}

	if err := s.associateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete associate: %w", err)
	}
	return nil
}

func (s *associateService) AttachLogo(ctx context.Context, id string, upload domain.LogoUpload) (*domain.Associate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if s.assets == nil {
		return nil, fmt.Errorf("no object storage configured")
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, domain.ErrInvalidInput
	}
	if upload.Size <= 0 || upload.Size > domain.MaxLogoSize {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.associateRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get associate: %w", err)
	}

	key := fmt.Sprintf("logos/%s/%s%s", id, uuid.NewString(), path.Ext(upload.FileName))
	url, err := s.assets.PutObject(ctx, storage.UploadInput{
		Key:         key,
		ContentType: upload.ContentType,
		Body:        upload.Body,
		Size:        upload.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("store logo: %w", err)
	}

	updated, err := s.associateRepo.SetLogoURL(ctx, id, url, time.Now())
	if err != nil {
		return nil, fmt.Errorf("set logo url: %w", err)
	}
	return updated, nil
}
