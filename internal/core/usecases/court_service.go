package usecases

import (
	"context"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/ports"
)

// CourtService handles owner-scoped court management. The search engine only
// ever reads what this service writes.
type CourtService struct {
	courts ports.CourtRepository
}

// NewCourtService creates a new CourtService.
func NewCourtService(courts ports.CourtRepository) *CourtService {
	return &CourtService{courts: courts}
}

// Create registers a new court owned by ownerID. New courts are active.
func (s *CourtService) Create(ctx context.Context, ownerID string, court *domain.Court) error {
	if ownerID == "" {
		return domain.ErrUnauthenticated
	}
	court.OwnerID = ownerID
	court.IsActive = true
	if err := court.Validate(); err != nil {
		return err
	}
	return s.courts.Create(ctx, court)
}

// Update replaces a court's attributes. Only the owner may update.
func (s *CourtService) Update(ctx context.Context, ownerID, courtID string, court *domain.Court) (*domain.Court, error) {
	existing, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	court.ID = existing.ID
	court.OwnerID = existing.OwnerID
	court.IsActive = existing.IsActive
	court.CreatedAt = existing.CreatedAt
	if err := court.Validate(); err != nil {
		return nil, err
	}
	if err := s.courts.Update(ctx, court); err != nil {
		return nil, err
	}
	return court, nil
}

// Delete removes a court. Only the owner may delete.
func (s *CourtService) Delete(ctx context.Context, ownerID, courtID string) error {
	existing, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return s.courts.Delete(ctx, courtID)
}

// GetByID returns a single court.
func (s *CourtService) GetByID(ctx context.Context, id string) (*domain.Court, error) {
	return s.courts.GetByID(ctx, id)
}

// ListOwn returns the caller's courts.
func (s *CourtService) ListOwn(ctx context.Context, ownerID string) ([]domain.Court, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.courts.ListByOwner(ctx, ownerID)
}
