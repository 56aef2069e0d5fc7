package usecases

import (
	"context"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/ports"
)

// ComplaintService handles user complaints and their status workflow:
// review -> in_progress -> resolved.
type ComplaintService struct {
	complaints ports.ComplaintRepository
}

// NewComplaintService creates a new ComplaintService.
func NewComplaintService(complaints ports.ComplaintRepository) *ComplaintService {
	return &ComplaintService{complaints: complaints}
}

// File submits a new complaint for userID. New complaints start in review.
func (s *ComplaintService) File(ctx context.Context, userID string, complaint *domain.Complaint) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	complaint.UserID = userID
	complaint.Status = domain.ComplaintInReview
	if err := complaint.Validate(); err != nil {
		return err
	}
	return s.complaints.Create(ctx, complaint)
}

// ListOwn returns the caller's complaints, newest first.
func (s *ComplaintService) ListOwn(ctx context.Context, userID string) ([]domain.Complaint, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.complaints.ListByUser(ctx, userID)
}

// Delete removes the caller's own complaint. A complaint that already left
// review is locked.
func (s *ComplaintService) Delete(ctx context.Context, userID, id string) error {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if complaint.UserID != userID {
		return domain.ErrForbidden
	}
	if complaint.Status != domain.ComplaintInReview {
		return domain.ErrComplaintLocked
	}
	return s.complaints.Delete(ctx, id)
}

// ListAll returns every complaint for admin review, newest first.
func (s *ComplaintService) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	return s.complaints.ListAll(ctx)
}

// UpdateStatus moves a complaint to a new workflow state.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	if !status.Known() {
		return nil, domain.Invalid("unknown complaint status: " + string(status))
	}
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.complaints.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	complaint.Status = status
	return complaint, nil
}

// AdminDelete removes any complaint regardless of status.
func (s *ComplaintService) AdminDelete(ctx context.Context, id string) error {
	if _, err := s.complaints.GetByID(ctx, id); err != nil {
		return err
	}
	return s.complaints.Delete(ctx, id)
}
