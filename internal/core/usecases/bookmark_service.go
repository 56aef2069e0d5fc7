package usecases

import (
	"context"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/ports"
)

// BookmarkService lets authenticated users save courts.
type BookmarkService struct {
	bookmarks ports.BookmarkRepository
	courts    ports.CourtRepository
}

// NewBookmarkService creates a new BookmarkService.
func NewBookmarkService(bookmarks ports.BookmarkRepository, courts ports.CourtRepository) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, courts: courts}
}

// Add bookmarks an active court for the user. Re-adding is a no-op.
func (s *BookmarkService) Add(ctx context.Context, userID, courtID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	court, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		return err
	}
	if !court.IsActive {
		return domain.ErrNotFound
	}
	return s.bookmarks.Add(ctx, userID, courtID)
}

// Remove deletes a bookmark. Removing a bookmark that does not exist
// reports ErrNotFound.
func (s *BookmarkService) Remove(ctx context.Context, userID, courtID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	exists, err := s.bookmarks.Exists(ctx, userID, courtID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return s.bookmarks.Remove(ctx, userID, courtID)
}
