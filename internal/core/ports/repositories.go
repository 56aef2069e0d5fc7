package ports

import (
	"context"

	"github.com/geloraapp/gelora/internal/core/domain"
)

// CourtRepository persists courts and their province associations.
type CourtRepository interface {
	Create(ctx context.Context, court *domain.Court) error
	Update(ctx context.Context, court *domain.Court) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Court, error)
	// ListActive returns every searchable court with provinces attached.
	ListActive(ctx context.Context) ([]domain.Court, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Court, error)
}

// ProvinceRepository reads administrative regions.
type ProvinceRepository interface {
	List(ctx context.Context) ([]domain.Province, error)
	GetByID(ctx context.Context, id string) (*domain.Province, error)
}

// BookmarkRepository persists (user, court) bookmarks.
type BookmarkRepository interface {
	// Add is idempotent; re-adding an existing bookmark is not an error.
	Add(ctx context.Context, userID, courtID string) error
	Remove(ctx context.Context, userID, courtID string) error
	Exists(ctx context.Context, userID, courtID string) (bool, error)
	// CourtIDs returns the set of court ids the user bookmarked.
	CourtIDs(ctx context.Context, userID string) (map[string]bool, error)
}

// BlogRepository persists blog posts.
type BlogRepository interface {
	Create(ctx context.Context, post *domain.BlogPost) error
	Update(ctx context.Context, post *domain.BlogPost) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.BlogPost, error)
	List(ctx context.Context) ([]domain.BlogPost, error)
}

// ComplaintRepository persists complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) error
}

// GameRepository persists scheduled games and their participants.
type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) error
	Update(ctx context.Context, game *domain.Game) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Game, error)
	// List returns games of the given event type ordered by scheduled date.
	List(ctx context.Context, eventType domain.EventType) ([]domain.Game, error)
	AddParticipant(ctx context.Context, gameID, userID string) error
	RemoveParticipant(ctx context.Context, gameID, userID string) error
}
