package usecases

import (
	"context"
	"sort"
	"strings"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/ports"
)

// GameFilter narrows game listings.
type GameFilter struct {
	EventType domain.EventType // defaults to public
	Query     string           // title substring, case-insensitive
	MineOnly  bool             // only games the caller joined
	UserID    string
}

// GameService handles scheduled pick-up games and their participant lists.
type GameService struct {
	games ports.GameRepository
}

// NewGameService creates a new GameService.
func NewGameService(games ports.GameRepository) *GameService {
	return &GameService{games: games}
}

// List returns games matching the filter, ordered by scheduled date.
func (s *GameService) List(ctx context.Context, filter GameFilter) ([]domain.Game, error) {
	eventType := filter.EventType
	if eventType == "" {
		eventType = domain.EventPublic
	}
	if eventType != domain.EventPublic && eventType != domain.EventPrivate {
		return nil, domain.Invalid("event type must be public or private")
	}

	games, err := s.games.List(ctx, eventType)
	if err != nil {
		return nil, err
	}

	// Fresh slice: filtering games[:0] in place would scribble over the
	// repository's backing array.
	filtered := make([]domain.Game, 0, len(games))
	for _, g := range games {
		// The "my games" filter is skipped for anonymous callers, mirroring
		// the bookmark filter in court search.
		if filter.MineOnly && filter.UserID != "" && !g.HasParticipant(filter.UserID) {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(g.Title), strings.ToLower(filter.Query)) {
			continue
		}
		filtered = append(filtered, g)
	}
	return filtered, nil
}

// GetByID returns a single game.
func (s *GameService) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	return s.games.GetByID(ctx, id)
}

// Others returns up to limit other public games, soonest first, excluding id.
func (s *GameService) Others(ctx context.Context, id string, limit int) ([]domain.Game, error) {
	games, err := s.games.List(ctx, domain.EventPublic)
	if err != nil {
		return nil, err
	}
	others := make([]domain.Game, 0, limit)
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].ScheduledDate.Before(games[j].ScheduledDate)
	})
	for _, g := range games {
		if g.ID == id {
			continue
		}
		others = append(others, g)
		if len(others) == limit {
			break
		}
	}
	return others, nil
}

// Create schedules a new game. The creator joins automatically.
func (s *GameService) Create(ctx context.Context, creatorID string, game *domain.Game) error {
	if creatorID == "" {
		return domain.ErrUnauthenticated
	}
	game.CreatorID = creatorID
	if game.EventType == "" {
		game.EventType = domain.EventPublic
	}
	if err := game.Validate(); err != nil {
		return err
	}
	game.Participants = []string{creatorID}
	return s.games.Create(ctx, game)
}

// Update edits a game. Only the creator may edit.
func (s *GameService) Update(ctx context.Context, userID, id string, game *domain.Game) (*domain.Game, error) {
	existing, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatorID != userID {
		return nil, domain.ErrForbidden
	}
	game.ID = existing.ID
	game.CreatorID = existing.CreatorID
	game.Participants = existing.Participants
	game.CreatedAt = existing.CreatedAt
	if err := game.Validate(); err != nil {
		return nil, err
	}
	if err := s.games.Update(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// Delete removes a game. Only the creator may delete.
func (s *GameService) Delete(ctx context.Context, userID, id string) error {
	existing, err := s.games.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatorID != userID {
		return domain.ErrForbidden
	}
	return s.games.Delete(ctx, id)
}

// Join adds the caller to a game. Joining twice is a no-op; joining a full
// game fails with ErrGameFull.
func (s *GameService) Join(ctx context.Context, userID, id string) (*domain.Game, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.HasParticipant(userID) {
		return game, nil
	}
	if game.IsFull() {
		return nil, domain.ErrGameFull
	}
	if err := s.games.AddParticipant(ctx, id, userID); err != nil {
		return nil, err
	}
	game.Participants = append(game.Participants, userID)
	return game, nil
}

// Leave removes the caller from a game. Leaving a game not joined is a no-op.
func (s *GameService) Leave(ctx context.Context, userID, id string) (*domain.Game, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !game.HasParticipant(userID) {
		return game, nil
	}
	if err := s.games.RemoveParticipant(ctx, id, userID); err != nil {
		return nil, err
	}
	remaining := make([]string, 0, len(game.Participants)-1)
	for _, p := range game.Participants {
		if p != userID {
			remaining = append(remaining, p)
		}
	}
	game.Participants = remaining
	return game, nil
}
