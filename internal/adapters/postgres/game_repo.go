package postgres

import (
	"context"
	"errors"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// GameRepo implements ports.GameRepository with pgx. Participants live in the
// game_participants join table keyed (game_id, user_id).
type GameRepo struct {
	db *DB
}

// NewGameRepo creates a new GameRepo.
func NewGameRepo(db *DB) *GameRepo {
	return &GameRepo{db: db}
}

// Create inserts a game and its initial participants in one transaction.
func (r *GameRepo) Create(ctx context.Context, g *domain.Game) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO games (title, description, creator_id, scheduled_date,
		                   start_time, end_time, location, event_type, sport_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, g.Title, g.Description, g.CreatorID, g.ScheduledDate,
		g.StartTime, g.EndTime, g.Location, g.EventType, g.SportType,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return err
	}

	for _, userID := range g.Participants {
		if _, err := tx.Exec(ctx, `
			INSERT INTO game_participants (game_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, g.ID, userID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Update replaces a game's attributes. Participants are managed separately.
func (r *GameRepo) Update(ctx context.Context, g *domain.Game) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE games
		SET title = $2, description = $3, scheduled_date = $4, start_time = $5,
		    end_time = $6, location = $7, event_type = $8, sport_type = $9
		WHERE id = $1
	`, g.ID, g.Title, g.Description, g.ScheduledDate,
		g.StartTime, g.EndTime, g.Location, g.EventType, g.SportType)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a game. Participants cascade.
func (r *GameRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID returns a game with its participant list.
func (r *GameRepo) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	var g domain.Game
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, title, COALESCE(description, ''), creator_id, scheduled_date,
		       start_time, end_time, location, event_type, sport_type, created_at
		FROM games WHERE id = $1
	`, id).Scan(
		&g.ID, &g.Title, &g.Description, &g.CreatorID, &g.ScheduledDate,
		&g.StartTime, &g.EndTime, &g.Location, &g.EventType, &g.SportType, &g.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	participants, err := r.participantsFor(ctx, []string{g.ID})
	if err != nil {
		return nil, err
	}
	g.Participants = participants[g.ID]
	return &g, nil
}

// List returns games of the given event type, soonest first, with
// participants attached.
func (r *GameRepo) List(ctx context.Context, eventType domain.EventType) ([]domain.Game, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, title, COALESCE(description, ''), creator_id, scheduled_date,
		       start_time, end_time, location, event_type, sport_type, created_at
		FROM games WHERE event_type = $1
		ORDER BY scheduled_date, start_time, id
	`, eventType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []domain.Game
	var ids []string
	for rows.Next() {
		var g domain.Game
		if err := rows.Scan(
			&g.ID, &g.Title, &g.Description, &g.CreatorID, &g.ScheduledDate,
			&g.StartTime, &g.EndTime, &g.Location, &g.EventType, &g.SportType, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		games = append(games, g)
		ids = append(ids, g.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	participants, err := r.participantsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range games {
		games[i].Participants = participants[games[i].ID]
	}
	return games, nil
}

// AddParticipant joins a user to a game, idempotently.
func (r *GameRepo) AddParticipant(ctx context.Context, gameID, userID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO game_participants (game_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, gameID, userID)
	return err
}

// RemoveParticipant drops a user from a game.
func (r *GameRepo) RemoveParticipant(ctx context.Context, gameID, userID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		DELETE FROM game_participants WHERE game_id = $1 AND user_id = $2
	`, gameID, userID)
	return err
}

func (r *GameRepo) participantsFor(ctx context.Context, gameIDs []string) (map[string][]string, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT game_id, user_id
		FROM game_participants
		WHERE game_id = ANY($1)
		ORDER BY joined_at, user_id
	`, gameIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byGame := make(map[string][]string, len(gameIDs))
	for rows.Next() {
		var gameID, userID string
		if err := rows.Scan(&gameID, &userID); err != nil {
			return nil, err
		}
		byGame[gameID] = append(byGame[gameID], userID)
	}
	return byGame, rows.Err()
}
