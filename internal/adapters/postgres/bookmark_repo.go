package postgres

import (
	"context"
)

// BookmarkRepo implements ports.BookmarkRepository with pgx. The table's
// primary key is (user_id, court_id) so Add stays idempotent.
type BookmarkRepo struct {
	db *DB
}

// NewBookmarkRepo creates a new BookmarkRepo.
func NewBookmarkRepo(db *DB) *BookmarkRepo {
	return &BookmarkRepo{db: db}
}

// Add saves a bookmark. Re-adding an existing bookmark is not an error.
func (r *BookmarkRepo) Add(ctx context.Context, userID, courtID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO bookmarks (user_id, court_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, court_id) DO NOTHING
	`, userID, courtID)
	return err
}

// Remove deletes a bookmark if present.
func (r *BookmarkRepo) Remove(ctx context.Context, userID, courtID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		DELETE FROM bookmarks WHERE user_id = $1 AND court_id = $2
	`, userID, courtID)
	return err
}

// Exists reports whether the user bookmarked the court.
func (r *BookmarkRepo) Exists(ctx context.Context, userID, courtID string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM bookmarks WHERE user_id = $1 AND court_id = $2)
	`, userID, courtID).Scan(&exists)
	return exists, err
}

// CourtIDs returns the set of court ids the user bookmarked.
func (r *BookmarkRepo) CourtIDs(ctx context.Context, userID string) (map[string]bool, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT court_id FROM bookmarks WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
